package service

import (
	"context"
	"time"

	"github.com/soniabinty/gizmorent-server/internal/domain"
	"github.com/soniabinty/gizmorent-server/internal/repository"
)

type CommerceService interface {
	AddToWishlist(ctx context.Context, item *domain.WishlistItem) (*domain.WishlistItem, error)
	ListWishlist(ctx context.Context, email string) ([]domain.WishlistItem, error)
	RemoveFromWishlist(ctx context.Context, id string) error

	AddToCart(ctx context.Context, item *domain.CartItem) (*domain.CartItem, error)
	ListCart(ctx context.Context, email string) ([]domain.CartItem, error)
	UpdateCartQuantity(ctx context.Context, id string, quantity int) (*domain.CartItem, error)
	RemoveFromCart(ctx context.Context, id string) error
	ClearCart(ctx context.Context, email string) (int64, error)
}

type commerceService struct {
	wishlistRepo repository.WishlistRepository
	cartRepo     repository.CartRepository
}

func NewCommerceService(wishlistRepo repository.WishlistRepository, cartRepo repository.CartRepository) CommerceService {
	return &commerceService{
		wishlistRepo: wishlistRepo,
		cartRepo:     cartRepo,
	}
}

func (s *commerceService) AddToWishlist(ctx context.Context, item *domain.WishlistItem) (*domain.WishlistItem, error) {
	item.Email = domain.NormalizeEmail(item.Email)
	if err := item.Validate(); err != nil {
		return nil, err
	}
	item.AddedAt = time.Now()

	// The compound unique index on (email, gadget_id) is the duplicate
	// guard; a racing second add surfaces as a conflict, never two rows.
	return s.wishlistRepo.Insert(ctx, item)
}

func (s *commerceService) ListWishlist(ctx context.Context, email string) ([]domain.WishlistItem, error) {
	email = domain.NormalizeEmail(email)
	if !domain.IsValidEmail(email) {
		return nil, domain.ValidationError("A valid email is required")
	}
	return s.wishlistRepo.ListByEmail(ctx, email)
}

func (s *commerceService) RemoveFromWishlist(ctx context.Context, id string) error {
	deleted, err := s.wishlistRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.NotFoundError("Wishlist item not found")
	}
	return nil
}

func (s *commerceService) AddToCart(ctx context.Context, item *domain.CartItem) (*domain.CartItem, error) {
	item.Email = domain.NormalizeEmail(item.Email)
	if item.Quantity == 0 {
		item.Quantity = 1
	}
	if item.Quantity < 0 {
		return nil, domain.ValidationError("Quantity must be a positive number")
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}
	item.AddedAt = time.Now()

	return s.cartRepo.Add(ctx, item)
}

func (s *commerceService) ListCart(ctx context.Context, email string) ([]domain.CartItem, error) {
	email = domain.NormalizeEmail(email)
	if !domain.IsValidEmail(email) {
		return nil, domain.ValidationError("A valid email is required")
	}
	return s.cartRepo.ListByEmail(ctx, email)
}

func (s *commerceService) UpdateCartQuantity(ctx context.Context, id string, quantity int) (*domain.CartItem, error) {
	if quantity <= 0 {
		return nil, domain.ValidationError("Quantity must be a positive number")
	}

	item, err := s.cartRepo.UpdateQuantity(ctx, id, quantity)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.NotFoundError("Cart item not found")
	}
	return item, nil
}

func (s *commerceService) RemoveFromCart(ctx context.Context, id string) error {
	deleted, err := s.cartRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.NotFoundError("Cart item not found")
	}
	return nil
}

func (s *commerceService) ClearCart(ctx context.Context, email string) (int64, error) {
	email = domain.NormalizeEmail(email)
	if !domain.IsValidEmail(email) {
		return 0, domain.ValidationError("A valid email is required")
	}
	return s.cartRepo.ClearByEmail(ctx, email)
}
