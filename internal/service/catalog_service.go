package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/soniabinty/gizmorent-server/internal/domain"
	"github.com/soniabinty/gizmorent-server/internal/repository"
)

type CatalogService interface {
	Search(ctx context.Context, q *domain.GadgetQuery) (*domain.CatalogPage, error)
	CreateGadget(ctx context.Context, gadget *domain.Gadget) (*domain.Gadget, error)
	ListGadgets(ctx context.Context) ([]domain.Gadget, error)
	GetGadget(ctx context.Context, id string) (*domain.Gadget, error)
	GetGadgetBySerialCode(ctx context.Context, serialCode string) (*domain.Gadget, error)
	UpdateGadget(ctx context.Context, id string, patch domain.GadgetPatch) (*domain.Gadget, error)
	DeleteGadget(ctx context.Context, id string) error
}

type catalogService struct {
	gadgetRepo repository.GadgetRepository
}

func NewCatalogService(gadgetRepo repository.GadgetRepository) CatalogService {
	return &catalogService{gadgetRepo: gadgetRepo}
}

func (s *catalogService) Search(ctx context.Context, q *domain.GadgetQuery) (*domain.CatalogPage, error) {
	q.Normalize()

	gadgets, total, err := s.gadgetRepo.Search(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to search gadgets: %w", err)
	}

	totalPages := int((total + int64(q.Limit) - 1) / int64(q.Limit))

	if gadgets == nil {
		gadgets = []domain.Gadget{}
	}

	return &domain.CatalogPage{
		Gadgets:     gadgets,
		CurrentPage: q.Page,
		TotalPages:  totalPages,
	}, nil
}

const serialCodeAttempts = 5

func (s *catalogService) CreateGadget(ctx context.Context, gadget *domain.Gadget) (*domain.Gadget, error) {
	gadget.RenterEmail = domain.NormalizeEmail(gadget.RenterEmail)
	if err := gadget.Validate(); err != nil {
		return nil, err
	}
	if gadget.Status == "" {
		gadget.Status = domain.GadgetAvailable
	}
	if gadget.CreatedAt.IsZero() {
		gadget.CreatedAt = time.Now()
	}

	// Serial codes are unique per gadget; regenerate on the rare collision.
	var created *domain.Gadget
	var err error
	for i := 0; i < serialCodeAttempts; i++ {
		gadget.SerialCode = domain.NewSerialCode()
		created, err = s.gadgetRepo.Create(ctx, gadget)
		if err == nil {
			return created, nil
		}
		if !errors.Is(err, domain.ErrConflict) {
			return nil, fmt.Errorf("failed to create gadget: %w", err)
		}
	}
	return nil, err
}

func (s *catalogService) ListGadgets(ctx context.Context) ([]domain.Gadget, error) {
	return s.gadgetRepo.List(ctx)
}

func (s *catalogService) GetGadget(ctx context.Context, id string) (*domain.Gadget, error) {
	gadget, err := s.gadgetRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if gadget == nil {
		return nil, domain.NotFoundError("Gadget not found")
	}
	return gadget, nil
}

func (s *catalogService) GetGadgetBySerialCode(ctx context.Context, serialCode string) (*domain.Gadget, error) {
	gadget, err := s.gadgetRepo.GetBySerialCode(ctx, serialCode)
	if err != nil {
		return nil, err
	}
	if gadget == nil {
		return nil, domain.NotFoundError("Gadget not found")
	}
	return gadget, nil
}

func (s *catalogService) UpdateGadget(ctx context.Context, id string, patch domain.GadgetPatch) (*domain.Gadget, error) {
	if patch.Price != nil && *patch.Price <= 0 {
		return nil, domain.ValidationError("Gadget price must be a positive number")
	}

	gadget, err := s.gadgetRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if gadget == nil {
		return nil, domain.NotFoundError("Gadget not found")
	}
	return gadget, nil
}

func (s *catalogService) DeleteGadget(ctx context.Context, id string) error {
	deleted, err := s.gadgetRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.NotFoundError("Gadget not found")
	}
	return nil
}
