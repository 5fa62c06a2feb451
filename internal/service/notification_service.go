package service

import (
	"context"
	"fmt"
	"time"

	"github.com/soniabinty/gizmorent-server/internal/domain"
	"github.com/soniabinty/gizmorent-server/internal/repository"
)

type NotificationService interface {
	Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error)
	ListFor(ctx context.Context, email string) ([]domain.Notification, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context, email string) (int64, error)
	Delete(ctx context.Context, id string) error
	DeleteForTarget(ctx context.Context, target string) (int64, error)
}

type notificationService struct {
	notifRepo repository.NotificationRepository
	userRepo  repository.UserRepository
}

func NewNotificationService(notifRepo repository.NotificationRepository, userRepo repository.UserRepository) NotificationService {
	return &notificationService{
		notifRepo: notifRepo,
		userRepo:  userRepo,
	}
}

func (s *notificationService) Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error) {
	if err := n.Validate(); err != nil {
		return nil, err
	}
	n.Read = false
	n.CreatedAt = time.Now()
	return s.notifRepo.Insert(ctx, n)
}

// ListFor returns the notifications addressed to the user plus, for
// admins, everything addressed to the admin role target.
func (s *notificationService) ListFor(ctx context.Context, email string) ([]domain.Notification, error) {
	email = domain.NormalizeEmail(email)
	if !domain.IsValidEmail(email) {
		return nil, domain.ValidationError("A valid email is required")
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	includeAdmin := user != nil && user.Role == domain.RoleAdmin

	return s.notifRepo.ListForTarget(ctx, email, includeAdmin)
}

func (s *notificationService) MarkRead(ctx context.Context, id string) error {
	updated, err := s.notifRepo.MarkRead(ctx, id)
	if err != nil {
		return err
	}
	if !updated {
		return domain.NotFoundError("Notification not found")
	}
	return nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, email string) (int64, error) {
	email = domain.NormalizeEmail(email)
	if !domain.IsValidEmail(email) {
		return 0, domain.ValidationError("A valid email is required")
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return 0, fmt.Errorf("failed to find user: %w", err)
	}
	includeAdmin := user != nil && user.Role == domain.RoleAdmin

	return s.notifRepo.MarkAllRead(ctx, email, includeAdmin)
}

func (s *notificationService) Delete(ctx context.Context, id string) error {
	deleted, err := s.notifRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.NotFoundError("Notification not found")
	}
	return nil
}

func (s *notificationService) DeleteForTarget(ctx context.Context, target string) (int64, error) {
	if target != domain.AdminTarget {
		target = domain.NormalizeEmail(target)
		if !domain.IsValidEmail(target) {
			return 0, domain.ValidationError("A valid target is required")
		}
	}
	return s.notifRepo.DeleteByTarget(ctx, target)
}
