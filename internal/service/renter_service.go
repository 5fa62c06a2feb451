package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/soniabinty/gizmorent-server/internal/domain"
	"github.com/soniabinty/gizmorent-server/internal/repository"
	"github.com/soniabinty/gizmorent-server/pkg/events"
	"github.com/soniabinty/gizmorent-server/pkg/logger"
)

type RenterService interface {
	SubmitRequest(ctx context.Context, email, name string) (*domain.RenterRequest, error)
	ListRequests(ctx context.Context) ([]domain.RenterRequest, error)
	Approve(ctx context.Context, email string) (*domain.User, error)
	Reject(ctx context.Context, email string) error
	ListRecords(ctx context.Context) ([]domain.RenterRecord, error)
}

type renterService struct {
	renterRepo repository.RenterRepository
	userRepo   repository.UserRepository
	eventBus   events.Publisher
}

func NewRenterService(
	renterRepo repository.RenterRepository,
	userRepo repository.UserRepository,
	eventBus events.Publisher,
) RenterService {
	return &renterService{
		renterRepo: renterRepo,
		userRepo:   userRepo,
		eventBus:   eventBus,
	}
}

func (s *renterService) SubmitRequest(ctx context.Context, email, name string) (*domain.RenterRequest, error) {
	email = domain.NormalizeEmail(email)
	if !domain.IsValidEmail(email) {
		return nil, domain.ValidationError("A valid email is required")
	}

	req := &domain.RenterRequest{
		Email:       email,
		Name:        name,
		RequestedAt: time.Now(),
	}

	// The insert is the deduplication: the unique index rejects a second
	// pending request for the same email.
	created, err := s.renterRepo.CreateRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	event := events.RenterRequestedEvent{
		Email:       created.Email,
		Name:        created.Name,
		RequestedAt: created.RequestedAt,
	}
	if err := s.eventBus.Publish(ctx, events.RenterRequested, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish renter requested event", "error", err, "email", created.Email)
	}

	return created, nil
}

func (s *renterService) ListRequests(ctx context.Context) ([]domain.RenterRequest, error) {
	return s.renterRepo.ListRequests(ctx)
}

const renterCodeAttempts = 5

func (s *renterService) Approve(ctx context.Context, email string) (*domain.User, error) {
	email = domain.NormalizeEmail(email)

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, domain.NotFoundError("User not found")
	}

	// Role mutation, audit insert and request delete commit together; a
	// duplicate renter code aborts the transaction and we mint a new one.
	var renterCode string
	for i := 0; i < renterCodeAttempts; i++ {
		renterCode = domain.NewRenterCode()
		err = s.renterRepo.Approve(ctx, email, renterCode)
		if err == nil || !errors.Is(err, domain.ErrConflict) {
			break
		}
	}
	if err != nil {
		return nil, err
	}

	event := events.RenterApprovedEvent{
		Email:      email,
		Name:       user.Name,
		RenterCode: renterCode,
		ApprovedAt: time.Now(),
	}
	if err := s.eventBus.Publish(ctx, events.RenterApproved, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish renter approved event", "error", err, "email", email)
	}

	user.Role = domain.RoleRenter
	user.RenterCode = renterCode
	return user, nil
}

func (s *renterService) Reject(ctx context.Context, email string) error {
	email = domain.NormalizeEmail(email)

	req, err := s.renterRepo.FindRequestByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to find renter request: %w", err)
	}
	if req == nil {
		return domain.NotFoundError("Renter request not found")
	}

	if _, err := s.renterRepo.DeleteRequest(ctx, email); err != nil {
		return fmt.Errorf("failed to delete renter request: %w", err)
	}

	event := events.RenterRejectedEvent{
		Email:      email,
		RejectedAt: time.Now(),
	}
	if err := s.eventBus.Publish(ctx, events.RenterRejected, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish renter rejected event", "error", err, "email", email)
	}

	return nil
}

func (s *renterService) ListRecords(ctx context.Context) ([]domain.RenterRecord, error) {
	return s.renterRepo.ListRecords(ctx)
}
