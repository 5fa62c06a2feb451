package service

import (
	"context"
	"time"

	"github.com/soniabinty/gizmorent-server/internal/domain"
	"github.com/soniabinty/gizmorent-server/internal/repository"
	"github.com/soniabinty/gizmorent-server/pkg/events"
	"github.com/soniabinty/gizmorent-server/pkg/logger"
)

type OrderService interface {
	PlaceOrders(ctx context.Context, orders []domain.Order) ([]domain.Order, error)
	ListOrders(ctx context.Context) ([]domain.Order, error)
	ListOrdersByCustomer(ctx context.Context, email string) ([]domain.Order, error)
	ListOrdersByRenter(ctx context.Context, email string) ([]domain.Order, error)
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error)
}

type orderService struct {
	orderRepo repository.OrderRepository
	eventBus  events.Publisher
}

func NewOrderService(orderRepo repository.OrderRepository, eventBus events.Publisher) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		eventBus:  eventBus,
	}
}

func (s *orderService) PlaceOrders(ctx context.Context, orders []domain.Order) ([]domain.Order, error) {
	if len(orders) == 0 {
		return nil, domain.ValidationError("At least one order is required")
	}

	now := time.Now()
	for i := range orders {
		orders[i].CustomerEmail = domain.NormalizeEmail(orders[i].CustomerEmail)
		orders[i].RenterEmail = domain.NormalizeEmail(orders[i].RenterEmail)
		if orders[i].Quantity <= 0 {
			orders[i].Quantity = 1
		}
		if err := orders[i].Validate(); err != nil {
			return nil, err
		}
		orders[i].Status = domain.OrderPending
		orders[i].TrackingCode = domain.NewTrackingCode()
		orders[i].Date = now
	}

	inserted, err := s.orderRepo.InsertBatch(ctx, orders)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(inserted))
	for _, o := range inserted {
		ids = append(ids, o.ID.Hex())
	}
	event := events.OrderPlacedEvent{
		OrderIDs:      ids,
		CustomerEmail: inserted[0].CustomerEmail,
		PlacedAt:      now,
	}
	if err := s.eventBus.Publish(ctx, events.OrderPlaced, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish order placed event", "error", err, "email", event.CustomerEmail)
	}

	return inserted, nil
}

func (s *orderService) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return s.orderRepo.List(ctx)
}

func (s *orderService) ListOrdersByCustomer(ctx context.Context, email string) ([]domain.Order, error) {
	email = domain.NormalizeEmail(email)
	if !domain.IsValidEmail(email) {
		return nil, domain.ValidationError("A valid email is required")
	}
	return s.orderRepo.ListByCustomer(ctx, email)
}

func (s *orderService) ListOrdersByRenter(ctx context.Context, email string) ([]domain.Order, error) {
	email = domain.NormalizeEmail(email)
	if !domain.IsValidEmail(email) {
		return nil, domain.ValidationError("A valid email is required")
	}
	return s.orderRepo.ListByRenter(ctx, email)
}

func (s *orderService) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.NotFoundError("Order not found")
	}
	return order, nil
}

func (s *orderService) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	order, err := s.orderRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.NotFoundError("Order not found")
	}

	event := events.OrderStatusChangedEvent{
		OrderID:       order.ID.Hex(),
		CustomerEmail: order.CustomerEmail,
		Status:        string(order.Status),
		ChangedAt:     time.Now(),
	}
	if err := s.eventBus.Publish(ctx, events.OrderStatusChanged, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish order status event", "error", err, "order_id", event.OrderID)
	}

	return order, nil
}
