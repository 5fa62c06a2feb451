package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/soniabinty/gizmorent-server/internal/domain"
	"github.com/soniabinty/gizmorent-server/internal/mailer"
	"github.com/soniabinty/gizmorent-server/internal/repository"
	"github.com/soniabinty/gizmorent-server/pkg/events"
	"github.com/soniabinty/gizmorent-server/pkg/logger"
)

const queueGroup = "notify"

// Projector consumes workflow events and materializes them as
// notification documents. Delivery is best effort: a failed insert is
// logged and the event dropped, never retried into the request path.
type Projector struct {
	subscriber events.Subscriber
	notifRepo  repository.NotificationRepository
	mailer     mailer.Service
}

func NewProjector(subscriber events.Subscriber, notifRepo repository.NotificationRepository, mailer mailer.Service) *Projector {
	return &Projector{
		subscriber: subscriber,
		notifRepo:  notifRepo,
		mailer:     mailer,
	}
}

// Start registers the queue subscriptions. Queue groups keep projection
// single-delivery when multiple instances run.
func (p *Projector) Start() error {
	subs := map[string]func(msg *events.Message){
		events.RenterRequested:    p.onRenterRequested,
		events.RenterApproved:     p.onRenterApproved,
		events.RenterRejected:     p.onRenterRejected,
		events.OrderPlaced:        p.onOrderPlaced,
		events.OrderStatusChanged: p.onOrderStatusChanged,
		events.PaymentRecorded:    p.onPaymentRecorded,
	}

	for subject, handler := range subs {
		if err := p.subscriber.QueueSubscribe(subject, queueGroup, handler); err != nil {
			return fmt.Errorf("failed to subscribe to %s: %w", subject, err)
		}
	}

	logger.Info("Notification projector started", "subjects", len(subs))
	return nil
}

func (p *Projector) onRenterRequested(msg *events.Message) {
	var event events.RenterRequestedEvent
	if !p.decode(msg, &event) {
		return
	}

	p.insert(&domain.Notification{
		Target:  domain.AdminTarget,
		Message: fmt.Sprintf("%s has requested to become a renter", event.Email),
		Type:    domain.NotifyRenterRequest,
	})
}

func (p *Projector) onRenterApproved(msg *events.Message) {
	var event events.RenterApprovedEvent
	if !p.decode(msg, &event) {
		return
	}

	p.insert(&domain.Notification{
		Target:  event.Email,
		Message: fmt.Sprintf("Your renter request was approved. Your renter code is %s", event.RenterCode),
		Type:    domain.NotifyRenterResult,
	})
	p.insert(&domain.Notification{
		Target:  domain.AdminTarget,
		Message: fmt.Sprintf("%s was approved as a renter", event.Email),
		Type:    domain.NotifyRenterResult,
	})

	if err := p.mailer.SendRenterApprovedEmail(event.Email, event.Name, event.RenterCode); err != nil {
		logger.Error("Failed to send renter approval email", "error", err, "email", event.Email)
	}
}

func (p *Projector) onRenterRejected(msg *events.Message) {
	var event events.RenterRejectedEvent
	if !p.decode(msg, &event) {
		return
	}

	p.insert(&domain.Notification{
		Target:  event.Email,
		Message: "Your renter request was rejected",
		Type:    domain.NotifyRenterResult,
	})
	p.insert(&domain.Notification{
		Target:  domain.AdminTarget,
		Message: fmt.Sprintf("Renter request from %s was rejected", event.Email),
		Type:    domain.NotifyRenterResult,
	})

	if err := p.mailer.SendRenterRejectedEmail(event.Email); err != nil {
		logger.Error("Failed to send renter rejection email", "error", err, "email", event.Email)
	}
}

func (p *Projector) onOrderPlaced(msg *events.Message) {
	var event events.OrderPlacedEvent
	if !p.decode(msg, &event) {
		return
	}

	p.insert(&domain.Notification{
		Target:  domain.AdminTarget,
		Message: fmt.Sprintf("%s placed %d new order(s)", event.CustomerEmail, len(event.OrderIDs)),
		Type:    domain.NotifyOrderStatus,
	})
}

func (p *Projector) onOrderStatusChanged(msg *events.Message) {
	var event events.OrderStatusChangedEvent
	if !p.decode(msg, &event) {
		return
	}

	p.insert(&domain.Notification{
		Target:  event.CustomerEmail,
		Message: fmt.Sprintf("Your order %s is now %s", event.OrderID, event.Status),
		Type:    domain.NotifyOrderStatus,
	})
}

func (p *Projector) onPaymentRecorded(msg *events.Message) {
	var event events.PaymentRecordedEvent
	if !p.decode(msg, &event) {
		return
	}

	p.insert(&domain.Notification{
		Target:  event.Email,
		Message: fmt.Sprintf("Payment of %.2f via %s was recorded", event.Amount, event.Gateway),
		Type:    domain.NotifyPayment,
	})
}

func (p *Projector) decode(msg *events.Message, dst interface{}) bool {
	if err := json.Unmarshal(msg.Data, dst); err != nil {
		logger.Error("Failed to decode event", "error", err, "subject", msg.Subject)
		return false
	}
	return true
}

func (p *Projector) insert(n *domain.Notification) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	n.Read = false
	n.CreatedAt = time.Now()
	if _, err := p.notifRepo.Insert(ctx, n); err != nil {
		logger.Error("Failed to insert notification", "error", err, "target", n.Target)
	}
}
