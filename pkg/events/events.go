package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/soniabinty/gizmorent-server/pkg/logger"
)

type Publisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
	Close() error
}

type Subscriber interface {
	Subscribe(subject string, handler func(msg *Message)) error
	QueueSubscribe(subject, queue string, handler func(msg *Message)) error
	Close() error
}

type EventBus interface {
	Publisher
	Subscriber
}

type Message struct {
	Subject   string
	Data      []byte
	Timestamp time.Time
}

type NATSEventBus struct {
	conn *nats.Conn
}

func NewNATSEventBus(url string) (*NATSEventBus, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &NATSEventBus{conn: conn}, nil
}

func (n *NATSEventBus) Publish(ctx context.Context, subject string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}

	logger.DebugContext(ctx, "Publishing event", "subject", subject, "data", string(payload))

	return n.conn.Publish(subject, payload)
}

func (n *NATSEventBus) Subscribe(subject string, handler func(msg *Message)) error {
	_, err := n.conn.Subscribe(subject, func(msg *nats.Msg) {
		handler(&Message{
			Subject:   msg.Subject,
			Data:      msg.Data,
			Timestamp: time.Now(),
		})
	})
	return err
}

func (n *NATSEventBus) QueueSubscribe(subject, queue string, handler func(msg *Message)) error {
	_, err := n.conn.QueueSubscribe(subject, queue, func(msg *nats.Msg) {
		handler(&Message{
			Subject:   msg.Subject,
			Data:      msg.Data,
			Timestamp: time.Now(),
		})
	})
	return err
}

func (n *NATSEventBus) Close() error {
	n.conn.Close()
	return nil
}

// Event subjects
const (
	// Renter onboarding events
	RenterRequested = "renter.requested"
	RenterApproved  = "renter.approved"
	RenterRejected  = "renter.rejected"

	// Order events
	OrderPlaced        = "order.placed"
	OrderStatusChanged = "order.status.changed"

	// Payment events
	PaymentRecorded = "payment.recorded"
)

// Event payloads
type RenterRequestedEvent struct {
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	RequestedAt time.Time `json:"requested_at"`
}

type RenterApprovedEvent struct {
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	RenterCode string    `json:"renter_code"`
	ApprovedAt time.Time `json:"approved_at"`
}

type RenterRejectedEvent struct {
	Email      string    `json:"email"`
	RejectedAt time.Time `json:"rejected_at"`
}

type OrderPlacedEvent struct {
	OrderIDs      []string  `json:"order_ids"`
	CustomerEmail string    `json:"customer_email"`
	PlacedAt      time.Time `json:"placed_at"`
}

type OrderStatusChangedEvent struct {
	OrderID       string    `json:"order_id"`
	CustomerEmail string    `json:"customer_email"`
	Status        string    `json:"status"`
	ChangedAt     time.Time `json:"changed_at"`
}

type PaymentRecordedEvent struct {
	Email         string    `json:"email"`
	TransactionID string    `json:"transaction_id"`
	Gateway       string    `json:"gateway"`
	Status        string    `json:"status"`
	Amount        float64   `json:"amount"`
	RecordedAt    time.Time `json:"recorded_at"`
}
