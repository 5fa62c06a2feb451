package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdminTarget marks a notification broadcast to every admin rather than a
// single user email.
const AdminTarget = "role:admin"

type NotificationType string

const (
	NotifyRenterRequest NotificationType = "renter_request"
	NotifyRenterResult  NotificationType = "renter_result"
	NotifyOrderStatus   NotificationType = "order_status"
	NotifyPayment       NotificationType = "payment"
	NotifyGeneral       NotificationType = "general"
)

type Notification struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Target    string             `bson:"target" json:"target"`
	Message   string             `bson:"message" json:"message"`
	Type      NotificationType   `bson:"type" json:"type"`
	Read      bool               `bson:"read" json:"read"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

func (n *Notification) Validate() error {
	if n.Target == "" {
		return ValidationError("Notification target is required")
	}
	if n.Message == "" {
		return ValidationError("Notification message is required")
	}
	if n.Type == "" {
		n.Type = NotifyGeneral
	}
	return nil
}
