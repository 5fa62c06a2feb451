package domain

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WishlistItem denormalizes gadget display fields so the client can render
// the list without a second lookup. One entry per (email, gadget).
type WishlistItem struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	GadgetID string             `bson:"gadget_id" json:"gadgetId"`
	Name     string             `bson:"name" json:"name"`
	Image    string             `bson:"image" json:"image"`
	Price    float64            `bson:"price" json:"price"`
	Category string             `bson:"category" json:"category"`
	Email    string             `bson:"email" json:"email"`
	AddedAt  time.Time          `bson:"added_at" json:"added_at"`
}

func (w *WishlistItem) Validate() error {
	if strings.TrimSpace(w.GadgetID) == "" {
		return ValidationError("Gadget id is required")
	}
	if strings.TrimSpace(w.Name) == "" {
		return ValidationError("Gadget name is required")
	}
	if w.Price <= 0 {
		return ValidationError("Gadget price is required")
	}
	if !IsValidEmail(w.Email) {
		return ValidationError("A valid email is required")
	}
	return nil
}

type CartItem struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	GadgetID string             `bson:"gadget_id" json:"gadgetId"`
	Name     string             `bson:"name" json:"name"`
	Image    string             `bson:"image" json:"image"`
	Price    float64            `bson:"price" json:"price"`
	Category string             `bson:"category" json:"category"`
	Email    string             `bson:"email" json:"email"`
	Quantity int                `bson:"quantity" json:"quantity"`
	AddedAt  time.Time          `bson:"added_at" json:"added_at"`
}

func (c *CartItem) Validate() error {
	if strings.TrimSpace(c.GadgetID) == "" {
		return ValidationError("Gadget id is required")
	}
	if strings.TrimSpace(c.Name) == "" {
		return ValidationError("Gadget name is required")
	}
	if c.Price <= 0 {
		return ValidationError("Gadget price is required")
	}
	if !IsValidEmail(c.Email) {
		return ValidationError("A valid email is required")
	}
	if c.Quantity < 0 {
		return ValidationError("Quantity must be a positive number")
	}
	return nil
}

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderApproved  OrderStatus = "approved"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch OrderStatus(s) {
	case OrderPending, OrderApproved, OrderShipped, OrderDelivered, OrderCancelled:
		return OrderStatus(s), true
	default:
		return "", false
	}
}

type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	ProductID     string             `bson:"product_id" json:"productId"`
	Name          string             `bson:"name" json:"name"`
	RenterEmail   string             `bson:"renter_email" json:"renter_email"`
	CustomerEmail string             `bson:"customer_email" json:"email"`
	Quantity      int                `bson:"quantity" json:"quantity"`
	Amount        float64            `bson:"amount" json:"amount"`
	Status        OrderStatus        `bson:"status" json:"status"`
	TrackingCode  string             `bson:"tracking_code" json:"tracking_code"`
	Date          time.Time          `bson:"date" json:"date"`
}

// NewTrackingCode mints the shipment reference shown to customers.
// Not a key; no uniqueness guarantee.
func NewTrackingCode() string {
	return "TRK-" + randomUpper(8)
}

func (o *Order) Validate() error {
	if strings.TrimSpace(o.ProductID) == "" {
		return ValidationError("Order product id is required")
	}
	if !IsValidEmail(o.CustomerEmail) {
		return ValidationError("A valid customer email is required")
	}
	if o.Amount <= 0 {
		return ValidationError("Order amount must be a positive number")
	}
	return nil
}

type PaymentGateway string

const (
	GatewayStripe     PaymentGateway = "stripe"
	GatewaySSLCommerz PaymentGateway = "sslcommerz"
)

type PaymentStatus string

const (
	PaymentPending    PaymentStatus = "pending"
	PaymentSuccessful PaymentStatus = "successful"
	PaymentFailed     PaymentStatus = "failed"
)

type PaymentRecord struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Email         string             `bson:"email" json:"email"`
	Amount        float64            `bson:"amount" json:"amount"`
	TransactionID string             `bson:"transaction_id" json:"transactionId"`
	Gateway       PaymentGateway     `bson:"gateway" json:"gateway"`
	Status        PaymentStatus      `bson:"status" json:"status"`
	Date          time.Time          `bson:"date" json:"date"`
}
