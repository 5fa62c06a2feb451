package domain

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review covers both product reviews (ProductID set) and renter reviews
// (OwnerEmail set); the two live in the same collection.
type Review struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	ProductID     string             `bson:"product_id,omitempty" json:"productId,omitempty"`
	OwnerEmail    string             `bson:"owner_email,omitempty" json:"ownerEmail,omitempty"`
	ReviewerEmail string             `bson:"reviewer_email" json:"reviewerEmail"`
	ReviewerName  string             `bson:"reviewer_name" json:"reviewerName"`
	Rating        int                `bson:"rating" json:"rating"`
	Comment       string             `bson:"comment" json:"comment"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
}

func (r *Review) Validate() error {
	if strings.TrimSpace(r.ProductID) == "" && strings.TrimSpace(r.OwnerEmail) == "" {
		return ValidationError("Review must reference a product or a renter")
	}
	if !IsValidEmail(r.ReviewerEmail) {
		return ValidationError("A valid reviewer email is required")
	}
	if r.Rating < 1 || r.Rating > 5 {
		return ValidationError("Rating must be between 1 and 5")
	}
	return nil
}
