package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RenterRequest is the pending application for the renter role. At most one
// exists per email; approval and rejection both delete it.
type RenterRequest struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Email       string             `bson:"email" json:"email"`
	Name        string             `bson:"name" json:"name"`
	RequestedAt time.Time          `bson:"requested_at" json:"requested_at"`
}

// RenterRecord is the append-only audit entry written at approval time.
type RenterRecord struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Email      string             `bson:"email" json:"email"`
	RenterCode string             `bson:"renter_code" json:"renter_code"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
}
