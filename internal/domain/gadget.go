package domain

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type GadgetStatus string

const (
	GadgetAvailable GadgetStatus = "available"
	GadgetRented    GadgetStatus = "rented"
	GadgetHidden    GadgetStatus = "hidden"
)

type Gadget struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name        string             `bson:"name" json:"name"`
	Image       string             `bson:"image" json:"image"`
	Category    string             `bson:"category" json:"category"`
	Price       float64            `bson:"price" json:"price"`
	Description string             `bson:"description" json:"description"`
	RenterEmail string             `bson:"renter_email" json:"renter_email"`
	SerialCode  string             `bson:"serial_code" json:"serialCode"`
	Status      GadgetStatus       `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}

func (g *Gadget) Validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return ValidationError("Gadget name is required")
	}
	if strings.TrimSpace(g.Category) == "" {
		return ValidationError("Gadget category is required")
	}
	if g.Price <= 0 {
		return ValidationError("Gadget price must be a positive number")
	}
	return nil
}

type GadgetPatch struct {
	Name        *string       `json:"name,omitempty"`
	Image       *string       `json:"image,omitempty"`
	Category    *string       `json:"category,omitempty"`
	Price       *float64      `json:"price,omitempty"`
	Description *string       `json:"description,omitempty"`
	Status      *GadgetStatus `json:"status,omitempty"`
}

const serialAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewSerialCode mints a human-readable gadget identifier of the form
// GR-<unix-seconds>-<4 random chars>. Uniqueness is enforced by the store;
// callers regenerate on conflict.
func NewSerialCode() string {
	return fmt.Sprintf("GR-%d-%s", time.Now().Unix(), randomUpper(4))
}

func randomUpper(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(serialAlphabet))))
		if err != nil {
			// crypto/rand only fails when the platform source is broken
			idx = big.NewInt(int64(i % len(serialAlphabet)))
		}
		b.WriteByte(serialAlphabet[idx.Int64()])
	}
	return b.String()
}
