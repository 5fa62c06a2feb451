// Package repository holds the collection-oriented persistence adapters.
// Each logical collection gets an interface plus a MongoDB-backed
// implementation; services only see the interfaces.
package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Logical collection names.
const (
	CollGadgets        = "gadgets"
	CollUsers          = "users"
	CollWishlist       = "wishlisted"
	CollCarts          = "carts"
	CollOrders         = "orders"
	CollPayments       = "payments"
	CollRenterRequests = "renter_requests"
	CollRenterRecords  = "renter_records"
	CollReviews        = "reviews"
	CollNotifications  = "notifications"
)

const opTimeout = 3 * time.Second

func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, opTimeout)
}

// EnsureIndexes creates the unique indexes the workflows rely on: user
// emails, one pending renter request per email, renter code uniqueness,
// gadget serial codes, one wishlist entry per (email, gadget), and payment
// transaction ids.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)

	indexes := map[string]mongo.IndexModel{
		CollUsers:          {Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		CollRenterRequests: {Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		CollRenterRecords:  {Keys: bson.D{{Key: "renter_code", Value: 1}}, Options: unique},
		CollGadgets:        {Keys: bson.D{{Key: "serial_code", Value: 1}}, Options: unique},
		CollWishlist:       {Keys: bson.D{{Key: "email", Value: 1}, {Key: "gadget_id", Value: 1}}, Options: unique},
		CollPayments:       {Keys: bson.D{{Key: "transaction_id", Value: 1}}, Options: unique},
	}

	for coll, model := range indexes {
		if _, err := db.Collection(coll).Indexes().CreateOne(ctx, model); err != nil {
			return err
		}
	}
	return nil
}
