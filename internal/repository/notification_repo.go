package repository

import (
	"context"

	"github.com/soniabinty/gizmorent-server/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type NotificationRepository interface {
	Insert(ctx context.Context, n *domain.Notification) (*domain.Notification, error)
	ListForTarget(ctx context.Context, email string, includeAdmin bool) ([]domain.Notification, error)
	MarkRead(ctx context.Context, id string) (bool, error)
	MarkAllRead(ctx context.Context, email string, includeAdmin bool) (int64, error)
	Delete(ctx context.Context, id string) (bool, error)
	DeleteByTarget(ctx context.Context, target string) (int64, error)
}

type notificationRepository struct {
	coll *mongo.Collection
}

func NewNotificationRepository(db *mongo.Database) NotificationRepository {
	return &notificationRepository{coll: db.Collection(CollNotifications)}
}

func (r *notificationRepository) Insert(ctx context.Context, n *domain.Notification) (*domain.Notification, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := r.coll.InsertOne(ctx, n)
	if err != nil {
		return nil, err
	}
	n.ID = res.InsertedID.(primitive.ObjectID)
	return n, nil
}

// ListForTarget returns notifications addressed to the email; admins also
// see the role-broadcast rows.
func (r *notificationRepository) ListForTarget(ctx context.Context, email string, includeAdmin bool) ([]domain.Notification, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	targets := bson.A{domain.NormalizeEmail(email)}
	if includeAdmin {
		targets = append(targets, domain.AdminTarget)
	}

	cur, err := r.coll.Find(ctx,
		bson.M{"target": bson.M{"$in": targets}},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var notifications []domain.Notification
	if err := cur.All(ctx, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, domain.ValidationError("Invalid notification ID")
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"read": true}})
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

// MarkAllRead covers the same target set the read path returns, so an
// admin's read-all also clears the role-broadcast rows.
func (r *notificationRepository) MarkAllRead(ctx context.Context, email string, includeAdmin bool) (int64, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	targets := bson.A{domain.NormalizeEmail(email)}
	if includeAdmin {
		targets = append(targets, domain.AdminTarget)
	}

	res, err := r.coll.UpdateMany(ctx,
		bson.M{"target": bson.M{"$in": targets}, "read": false},
		bson.M{"$set": bson.M{"read": true}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (r *notificationRepository) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, domain.ValidationError("Invalid notification ID")
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (r *notificationRepository) DeleteByTarget(ctx context.Context, target string) (int64, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := r.coll.DeleteMany(ctx, bson.M{"target": target})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
