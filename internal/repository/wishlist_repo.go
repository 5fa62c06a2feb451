package repository

import (
	"context"

	"github.com/soniabinty/gizmorent-server/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type WishlistRepository interface {
	Insert(ctx context.Context, item *domain.WishlistItem) (*domain.WishlistItem, error)
	ListByEmail(ctx context.Context, email string) ([]domain.WishlistItem, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type wishlistRepository struct {
	coll *mongo.Collection
}

func NewWishlistRepository(db *mongo.Database) WishlistRepository {
	return &wishlistRepository{coll: db.Collection(CollWishlist)}
}

// Insert enforces the one-entry-per-(email, gadget) invariant through the
// compound unique index rather than a pre-insert existence check.
func (r *wishlistRepository) Insert(ctx context.Context, item *domain.WishlistItem) (*domain.WishlistItem, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := r.coll.InsertOne(ctx, item)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ConflictError("Gadget already in wishlist")
		}
		return nil, err
	}
	item.ID = res.InsertedID.(primitive.ObjectID)
	return item, nil
}

func (r *wishlistRepository) ListByEmail(ctx context.Context, email string) ([]domain.WishlistItem, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	filter := bson.M{}
	if email != "" {
		filter["email"] = domain.NormalizeEmail(email)
	}

	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var items []domain.WishlistItem
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *wishlistRepository) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, domain.ValidationError("Invalid wishlist item ID")
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}
