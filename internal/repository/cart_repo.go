package repository

import (
	"context"

	"github.com/soniabinty/gizmorent-server/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CartRepository interface {
	Add(ctx context.Context, item *domain.CartItem) (*domain.CartItem, error)
	ListByEmail(ctx context.Context, email string) ([]domain.CartItem, error)
	UpdateQuantity(ctx context.Context, id string, quantity int) (*domain.CartItem, error)
	Delete(ctx context.Context, id string) (bool, error)
	ClearByEmail(ctx context.Context, email string) (int64, error)
}

type cartRepository struct {
	coll *mongo.Collection
}

func NewCartRepository(db *mongo.Database) CartRepository {
	return &cartRepository{coll: db.Collection(CollCarts)}
}

// Add upserts on (email, gadget): adding a gadget already in the cart
// increments its quantity instead of creating a second line.
func (r *cartRepository) Add(ctx context.Context, item *domain.CartItem) (*domain.CartItem, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var out domain.CartItem
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"email": item.Email, "gadget_id": item.GadgetID},
		bson.M{
			"$inc": bson.M{"quantity": item.Quantity},
			"$setOnInsert": bson.M{
				"name":     item.Name,
				"image":    item.Image,
				"price":    item.Price,
				"category": item.Category,
				"added_at": item.AddedAt,
			},
		},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *cartRepository) ListByEmail(ctx context.Context, email string) ([]domain.CartItem, error) {
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

	var items []domain.CartItem
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *cartRepository) UpdateQuantity(ctx context.Context, id string, quantity int) (*domain.CartItem, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ValidationError("Invalid cart item ID")
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var out domain.CartItem
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"quantity": quantity}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&out)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *cartRepository) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, domain.ValidationError("Invalid cart item ID")
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (r *cartRepository) ClearByEmail(ctx context.Context, email string) (int64, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := r.coll.DeleteMany(ctx, bson.M{"email": domain.NormalizeEmail(email)})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
