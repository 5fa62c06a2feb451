package repository

import (
	"context"

	"github.com/soniabinty/gizmorent-server/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type OrderRepository interface {
	InsertBatch(ctx context.Context, orders []domain.Order) ([]domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
	ListByCustomer(ctx context.Context, email string) ([]domain.Order, error)
	ListByRenter(ctx context.Context, email string) ([]domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error)
}

type orderRepository struct {
	coll *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) OrderRepository {
	return &orderRepository{coll: db.Collection(CollOrders)}
}

func (r *orderRepository) InsertBatch(ctx context.Context, orders []domain.Order) ([]domain.Order, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	docs := make([]interface{}, len(orders))
	for i := range orders {
		docs[i] = orders[i]
	}

	res, err := r.coll.InsertMany(ctx, docs)
	if err != nil {
		return nil, err
	}
	for i, id := range res.InsertedIDs {
		orders[i].ID = id.(primitive.ObjectID)
	}
	return orders, nil
}

func (r *orderRepository) List(ctx context.Context) ([]domain.Order, error) {
	return r.find(ctx, bson.M{})
}

func (r *orderRepository) ListByCustomer(ctx context.Context, email string) ([]domain.Order, error) {
	return r.find(ctx, bson.M{"customer_email": domain.NormalizeEmail(email)})
}

func (r *orderRepository) ListByRenter(ctx context.Context, email string) ([]domain.Order, error) {
	return r.find(ctx, bson.M{"renter_email": domain.NormalizeEmail(email)})
}

func (r *orderRepository) find(ctx context.Context, filter bson.M) ([]domain.Order, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var orders []domain.Order
	if err := cur.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ValidationError("Invalid order ID")
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var o domain.Order
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&o)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ValidationError("Invalid order ID")
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var o domain.Order
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"status": status}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&o)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}
