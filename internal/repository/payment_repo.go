package repository

import (
	"context"

	"github.com/soniabinty/gizmorent-server/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PaymentRepository interface {
	Insert(ctx context.Context, record *domain.PaymentRecord) (*domain.PaymentRecord, error)
	ListByEmail(ctx context.Context, email string) ([]domain.PaymentRecord, error)
	FindByTransactionID(ctx context.Context, tranID string) (*domain.PaymentRecord, error)
	UpdateStatus(ctx context.Context, tranID string, status domain.PaymentStatus) (*domain.PaymentRecord, error)
}

type paymentRepository struct {
	coll *mongo.Collection
}

func NewPaymentRepository(db *mongo.Database) PaymentRepository {
	return &paymentRepository{coll: db.Collection(CollPayments)}
}

func (r *paymentRepository) Insert(ctx context.Context, record *domain.PaymentRecord) (*domain.PaymentRecord, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := r.coll.InsertOne(ctx, record)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ConflictError("Payment already recorded for this transaction")
		}
		return nil, err
	}
	record.ID = res.InsertedID.(primitive.ObjectID)
	return record, nil
}

func (r *paymentRepository) ListByEmail(ctx context.Context, email string) ([]domain.PaymentRecord, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	filter := bson.M{}
	if email != "" {
		filter["email"] = domain.NormalizeEmail(email)
	}

	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var records []domain.PaymentRecord
	if err := cur.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *paymentRepository) FindByTransactionID(ctx context.Context, tranID string) (*domain.PaymentRecord, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var record domain.PaymentRecord
	err := r.coll.FindOne(ctx, bson.M{"transaction_id": tranID}).Decode(&record)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *paymentRepository) UpdateStatus(ctx context.Context, tranID string, status domain.PaymentStatus) (*domain.PaymentRecord, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var record domain.PaymentRecord
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"transaction_id": tranID},
		bson.M{"$set": bson.M{"status": status}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&record)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}
