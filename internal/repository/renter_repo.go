package repository

import (
	"context"
	"time"

	"github.com/soniabinty/gizmorent-server/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type RenterRepository interface {
	CreateRequest(ctx context.Context, req *domain.RenterRequest) (*domain.RenterRequest, error)
	ListRequests(ctx context.Context) ([]domain.RenterRequest, error)
	FindRequestByEmail(ctx context.Context, email string) (*domain.RenterRequest, error)
	DeleteRequest(ctx context.Context, email string) (bool, error)
	Approve(ctx context.Context, email, renterCode string) error
	ListRecords(ctx context.Context) ([]domain.RenterRecord, error)
}

type renterRepository struct {
	db *mongo.Database
}

func NewRenterRepository(db *mongo.Database) RenterRepository {
	return &renterRepository{db: db}
}

// CreateRequest relies on the unique index on email: a concurrent duplicate
// submission surfaces as a duplicate-key error, not a lost race.
func (r *renterRepository) CreateRequest(ctx context.Context, req *domain.RenterRequest) (*domain.RenterRequest, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := r.db.Collection(CollRenterRequests).InsertOne(ctx, req)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ConflictError("You have already submitted a renter request")
		}
		return nil, err
	}
	req.ID = res.InsertedID.(primitive.ObjectID)
	return req, nil
}

func (r *renterRepository) ListRequests(ctx context.Context) ([]domain.RenterRequest, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	cur, err := r.db.Collection(CollRenterRequests).Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var requests []domain.RenterRequest
	if err := cur.All(ctx, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *renterRepository) FindRequestByEmail(ctx context.Context, email string) (*domain.RenterRequest, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var req domain.RenterRequest
	err := r.db.Collection(CollRenterRequests).
		FindOne(ctx, bson.M{"email": domain.NormalizeEmail(email)}).
		Decode(&req)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *renterRepository) DeleteRequest(ctx context.Context, email string) (bool, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := r.db.Collection(CollRenterRequests).
		DeleteOne(ctx, bson.M{"email": domain.NormalizeEmail(email)})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// Approve applies the three approval writes in a single transaction: the
// role/code mutation on the user, the audit record insert, and the pending
// request delete. Readers never observe a partially approved renter. A
// duplicate renter code aborts the transaction with ErrConflict so the
// caller can regenerate.
func (r *renterRepository) Approve(ctx context.Context, email, renterCode string) error {
	email = domain.NormalizeEmail(email)

	session, err := r.db.Client().StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		res, err := r.db.Collection(CollUsers).UpdateOne(sc,
			bson.M{"email": email},
			bson.M{"$set": bson.M{"role": domain.RoleRenter, "renter_code": renterCode}},
		)
		if err != nil {
			return nil, err
		}
		if res.MatchedCount == 0 {
			return nil, domain.NotFoundError("User not found")
		}

		record := domain.RenterRecord{
			Email:      email,
			RenterCode: renterCode,
			CreatedAt:  time.Now(),
		}
		if _, err := r.db.Collection(CollRenterRecords).InsertOne(sc, record); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return nil, domain.ConflictError("Renter code already issued")
			}
			return nil, err
		}

		if _, err := r.db.Collection(CollRenterRequests).DeleteOne(sc, bson.M{"email": email}); err != nil {
			return nil, err
		}

		return nil, nil
	})
	return err
}

func (r *renterRepository) ListRecords(ctx context.Context) ([]domain.RenterRecord, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	cur, err := r.db.Collection(CollRenterRecords).Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var records []domain.RenterRecord
	if err := cur.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}
