package repository

import (
	"context"

	"github.com/soniabinty/gizmorent-server/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	UpdateProfile(ctx context.Context, email string, name, photo *string) (*domain.User, error)
	UpdatePasswordHash(ctx context.Context, email, passwordHash string) error
	RecordLoginFailure(ctx context.Context, email string, maxFails int) (*domain.User, error)
	ResetLoginFailures(ctx context.Context, email string) error
}

type userRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) UserRepository {
	return &userRepository{coll: db.Collection(CollUsers)}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := r.coll.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ConflictError("User with this email already exists")
		}
		return nil, err
	}
	user.ID = res.InsertedID.(primitive.ObjectID)
	return user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var u domain.User
	err := r.coll.FindOne(ctx, bson.M{"email": domain.NormalizeEmail(email)}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []domain.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, email string, name, photo *string) (*domain.User, error) {
	set := bson.M{}
	if name != nil {
		set["name"] = *name
	}
	if photo != nil {
		set["photo"] = *photo
	}
	if len(set) == 0 {
		return r.FindByEmail(ctx, email)
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var u domain.User
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"email": domain.NormalizeEmail(email)},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) UpdatePasswordHash(ctx context.Context, email, passwordHash string) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"email": domain.NormalizeEmail(email)},
		bson.M{"$set": bson.M{"password_hash": passwordHash}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.NotFoundError("User not found")
	}
	return nil
}

// RecordLoginFailure increments the failure counter and flips the lock flag
// in one atomic pipeline update, so two concurrent mismatches cannot lose a
// count. Returns the updated user.
func (r *userRepository) RecordLoginFailure(ctx context.Context, email string, maxFails int) (*domain.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	pipeline := bson.A{
		bson.M{"$set": bson.M{
			"failed_logins": bson.M{"$add": bson.A{"$failed_logins", 1}},
			"locked": bson.M{"$or": bson.A{
				"$locked",
				bson.M{"$gte": bson.A{
					bson.M{"$add": bson.A{"$failed_logins", 1}},
					maxFails,
				}},
			}},
		}},
	}

	var u domain.User
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"email": domain.NormalizeEmail(email)},
		pipeline,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) ResetLoginFailures(ctx context.Context, email string) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	_, err := r.coll.UpdateOne(ctx,
		bson.M{"email": domain.NormalizeEmail(email)},
		bson.M{"$set": bson.M{"failed_logins": 0, "locked": false}},
	)
	return err
}
