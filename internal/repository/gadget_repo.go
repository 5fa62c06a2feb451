package repository

import (
	"context"

	"github.com/soniabinty/gizmorent-server/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type GadgetRepository interface {
	Create(ctx context.Context, gadget *domain.Gadget) (*domain.Gadget, error)
	List(ctx context.Context) ([]domain.Gadget, error)
	Search(ctx context.Context, q *domain.GadgetQuery) ([]domain.Gadget, int64, error)
	GetByID(ctx context.Context, id string) (*domain.Gadget, error)
	GetBySerialCode(ctx context.Context, serialCode string) (*domain.Gadget, error)
	Update(ctx context.Context, id string, patch domain.GadgetPatch) (*domain.Gadget, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type gadgetRepository struct {
	coll *mongo.Collection
}

func NewGadgetRepository(db *mongo.Database) GadgetRepository {
	return &gadgetRepository{coll: db.Collection(CollGadgets)}
}

func (r *gadgetRepository) Create(ctx context.Context, gadget *domain.Gadget) (*domain.Gadget, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := r.coll.InsertOne(ctx, gadget)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ConflictError("Serial code already assigned")
		}
		return nil, err
	}
	gadget.ID = res.InsertedID.(primitive.ObjectID)
	return gadget, nil
}

func (r *gadgetRepository) List(ctx context.Context) ([]domain.Gadget, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var gadgets []domain.Gadget
	if err := cur.All(ctx, &gadgets); err != nil {
		return nil, err
	}
	return gadgets, nil
}

// SearchFilter translates a normalized gadget query into the Mongo filter
// document. Exported for the query-engine tests.
func SearchFilter(q *domain.GadgetQuery) bson.M {
	filter := bson.M{}

	if q.Category != "" {
		filter["category"] = q.Category
	}

	if q.Text != "" {
		regex := bson.M{"$regex": q.Text, "$options": "i"}
		filter["$or"] = bson.A{
			bson.M{"name": regex},
			bson.M{"category": regex},
		}
	}

	if q.MinPrice != nil || q.MaxPrice != nil {
		price := bson.M{}
		if q.MinPrice != nil {
			price["$gte"] = *q.MinPrice
		}
		if q.MaxPrice != nil {
			price["$lte"] = *q.MaxPrice
		}
		filter["price"] = price
	}

	return filter
}

func searchSort(q *domain.GadgetQuery) bson.D {
	switch q.Sort {
	case domain.SortPriceAsc:
		return bson.D{{Key: "price", Value: 1}}
	case domain.SortPriceDesc:
		return bson.D{{Key: "price", Value: -1}}
	default:
		return nil
	}
}

func (r *gadgetRepository) Search(ctx context.Context, q *domain.GadgetQuery) ([]domain.Gadget, int64, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	filter := SearchFilter(q)

	opts := options.Find().
		SetSkip(int64(q.Skip())).
		SetLimit(int64(q.Limit))
	if sort := searchSort(q); sort != nil {
		opts.SetSort(sort)
	}

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var gadgets []domain.Gadget
	if err := cur.All(ctx, &gadgets); err != nil {
		return nil, 0, err
	}

	// Second pass under the same filter, without pagination, for the page
	// count.
	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return gadgets, total, nil
}

func (r *gadgetRepository) GetByID(ctx context.Context, id string) (*domain.Gadget, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ValidationError("Invalid gadget ID")
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var g domain.Gadget
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&g)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *gadgetRepository) GetBySerialCode(ctx context.Context, serialCode string) (*domain.Gadget, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var g domain.Gadget
	err := r.coll.FindOne(ctx, bson.M{"serial_code": serialCode}).Decode(&g)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *gadgetRepository) Update(ctx context.Context, id string, patch domain.GadgetPatch) (*domain.Gadget, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ValidationError("Invalid gadget ID")
	}

	set := bson.M{}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Image != nil {
		set["image"] = *patch.Image
	}
	if patch.Category != nil {
		set["category"] = *patch.Category
	}
	if patch.Price != nil {
		set["price"] = *patch.Price
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Status != nil {
		set["status"] = *patch.Status
	}
	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var g domain.Gadget
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&g)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *gadgetRepository) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, domain.ValidationError("Invalid gadget ID")
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}
