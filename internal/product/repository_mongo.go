package product

import (
	"context"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoRepository struct {
	col *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{col: db.Collection("products")}
}

// EnsureIndexes creates the unique slug index. Called once at startup.
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "slug", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *MongoRepository) Create(ctx context.Context, p Product) (Product, error) {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	_, err := r.col.InsertOne(ctx, p)
	if mongo.IsDuplicateKeyError(err) {
		return Product{}, ErrSlugExists
	}
	if err != nil {
		return Product{}, err
	}
	return p, nil
}

func (r *MongoRepository) GetBySlug(ctx context.Context, slug string) (Product, error) {
	var p Product
	err := r.col.FindOne(ctx, bson.M{"slug": slug}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return Product{}, ErrNotFound
	}
	if err != nil {
		return Product{}, err
	}
	return p, nil
}

func (r *MongoRepository) GetByID(ctx context.Context, id string) (Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return Product{}, ErrNotFound
	}

	var p Product
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return Product{}, ErrNotFound
	}
	if err != nil {
		return Product{}, err
	}
	return p, nil
}

func (r *MongoRepository) List(ctx context.Context, q ListQuery) ([]Product, error) {
	filter := bson.M{}
	if q.Category != "" {
		filter["category"] = q.Category
	}
	if q.Search != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(q.Search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"name": re},
			bson.M{"description": re},
			bson.M{"category": re},
		}
	}

	var sortSpec bson.D
	switch q.Sort {
	case SortPriceLow:
		sortSpec = bson.D{{Key: "price", Value: 1}}
	case SortPriceHigh:
		sortSpec = bson.D{{Key: "price", Value: -1}}
	default:
		sortSpec = bson.D{{Key: "date", Value: -1}}
	}

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(sortSpec))
	if err != nil {
		return nil, err
	}

	products := []Product{}
	if err := cur.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *MongoRepository) Update(ctx context.Context, p Product) (Product, error) {
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if mongo.IsDuplicateKeyError(err) {
		return Product{}, ErrSlugExists
	}
	if err != nil {
		return Product{}, err
	}
	if res.MatchedCount == 0 {
		return Product{}, ErrNotFound
	}
	return p, nil
}

func (r *MongoRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepository) Categories(ctx context.Context) ([]string, error) {
	values, err := r.col.Distinct(ctx, "category", bson.M{})
	if err != nil {
		return nil, err
	}

	categories := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			categories = append(categories, s)
		}
	}
	return categories, nil
}

func (r *MongoRepository) Bestsellers(ctx context.Context, limit int) ([]Product, error) {
	cur, err := r.col.Find(ctx, bson.M{"bestseller": true}, options.Find().SetLimit(int64(limit)))
	if err != nil {
		return nil, err
	}

	products := []Product{}
	if err := cur.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}
