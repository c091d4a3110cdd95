package order

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoRepository struct {
	col *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{col: db.Collection("orders")}
}

func (r *MongoRepository) Create(ctx context.Context, o Order) (Order, error) {
	if o.ID.IsZero() {
		o.ID = primitive.NewObjectID()
	}
	if _, err := r.col.InsertOne(ctx, o); err != nil {
		return Order{}, err
	}
	return o, nil
}

func (r *MongoRepository) GetByID(ctx context.Context, id string) (Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return Order{}, ErrNotFound
	}

	var o Order
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&o)
	if err == mongo.ErrNoDocuments {
		return Order{}, ErrNotFound
	}
	if err != nil {
		return Order{}, err
	}
	return o, nil
}

func (r *MongoRepository) ListAll(ctx context.Context) ([]Order, error) {
	return r.find(ctx, bson.M{})
}

func (r *MongoRepository) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	return r.find(ctx, bson.M{"userId": userID})
}

func (r *MongoRepository) ListGuest(ctx context.Context, email, phone string) ([]Order, error) {
	return r.find(ctx, bson.M{
		"orderType":       TypeGuest,
		"guestInfo.email": email,
		"guestInfo.phone": phone,
	})
}

func (r *MongoRepository) find(ctx context.Context, filter bson.M) ([]Order, error) {
	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, err
	}

	orders := []Order{}
	if err := cur.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *MongoRepository) GetByAddressEmail(ctx context.Context, email string) (Order, error) {
	var o Order
	err := r.col.FindOne(ctx, bson.M{"address.email": email}).Decode(&o)
	if err == mongo.ErrNoDocuments {
		return Order{}, ErrNotFound
	}
	if err != nil {
		return Order{}, err
	}
	return o, nil
}

func (r *MongoRepository) SetPayment(ctx context.Context, id string, paid bool) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"payment": paid}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepository) Update(ctx context.Context, o Order) (Order, error) {
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": o.ID}, o)
	if err != nil {
		return Order{}, err
	}
	if res.MatchedCount == 0 {
		return Order{}, ErrNotFound
	}
	return o, nil
}
