package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"freightflow/models"
)

// MongoTripRepo stores each trip as one document with its materials and
// documents embedded.
type MongoTripRepo struct {
	coll *mongo.Collection
}

func NewMongoTripRepo(db *mongo.Database) *MongoTripRepo {
	return &MongoTripRepo{coll: db.Collection("trip")}
}

func (r *MongoTripRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "order_number", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "supplier_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	})
	return err
}

func (r *MongoTripRepo) CreateTrip(ctx context.Context, t *models.Trip) error {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	return mongoInsert(ctx, r.coll, t)
}

func (r *MongoTripRepo) UpdateTrip(ctx context.Context, t *models.Trip) error {
	t.UpdatedAt = nowUTC()
	return mongoReplace(ctx, r.coll, t.ID, t)
}

func (r *MongoTripRepo) GetTrip(ctx context.Context, id string) (*models.Trip, error) {
	return mongoFindOne[models.Trip](ctx, r.coll, bson.M{"_id": id})
}

func (r *MongoTripRepo) GetTripByOrderNumber(ctx context.Context, orderNumber string) (*models.Trip, error) {
	return mongoFindOne[models.Trip](ctx, r.coll, bson.M{"order_number": orderNumber})
}

func (r *MongoTripRepo) ListTrips(ctx context.Context) ([]*models.Trip, error) {
	return mongoFind[models.Trip](ctx, r.coll, bson.M{})
}

func (r *MongoTripRepo) ListTripsBySupplier(ctx context.Context, supplierID string) ([]*models.Trip, error) {
	return mongoFind[models.Trip](ctx, r.coll, bson.M{"supplier_id": supplierID})
}

func (r *MongoTripRepo) UpdateLRCopy(ctx context.Context, id, url string, createdAt time.Time) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"lr_copy_url": url, "lr_copy_created_at": createdAt}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoTripRepo) DeleteTrip(ctx context.Context, id string) error {
	return mongoDelete(ctx, r.coll, id)
}
