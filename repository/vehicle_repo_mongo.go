package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"freightflow/models"
)

type MongoVehicleRepo struct {
	coll *mongo.Collection
}

func NewMongoVehicleRepo(db *mongo.Database) *MongoVehicleRepo {
	return &MongoVehicleRepo{coll: db.Collection("vehicle")}
}

// EnsureIndexes creates the unique registration number index.
func (r *MongoVehicleRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "registration_number", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "supplier_id", Value: 1}}},
	})
	return err
}

func (r *MongoVehicleRepo) CreateVehicle(ctx context.Context, v *models.Vehicle) error {
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now().UTC()
	}
	return mongoInsert(ctx, r.coll, v)
}

func (r *MongoVehicleRepo) UpdateVehicle(ctx context.Context, v *models.Vehicle) error {
	v.UpdatedAt = nowUTC()
	return mongoReplace(ctx, r.coll, v.ID, v)
}

func (r *MongoVehicleRepo) GetVehicle(ctx context.Context, id string) (*models.Vehicle, error) {
	return mongoFindOne[models.Vehicle](ctx, r.coll, bson.M{"_id": id})
}

func (r *MongoVehicleRepo) ListVehicles(ctx context.Context) ([]*models.Vehicle, error) {
	return mongoFind[models.Vehicle](ctx, r.coll, bson.M{})
}

func (r *MongoVehicleRepo) ListVehiclesBySupplier(ctx context.Context, supplierID string) ([]*models.Vehicle, error) {
	return mongoFind[models.Vehicle](ctx, r.coll, bson.M{"supplier_id": supplierID})
}

func (r *MongoVehicleRepo) DeleteVehicle(ctx context.Context, id string) error {
	return mongoDelete(ctx, r.coll, id)
}
