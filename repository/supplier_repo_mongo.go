package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"freightflow/models"
)

type MongoSupplierRepo struct {
	coll *mongo.Collection
}

func NewMongoSupplierRepo(db *mongo.Database) *MongoSupplierRepo {
	return &MongoSupplierRepo{coll: db.Collection("supplier")}
}

func (r *MongoSupplierRepo) CreateSupplier(ctx context.Context, s *models.Supplier) error {
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	return mongoInsert(ctx, r.coll, s)
}

func (r *MongoSupplierRepo) UpdateSupplier(ctx context.Context, s *models.Supplier) error {
	s.UpdatedAt = nowUTC()
	return mongoReplace(ctx, r.coll, s.ID, s)
}

func (r *MongoSupplierRepo) GetSupplier(ctx context.Context, id string) (*models.Supplier, error) {
	return mongoFindOne[models.Supplier](ctx, r.coll, bson.M{"_id": id})
}

func (r *MongoSupplierRepo) ListSuppliers(ctx context.Context) ([]*models.Supplier, error) {
	return mongoFind[models.Supplier](ctx, r.coll, bson.M{})
}

func (r *MongoSupplierRepo) DeleteSupplier(ctx context.Context, id string) error {
	return mongoDelete(ctx, r.coll, id)
}
