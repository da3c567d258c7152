package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"freightflow/models"
)

type MongoClientRepo struct {
	coll *mongo.Collection
}

func NewMongoClientRepo(db *mongo.Database) *MongoClientRepo {
	return &MongoClientRepo{coll: db.Collection("client")}
}

func (r *MongoClientRepo) CreateClient(ctx context.Context, c *models.Client) error {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	return mongoInsert(ctx, r.coll, c)
}

func (r *MongoClientRepo) UpdateClient(ctx context.Context, c *models.Client) error {
	c.UpdatedAt = nowUTC()
	return mongoReplace(ctx, r.coll, c.ID, c)
}

func (r *MongoClientRepo) GetClient(ctx context.Context, id string) (*models.Client, error) {
	return mongoFindOne[models.Client](ctx, r.coll, bson.M{"_id": id})
}

func (r *MongoClientRepo) ListClients(ctx context.Context) ([]*models.Client, error) {
	return mongoFind[models.Client](ctx, r.coll, bson.M{})
}

func (r *MongoClientRepo) DeleteClient(ctx context.Context, id string) error {
	return mongoDelete(ctx, r.coll, id)
}
