package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"freightflow/models"
)

// profileID is the _id of the single profile document.
const profileID int64 = 1

type MongoProfileRepo struct {
	coll *mongo.Collection
}

func NewMongoProfileRepo(db *mongo.Database) *MongoProfileRepo {
	return &MongoProfileRepo{coll: db.Collection("company_profile")}
}

func (r *MongoProfileRepo) SaveProfile(ctx context.Context, p *models.CompanyProfile) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	p.ID = profileID
	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": profileID}, p, options.Replace().SetUpsert(true))
	return err
}

func (r *MongoProfileRepo) GetProfile(ctx context.Context) (*models.CompanyProfile, error) {
	return mongoFindOne[models.CompanyProfile](ctx, r.coll, bson.M{"_id": profileID})
}
