package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"linkconnect/internal/models"
)

// A single catalog document is kept per deployment, addressed by a fixed key.
const catalogKey = "division_catalog"

type CatalogRepository struct {
	col *mongo.Collection
}

func NewCatalogRepository(db *mongo.Database) *CatalogRepository {
	return &CatalogRepository{col: db.Collection("division_catalogs")}
}

func (r *CatalogRepository) Get(ctx context.Context) (*models.DivisionCatalog, error) {
	var c models.DivisionCatalog
	if err := r.col.FindOne(ctx, bson.M{"key": catalogKey}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *CatalogRepository) Save(ctx context.Context, colleges []models.College) (*models.DivisionCatalog, error) {
	now := time.Now().UTC()
	var c models.DivisionCatalog
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"key": catalogKey},
		bson.M{"$set": bson.M{"colleges": colleges, "updated_at": now}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&c)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
