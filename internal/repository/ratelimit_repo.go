package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"linkconnect/internal/models"
)

const rateLimitKey = "rate_limit"

type RateLimitRepository struct {
	col *mongo.Collection
}

func NewRateLimitRepository(db *mongo.Database) *RateLimitRepository {
	return &RateLimitRepository{col: db.Collection("settings")}
}

func (r *RateLimitRepository) Load(ctx context.Context) (*models.RateLimitSettings, error) {
	var s models.RateLimitSettings
	if err := r.col.FindOne(ctx, bson.M{"key": rateLimitKey}).Decode(&s); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *RateLimitRepository) Save(ctx context.Context, s models.RateLimitSettings) error {
	set := bson.M{
		"window_ms":  s.WindowMs,
		"max":        s.Max,
		"updated_at": s.UpdatedAt,
	}
	if s.UpdatedBy != nil {
		set["updated_by"] = *s.UpdatedBy
	}
	_, err := r.col.UpdateOne(ctx,
		bson.M{"key": rateLimitKey},
		bson.M{"$set": set},
		options.UpdateOne().SetUpsert(true),
	)
	return err
}
