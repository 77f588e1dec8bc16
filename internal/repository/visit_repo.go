package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"linkconnect/internal/models"
)

const visitKey = "global"

type VisitRepository struct {
	col *mongo.Collection
}

func NewVisitRepository(db *mongo.Database) *VisitRepository {
	return &VisitRepository{col: db.Collection("visit_stats")}
}

// Increment bumps the global counter and the per-role bucket in one upsert.
func (r *VisitRepository) Increment(ctx context.Context, role string) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"key": visitKey},
		bson.M{"$inc": bson.M{"total": 1, "by_role." + role: 1}},
		options.UpdateOne().SetUpsert(true),
	)
	return err
}

func (r *VisitRepository) Get(ctx context.Context) (*models.VisitStat, error) {
	var v models.VisitStat
	if err := r.col.FindOne(ctx, bson.M{"key": visitKey}).Decode(&v); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}
