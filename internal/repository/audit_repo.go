package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"linkconnect/internal/models"
)

type AuditRepository struct {
	col *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{col: db.Collection("audit_logs")}
}

func (r *AuditRepository) Insert(ctx context.Context, entry models.AuditLog) error {
	_, err := r.col.InsertOne(ctx, entry)
	return err
}

func (r *AuditRepository) List(ctx context.Context, limit int64) ([]models.AuditLog, error) {
	cur, err := r.col.Find(ctx, bson.M{},
		options.Find().SetSort(bson.M{"created_at": -1}).SetLimit(limit))
	if err != nil {
		return nil, err
	}
	var logs []models.AuditLog
	if err := cur.All(ctx, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}
