package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"linkconnect/internal/models"
	"linkconnect/internal/services"
)

type LoginStatRepository struct {
	col *mongo.Collection
}

func NewLoginStatRepository(db *mongo.Database) *LoginStatRepository {
	return &LoginStatRepository{col: db.Collection("login_stats")}
}

func (r *LoginStatRepository) Insert(ctx context.Context, s models.LoginStat) error {
	_, err := r.col.InsertOne(ctx, s)
	return err
}

func (r *LoginStatRepository) RecentByUser(ctx context.Context, userID bson.ObjectID, limit int64) ([]models.LoginStat, error) {
	cur, err := r.col.Find(ctx, bson.M{"user_id": userID},
		options.Find().SetSort(bson.M{"login_time": -1}).SetLimit(limit))
	if err != nil {
		return nil, err
	}
	var stats []models.LoginStat
	if err := cur.All(ctx, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *LoginStatRepository) CountSince(ctx context.Context, since time.Time, role string, userID *bson.ObjectID) (int64, error) {
	filter := bson.M{"status": "success", "login_time": bson.M{"$gte": since}}
	if role != "" {
		filter["role"] = role
	}
	if userID != nil {
		filter["user_id"] = *userID
	}
	return r.col.CountDocuments(ctx, filter)
}

func (r *LoginStatRepository) AggregateByUsers(ctx context.Context, userIDs []bson.ObjectID) (map[bson.ObjectID]services.LoginAgg, error) {
	out := make(map[bson.ObjectID]services.LoginAgg)
	if len(userIDs) == 0 {
		return out, nil
	}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user_id": bson.M{"$in": userIDs}, "status": "success"}}},
		{{Key: "$group", Value: bson.M{
			"_id":        "$user_id",
			"total":      bson.M{"$sum": 1},
			"last_login": bson.M{"$max": "$login_time"},
		}}},
	}
	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	var rows []struct {
		ID        bson.ObjectID `bson:"_id"`
		Total     int           `bson:"total"`
		LastLogin time.Time     `bson:"last_login"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.ID] = services.LoginAgg{Total: row.Total, LastLogin: row.LastLogin}
	}
	return out, nil
}

// AggregateByDay buckets successful logins per calendar day and role for the
// activity chart.
func (r *LoginStatRepository) AggregateByDay(ctx context.Context) ([]services.DailyLogins, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"status": "success"}}},
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{
				"date": bson.M{"$dateToString": bson.M{"format": "%Y-%m-%d", "date": "$login_time"}},
				"role": "$role",
			},
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$project", Value: bson.M{
			"_id":   0,
			"date":  "$_id.date",
			"role":  "$_id.role",
			"count": 1,
		}}},
		{{Key: "$sort", Value: bson.M{"date": 1}}},
	}
	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	var rows []services.DailyLogins
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
