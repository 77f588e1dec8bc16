package bootstrap

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// EnsureIndexes creates the unique indexes the write paths rely on. The
// compound indexes on student_links and submissions are the authoritative
// defense against concurrent fan-out and double-submission races.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("users").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_email"),
		},
		{
			Keys:    bson.D{{Key: "roll_number", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true).SetName("uniq_roll_number"),
		},
	})
	if err != nil {
		return err
	}

	_, err = db.Collection("links").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "short_url", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_short_url"),
	})
	if err != nil {
		return err
	}

	_, err = db.Collection("student_links").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "link_id", Value: 1},
			{Key: "student_id", Value: 1},
		},
		Options: options.Index().SetUnique(true).SetName("uniq_link_student"),
	})
	if err != nil {
		return err
	}

	_, err = db.Collection("submissions").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "link", Value: 1},
			{Key: "student", Value: 1},
		},
		Options: options.Index().SetUnique(true).SetName("uniq_link_student"),
	})
	if err != nil {
		return err
	}

	_, err = db.Collection("audit_logs").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: -1}},
	})
	if err != nil {
		return err
	}

	_, err = db.Collection("visit_stats").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "key", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_key"),
	})
	return err
}
