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

type LinkRepository struct {
	col *mongo.Collection
}

func NewLinkRepository(db *mongo.Database) *LinkRepository {
	return &LinkRepository{col: db.Collection("links")}
}

func (r *LinkRepository) Insert(ctx context.Context, l *models.Link) error {
	res, err := r.col.InsertOne(ctx, l)
	if err != nil {
		return translateDup(err)
	}
	l.ID = res.InsertedID.(bson.ObjectID)
	return nil
}

func (r *LinkRepository) FindByID(ctx context.Context, id bson.ObjectID) (*models.Link, error) {
	var l models.Link
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&l); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &l, nil
}

func (r *LinkRepository) FindAll(ctx context.Context) ([]models.Link, error) {
	return r.find(ctx, bson.M{})
}

func (r *LinkRepository) FindByCreator(ctx context.Context, creator bson.ObjectID) ([]models.Link, error) {
	return r.find(ctx, bson.M{"created_by": creator})
}

func (r *LinkRepository) FindByIDs(ctx context.Context, ids []bson.ObjectID) ([]models.Link, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

func (r *LinkRepository) find(ctx context.Context, filter bson.M) ([]models.Link, error) {
	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		return nil, err
	}
	var links []models.Link
	if err := cur.All(ctx, &links); err != nil {
		return nil, err
	}
	return links, nil
}

func (r *LinkRepository) UpdateByID(ctx context.Context, id bson.ObjectID, set bson.M) (*models.Link, error) {
	var l models.Link
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&l)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, translateDup(err)
	}
	return &l, nil
}

func (r *LinkRepository) MarkAudienceSynced(ctx context.Context, id bson.ObjectID, at time.Time) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"audience_synced_at": at}})
	return err
}

func (r *LinkRepository) IncrementRegistrations(ctx context.Context, id bson.ObjectID) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"registrations": 1}})
	return err
}

func (r *LinkRepository) Delete(ctx context.Context, id bson.ObjectID) (bool, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (r *LinkRepository) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}

func (r *LinkRepository) CountActive(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{"active": true})
}

func (r *LinkRepository) CountByCreators(ctx context.Context, creators []bson.ObjectID) (map[bson.ObjectID]int, error) {
	out := make(map[bson.ObjectID]int)
	if len(creators) == 0 {
		return out, nil
	}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"created_by": bson.M{"$in": creators}}}},
		{{Key: "$group", Value: bson.M{"_id": "$created_by", "count": bson.M{"$sum": 1}}}},
	}
	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	var rows []struct {
		ID    bson.ObjectID `bson:"_id"`
		Count int           `bson:"count"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.ID] = row.Count
	}
	return out, nil
}
