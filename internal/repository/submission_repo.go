package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"linkconnect/internal/models"
)

type SubmissionRepository struct {
	col *mongo.Collection
}

func NewSubmissionRepository(db *mongo.Database) *SubmissionRepository {
	return &SubmissionRepository{col: db.Collection("submissions")}
}

func (r *SubmissionRepository) Insert(ctx context.Context, s *models.Submission) error {
	res, err := r.col.InsertOne(ctx, s)
	if err != nil {
		return translateDup(err)
	}
	s.ID = res.InsertedID.(bson.ObjectID)
	return nil
}

func (r *SubmissionRepository) FindByID(ctx context.Context, id bson.ObjectID) (*models.Submission, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *SubmissionRepository) FindByLinkAndStudent(ctx context.Context, linkID, studentID bson.ObjectID) (*models.Submission, error) {
	return r.findOne(ctx, bson.M{"link": linkID, "student": studentID})
}

func (r *SubmissionRepository) findOne(ctx context.Context, filter bson.M) (*models.Submission, error) {
	var s models.Submission
	if err := r.col.FindOne(ctx, filter).Decode(&s); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *SubmissionRepository) FindByStudent(ctx context.Context, studentID bson.ObjectID) ([]models.Submission, error) {
	return r.find(ctx, bson.M{"student": studentID})
}

func (r *SubmissionRepository) FindByLink(ctx context.Context, linkID bson.ObjectID) ([]models.Submission, error) {
	return r.find(ctx, bson.M{"link": linkID})
}

func (r *SubmissionRepository) find(ctx context.Context, filter bson.M) ([]models.Submission, error) {
	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		return nil, err
	}
	var subs []models.Submission
	if err := cur.All(ctx, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *SubmissionRepository) UpdateStatus(ctx context.Context, id bson.ObjectID, status string) (*models.Submission, error) {
	var s models.Submission
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&s)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *SubmissionRepository) StudentIDsForLink(ctx context.Context, linkID bson.ObjectID) ([]bson.ObjectID, error) {
	res := r.col.Distinct(ctx, "student", bson.M{"link": linkID})
	var ids []bson.ObjectID
	if err := res.Decode(&ids); err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *SubmissionRepository) DeleteForStudent(ctx context.Context, studentID bson.ObjectID) (int64, error) {
	res, err := r.col.DeleteMany(ctx, bson.M{"student": studentID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *SubmissionRepository) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}

func (r *SubmissionRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{"status": status})
}

func (r *SubmissionRepository) CountByLinks(ctx context.Context, linkIDs []bson.ObjectID) (int64, error) {
	if len(linkIDs) == 0 {
		return 0, nil
	}
	return r.col.CountDocuments(ctx, bson.M{"link": bson.M{"$in": linkIDs}})
}

func (r *SubmissionRepository) CountByStudents(ctx context.Context, studentIDs []bson.ObjectID) (map[bson.ObjectID]int, error) {
	out := make(map[bson.ObjectID]int)
	if len(studentIDs) == 0 {
		return out, nil
	}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"student": bson.M{"$in": studentIDs}}}},
		{{Key: "$group", Value: bson.M{"_id": "$student", "count": bson.M{"$sum": 1}}}},
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
