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

type StudentLinkRepository struct {
	col *mongo.Collection
}

func NewStudentLinkRepository(db *mongo.Database) *StudentLinkRepository {
	return &StudentLinkRepository{col: db.Collection("student_links")}
}

// InsertMany is unordered and treats duplicate-key failures as already
// assigned rather than errors, so re-running a fan-out is safe.
func (r *StudentLinkRepository) InsertMany(ctx context.Context, rows []models.StudentLink) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	res, err := r.col.InsertMany(ctx, rows, options.InsertMany().SetOrdered(false))
	inserted := 0
	if res != nil {
		inserted = len(res.InsertedIDs)
	}
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return inserted, err
	}
	return inserted, nil
}

func (r *StudentLinkRepository) StudentIDs(ctx context.Context, linkID bson.ObjectID) ([]bson.ObjectID, error) {
	res := r.col.Distinct(ctx, "student_id", bson.M{"link_id": linkID})
	var ids []bson.ObjectID
	if err := res.Decode(&ids); err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *StudentLinkRepository) DeleteForLink(ctx context.Context, linkID bson.ObjectID, studentIDs []bson.ObjectID) (int64, error) {
	filter := bson.M{"link_id": linkID}
	if studentIDs != nil {
		if len(studentIDs) == 0 {
			return 0, nil
		}
		filter["student_id"] = bson.M{"$in": studentIDs}
	}
	res, err := r.col.DeleteMany(ctx, filter)
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *StudentLinkRepository) DeleteForStudent(ctx context.Context, studentID bson.ObjectID) (int64, error) {
	res, err := r.col.DeleteMany(ctx, bson.M{"student_id": studentID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *StudentLinkRepository) FindByStudent(ctx context.Context, studentID bson.ObjectID) ([]models.StudentLink, error) {
	return r.find(ctx, bson.M{"student_id": studentID})
}

func (r *StudentLinkRepository) FindByLink(ctx context.Context, linkID bson.ObjectID) ([]models.StudentLink, error) {
	return r.find(ctx, bson.M{"link_id": linkID})
}

func (r *StudentLinkRepository) find(ctx context.Context, filter bson.M) ([]models.StudentLink, error) {
	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	var rows []models.StudentLink
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *StudentLinkRepository) FindByLinkAndStudent(ctx context.Context, linkID, studentID bson.ObjectID) (*models.StudentLink, error) {
	var row models.StudentLink
	err := r.col.FindOne(ctx, bson.M{"link_id": linkID, "student_id": studentID}).Decode(&row)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *StudentLinkRepository) MarkViewed(ctx context.Context, studentID bson.ObjectID, linkIDs []bson.ObjectID, at time.Time) error {
	if len(linkIDs) == 0 {
		return nil
	}
	_, err := r.col.UpdateMany(ctx,
		bson.M{"student_id": studentID, "link_id": bson.M{"$in": linkIDs}, "viewed": false},
		bson.M{"$set": bson.M{"viewed": true, "viewed_at": at}},
	)
	return err
}
