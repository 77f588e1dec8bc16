package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"linkconnect/internal/models"
	"linkconnect/internal/services"
)

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection("users")}
}

func (r *UserRepository) Insert(ctx context.Context, u *models.User) error {
	res, err := r.col.InsertOne(ctx, u)
	if err != nil {
		return translateDup(err)
	}
	u.ID = res.InsertedID.(bson.ObjectID)
	return nil
}

// InsertMany is unordered so one duplicate does not abort the batch. The
// returned count covers only the documents that made it in.
func (r *UserRepository) InsertMany(ctx context.Context, users []models.User) (int, error) {
	res, err := r.col.InsertMany(ctx, users, options.InsertMany().SetOrdered(false))
	inserted := 0
	if res != nil {
		inserted = len(res.InsertedIDs)
	}
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return inserted, err
	}
	return inserted, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id bson.ObjectID) (*models.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) FindByEmailAndRole(ctx context.Context, email, role string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email, "role": role})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var u models.User
	if err := r.col.FindOne(ctx, filter).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) FindAll(ctx context.Context) ([]models.User, error) {
	return r.find(ctx, bson.M{}, options.Find().SetSort(bson.M{"created_at": -1}))
}

func (r *UserRepository) FindByIDs(ctx context.Context, ids []bson.ObjectID) ([]models.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

func (r *UserRepository) FindStudents(ctx context.Context, f services.AudienceFilter) ([]models.User, error) {
	return r.find(ctx, f.ToBSON())
}

// Search matches name, email or roll number case-insensitively.
func (r *UserRepository) Search(ctx context.Context, query string, limit int64) ([]models.User, error) {
	rx := bson.M{"$regex": query, "$options": "i"}
	filter := bson.M{"$or": []bson.M{
		{"name": rx},
		{"email": rx},
		{"roll_number": rx},
	}}
	return r.find(ctx, filter, options.Find().SetLimit(limit))
}

func (r *UserRepository) find(ctx context.Context, filter bson.M, opts ...options.Lister[options.FindOptions]) ([]models.User, error) {
	cur, err := r.col.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) ExistingEmails(ctx context.Context, emails []string) (map[string]struct{}, error) {
	return r.existingValues(ctx, "email", emails)
}

func (r *UserRepository) ExistingRollNumbers(ctx context.Context, rolls []string) (map[string]struct{}, error) {
	return r.existingValues(ctx, "roll_number", rolls)
}

func (r *UserRepository) existingValues(ctx context.Context, field string, values []string) (map[string]struct{}, error) {
	out := make(map[string]struct{})
	if len(values) == 0 {
		return out, nil
	}
	res := r.col.Distinct(ctx, field, bson.M{field: bson.M{"$in": values}})
	var found []string
	if err := res.Decode(&found); err != nil {
		return nil, err
	}
	for _, v := range found {
		out[v] = struct{}{}
	}
	return out, nil
}

func (r *UserRepository) UpdateByID(ctx context.Context, id bson.ObjectID, set bson.M) (*models.User, error) {
	var u models.User
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, translateDup(err)
	}
	return &u, nil
}

func (r *UserRepository) Delete(ctx context.Context, id bson.ObjectID) (bool, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}
