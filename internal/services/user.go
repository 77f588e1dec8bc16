package services

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"

	"linkconnect/internal/dto"
	"linkconnect/internal/models"
)

type UserService struct {
	users       UserStore
	logins      LoginStatStore
	assignments StudentLinkStore
	submissions SubmissionStore
}

func NewUserService(users UserStore, logins LoginStatStore, assignments StudentLinkStore, submissions SubmissionStore) *UserService {
	return &UserService{users: users, logins: logins, assignments: assignments, submissions: submissions}
}

func (s *UserService) Get(ctx context.Context, id bson.ObjectID) (models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return models.User{}, err
	}
	if user == nil {
		return models.User{}, NewNotFound("user not found")
	}
	return *user, nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.users.FindAll(ctx)
}

// UpdateProfile is the self-service path: division attributes and name only,
// never role or credentials.
func (s *UserService) UpdateProfile(ctx context.Context, actor Identity, req dto.UpdateProfileRequest) (models.User, error) {
	set := bson.M{}
	if req.Name != nil {
		set["name"] = strings.TrimSpace(*req.Name)
	}
	if req.CollegeCode != nil {
		set["college_code"] = *req.CollegeCode
	}
	if req.BranchCode != nil {
		set["branch_code"] = *req.BranchCode
	}
	if req.Year != nil {
		set["year"] = *req.Year
	}
	if req.Section != nil {
		set["section"] = *req.Section
	}
	if req.Gender != nil {
		set["gender"] = *req.Gender
	}
	if len(set) == 0 {
		return s.Get(ctx, actor.ID)
	}

	user, err := s.users.UpdateByID(ctx, actor.ID, set)
	if err != nil {
		return models.User{}, err
	}
	if user == nil {
		return models.User{}, NewNotFound("user not found")
	}
	return *user, nil
}

// ChangePassword verifies the current password, sets the new hash and bumps
// tokenVersion so other sessions drop.
func (s *UserService) ChangePassword(ctx context.Context, actor Identity, current, next string) error {
	user, err := s.users.FindByID(ctx, actor.ID)
	if err != nil {
		return err
	}
	if user == nil {
		return NewNotFound("user not found")
	}
	if !CheckPassword(user.Password, current) {
		return NewUnauthorized("current password is incorrect")
	}

	hashed, err := HashPassword(next)
	if err != nil {
		return err
	}
	_, err = s.users.UpdateByID(ctx, actor.ID, bson.M{
		"password":      hashed,
		"token_version": user.TokenVersion + 1,
	})
	return err
}

func (s *UserService) MyLogins(ctx context.Context, actor Identity) ([]models.LoginStat, error) {
	return s.logins.RecentByUser(ctx, actor.ID, 20)
}

// AdminUpdate applies an admin edit. Password never changes through this
// path; use the reset-password admin operation.
func (s *UserService) AdminUpdate(ctx context.Context, id bson.ObjectID, req dto.AdminUpdateUserRequest) (models.User, error) {
	set := bson.M{}
	if req.Name != nil {
		set["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		set["email"] = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Role != nil {
		set["role"] = *req.Role
	}
	if req.RollNumber != nil {
		set["roll_number"] = *req.RollNumber
	}
	if req.CollegeCode != nil {
		set["college_code"] = *req.CollegeCode
	}
	if req.BranchCode != nil {
		set["branch_code"] = *req.BranchCode
	}
	if req.Year != nil {
		set["year"] = *req.Year
	}
	if req.Section != nil {
		set["section"] = *req.Section
	}
	if req.Gender != nil {
		set["gender"] = *req.Gender
	}
	if len(set) == 0 {
		return s.Get(ctx, id)
	}

	user, err := s.users.UpdateByID(ctx, id, set)
	if err != nil {
		if errors.Is(err, ErrDuplicateKey) {
			return models.User{}, NewConflict("email or roll number already in use")
		}
		return models.User{}, err
	}
	if user == nil {
		return models.User{}, NewNotFound("user not found")
	}
	return *user, nil
}

func (s *UserService) Delete(ctx context.Context, id bson.ObjectID) error {
	deleted, err := s.users.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return NewNotFound("user not found")
	}
	// cascade the student's materialized rows so no orphans survive
	if _, err := s.assignments.DeleteForStudent(ctx, id); err != nil {
		return err
	}
	if _, err := s.submissions.DeleteForStudent(ctx, id); err != nil {
		return err
	}
	return nil
}
