package services

import (
	"context"
	"slices"

	"go.mongodb.org/mongo-driver/v2/bson"

	"linkconnect/internal/models"
)

// AudienceFilter is a link's audience scope. Every dimension is optional; an
// empty value leaves that dimension unrestricted. Present dimensions are ANDed.
type AudienceFilter struct {
	CollegeCode string
	BranchCodes []string
	Years       []int
	Sections    []string
	Genders     []string
}

func AudienceFromLink(l models.Link) AudienceFilter {
	return AudienceFilter{
		CollegeCode: l.CollegeCode,
		BranchCodes: l.BranchCodes,
		Years:       l.Years,
		Sections:    l.Sections,
		Genders:     l.AllowedGenders,
	}
}

// Matches reports whether a user is in the filter's audience. Only active
// students ever match. This is the in-process mirror of ToBSON and the
// contract the fan-out tests assert against.
func (f AudienceFilter) Matches(u models.User) bool {
	if u.Role != models.RoleStudent || !u.Active {
		return false
	}
	if f.CollegeCode != "" && u.CollegeCode != f.CollegeCode {
		return false
	}
	if len(f.BranchCodes) > 0 && !slices.Contains(f.BranchCodes, u.BranchCode) {
		return false
	}
	if len(f.Years) > 0 && !slices.Contains(f.Years, u.Year) {
		return false
	}
	if len(f.Sections) > 0 && !slices.Contains(f.Sections, u.Section) {
		return false
	}
	if len(f.Genders) > 0 && !slices.Contains(f.Genders, u.Gender) {
		return false
	}
	return true
}

// ToBSON builds the users query for this audience.
func (f AudienceFilter) ToBSON() bson.M {
	filter := bson.M{"role": models.RoleStudent, "active": true}
	if f.CollegeCode != "" {
		filter["college_code"] = f.CollegeCode
	}
	if len(f.BranchCodes) > 0 {
		filter["branch_code"] = bson.M{"$in": f.BranchCodes}
	}
	if len(f.Years) > 0 {
		filter["year"] = bson.M{"$in": f.Years}
	}
	if len(f.Sections) > 0 {
		filter["section"] = bson.M{"$in": f.Sections}
	}
	if len(f.Genders) > 0 {
		filter["gender"] = bson.M{"$in": f.Genders}
	}
	return filter
}

// AudienceResolver computes the matching student set for a link's scope. It
// is a pure function of (scope, current user set); materialization is the
// fan-out's job.
type AudienceResolver struct {
	users UserStore
}

func NewAudienceResolver(users UserStore) *AudienceResolver {
	return &AudienceResolver{users: users}
}

func (r *AudienceResolver) Resolve(ctx context.Context, f AudienceFilter) ([]models.User, error) {
	return r.users.FindStudents(ctx, f)
}
