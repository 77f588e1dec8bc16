package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	RoleAdmin   = "admin"
	RoleFaculty = "faculty"
	RoleStudent = "student"
)

func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleFaculty || role == RoleStudent
}

type User struct {
	ID           bson.ObjectID `json:"id" bson:"_id,omitempty"`
	Name         string        `json:"name" bson:"name"`
	Email        string        `json:"email" bson:"email"`
	Password     string        `json:"-" bson:"password"`
	Role         string        `json:"role" bson:"role"`
	RollNumber   string        `json:"rollNumber,omitempty" bson:"roll_number,omitempty"`
	Active       bool          `json:"active" bson:"active"`
	CollegeCode  string        `json:"collegeCode" bson:"college_code"`
	BranchCode   string        `json:"branchCode" bson:"branch_code"`
	Year         int           `json:"year" bson:"year"`
	Section      string        `json:"section" bson:"section"`
	Gender       string        `json:"gender,omitempty" bson:"gender,omitempty"`
	TokenVersion int           `json:"-" bson:"token_version"`
	LastLogin    *time.Time    `json:"lastLogin,omitempty" bson:"last_login,omitempty"`
	CreatedAt    time.Time     `json:"createdAt" bson:"created_at"`
}

// Summary is the safe projection returned to other users and embedded in
// submission listings.
type UserSummary struct {
	ID         bson.ObjectID `json:"id" bson:"_id"`
	Name       string        `json:"name" bson:"name"`
	Email      string        `json:"email" bson:"email"`
	Role       string        `json:"role" bson:"role"`
	RollNumber string        `json:"rollNumber,omitempty" bson:"roll_number,omitempty"`
}

func (u User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, RollNumber: u.RollNumber}
}
