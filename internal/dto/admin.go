package dto

import "linkconnect/internal/models"

type CreateUserRequest struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Role        string `json:"role" validate:"required,oneof=admin faculty student"`
	Password    string `json:"password" validate:"omitempty,min=8"`
	RollNumber  string `json:"rollNumber"`
	CollegeCode string `json:"collegeCode"`
	BranchCode  string `json:"branchCode"`
	Year        int    `json:"year" validate:"omitempty,min=1,max=6"`
	Section     string `json:"section"`
	Gender      string `json:"gender" validate:"omitempty,oneof=male female other"`
}

// BulkCreateUsersRequest deliberately skips per-row validation: invalid rows
// are counted as skippedInvalid by the import instead of failing the batch.
type BulkCreateUsersRequest struct {
	Users          []CreateUserRequest `json:"users" validate:"required,min=1"`
	SharedPassword string              `json:"sharedPassword" validate:"omitempty,min=8"`
}

type BulkCreateUsersResponse struct {
	Success         bool `json:"success"`
	Requested       int  `json:"requested"`
	Inserted        int  `json:"inserted"`
	SkippedExisting int  `json:"skippedExisting"`
	SkippedInvalid  int  `json:"skippedInvalid"`
}

type ResetPasswordRequest struct {
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

type UpdateRateLimitRequest struct {
	WindowMs *int64 `json:"windowMs" validate:"omitempty,min=1000"`
	Max      *int   `json:"max" validate:"omitempty,min=1"`
}

type RateLimitResponse struct {
	Success bool                     `json:"success"`
	Config  models.RateLimitSettings `json:"config"`
}

type SaveCatalogRequest struct {
	Colleges []models.College `json:"colleges"`
}

type CatalogResponse struct {
	Success bool                   `json:"success"`
	Catalog models.DivisionCatalog `json:"catalog"`
}

type ToggleResponse struct {
	Success bool `json:"success"`
	Active  bool `json:"active"`
}

// UserActivitySummary is one row of the admin activity search.
type UserActivitySummary struct {
	models.UserSummary
	TotalLogins  int     `json:"totalLogins"`
	LastLogin    *string `json:"lastLogin,omitempty"`
	LinksCreated int     `json:"linksCreated"`
	Submissions  int     `json:"submissions"`
}

type ActivitySearchResponse struct {
	Success bool                  `json:"success"`
	Users   []UserActivitySummary `json:"users"`
}

type ActivityResponse struct {
	Success  bool               `json:"success"`
	Activity []models.LoginStat `json:"activity"`
}

type AuditLogsResponse struct {
	Success bool              `json:"success"`
	Logs    []models.AuditLog `json:"logs"`
}
