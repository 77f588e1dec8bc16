package dto

import "linkconnect/internal/models"

type UpdateProfileRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1"`
	CollegeCode *string `json:"collegeCode"`
	BranchCode  *string `json:"branchCode"`
	Year        *int    `json:"year" validate:"omitempty,min=1,max=6"`
	Section     *string `json:"section"`
	Gender      *string `json:"gender" validate:"omitempty,oneof=male female other"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
}

type AdminUpdateUserRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Role        *string `json:"role" validate:"omitempty,oneof=admin faculty student"`
	RollNumber  *string `json:"rollNumber"`
	CollegeCode *string `json:"collegeCode"`
	BranchCode  *string `json:"branchCode"`
	Year        *int    `json:"year" validate:"omitempty,min=1,max=6"`
	Section     *string `json:"section"`
	Gender      *string `json:"gender" validate:"omitempty,oneof=male female other"`
}

type UserResponse struct {
	Success bool        `json:"success"`
	User    models.User `json:"user"`
}

type UsersResponse struct {
	Success bool          `json:"success"`
	Users   []models.User `json:"users"`
}
