package dto

import "linkconnect/internal/models"

type RegisterRequest struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8"`
	Role       string `json:"role" validate:"required,oneof=admin faculty student"`
	RollNumber string `json:"rollNumber" validate:"required_if=Role student"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=admin faculty student"`
}

type AuthResponse struct {
	Success bool               `json:"success"`
	Token   string             `json:"token"`
	User    models.UserSummary `json:"user"`
}
