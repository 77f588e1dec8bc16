package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"linkconnect/internal/dto"
	"linkconnect/internal/middleware"
	"linkconnect/internal/services"
)

type AuthHandler struct {
	auth *services.AuthService
	log  zerolog.Logger
}

func NewAuthHandler(auth *services.AuthService, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, log: log}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, h.log, err)
	}

	user, token, err := h.auth.Register(c.Context(), req)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.AuthResponse{
		Success: true,
		Token:   token,
		User:    user.Summary(),
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, h.log, err)
	}

	user, token, err := h.auth.Login(c.Context(), req, c.IP(), c.Get("User-Agent"))
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(dto.AuthResponse{
		Success: true,
		Token:   token,
		User:    user.Summary(),
	})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := h.auth.Me(c.Context(), middleware.CurrentIdentity(c))
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(dto.UserResponse{Success: true, User: user})
}
