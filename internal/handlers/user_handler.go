package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"linkconnect/internal/dto"
	"linkconnect/internal/middleware"
	"linkconnect/internal/services"
)

type UserHandler struct {
	users *services.UserService
	log   zerolog.Logger
}

func NewUserHandler(users *services.UserService, log zerolog.Logger) *UserHandler {
	return &UserHandler{users: users, log: log}
}

func (h *UserHandler) Me(c *fiber.Ctx) error {
	user, err := h.users.Get(c.Context(), middleware.CurrentIdentity(c).ID)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(dto.UserResponse{Success: true, User: user})
}

func (h *UserHandler) UpdateMe(c *fiber.Ctx) error {
	var req dto.UpdateProfileRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, h.log, err)
	}

	user, err := h.users.UpdateProfile(c.Context(), middleware.CurrentIdentity(c), req)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(dto.UserResponse{Success: true, User: user})
}

func (h *UserHandler) ChangePassword(c *fiber.Ctx) error {
	var req dto.ChangePasswordRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, h.log, err)
	}

	err := h.users.ChangePassword(c.Context(), middleware.CurrentIdentity(c), req.CurrentPassword, req.NewPassword)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(dto.Message("password changed, please login again"))
}

func (h *UserHandler) MyLogins(c *fiber.Ctx) error {
	stats, err := h.users.MyLogins(c.Context(), middleware.CurrentIdentity(c))
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(dto.ActivityResponse{Success: true, Activity: stats})
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.users.List(c.Context())
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(dto.UsersResponse{Success: true, Users: users})
}

func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return fail(c, h.log, err)
	}
	user, err := h.users.Get(c.Context(), id)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(dto.UserResponse{Success: true, User: user})
}

func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return fail(c, h.log, err)
	}
	var req dto.AdminUpdateUserRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, h.log, err)
	}

	user, err := h.users.AdminUpdate(c.Context(), id, req)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(dto.UserResponse{Success: true, User: user})
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return fail(c, h.log, err)
	}
	if err := h.users.Delete(c.Context(), id); err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(dto.Message("user deleted"))
}
