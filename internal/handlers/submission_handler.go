package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"

	"linkconnect/internal/dto"
	"linkconnect/internal/middleware"
	"linkconnect/internal/services"
)

type SubmissionHandler struct {
	submissions *services.SubmissionService
	log         zerolog.Logger
}

func NewSubmissionHandler(submissions *services.SubmissionService, log zerolog.Logger) *SubmissionHandler {
	return &SubmissionHandler{submissions: submissions, log: log}
}

func (h *SubmissionHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateSubmissionRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, h.log, err)
	}
	linkID, err := bson.ObjectIDFromHex(req.LinkID)
	if err != nil {
		return fail(c, h.log, services.NewValidation("invalid link id"))
	}

	sub, err := h.submissions.Create(c.Context(), middleware.CurrentIdentity(c), linkID, req.Screenshot)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SubmissionResponse{Success: true, Submission: sub})
}

func (h *SubmissionHandler) ListByStudent(c *fiber.Ctx) error {
	studentID, err := parseID(c, "studentId")
	if err != nil {
		return fail(c, h.log, err)
	}

	subs, err := h.submissions.ListByStudent(c.Context(), middleware.CurrentIdentity(c), studentID)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(dto.StudentSubmissionsResponse{Success: true, Submissions: subs})
}

func (h *SubmissionHandler) ListByLink(c *fiber.Ctx) error {
	linkID, err := parseID(c, "linkId")
	if err != nil {
		return fail(c, h.log, err)
	}

	subs, err := h.submissions.ListByLink(c.Context(), linkID)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(dto.LinkSubmissionsResponse{Success: true, Submissions: subs})
}

func (h *SubmissionHandler) Stats(c *fiber.Ctx) error {
	linkID, err := parseID(c, "linkId")
	if err != nil {
		return fail(c, h.log, err)
	}

	stats, err := h.submissions.Stats(c.Context(), linkID)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(stats)
}

func (h *SubmissionHandler) Verify(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return fail(c, h.log, err)
	}
	var req dto.VerifySubmissionRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, h.log, err)
	}

	sub, err := h.submissions.Verify(c.Context(), id, req.Status)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(dto.SubmissionResponse{Success: true, Submission: sub})
}
