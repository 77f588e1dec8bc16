package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"linkconnect/internal/dto"
	"linkconnect/internal/middleware"
	"linkconnect/internal/services"
)

type LinkHandler struct {
	links   *services.LinkService
	catalog *services.CatalogService
	log     zerolog.Logger
}

func NewLinkHandler(links *services.LinkService, catalog *services.CatalogService, log zerolog.Logger) *LinkHandler {
	return &LinkHandler{links: links, catalog: catalog, log: log}
}

func (h *LinkHandler) List(c *fiber.Ctx) error {
	links, err := h.links.List(c.Context(), middleware.CurrentIdentity(c))
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(dto.LinksResponse{Success: true, Links: links})
}

func (h *LinkHandler) Catalog(c *fiber.Ctx) error {
	catalog, err := h.catalog.Effective(c.Context())
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(dto.CatalogResponse{Success: true, Catalog: catalog})
}

// MyLinks lists the caller's assigned, still-open links and marks them viewed.
func (h *LinkHandler) MyLinks(c *fiber.Ctx) error {
	links, err := h.links.StudentLinks(c.Context(), middleware.CurrentIdentity(c).ID)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(dto.LinksResponse{Success: true, Links: links})
}

func (h *LinkHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return fail(c, h.log, err)
	}
	link, err := h.links.Get(c.Context(), id)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(dto.LinkResponse{Success: true, Link: link})
}

func (h *LinkHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateLinkRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, h.log, err)
	}

	link, assigned, err := h.links.Create(c.Context(), middleware.CurrentIdentity(c), req)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreateLinkResponse{
		Success:  true,
		Link:     link,
		Assigned: assigned,
	})
}

func (h *LinkHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return fail(c, h.log, err)
	}
	var req dto.UpdateLinkRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, h.log, err)
	}

	link, err := h.links.Update(c.Context(), middleware.CurrentIdentity(c), id, req)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(dto.LinkResponse{Success: true, Link: link})
}

// Resync re-runs the audience fan-out; unlike the best-effort pass after a
// write, failures here surface to the caller.
func (h *LinkHandler) Resync(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return fail(c, h.log, err)
	}

	res, err := h.links.Resync(c.Context(), middleware.CurrentIdentity(c), id)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(dto.ResyncResponse{Success: true, Assigned: res.Assigned, Removed: res.Removed})
}

func (h *LinkHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return fail(c, h.log, err)
	}
	if err := h.links.Delete(c.Context(), middleware.CurrentIdentity(c), id); err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(dto.Message("link deleted"))
}
