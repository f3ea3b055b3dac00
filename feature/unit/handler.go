package unit

import (
	"errors"

	"prsk-lab/core/logger"
	"prsk-lab/core/middleware/auth"
	"prsk-lab/core/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for units.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the unit routes.
func (h *Handler) RegisterRoutes(api fiber.Router) {
	group := api.Group("/units")
	group.Get("/", h.HandleList)
	group.Get("/:code", h.HandleGet)
}

// RegisterAdminRoutes registers the admin-only routes.
func (h *Handler) RegisterAdminRoutes(admin fiber.Router) {
	admin.Post("/seed", h.HandleSeed)
}

// HandleList returns all units.
// @Summary List Units
// @Description List units with their characters, ordered by priority.
// @Tags units
// @Produce json
// @Success 200 {object} response.Envelope{data=[]models.Unit}
// @Failure 500 {object} response.Envelope
// @Router /api/units [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	units, err := h.service.List(c.Context())
	if err != nil {
		return response.Internal(c, h.service.logger, "Failed to list units", err)
	}
	return response.OK(c, units)
}

// HandleGet returns a single unit.
// @Summary Get Unit
// @Tags units
// @Produce json
// @Param code path string true "Unit code (e.g. 'vbs')"
// @Success 200 {object} response.Envelope{data=models.Unit}
// @Failure 404 {object} response.Envelope
// @Router /api/units/{code} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	unit, err := h.service.Get(c.Context(), c.Params("code"))
	if errors.Is(err, ErrNotFound) {
		return response.NotFound(c, "Unit")
	}
	if err != nil {
		return response.Internal(c, h.service.logger, "Failed to get unit", err)
	}
	return response.OK(c, unit)
}

// HandleSeed upserts the static master data.
// @Summary Seed Master Data
// @Description Upsert the static units and characters and drop the master data caches.
// @Tags admin
// @Produce json
// @Success 200 {object} response.Envelope{data=models.SeedResult}
// @Failure 403 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /api/admin/seed [post]
func (h *Handler) HandleSeed(c *fiber.Ctx) error {
	l := logger.WithUser(logger.WithRayID(h.service.logger, c), auth.UserID(c))
	l.Info("Seed requested")

	result, err := h.service.Seed(c.Context())
	if err != nil {
		return response.Internal(c, h.service.logger, "Seed failed", err)
	}
	l.Info("Seed served", zap.Int("units", result.Units), zap.Int("characters", result.Characters))
	return response.OK(c, result)
}
