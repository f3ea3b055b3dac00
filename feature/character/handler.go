package character

import (
	"errors"

	"prsk-lab/core/response"

	"github.com/gofiber/fiber/v2"
)

// Handler handles HTTP requests for characters.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the character routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/characters")
	group.Get("/", h.HandleList)
	group.Get("/:code", h.HandleGet)
}

// HandleList returns all characters.
// @Summary List Characters
// @Description List characters ordered by priority, optionally filtered by unit.
// @Tags characters
// @Produce json
// @Param unit_code query string false "Unit code (e.g. 'ln')"
// @Success 200 {object} response.Envelope{data=[]View}
// @Failure 401 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /api/characters [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	characters, err := h.service.List(c.Context(), c.Query("unit_code"))
	if err != nil {
		return response.Internal(c, h.service.logger, "Failed to list characters", err)
	}
	return response.OK(c, characters)
}

// HandleGet returns a single character.
// @Summary Get Character
// @Tags characters
// @Produce json
// @Param code path string true "Character code (e.g. 'miku')"
// @Success 200 {object} response.Envelope{data=View}
// @Failure 404 {object} response.Envelope
// @Router /api/characters/{code} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	character, err := h.service.Get(c.Context(), c.Params("code"))
	if errors.Is(err, ErrNotFound) {
		return response.NotFound(c, "Character")
	}
	if err != nil {
		return response.Internal(c, h.service.logger, "Failed to get character", err)
	}
	return response.OK(c, character)
}
