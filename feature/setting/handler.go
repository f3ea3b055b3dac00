package setting

import (
	"errors"

	"prsk-lab/core/middleware/auth"
	"prsk-lab/core/response"
	"prsk-lab/core/validation"

	"github.com/gofiber/fiber/v2"
)

// PutRequest is the body of PUT /api/settings.
type PutRequest struct {
	LeaderCharacterID    *string  `json:"leader_character_id" validate:"omitempty,uuid"`
	HideCheckedReactions bool     `json:"hide_checked_reactions"`
	VisibleUnitCodes     []string `json:"visible_unit_codes" validate:"max=16,unique,dive,required,max=32"`
}

// Handler handles HTTP requests for settings.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the setting routes.
func (h *Handler) RegisterRoutes(api fiber.Router) {
	api.Get("/settings", h.HandleGet)
	api.Put("/settings", h.HandlePut)
}

// HandleGet returns the current user's settings.
// @Summary Get Settings
// @Tags settings
// @Produce json
// @Success 200 {object} response.Envelope{data=View}
// @Failure 401 {object} response.Envelope
// @Router /api/settings [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	view, err := h.service.Get(c.Context(), auth.UserID(c))
	if err != nil {
		return response.Internal(c, h.service.logger, "Failed to get settings", err)
	}
	return response.OK(c, view)
}

// HandlePut replaces the current user's settings.
// @Summary Update Settings
// @Tags settings
// @Accept json
// @Produce json
// @Param body body PutRequest true "Settings"
// @Success 200 {object} response.Envelope{data=View}
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /api/settings [put]
func (h *Handler) HandlePut(c *fiber.Ctx) error {
	var req PutRequest
	fields, err := validation.Bind(c, &req)
	if err != nil {
		return response.InvalidBody(c)
	}
	if fields != nil {
		return response.ValidationFailed(c, fields)
	}

	view, err := h.service.Put(c.Context(), auth.UserID(c), Update{
		LeaderCharacterID:    req.LeaderCharacterID,
		HideCheckedReactions: req.HideCheckedReactions,
		VisibleUnitCodes:     req.VisibleUnitCodes,
	})
	switch {
	case errors.Is(err, ErrCharacterNotFound):
		return response.NotFound(c, "Character")
	case errors.Is(err, ErrUnitNotFound):
		return response.NotFound(c, "Unit")
	case err != nil:
		return response.Internal(c, h.service.logger, "Failed to update settings", err)
	}
	return response.OK(c, view)
}
