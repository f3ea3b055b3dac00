package eventbonus

import (
	"errors"
	"fmt"

	"prsk-lab/core/response"
	"prsk-lab/core/validation"

	"github.com/gofiber/fiber/v2"
)

// Handler handles HTTP requests for the event calculators.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the calculator routes.
func (h *Handler) RegisterRoutes(api fiber.Router) {
	group := api.Group("/event-bonus")
	group.Post("/team", h.HandleTeam)
	group.Post("/points", h.HandlePoints)
	group.Post("/plays", h.HandlePlays)
}

func bind(c *fiber.Ctx, dst any) (bool, error) {
	fields, err := validation.Bind(c, dst)
	if err != nil {
		return false, response.InvalidBody(c)
	}
	if fields != nil {
		return false, response.ValidationFailed(c, fields)
	}
	return true, nil
}

// HandleTeam computes the event bonus of a team.
// @Summary Team Event Bonus
// @Description Character, attribute and master rank bonus per card, and the team total, in percent.
// @Tags event-bonus
// @Accept json
// @Produce json
// @Param body body TeamRequest true "Event and cards"
// @Success 200 {object} response.Envelope{data=TeamBonus}
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /api/event-bonus/team [post]
func (h *Handler) HandleTeam(c *fiber.Ctx) error {
	var req TeamRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}

	team, err := h.service.Team(c.Context(), req.input())
	switch {
	case errors.Is(err, ErrCharacterNotFound):
		return response.NotFound(c, "Character")
	case errors.Is(err, ErrUnitNotFound):
		return response.NotFound(c, "Unit")
	case err != nil:
		return response.Internal(c, h.service.logger, "Failed to calculate team bonus", err)
	}
	return response.OK(c, team)
}

// HandlePoints computes the event points of one play.
// @Summary Event Points
// @Tags event-bonus
// @Accept json
// @Produce json
// @Param body body PointsRequest true "Score, event rate, bonus and energy"
// @Success 200 {object} response.Envelope{data=PointsResult}
// @Failure 400 {object} response.Envelope
// @Router /api/event-bonus/points [post]
func (h *Handler) HandlePoints(c *fiber.Ctx) error {
	var req PointsRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}

	points, err := CalculateEventPoints(req.Score, req.EventRate, req.Bonus, req.Energy)
	if err != nil {
		return response.ValidationFailed(c, rangeErrors(err))
	}
	return response.OK(c, PointsResult{Points: points})
}

// HandlePlays computes the plays needed to reach a target.
// @Summary Plays To Target
// @Tags event-bonus
// @Accept json
// @Produce json
// @Param body body PlaysRequest true "Current and target points"
// @Success 200 {object} response.Envelope{data=Plays}
// @Failure 400 {object} response.Envelope
// @Router /api/event-bonus/plays [post]
func (h *Handler) HandlePlays(c *fiber.Ctx) error {
	var req PlaysRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}

	plays, err := CalculatePlays(req.Current, req.Target, req.PointsPerPlay, req.Energy)
	if err != nil {
		return response.ValidationFailed(c, rangeErrors(err))
	}
	return response.OK(c, plays)
}

// rangeErrors maps calculator input errors to field messages.
func rangeErrors(err error) map[string]string {
	atMost := func(n int) string { return fmt.Sprintf("must be less than or equal to %d", n) }
	switch {
	case errors.Is(err, ErrInvalidScore):
		return map[string]string{"score": atMost(MaxScore)}
	case errors.Is(err, ErrInvalidEventRate):
		return map[string]string{"event_rate": atMost(MaxEventRate)}
	case errors.Is(err, ErrInvalidBonus):
		return map[string]string{"bonus": atMost(MaxBonus)}
	case errors.Is(err, ErrInvalidEnergy):
		return map[string]string{"energy": atMost(MaxEnergy)}
	case errors.Is(err, ErrInvalidPoints):
		return map[string]string{"points_per_play": "must be greater than 0"}
	default:
		return map[string]string{"points": atMost(MaxPoints)}
	}
}
