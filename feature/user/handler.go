package user

import (
	"errors"

	"prsk-lab/core/middleware/auth"
	"prsk-lab/core/response"
	"prsk-lab/core/validation"

	"github.com/gofiber/fiber/v2"
)

// UpdateMeRequest is the body of PATCH /api/users/me.
type UpdateMeRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// UpdateRoleRequest is the body of PATCH /api/admin/users/:id.
type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user admin"`
}

// Handler handles HTTP requests for users.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the user routes.
func (h *Handler) RegisterRoutes(api fiber.Router) {
	group := api.Group("/users")
	group.Get("/me", h.HandleMe)
	group.Patch("/me", h.HandleUpdateMe)
}

// RegisterAdminRoutes registers the admin user routes.
func (h *Handler) RegisterAdminRoutes(admin fiber.Router) {
	group := admin.Group("/users")
	group.Get("/", h.HandleList)
	group.Patch("/:id", h.HandleUpdateRole)
}

// HandleMe returns the current user.
// @Summary Current User
// @Tags users
// @Produce json
// @Success 200 {object} response.Envelope{data=models.User}
// @Failure 401 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /api/users/me [get]
func (h *Handler) HandleMe(c *fiber.Ctx) error {
	u, err := h.service.Get(c.Context(), auth.UserID(c))
	if errors.Is(err, ErrNotFound) {
		return response.NotFound(c, "User")
	}
	if err != nil {
		return response.Internal(c, h.service.logger, "Failed to get user", err)
	}
	return response.OK(c, u)
}

// HandleUpdateMe renames the current user.
// @Summary Update Current User
// @Tags users
// @Accept json
// @Produce json
// @Param body body UpdateMeRequest true "New name"
// @Success 200 {object} response.Envelope{data=models.User}
// @Failure 400 {object} response.Envelope
// @Router /api/users/me [patch]
func (h *Handler) HandleUpdateMe(c *fiber.Ctx) error {
	var req UpdateMeRequest
	fields, err := validation.Bind(c, &req)
	if err != nil {
		return response.InvalidBody(c)
	}
	if fields != nil {
		return response.ValidationFailed(c, fields)
	}

	u, err := h.service.UpdateName(c.Context(), auth.UserID(c), req.Name)
	if errors.Is(err, ErrNotFound) {
		return response.NotFound(c, "User")
	}
	if err != nil {
		return response.Internal(c, h.service.logger, "Failed to update user", err)
	}
	return response.OK(c, u)
}

// HandleList returns all users.
// @Summary List Users
// @Tags admin
// @Produce json
// @Param role query string false "Role filter (user, admin)"
// @Success 200 {object} response.Envelope{data=[]models.User}
// @Failure 403 {object} response.Envelope
// @Router /api/admin/users [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	users, err := h.service.List(c.Context(), c.Query("role"))
	if err != nil {
		return response.Internal(c, h.service.logger, "Failed to list users", err)
	}
	return response.OK(c, users)
}

// HandleUpdateRole changes a user's role.
// @Summary Update User Role
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param body body UpdateRoleRequest true "New role"
// @Success 200 {object} response.Envelope{data=models.User}
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /api/admin/users/{id} [patch]
func (h *Handler) HandleUpdateRole(c *fiber.Ctx) error {
	var req UpdateRoleRequest
	fields, err := validation.Bind(c, &req)
	if err != nil {
		return response.InvalidBody(c)
	}
	if fields != nil {
		return response.ValidationFailed(c, fields)
	}

	u, err := h.service.UpdateRole(c.Context(), auth.UserID(c), c.Params("id"), req.Role)
	switch {
	case errors.Is(err, ErrOwnRole):
		return response.Fail(c, fiber.StatusBadRequest, "Cannot change your own role")
	case errors.Is(err, ErrNotFound):
		return response.NotFound(c, "User")
	case err != nil:
		return response.Internal(c, h.service.logger, "Failed to update role", err)
	}
	return response.OK(c, u)
}
