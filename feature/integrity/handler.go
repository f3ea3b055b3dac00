package integrity

import (
	"prsk-lab/core/logger"
	"prsk-lab/core/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for integrity checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterAdminRoutes registers the integrity routes.
func (h *Handler) RegisterAdminRoutes(admin fiber.Router) {
	group := admin.Group("/integrity")
	group.Get("/", h.HandleIntegrityCheck)
	group.Get("/schema", h.HandleSchemaCheck)
	group.Get("/storage", h.HandleStorageCheck)
}

// HandleIntegrityCheck runs every check.
// @Summary Run All Integrity Checks
// @Description Compares the database schema with the models and the stored furniture images with the database.
// @Tags admin
// @Produce json
// @Param fix query boolean false "Create the bucket, remove orphan images and clear missing image keys"
// @Success 200 {object} response.Envelope{data=Report}
// @Failure 500 {object} response.Envelope
// @Router /api/admin/integrity [get]
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	fix := c.QueryBool("fix")
	l.Info("Triggering all integrity checks", zap.Bool("fix", fix))

	report, err := h.service.Run(c.Context(), fix)
	if err != nil {
		return response.Internal(c, h.service.logger, "Integrity check failed", err)
	}
	return response.OK(c, report)
}

// HandleSchemaCheck checks the database schema.
// @Summary Check Schema
// @Tags admin
// @Produce json
// @Success 200 {object} response.Envelope{data=checks.SchemaReport}
// @Failure 500 {object} response.Envelope
// @Router /api/admin/integrity/schema [get]
func (h *Handler) HandleSchemaCheck(c *fiber.Ctx) error {
	report, err := h.service.CheckSchema(c.Context())
	if err != nil {
		return response.Internal(c, h.service.logger, "Schema check failed", err)
	}
	if !report.Matched {
		logger.WithRayID(h.service.logger, c).Warn("Schema mismatch detected", zap.Strings("errors", report.Errors))
	}
	return response.OK(c, report)
}

// HandleStorageCheck checks the bucket and furniture images.
// @Summary Check Storage
// @Tags admin
// @Produce json
// @Param fix query boolean false "Fix detected problems"
// @Success 200 {object} response.Envelope{data=StorageReport}
// @Failure 500 {object} response.Envelope
// @Router /api/admin/integrity/storage [get]
func (h *Handler) HandleStorageCheck(c *fiber.Ctx) error {
	report, err := h.service.CheckStorage(c.Context(), c.QueryBool("fix"))
	if err != nil {
		return response.Internal(c, h.service.logger, "Storage check failed", err)
	}
	return response.OK(c, report)
}
