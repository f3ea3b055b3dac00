package furniture

import (
	"errors"
	"mime"
	"path"

	"prsk-lab/core/logger"
	"prsk-lab/core/middleware/auth"
	"prsk-lab/core/response"
	"prsk-lab/core/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// maxImageSize bounds furniture image uploads.
const maxImageSize = 5 << 20

// Handler handles HTTP requests for furniture.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the user routes.
func (h *Handler) RegisterRoutes(api fiber.Router) {
	reactions := api.Group("/reactions")
	reactions.Get("/", h.HandleListReactions)
	reactions.Post("/:id/check", h.HandleCheck)
	reactions.Delete("/:id/check", h.HandleUncheck)

	api.Get("/furnitures/:id/image", h.HandleGetImage)
}

// RegisterAdminRoutes registers the admin routes.
func (h *Handler) RegisterAdminRoutes(admin fiber.Router) {
	tags := admin.Group("/furniture-tags")
	tags.Get("/", h.HandleListTags)
	tags.Post("/", h.HandleCreateTag)
	tags.Get("/:id", h.HandleGetTag)
	tags.Put("/:id", h.HandleUpdateTag)
	tags.Delete("/:id", h.HandleDeleteTag)

	groups := admin.Group("/furniture-groups")
	groups.Get("/", h.HandleListGroups)
	groups.Post("/", h.HandleCreateGroup)
	groups.Get("/:id", h.HandleGetGroup)
	groups.Put("/:id", h.HandleUpdateGroup)
	groups.Delete("/:id", h.HandleDeleteGroup)
	groups.Get("/:id/combinations", h.HandleGroupCombinations)
	groups.Put("/:id/excluded-combinations", h.HandleReplaceExcluded)

	furnitures := admin.Group("/furnitures")
	furnitures.Get("/", h.HandleListFurnitures)
	furnitures.Post("/", h.HandleCreateFurniture)
	furnitures.Get("/:id", h.HandleGetFurniture)
	furnitures.Put("/:id", h.HandleUpdateFurniture)
	furnitures.Delete("/:id", h.HandleDeleteFurniture)
	furnitures.Put("/:id/image", h.HandleUploadImage)
	furnitures.Post("/:id/reactions", h.HandleCreateReaction)

	reactions := admin.Group("/reactions")
	reactions.Put("/:id", h.HandleUpdateReaction)
	reactions.Delete("/:id", h.HandleDeleteReaction)
}

// fail maps service errors to envelopes. entity names the resource for
// conflicts, msg is logged for unexpected errors.
func (h *Handler) fail(c *fiber.Ctx, err error, entity, msg string) error {
	var combErr *CombinationError
	switch {
	case errors.As(err, &combErr):
		return response.ValidationFailed(c, map[string]string{combErr.Field(): combErr.Reason})
	case errors.Is(err, ErrTagNotFound):
		return response.NotFound(c, "Furniture tag")
	case errors.Is(err, ErrGroupNotFound):
		return response.NotFound(c, "Furniture group")
	case errors.Is(err, ErrFurnitureNotFound):
		return response.NotFound(c, "Furniture")
	case errors.Is(err, ErrReactionNotFound):
		return response.NotFound(c, "Reaction")
	case errors.Is(err, ErrCharacterNotFound):
		return response.NotFound(c, "Character")
	case errors.Is(err, ErrImageNotFound):
		return response.NotFound(c, "Image")
	case errors.Is(err, ErrDuplicateReaction):
		return response.Conflict(c, "Reaction")
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return response.Conflict(c, entity)
	}
	return response.Internal(c, h.service.logger, msg, err)
}

// bind parses and validates the body. It returns false after writing the
// error response.
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

// HandleListReactions returns furniture with the caller's reaction statuses.
// @Summary List Reactions
// @Description Furniture with reactions and checked_by (direct, group or null) for the current user.
// @Tags reactions
// @Produce json
// @Param tag_id query string false "Tag ID"
// @Param group_id query string false "Group ID"
// @Param character_id query string false "Only reactions with this character"
// @Param unit_code query string false "Only reactions with a character of this unit"
// @Param unchecked query boolean false "Only unchecked reactions"
// @Success 200 {object} response.Envelope{data=[]FurnitureView}
// @Failure 401 {object} response.Envelope
// @Router /api/reactions [get]
func (h *Handler) HandleListReactions(c *fiber.Ctx) error {
	views, err := h.service.ListReactions(c.Context(), auth.UserID(c), ReactionFilter{
		TagID:       c.Query("tag_id"),
		GroupID:     c.Query("group_id"),
		CharacterID: c.Query("character_id"),
		UnitCode:    c.Query("unit_code"),
		Unchecked:   c.QueryBool("unchecked"),
	})
	if err != nil {
		return h.fail(c, err, "", "Failed to list reactions")
	}
	return response.OK(c, views)
}

// HandleCheck marks a reaction as checked.
// @Summary Check Reaction
// @Tags reactions
// @Produce json
// @Param id path string true "Reaction ID"
// @Success 200 {object} response.Envelope{data=CheckResult}
// @Failure 404 {object} response.Envelope
// @Router /api/reactions/{id}/check [post]
func (h *Handler) HandleCheck(c *fiber.Ctx) error {
	result, err := h.service.Check(c.Context(), auth.UserID(c), c.Params("id"))
	if err != nil {
		return h.fail(c, err, "", "Failed to check reaction")
	}
	return response.OK(c, result)
}

// HandleUncheck removes the caller's direct check.
// @Summary Uncheck Reaction
// @Description Removes the direct check. checked_by stays "group" when shared through the group.
// @Tags reactions
// @Produce json
// @Param id path string true "Reaction ID"
// @Success 200 {object} response.Envelope{data=CheckResult}
// @Failure 404 {object} response.Envelope
// @Router /api/reactions/{id}/check [delete]
func (h *Handler) HandleUncheck(c *fiber.Ctx) error {
	result, err := h.service.Uncheck(c.Context(), auth.UserID(c), c.Params("id"))
	if err != nil {
		return h.fail(c, err, "", "Failed to uncheck reaction")
	}
	return response.OK(c, result)
}

// HandleGetImage streams a furniture image.
// @Summary Get Furniture Image
// @Tags furnitures
// @Produce octet-stream
// @Param id path string true "Furniture ID"
// @Success 200 {file} binary
// @Failure 404 {object} response.Envelope
// @Router /api/furnitures/{id}/image [get]
func (h *Handler) HandleGetImage(c *fiber.Ctx) error {
	body, key, err := h.service.OpenImage(c.Context(), c.Params("id"))
	if err != nil {
		return h.fail(c, err, "", "Failed to open image")
	}

	if ct := mime.TypeByExtension(path.Ext(key)); ct != "" {
		c.Set(fiber.HeaderContentType, ct)
	}
	c.Set(fiber.HeaderCacheControl, "public, max-age=3600")
	// Fiber closes the stream once written
	return c.SendStream(body)
}

// HandleListTags returns all tags.
// @Summary List Furniture Tags
// @Tags admin
// @Produce json
// @Success 200 {object} response.Envelope{data=[]models.FurnitureTag}
// @Router /api/admin/furniture-tags [get]
func (h *Handler) HandleListTags(c *fiber.Ctx) error {
	tags, err := h.service.ListTags(c.Context())
	if err != nil {
		return h.fail(c, err, "", "Failed to list tags")
	}
	return response.OK(c, tags)
}

// HandleGetTag returns a tag.
// @Summary Get Furniture Tag
// @Tags admin
// @Produce json
// @Param id path string true "Tag ID"
// @Success 200 {object} response.Envelope{data=models.FurnitureTag}
// @Failure 404 {object} response.Envelope
// @Router /api/admin/furniture-tags/{id} [get]
func (h *Handler) HandleGetTag(c *fiber.Ctx) error {
	tag, err := h.service.GetTag(c.Context(), c.Params("id"))
	if err != nil {
		return h.fail(c, err, "", "Failed to get tag")
	}
	return response.OK(c, tag)
}

// HandleCreateTag creates a tag.
// @Summary Create Furniture Tag
// @Tags admin
// @Accept json
// @Produce json
// @Param body body TagRequest true "Tag"
// @Success 201 {object} response.Envelope{data=models.FurnitureTag}
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /api/admin/furniture-tags [post]
func (h *Handler) HandleCreateTag(c *fiber.Ctx) error {
	var req TagRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}
	tag, err := h.service.CreateTag(c.Context(), TagInput(req))
	if err != nil {
		return h.fail(c, err, "Furniture tag", "Failed to create tag")
	}
	return response.Created(c, tag)
}

// HandleUpdateTag updates a tag.
// @Summary Update Furniture Tag
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Tag ID"
// @Param body body TagRequest true "Tag"
// @Success 200 {object} response.Envelope{data=models.FurnitureTag}
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /api/admin/furniture-tags/{id} [put]
func (h *Handler) HandleUpdateTag(c *fiber.Ctx) error {
	var req TagRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}
	tag, err := h.service.UpdateTag(c.Context(), c.Params("id"), TagInput(req))
	if err != nil {
		return h.fail(c, err, "Furniture tag", "Failed to update tag")
	}
	return response.OK(c, tag)
}

// HandleDeleteTag deletes a tag.
// @Summary Delete Furniture Tag
// @Description Furniture with the tag becomes untagged.
// @Tags admin
// @Produce json
// @Param id path string true "Tag ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /api/admin/furniture-tags/{id} [delete]
func (h *Handler) HandleDeleteTag(c *fiber.Ctx) error {
	if err := h.service.DeleteTag(c.Context(), c.Params("id")); err != nil {
		return h.fail(c, err, "", "Failed to delete tag")
	}
	return response.Deleted(c)
}

// HandleListGroups returns all groups.
// @Summary List Furniture Groups
// @Tags admin
// @Produce json
// @Success 200 {object} response.Envelope{data=[]models.FurnitureGroup}
// @Router /api/admin/furniture-groups [get]
func (h *Handler) HandleListGroups(c *fiber.Ctx) error {
	groups, err := h.service.ListGroups(c.Context())
	if err != nil {
		return h.fail(c, err, "", "Failed to list groups")
	}
	return response.OK(c, groups)
}

// HandleGetGroup returns a group.
// @Summary Get Furniture Group
// @Tags admin
// @Produce json
// @Param id path string true "Group ID"
// @Success 200 {object} response.Envelope{data=models.FurnitureGroup}
// @Failure 404 {object} response.Envelope
// @Router /api/admin/furniture-groups/{id} [get]
func (h *Handler) HandleGetGroup(c *fiber.Ctx) error {
	group, err := h.service.GetGroup(c.Context(), c.Params("id"))
	if err != nil {
		return h.fail(c, err, "", "Failed to get group")
	}
	return response.OK(c, group)
}

// HandleCreateGroup creates a group.
// @Summary Create Furniture Group
// @Tags admin
// @Accept json
// @Produce json
// @Param body body GroupRequest true "Group"
// @Success 201 {object} response.Envelope{data=models.FurnitureGroup}
// @Failure 409 {object} response.Envelope
// @Router /api/admin/furniture-groups [post]
func (h *Handler) HandleCreateGroup(c *fiber.Ctx) error {
	var req GroupRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}
	group, err := h.service.CreateGroup(c.Context(), GroupInput(req))
	if err != nil {
		return h.fail(c, err, "Furniture group", "Failed to create group")
	}
	return response.Created(c, group)
}

// HandleUpdateGroup updates a group.
// @Summary Update Furniture Group
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Group ID"
// @Param body body GroupRequest true "Group"
// @Success 200 {object} response.Envelope{data=models.FurnitureGroup}
// @Failure 404 {object} response.Envelope
// @Router /api/admin/furniture-groups/{id} [put]
func (h *Handler) HandleUpdateGroup(c *fiber.Ctx) error {
	var req GroupRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}
	group, err := h.service.UpdateGroup(c.Context(), c.Params("id"), GroupInput(req))
	if err != nil {
		return h.fail(c, err, "Furniture group", "Failed to update group")
	}
	return response.OK(c, group)
}

// HandleDeleteGroup deletes a group.
// @Summary Delete Furniture Group
// @Description Deletes the group and its excluded combinations. Its furniture becomes ungrouped.
// @Tags admin
// @Produce json
// @Param id path string true "Group ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /api/admin/furniture-groups/{id} [delete]
func (h *Handler) HandleDeleteGroup(c *fiber.Ctx) error {
	if err := h.service.DeleteGroup(c.Context(), c.Params("id")); err != nil {
		return h.fail(c, err, "", "Failed to delete group")
	}
	return response.Deleted(c)
}

// HandleGroupCombinations lists the character combinations of a group.
// @Summary Group Combinations
// @Description Every character combination of the group's reactions, with the furniture using it and whether it is excluded.
// @Tags admin
// @Produce json
// @Param id path string true "Group ID"
// @Success 200 {object} response.Envelope{data=[]Combination}
// @Failure 404 {object} response.Envelope
// @Router /api/admin/furniture-groups/{id}/combinations [get]
func (h *Handler) HandleGroupCombinations(c *fiber.Ctx) error {
	combinations, err := h.service.GroupCombinations(c.Context(), c.Params("id"))
	if err != nil {
		return h.fail(c, err, "", "Failed to build combinations")
	}
	return response.OK(c, combinations)
}

// HandleReplaceExcluded replaces the excluded combinations of a group.
// @Summary Replace Excluded Combinations
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Group ID"
// @Param body body ExcludedCombinationsRequest true "Character ID combinations"
// @Success 200 {object} response.Envelope{data=models.FurnitureGroup}
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /api/admin/furniture-groups/{id}/excluded-combinations [put]
func (h *Handler) HandleReplaceExcluded(c *fiber.Ctx) error {
	var req ExcludedCombinationsRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}

	l := logger.WithUser(logger.WithRayID(h.service.logger, c), auth.UserID(c))
	group, err := h.service.ReplaceExcludedCombinations(c.Context(), c.Params("id"), req.Combinations)
	if err != nil {
		l.Debug("Excluded combinations rejected", zap.Error(err))
		return h.fail(c, err, "", "Failed to replace excluded combinations")
	}
	return response.OK(c, group)
}

// HandleListFurnitures returns furniture.
// @Summary List Furniture
// @Tags admin
// @Produce json
// @Param tag_id query string false "Tag ID"
// @Param group_id query string false "Group ID"
// @Param q query string false "Name contains"
// @Success 200 {object} response.Envelope{data=[]models.Furniture}
// @Router /api/admin/furnitures [get]
func (h *Handler) HandleListFurnitures(c *fiber.Ctx) error {
	furnitures, err := h.service.ListFurnitures(c.Context(), FurnitureFilter{
		TagID:   c.Query("tag_id"),
		GroupID: c.Query("group_id"),
		Query:   c.Query("q"),
	})
	if err != nil {
		return h.fail(c, err, "", "Failed to list furniture")
	}
	return response.OK(c, furnitures)
}

// HandleGetFurniture returns a furniture.
// @Summary Get Furniture
// @Tags admin
// @Produce json
// @Param id path string true "Furniture ID"
// @Success 200 {object} response.Envelope{data=models.Furniture}
// @Failure 404 {object} response.Envelope
// @Router /api/admin/furnitures/{id} [get]
func (h *Handler) HandleGetFurniture(c *fiber.Ctx) error {
	f, err := h.service.GetFurniture(c.Context(), c.Params("id"))
	if err != nil {
		return h.fail(c, err, "", "Failed to get furniture")
	}
	return response.OK(c, f)
}

// HandleCreateFurniture creates a furniture.
// @Summary Create Furniture
// @Tags admin
// @Accept json
// @Produce json
// @Param body body FurnitureRequest true "Furniture"
// @Success 201 {object} response.Envelope{data=models.Furniture}
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /api/admin/furnitures [post]
func (h *Handler) HandleCreateFurniture(c *fiber.Ctx) error {
	var req FurnitureRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}
	f, err := h.service.CreateFurniture(c.Context(), FurnitureInput(req))
	if err != nil {
		return h.fail(c, err, "Furniture", "Failed to create furniture")
	}
	return response.Created(c, f)
}

// HandleUpdateFurniture updates a furniture.
// @Summary Update Furniture
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Furniture ID"
// @Param body body FurnitureRequest true "Furniture"
// @Success 200 {object} response.Envelope{data=models.Furniture}
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /api/admin/furnitures/{id} [put]
func (h *Handler) HandleUpdateFurniture(c *fiber.Ctx) error {
	var req FurnitureRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}
	f, err := h.service.UpdateFurniture(c.Context(), c.Params("id"), FurnitureInput(req))
	if err != nil {
		return h.fail(c, err, "Furniture", "Failed to update furniture")
	}
	return response.OK(c, f)
}

// HandleDeleteFurniture deletes a furniture with its reactions and image.
// @Summary Delete Furniture
// @Tags admin
// @Produce json
// @Param id path string true "Furniture ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /api/admin/furnitures/{id} [delete]
func (h *Handler) HandleDeleteFurniture(c *fiber.Ctx) error {
	if err := h.service.DeleteFurniture(c.Context(), c.Params("id")); err != nil {
		return h.fail(c, err, "", "Failed to delete furniture")
	}
	return response.Deleted(c)
}

// HandleUploadImage stores the image of a furniture.
// @Summary Upload Furniture Image
// @Tags admin
// @Accept mpfd
// @Produce json
// @Param id path string true "Furniture ID"
// @Param file formData file true "Image (png, jpeg, webp)"
// @Success 200 {object} response.Envelope{data=models.Furniture}
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /api/admin/furnitures/{id}/image [put]
func (h *Handler) HandleUploadImage(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return response.ValidationFailed(c, map[string]string{"file": "is required"})
	}
	if file.Size > maxImageSize {
		return response.ValidationFailed(c, map[string]string{"file": "must be at most 5 MB"})
	}
	contentType := file.Header.Get(fiber.HeaderContentType)
	if !isImageType(contentType) {
		return response.ValidationFailed(c, map[string]string{"file": "must be one of [image/png image/jpeg image/webp]"})
	}

	body, err := file.Open()
	if err != nil {
		return response.Internal(c, h.service.logger, "Failed to read upload", err)
	}
	defer body.Close()

	f, err := h.service.UploadImage(c.Context(), c.Params("id"), Image{
		Filename:    file.Filename,
		ContentType: contentType,
		Size:        file.Size,
		Body:        body,
	})
	if err != nil {
		return h.fail(c, err, "", "Failed to upload image")
	}
	return response.OK(c, f)
}

// HandleCreateReaction adds a reaction to a furniture.
// @Summary Create Reaction
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Furniture ID"
// @Param body body ReactionRequest true "Character IDs"
// @Success 201 {object} response.Envelope{data=models.FurnitureReaction}
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /api/admin/furnitures/{id}/reactions [post]
func (h *Handler) HandleCreateReaction(c *fiber.Ctx) error {
	var req ReactionRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}
	r, err := h.service.CreateReaction(c.Context(), c.Params("id"), req.CharacterIDs)
	if err != nil {
		return h.fail(c, err, "Reaction", "Failed to create reaction")
	}
	return response.Created(c, r)
}

// HandleUpdateReaction replaces the characters of a reaction.
// @Summary Update Reaction
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Reaction ID"
// @Param body body ReactionRequest true "Character IDs"
// @Success 200 {object} response.Envelope{data=models.FurnitureReaction}
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /api/admin/reactions/{id} [put]
func (h *Handler) HandleUpdateReaction(c *fiber.Ctx) error {
	var req ReactionRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}
	r, err := h.service.UpdateReaction(c.Context(), c.Params("id"), req.CharacterIDs)
	if err != nil {
		return h.fail(c, err, "Reaction", "Failed to update reaction")
	}
	return response.OK(c, r)
}

// HandleDeleteReaction deletes a reaction.
// @Summary Delete Reaction
// @Tags admin
// @Produce json
// @Param id path string true "Reaction ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /api/admin/reactions/{id} [delete]
func (h *Handler) HandleDeleteReaction(c *fiber.Ctx) error {
	if err := h.service.DeleteReaction(c.Context(), c.Params("id")); err != nil {
		return h.fail(c, err, "", "Failed to delete reaction")
	}
	return response.Deleted(c)
}

func isImageType(contentType string) bool {
	switch contentType {
	case "image/png", "image/jpeg", "image/webp":
		return true
	}
	return false
}
