package furniture_test

import (
	"bytes"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"prsk-lab/core/loader"
	"prsk-lab/core/middleware/auth/authtest"
	"prsk-lab/core/response/responsetest"
	"prsk-lab/core/server"
	"prsk-lab/core/storage"
	"prsk-lab/core/storage/mocks"
	"prsk-lab/feature/furniture"
	"prsk-lab/feature/models"
	"prsk-lab/feature/models/modelstest"
	"prsk-lab/feature/setting"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newApp(t *testing.T, db *gorm.DB, client storage.Client, userID string) *fiber.App {
	t.Helper()

	logger := zap.NewNop()
	app := server.New(server.Config{}, logger)
	app.Use(authtest.As(userID, models.RoleAdmin))

	f := furniture.NewFeature(db, logger, client, storage.Config{Bucket: "prsk-lab"}, setting.NewService(db, logger))
	require.NoError(t, f.Load(loader.Routes{Public: app, API: app.Group("/api"), Admin: app.Group("/api/admin")}))
	return app
}

func imageRequest(t *testing.T, target, filename, contentType string, content []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("PUT", target, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestTagHandlers(t *testing.T) {
	db := modelstest.NewSeededDB(t)
	admin := modelstest.User(t, db, "admin", models.RoleAdmin)
	app := newApp(t, db, new(mocks.Client), admin.ID)

	var tag models.FurnitureTag

	t.Run("Create", func(t *testing.T) {
		resp, err := app.Test(responsetest.JSON(t, "POST", "/api/admin/furniture-tags", map[string]any{"name": "Desk", "priority": 1}))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

		body := responsetest.Data(t, resp, &tag)
		assert.True(t, body.Success)
		assert.Equal(t, "Desk", tag.Name)
	})

	t.Run("Duplicate", func(t *testing.T) {
		resp, err := app.Test(responsetest.JSON(t, "POST", "/api/admin/furniture-tags", map[string]any{"name": "Desk"}))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
		assert.Equal(t, "Furniture tag already exists", responsetest.Decode(t, resp).Message)
	})

	t.Run("Validation", func(t *testing.T) {
		resp, err := app.Test(responsetest.JSON(t, "POST", "/api/admin/furniture-tags", map[string]any{"priority": -1}))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

		body := responsetest.Decode(t, resp)
		assert.False(t, body.Success)
		assert.Equal(t, "is required", body.Errors["name"])
		assert.Equal(t, "must be greater than or equal to 0", body.Errors["priority"])
	})

	t.Run("InvalidBody", func(t *testing.T) {
		resp, err := app.Test(responsetest.Raw("POST", "/api/admin/furniture-tags", "{"))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Invalid request body", responsetest.Decode(t, resp).Message)
	})

	t.Run("Update", func(t *testing.T) {
		resp, err := app.Test(responsetest.JSON(t, "PUT", "/api/admin/furniture-tags/"+tag.ID, map[string]any{"name": "Table"}))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var updated models.FurnitureTag
		responsetest.Data(t, resp, &updated)
		assert.Equal(t, "Table", updated.Name)
		assert.Zero(t, updated.Priority)
	})

	t.Run("List", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/api/admin/furniture-tags", nil))
		require.NoError(t, err)

		var tags []models.FurnitureTag
		responsetest.Data(t, resp, &tags)
		require.Len(t, tags, 1)
	})

	t.Run("Delete", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("DELETE", "/api/admin/furniture-tags/"+tag.ID, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		resp, err = app.Test(httptest.NewRequest("GET", "/api/admin/furniture-tags/"+tag.ID, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "Furniture tag not found", responsetest.Decode(t, resp).Message)
	})
}

func TestGroupHandlers(t *testing.T) {
	db := modelstest.NewSeededDB(t)
	admin := modelstest.User(t, db, "admin", models.RoleAdmin)
	app := newApp(t, db, new(mocks.Client), admin.ID)

	ichika := modelstest.Character(t, db, "ichika")
	saki := modelstest.Character(t, db, "saki")

	resp, err := app.Test(responsetest.JSON(t, "POST", "/api/admin/furniture-groups", map[string]any{"name": "Classroom"}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var group models.FurnitureGroup
	responsetest.Data(t, resp, &group)

	modelstest.Furniture(t, db, "Classroom Desk", &group.ID, []models.Character{ichika, saki})

	t.Run("ReplaceExcluded", func(t *testing.T) {
		resp, err := app.Test(responsetest.JSON(t, "PUT", "/api/admin/furniture-groups/"+group.ID+"/excluded-combinations", map[string]any{
			"combinations": [][]string{{saki.ID, ichika.ID}},
		}))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var updated models.FurnitureGroup
		responsetest.Data(t, resp, &updated)
		require.Len(t, updated.ExcludedCombinations, 1)
		assert.Equal(t, "ichika", updated.ExcludedCombinations[0].Characters[0].Code)
	})

	t.Run("Combinations", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/api/admin/furniture-groups/"+group.ID+"/combinations", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var combinations []furniture.Combination
		responsetest.Data(t, resp, &combinations)
		require.Len(t, combinations, 1)
		assert.True(t, combinations[0].Excluded)
		assert.Equal(t, 1, combinations[0].FurnitureCount)
	})

	t.Run("DuplicateCombination", func(t *testing.T) {
		resp, err := app.Test(responsetest.JSON(t, "PUT", "/api/admin/furniture-groups/"+group.ID+"/excluded-combinations", map[string]any{
			"combinations": [][]string{{ichika.ID}, {ichika.ID}},
		}))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "duplicates combination 0", responsetest.Decode(t, resp).Errors["combinations[1]"])
	})

	t.Run("EmptyCombination", func(t *testing.T) {
		resp, err := app.Test(responsetest.JSON(t, "PUT", "/api/admin/furniture-groups/"+group.ID+"/excluded-combinations", map[string]any{
			"combinations": [][]string{{}},
		}))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, responsetest.Decode(t, resp).Errors, "combinations[0]")
	})

	t.Run("UnknownCharacter", func(t *testing.T) {
		resp, err := app.Test(responsetest.JSON(t, "PUT", "/api/admin/furniture-groups/"+group.ID+"/excluded-combinations", map[string]any{
			"combinations": [][]string{{uuid.NewString()}},
		}))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "Character not found", responsetest.Decode(t, resp).Message)
	})

	t.Run("UnknownGroup", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/api/admin/furniture-groups/"+uuid.NewString()+"/combinations", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "Furniture group not found", responsetest.Decode(t, resp).Message)
	})
}

func TestFurnitureAndReactionHandlers(t *testing.T) {
	db := modelstest.NewSeededDB(t)
	admin := modelstest.User(t, db, "admin", models.RoleAdmin)
	app := newApp(t, db, new(mocks.Client), admin.ID)
	emu := modelstest.Character(t, db, "emu")
	nene := modelstest.Character(t, db, "nene")

	resp, err := app.Test(responsetest.JSON(t, "POST", "/api/admin/furnitures", map[string]any{"name": "Robot"}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var item models.Furniture
	responsetest.Data(t, resp, &item)

	var reaction models.FurnitureReaction

	t.Run("UnknownTag", func(t *testing.T) {
		resp, err := app.Test(responsetest.JSON(t, "POST", "/api/admin/furnitures", map[string]any{"name": "Ghost", "tag_id": uuid.NewString()}))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})

	t.Run("CreateReaction", func(t *testing.T) {
		resp, err := app.Test(responsetest.JSON(t, "POST", "/api/admin/furnitures/"+item.ID+"/reactions", map[string]any{
			"character_ids": []string{nene.ID, emu.ID},
		}))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
		responsetest.Data(t, resp, &reaction)
		require.Len(t, reaction.Characters, 2)
		assert.Equal(t, "emu", reaction.Characters[0].Code)
	})

	t.Run("DuplicateReaction", func(t *testing.T) {
		resp, err := app.Test(responsetest.JSON(t, "POST", "/api/admin/furnitures/"+item.ID+"/reactions", map[string]any{
			"character_ids": []string{emu.ID, nene.ID},
		}))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
		assert.Equal(t, "Reaction already exists", responsetest.Decode(t, resp).Message)
	})

	t.Run("ReactionValidation", func(t *testing.T) {
		resp, err := app.Test(responsetest.JSON(t, "POST", "/api/admin/furnitures/"+item.ID+"/reactions", map[string]any{
			"character_ids": []string{emu.ID, emu.ID},
		}))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "must not contain duplicates", responsetest.Decode(t, resp).Errors["character_ids"])
	})

	t.Run("CheckAndList", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("POST", "/api/reactions/"+reaction.ID+"/check", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var result furniture.CheckResult
		responsetest.Data(t, resp, &result)
		require.NotNil(t, result.CheckedBy)
		assert.Equal(t, furniture.CheckedDirect, *result.CheckedBy)

		resp, err = app.Test(httptest.NewRequest("GET", "/api/reactions?unchecked=true", nil))
		require.NoError(t, err)
		var views []furniture.FurnitureView
		responsetest.Data(t, resp, &views)
		assert.Empty(t, views)

		resp, err = app.Test(httptest.NewRequest("DELETE", "/api/reactions/"+reaction.ID+"/check", nil))
		require.NoError(t, err)
		responsetest.Data(t, resp, &result)
		assert.Nil(t, result.CheckedBy)
	})

	t.Run("DeleteFurnitureCascades", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("DELETE", "/api/admin/furnitures/"+item.ID, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		resp, err = app.Test(httptest.NewRequest("DELETE", "/api/admin/reactions/"+reaction.ID, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "Reaction not found", responsetest.Decode(t, resp).Message)
	})
}

func TestImageHandlers(t *testing.T) {
	db := modelstest.NewSeededDB(t)
	admin := modelstest.User(t, db, "admin", models.RoleAdmin)
	client := new(mocks.Client)
	app := newApp(t, db, client, admin.ID)

	item, _ := modelstest.Furniture(t, db, "Poster", nil)
	key := storage.FurniturePrefix + item.ID + ".png"

	t.Run("NoImage", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/api/furnitures/"+item.ID+"/image", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "Image not found", responsetest.Decode(t, resp).Message)
	})

	t.Run("Upload", func(t *testing.T) {
		client.On("PutObject", mock.Anything, "prsk-lab", key, mock.Anything, int64(4), mock.Anything).
			Return(minio.UploadInfo{Key: key}, nil).Once()

		resp, err := app.Test(imageRequest(t, "/api/admin/furnitures/"+item.ID+"/image", "poster.PNG", "image/png", []byte("\x89PNG")))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var updated models.Furniture
		responsetest.Data(t, resp, &updated)
		require.NotNil(t, updated.ImageKey)
		assert.Equal(t, key, *updated.ImageKey)
	})

	t.Run("RejectsType", func(t *testing.T) {
		resp, err := app.Test(imageRequest(t, "/api/admin/furnitures/"+item.ID+"/image", "poster.gif", "image/gif", []byte("GIF8")))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, responsetest.Decode(t, resp).Errors["file"], "must be one of")
	})

	t.Run("Get", func(t *testing.T) {
		client.On("GetObject", mock.Anything, "prsk-lab", key, mock.Anything).
			Return(io.NopCloser(strings.NewReader("\x89PNG")), nil).Once()

		resp, err := app.Test(httptest.NewRequest("GET", "/api/furnitures/"+item.ID+"/image", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))

		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, "\x89PNG", string(raw))
	})

	t.Run("ObjectGone", func(t *testing.T) {
		client.On("GetObject", mock.Anything, "prsk-lab", key, mock.Anything).
			Return(nil, storage.ErrObjectNotFound).Once()

		resp, err := app.Test(httptest.NewRequest("GET", "/api/furnitures/"+item.ID+"/image", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "Image not found", responsetest.Decode(t, resp).Message)
	})

	t.Run("StorageDown", func(t *testing.T) {
		client.On("GetObject", mock.Anything, "prsk-lab", key, mock.Anything).
			Return(nil, errors.New("connection reset")).Once()

		resp, err := app.Test(httptest.NewRequest("GET", "/api/furnitures/"+item.ID+"/image", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	})

	t.Run("DeleteRemovesImage", func(t *testing.T) {
		client.On("RemoveObject", mock.Anything, "prsk-lab", key, mock.Anything).
			Return(errors.New("storage down")).Once()

		// A storage failure does not fail the delete
		resp, err := app.Test(httptest.NewRequest("DELETE", "/api/admin/furnitures/"+item.ID, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	client.AssertExpectations(t)
}

func TestInternalError(t *testing.T) {
	db, sqlMock := modelstest.NewMockDB(t)
	app := newApp(t, db, new(mocks.Client), uuid.NewString())

	sqlMock.ExpectQuery("SELECT (.+) FROM `furniture_tags`").WillReturnError(errors.New("connection reset"))

	resp, err := app.Test(httptest.NewRequest("GET", "/api/admin/furniture-tags", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	body := responsetest.Decode(t, resp)
	assert.False(t, body.Success)
	assert.Equal(t, "Internal server error", body.Message)
	assert.NotContains(t, body.Message, "connection reset")
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}
