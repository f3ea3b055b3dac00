package integrity_test

import (
	"net/http/httptest"
	"testing"

	"prsk-lab/core/loader"
	"prsk-lab/core/response/responsetest"
	"prsk-lab/core/server"
	"prsk-lab/core/storage"
	"prsk-lab/core/storage/mocks"
	"prsk-lab/feature/integrity"
	"prsk-lab/feature/integrity/checks"
	"prsk-lab/feature/models/modelstest"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestApp(t *testing.T) (*fiber.App, *mocks.Client) {
	t.Helper()

	db := modelstest.NewSeededDB(t)
	client := new(mocks.Client)
	feature := integrity.NewFeature(db, client, storage.Config{Bucket: bucket}, zap.NewNop())

	assert.Equal(t, "integrity", feature.Name())
	assert.True(t, feature.IsEnabled())

	app := server.New(server.Config{}, zap.NewNop())
	require.NoError(t, feature.Load(loader.Routes{Public: app, API: app.Group("/api"), Admin: app.Group("/api/admin")}))
	return app, client
}

func TestHandleIntegrityCheck(t *testing.T) {
	app, client := setupTestApp(t)
	client.On("BucketExists", mock.Anything, bucket).Return(true, nil)
	client.On("ListObjects", mock.Anything, bucket, mock.Anything).Return(objects("furnitures/stray.png"))

	resp, err := app.Test(httptest.NewRequest("GET", "/api/admin/integrity", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var report integrity.Report
	body := responsetest.Data(t, resp, &report)
	assert.True(t, body.Success)
	assert.False(t, report.Healthy)
	assert.True(t, report.Schema.Matched)
	assert.Equal(t, []string{"furnitures/stray.png"}, report.Storage.OrphanImages)
}

func TestHandleSchemaCheck(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/admin/integrity/schema", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var report checks.SchemaReport
	responsetest.Data(t, resp, &report)
	assert.True(t, report.Matched)
	assert.Contains(t, report.Tables, "furniture_groups")
}

func TestHandleStorageCheck_Failure(t *testing.T) {
	app, client := setupTestApp(t)
	client.On("BucketExists", mock.Anything, bucket).Return(false, assert.AnError)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/admin/integrity/storage", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	body := responsetest.Decode(t, resp)
	assert.False(t, body.Success)
	assert.Equal(t, "Internal server error", body.Message)
}
