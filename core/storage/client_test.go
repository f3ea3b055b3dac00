package storage_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"prsk-lab/core/storage"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	t.Run("ValidConfig", func(t *testing.T) {
		cfg := storage.Config{
			Endpoint:  "localhost:9000",
			AccessKey: "testkey",
			SecretKey: "testsecret",
			UseSSL:    false,
			Bucket:    "test-bucket",
			Region:    "us-east-1",
		}

		client, err := storage.NewClient(cfg)
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("EndpointWithHTTP", func(t *testing.T) {
		cfg := storage.Config{
			Endpoint:  "http://localhost:9000",
			AccessKey: "testkey",
			SecretKey: "testsecret",
		}

		client, err := storage.NewClient(cfg)
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("EndpointWithHTTPS", func(t *testing.T) {
		cfg := storage.Config{
			Endpoint:  "https://s3.amazonaws.com",
			AccessKey: "testkey",
			SecretKey: "testsecret",
			UseSSL:    true,
			Region:    "us-east-1",
		}

		client, err := storage.NewClient(cfg)
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})
}

func TestFurnitureImageKey(t *testing.T) {
	assert.Equal(t, "furnitures/abc.png", storage.FurnitureImageKey("abc", "Sofa.PNG"))
	assert.Equal(t, "furnitures/abc", storage.FurnitureImageKey("abc", "noext"))
}

func TestObjectURL(t *testing.T) {
	cfg := storage.Config{}
	assert.Empty(t, cfg.ObjectURL("furnitures/a.png"))

	cfg.PublicURL = "https://cdn.example.com/"
	assert.Equal(t, "https://cdn.example.com/furnitures/a.png", cfg.ObjectURL("furnitures/a.png"))
	assert.Empty(t, cfg.ObjectURL(""))
}

func TestGetObject_MissingKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	client, err := storage.NewClient(storage.Config{
		Endpoint:  srv.URL,
		AccessKey: "testkey",
		SecretKey: "testsecret",
		Region:    "us-east-1",
	})
	require.NoError(t, err)

	obj, err := client.GetObject(context.Background(), "prsk-lab", "furnitures/gone.png", minio.GetObjectOptions{})
	assert.Nil(t, obj)
	assert.ErrorIs(t, err, storage.ErrObjectNotFound)
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, storage.IsNotFound(minio.ErrorResponse{Code: "NoSuchKey"}))
	assert.True(t, storage.IsNotFound(minio.ErrorResponse{Code: "NoSuchBucket"}))
	assert.True(t, storage.IsNotFound(fmt.Errorf("wrapped: %w", storage.ErrObjectNotFound)))
	assert.False(t, storage.IsNotFound(minio.ErrorResponse{Code: "AccessDenied"}))
	assert.False(t, storage.IsNotFound(errors.New("connection reset")))
	assert.False(t, storage.IsNotFound(nil))
}
