// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind the Client interface. Furniture images
// are stored under FurniturePrefix in the configured bucket, and the
// integrity check verifies that the bucket exists and that no image is
// orphaned.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (as seen in core/storage/mocks).
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	key := storage.FurnitureImageKey(furnitureID, file.Filename)
//	_, err = client.PutObject(ctx, cfg.Storage.Bucket, key, r, size, minio.PutObjectOptions{})
package storage
