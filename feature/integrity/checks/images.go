package checks

import (
	"context"
	"fmt"
	"sort"

	"prsk-lab/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// MissingImage is a furniture whose image key has no object.
type MissingImage struct {
	FurnitureID string `json:"furniture_id"`
	Key         string `json:"key"`
}

// CheckBucket reports whether bucket exists.
func CheckBucket(ctx context.Context, client storage.Client, bucket string) (bool, error) {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return false, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	return exists, nil
}

// FixBucket creates bucket.
func FixBucket(ctx context.Context, client storage.Client, bucket, region string, logger *zap.Logger) error {
	if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: region}); err != nil {
		logger.Error("Failed to create bucket", zap.String("bucket", bucket), zap.Error(err))
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	logger.Info("Created missing bucket", zap.String("bucket", bucket))
	return nil
}

// ListImageKeys returns the keys of every stored furniture image.
func ListImageKeys(ctx context.Context, client storage.Client, bucket string) ([]string, error) {
	opts := minio.ListObjectsOptions{
		Prefix:    storage.FurniturePrefix,
		Recursive: true,
	}

	keys := []string{}
	for obj := range client.ListObjects(ctx, bucket, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list images: %w", obj.Err)
		}
		// Folder markers
		if obj.Key == storage.FurniturePrefix {
			continue
		}
		keys = append(keys, obj.Key)
	}
	return keys, nil
}

// DiffImages compares the image keys referenced by furniture (key to
// furniture ID) with the stored keys.
func DiffImages(referenced map[string]string, stored []string) ([]MissingImage, []string) {
	storedSet := make(map[string]struct{}, len(stored))
	orphans := []string{}
	for _, key := range stored {
		storedSet[key] = struct{}{}
		if _, ok := referenced[key]; !ok {
			orphans = append(orphans, key)
		}
	}

	missing := []MissingImage{}
	for key, id := range referenced {
		if _, ok := storedSet[key]; !ok {
			missing = append(missing, MissingImage{FurnitureID: id, Key: key})
		}
	}

	sort.Strings(orphans)
	sort.Slice(missing, func(i, j int) bool { return missing[i].Key < missing[j].Key })
	return missing, orphans
}

// RemoveOrphans deletes keys from bucket.
func RemoveOrphans(ctx context.Context, client storage.Client, bucket string, logger *zap.Logger, keys []string) error {
	objects := make(chan minio.ObjectInfo, len(keys))
	for _, key := range keys {
		objects <- minio.ObjectInfo{Key: key}
	}
	close(objects)

	var firstErr error
	for rErr := range client.RemoveObjects(ctx, bucket, objects, minio.RemoveObjectsOptions{}) {
		logger.Error("Failed to remove orphan image", zap.String("key", rErr.ObjectName), zap.Error(rErr.Err))
		if firstErr == nil {
			firstErr = fmt.Errorf("failed to remove %s: %w", rErr.ObjectName, rErr.Err)
		}
	}
	if firstErr != nil {
		return firstErr
	}
	logger.Info("Removed orphan images", zap.Int("count", len(keys)))
	return nil
}
