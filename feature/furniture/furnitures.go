package furniture

import (
	"context"
	"fmt"
	"io"
	"strings"

	"prsk-lab/core/storage"
	"prsk-lab/feature/models"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// FurnitureInput holds the writable fields of a furniture.
type FurnitureInput struct {
	Name    string
	TagID   *string
	GroupID *string
}

// FurnitureFilter narrows the admin furniture list.
type FurnitureFilter struct {
	TagID   string
	GroupID string
	Query   string
}

// likeEscaper makes LIKE wildcards in a search term match literally.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// Image is an uploaded furniture image.
type Image struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

func preloadFurniture(db *gorm.DB) *gorm.DB {
	return db.Preload("Tag").Preload("Group").Preload("Reactions.Characters")
}

// ListFurnitures returns furniture with tag, group and reactions, ordered by name.
func (s *Service) ListFurnitures(ctx context.Context, filter FurnitureFilter) ([]models.Furniture, error) {
	q := preloadFurniture(s.db.WithContext(ctx)).Order("name")
	if filter.TagID != "" {
		q = q.Where("tag_id = ?", filter.TagID)
	}
	if filter.GroupID != "" {
		q = q.Where("group_id = ?", filter.GroupID)
	}
	if filter.Query != "" {
		q = q.Where("name LIKE ? ESCAPE '!'", "%"+likeEscaper.Replace(filter.Query)+"%")
	}

	var furnitures []models.Furniture
	if err := q.Find(&furnitures).Error; err != nil {
		return nil, fmt.Errorf("failed to list furniture: %w", err)
	}
	for i := range furnitures {
		sortReactions(furnitures[i].Reactions)
	}
	return furnitures, nil
}

// GetFurniture returns the furniture with id.
func (s *Service) GetFurniture(ctx context.Context, id string) (*models.Furniture, error) {
	var f models.Furniture
	if err := preloadFurniture(s.db.WithContext(ctx)).First(&f, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrFurnitureNotFound, "get furniture")
	}
	sortReactions(f.Reactions)
	return &f, nil
}

// CreateFurniture creates a furniture. The tag and group must exist.
func (s *Service) CreateFurniture(ctx context.Context, in FurnitureInput) (*models.Furniture, error) {
	f := models.Furniture{Name: in.Name, TagID: in.TagID, GroupID: in.GroupID}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkRefs(tx, in); err != nil {
			return err
		}
		if err := tx.Create(&f).Error; err != nil {
			return fmt.Errorf("failed to create furniture: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetFurniture(ctx, f.ID)
}

// UpdateFurniture replaces the fields of the furniture with id.
func (s *Service) UpdateFurniture(ctx context.Context, id string, in FurnitureInput) (*models.Furniture, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureExists(tx, &models.Furniture{}, id, ErrFurnitureNotFound); err != nil {
			return err
		}
		if err := checkRefs(tx, in); err != nil {
			return err
		}
		if err := tx.Model(&models.Furniture{ID: id}).Updates(map[string]any{
			"name":     in.Name,
			"tag_id":   in.TagID,
			"group_id": in.GroupID,
		}).Error; err != nil {
			return fmt.Errorf("failed to update furniture: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetFurniture(ctx, id)
}

// DeleteFurniture deletes the furniture with id, its reactions and its image.
func (s *Service) DeleteFurniture(ctx context.Context, id string) error {
	var imageKey *string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var f models.Furniture
		if err := tx.First(&f, "id = ?", id).Error; err != nil {
			return notFound(err, ErrFurnitureNotFound, "get furniture")
		}
		imageKey = f.ImageKey

		if err := tx.Delete(&f).Error; err != nil {
			return fmt.Errorf("failed to delete furniture: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if imageKey != nil {
		s.removeImage(ctx, *imageKey)
	}
	return nil
}

// UploadImage stores img in object storage and points the furniture at it.
func (s *Service) UploadImage(ctx context.Context, id string, img Image) (*models.Furniture, error) {
	f, err := s.GetFurniture(ctx, id)
	if err != nil {
		return nil, err
	}

	key := storage.FurnitureImageKey(f.ID, img.Filename)
	if _, err := s.client.PutObject(ctx, s.storage.Bucket, key, img.Body, img.Size, minio.PutObjectOptions{
		ContentType: img.ContentType,
	}); err != nil {
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}

	previous := f.ImageKey
	if err := s.db.WithContext(ctx).Model(&models.Furniture{ID: f.ID}).Update("image_key", key).Error; err != nil {
		return nil, fmt.Errorf("failed to save image key: %w", err)
	}
	f.ImageKey = &key

	// A new extension means a new key; drop the old object
	if previous != nil && *previous != key {
		s.removeImage(ctx, *previous)
	}

	s.logger.Info("Furniture image uploaded",
		zap.String("furniture_id", f.ID),
		zap.String("key", key),
		zap.Int64("size", img.Size),
	)
	return f, nil
}

// OpenImage returns the image of the furniture with id. The caller must
// close the reader.
func (s *Service) OpenImage(ctx context.Context, id string) (io.ReadCloser, string, error) {
	var f models.Furniture
	if err := s.db.WithContext(ctx).Select("id", "image_key").First(&f, "id = ?", id).Error; err != nil {
		return nil, "", notFound(err, ErrFurnitureNotFound, "get furniture")
	}
	if f.ImageKey == nil || *f.ImageKey == "" {
		return nil, "", ErrImageNotFound
	}

	obj, err := s.client.GetObject(ctx, s.storage.Bucket, *f.ImageKey, minio.GetObjectOptions{})
	if storage.IsNotFound(err) {
		s.logger.Warn("Furniture image missing from storage", zap.String("key", *f.ImageKey))
		return nil, "", ErrImageNotFound
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to get image: %w", err)
	}
	return obj, *f.ImageKey, nil
}

// ImageURL returns the public URL of the furniture image, if any.
func (s *Service) ImageURL(f models.Furniture) string {
	if f.ImageKey == nil {
		return ""
	}
	return s.storage.ObjectURL(*f.ImageKey)
}

func (s *Service) removeImage(ctx context.Context, key string) {
	if err := s.client.RemoveObject(ctx, s.storage.Bucket, key, minio.RemoveObjectOptions{}); err != nil {
		s.logger.Warn("Failed to remove furniture image", zap.String("key", key), zap.Error(err))
	}
}

func checkRefs(tx *gorm.DB, in FurnitureInput) error {
	if in.TagID != nil {
		if err := ensureExists(tx, &models.FurnitureTag{}, *in.TagID, ErrTagNotFound); err != nil {
			return err
		}
	}
	if in.GroupID != nil {
		if err := ensureExists(tx, &models.FurnitureGroup{}, *in.GroupID, ErrGroupNotFound); err != nil {
			return err
		}
	}
	return nil
}
