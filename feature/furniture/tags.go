package furniture

import (
	"context"
	"fmt"

	"prsk-lab/feature/models"

	"gorm.io/gorm"
)

// TagInput holds the writable fields of a tag.
type TagInput struct {
	Name     string
	Priority int
}

// ListTags returns every tag ordered by priority, then name.
func (s *Service) ListTags(ctx context.Context) ([]models.FurnitureTag, error) {
	var tags []models.FurnitureTag
	if err := s.db.WithContext(ctx).Order("priority, name").Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return tags, nil
}

// GetTag returns the tag with id.
func (s *Service) GetTag(ctx context.Context, id string) (*models.FurnitureTag, error) {
	var tag models.FurnitureTag
	if err := s.db.WithContext(ctx).First(&tag, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrTagNotFound, "get tag")
	}
	return &tag, nil
}

// CreateTag creates a tag. A duplicate name returns gorm.ErrDuplicatedKey.
func (s *Service) CreateTag(ctx context.Context, in TagInput) (*models.FurnitureTag, error) {
	tag := models.FurnitureTag{Name: in.Name, Priority: in.Priority}
	if err := s.db.WithContext(ctx).Create(&tag).Error; err != nil {
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}
	return &tag, nil
}

// UpdateTag replaces the fields of the tag with id.
func (s *Service) UpdateTag(ctx context.Context, id string, in TagInput) (*models.FurnitureTag, error) {
	tag, err := s.GetTag(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(tag).Updates(map[string]any{
		"name":     in.Name,
		"priority": in.Priority,
	}).Error; err != nil {
		return nil, fmt.Errorf("failed to update tag: %w", err)
	}
	tag.Name = in.Name
	tag.Priority = in.Priority
	return tag, nil
}

// DeleteTag deletes the tag with id. Its furniture becomes untagged.
func (s *Service) DeleteTag(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&models.FurnitureTag{}, "id = ?", id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete tag: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrTagNotFound
		}
		return nil
	})
}
