package furniture

import (
	"context"
	"fmt"
	"sort"

	"prsk-lab/feature/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// GroupInput holds the writable fields of a group.
type GroupInput struct {
	Name     string
	Priority int
}

func preloadExcluded(db *gorm.DB) *gorm.DB {
	return db.Preload("ExcludedCombinations.Characters")
}

// ListGroups returns every group with its excluded combinations.
func (s *Service) ListGroups(ctx context.Context) ([]models.FurnitureGroup, error) {
	var groups []models.FurnitureGroup
	if err := preloadExcluded(s.db.WithContext(ctx)).Order("priority, name").Find(&groups).Error; err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	for i := range groups {
		sortExcluded(groups[i].ExcludedCombinations)
	}
	return groups, nil
}

// GetGroup returns the group with id and its excluded combinations.
func (s *Service) GetGroup(ctx context.Context, id string) (*models.FurnitureGroup, error) {
	var group models.FurnitureGroup
	if err := preloadExcluded(s.db.WithContext(ctx)).First(&group, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrGroupNotFound, "get group")
	}
	sortExcluded(group.ExcludedCombinations)
	return &group, nil
}

// CreateGroup creates a group. A duplicate name returns gorm.ErrDuplicatedKey.
func (s *Service) CreateGroup(ctx context.Context, in GroupInput) (*models.FurnitureGroup, error) {
	group := models.FurnitureGroup{Name: in.Name, Priority: in.Priority}
	if err := s.db.WithContext(ctx).Create(&group).Error; err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}
	return &group, nil
}

// UpdateGroup replaces the fields of the group with id.
func (s *Service) UpdateGroup(ctx context.Context, id string, in GroupInput) (*models.FurnitureGroup, error) {
	group, err := s.GetGroup(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(group).Updates(map[string]any{
		"name":     in.Name,
		"priority": in.Priority,
	}).Error; err != nil {
		return nil, fmt.Errorf("failed to update group: %w", err)
	}
	group.Name = in.Name
	group.Priority = in.Priority
	return group, nil
}

// DeleteGroup deletes the group with id and its excluded combinations.
// Its furniture becomes ungrouped.
func (s *Service) DeleteGroup(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&models.FurnitureGroup{}, "id = ?", id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete group: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrGroupNotFound
		}
		return nil
	})
}

// GroupCombinations lists every character combination of the group's
// reactions, plus excluded combinations no reaction uses anymore.
func (s *Service) GroupCombinations(ctx context.Context, id string) ([]Combination, error) {
	group, err := s.GetGroup(ctx, id)
	if err != nil {
		return nil, err
	}

	var furnitures []models.Furniture
	if err := s.db.WithContext(ctx).
		Preload("Reactions.Characters").
		Where("group_id = ?", id).
		Order("name").
		Find(&furnitures).Error; err != nil {
		return nil, fmt.Errorf("failed to load group furniture: %w", err)
	}

	return BuildCombinations(furnitures, group.ExcludedCombinations), nil
}

// ReplaceExcludedCombinations replaces the excluded combinations of the group.
// Every combination must be non-empty, reference existing characters and
// appear once. An empty list clears the exclusions.
func (s *Service) ReplaceExcludedCombinations(ctx context.Context, id string, combinations [][]string) (*models.FurnitureGroup, error) {
	seen := make(map[string]int, len(combinations))
	keys := make([]string, len(combinations))
	for i, ids := range combinations {
		key := models.CombinationKey(ids)
		if key == "" {
			return nil, &CombinationError{Index: i, Reason: "must contain at least one character"}
		}
		if first, dup := seen[key]; dup {
			return nil, &CombinationError{Index: i, Reason: fmt.Sprintf("duplicates combination %d", first)}
		}
		seen[key] = i
		keys[i] = key
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureExists(tx, &models.FurnitureGroup{}, id, ErrGroupNotFound); err != nil {
			return err
		}

		created := make([]models.FurnitureGroupExcludedCombination, 0, len(keys))
		for _, key := range keys {
			characters, err := loadCharacters(tx, models.SplitCombinationKey(key))
			if err != nil {
				return err
			}
			created = append(created, models.FurnitureGroupExcludedCombination{GroupID: id, Characters: characters})
		}

		if err := tx.Where("group_id = ?", id).Delete(&models.FurnitureGroupExcludedCombination{}).Error; err != nil {
			return fmt.Errorf("failed to clear excluded combinations: %w", err)
		}
		if len(created) == 0 {
			return nil
		}
		// Characters exist already; only the join rows are written
		if err := tx.Omit("Characters.*").Create(&created).Error; err != nil {
			return fmt.Errorf("failed to create excluded combinations: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Excluded combinations replaced",
		zap.String("group_id", id),
		zap.Int("count", len(keys)),
	)
	return s.GetGroup(ctx, id)
}

func sortExcluded(excluded []models.FurnitureGroupExcludedCombination) {
	for i := range excluded {
		models.SortCharacters(excluded[i].Characters)
	}
	sort.SliceStable(excluded, func(i, j int) bool {
		if len(excluded[i].Characters) != len(excluded[j].Characters) {
			return len(excluded[i].Characters) < len(excluded[j].Characters)
		}
		return excluded[i].Key() < excluded[j].Key()
	})
}
