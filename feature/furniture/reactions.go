package furniture

import (
	"context"
	"fmt"
	"sort"

	"prsk-lab/core/middleware/metrics"
	"prsk-lab/feature/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReactionFilter narrows the user reaction list.
type ReactionFilter struct {
	TagID       string
	GroupID     string
	CharacterID string
	UnitCode    string
	// Unchecked drops reactions checked directly or through the group.
	Unchecked bool
}

// ReactionView is a reaction with the caller's check status.
type ReactionView struct {
	ID         string             `json:"id"`
	Characters []models.Character `json:"characters"`
	CheckedBy  *CheckStatus       `json:"checked_by"`
}

// FurnitureView is a furniture with the caller's reaction statuses.
type FurnitureView struct {
	ID        string               `json:"id"`
	Name      string               `json:"name"`
	ImageURL  string               `json:"image_url,omitempty"`
	TagID     *string              `json:"tag_id"`
	Tag       *models.FurnitureTag `json:"tag"`
	GroupID   *string              `json:"group_id"`
	Group     *GroupRef            `json:"group"`
	Reactions []ReactionView       `json:"reactions"`
}

// GroupRef is the group summary embedded in FurnitureView.
type GroupRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CheckResult is the status of a reaction after a check toggle.
type CheckResult struct {
	ReactionID string       `json:"reaction_id"`
	CheckedBy  *CheckStatus `json:"checked_by"`
}

func sortReactions(reactions []models.FurnitureReaction) {
	for i := range reactions {
		models.SortCharacters(reactions[i].Characters)
	}
	sort.SliceStable(reactions, func(i, j int) bool {
		if len(reactions[i].Characters) != len(reactions[j].Characters) {
			return len(reactions[i].Characters) < len(reactions[j].Characters)
		}
		return reactions[i].Key() < reactions[j].Key()
	})
}

// CreateReaction adds a reaction of characterIDs to the furniture.
// A furniture cannot have two reactions with the same characters.
func (s *Service) CreateReaction(ctx context.Context, furnitureID string, characterIDs []string) (*models.FurnitureReaction, error) {
	var reaction models.FurnitureReaction
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureExists(tx, &models.Furniture{}, furnitureID, ErrFurnitureNotFound); err != nil {
			return err
		}
		characters, err := loadCharacters(tx, characterIDs)
		if err != nil {
			return err
		}
		if err := ensureUniqueReaction(tx, furnitureID, "", characters); err != nil {
			return err
		}

		reaction = models.FurnitureReaction{FurnitureID: furnitureID, Characters: characters}
		if err := tx.Omit("Characters.*").Create(&reaction).Error; err != nil {
			return fmt.Errorf("failed to create reaction: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &reaction, nil
}

// UpdateReaction replaces the characters of the reaction with id.
func (s *Service) UpdateReaction(ctx context.Context, id string, characterIDs []string) (*models.FurnitureReaction, error) {
	var reaction models.FurnitureReaction
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&reaction, "id = ?", id).Error; err != nil {
			return notFound(err, ErrReactionNotFound, "get reaction")
		}
		characters, err := loadCharacters(tx, characterIDs)
		if err != nil {
			return err
		}
		if err := ensureUniqueReaction(tx, reaction.FurnitureID, reaction.ID, characters); err != nil {
			return err
		}

		if err := tx.Model(&reaction).Association("Characters").Replace(characters); err != nil {
			return fmt.Errorf("failed to replace reaction characters: %w", err)
		}
		reaction.Characters = characters
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &reaction, nil
}

// DeleteReaction deletes the reaction with id and every check of it.
func (s *Service) DeleteReaction(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Delete(&models.FurnitureReaction{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete reaction: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrReactionNotFound
	}
	return nil
}

func ensureUniqueReaction(tx *gorm.DB, furnitureID, exceptID string, characters []models.Character) error {
	var existing []models.FurnitureReaction
	if err := tx.Preload("Characters").Where("furniture_id = ?", furnitureID).Find(&existing).Error; err != nil {
		return fmt.Errorf("failed to load reactions: %w", err)
	}
	key := models.CombinationKey(models.CharacterIDs(characters))
	for _, r := range existing {
		if r.ID != exceptID && r.Key() == key {
			return ErrDuplicateReaction
		}
	}
	return nil
}

// ListReactions returns the furniture catalogue with the check status of
// every reaction for userID, after applying filter. The user's
// hide_checked_reactions setting acts like filter.Unchecked.
func (s *Service) ListReactions(ctx context.Context, userID string, filter ReactionFilter) ([]FurnitureView, error) {
	setting, err := s.settings.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if setting.HideCheckedReactions {
		filter.Unchecked = true
	}

	// Group statuses depend on furniture the filter may hide, so resolve
	// over the whole catalogue before filtering.
	furnitures, status, err := s.resolveAll(ctx, userID)
	if err != nil {
		return nil, err
	}

	var unitMembers map[string]struct{}
	if filter.UnitCode != "" {
		if unitMembers, err = s.unitCharacterIDs(ctx, filter.UnitCode); err != nil {
			return nil, err
		}
	}
	reactionFiltered := filter.CharacterID != "" || filter.UnitCode != "" || filter.Unchecked

	views := make([]FurnitureView, 0, len(furnitures))
	for _, f := range furnitures {
		if filter.TagID != "" && (f.TagID == nil || *f.TagID != filter.TagID) {
			continue
		}
		if filter.GroupID != "" && (f.GroupID == nil || *f.GroupID != filter.GroupID) {
			continue
		}

		view := FurnitureView{
			ID:        f.ID,
			Name:      f.Name,
			ImageURL:  s.ImageURL(f),
			TagID:     f.TagID,
			Tag:       f.Tag,
			GroupID:   f.GroupID,
			Reactions: make([]ReactionView, 0, len(f.Reactions)),
		}
		if f.Group != nil {
			view.Group = &GroupRef{ID: f.Group.ID, Name: f.Group.Name}
		}

		for _, r := range f.Reactions {
			checked, isChecked := status[r.ID]
			if filter.Unchecked && isChecked {
				continue
			}
			if filter.CharacterID != "" && !hasCharacter(r, func(c models.Character) bool { return c.ID == filter.CharacterID }) {
				continue
			}
			if unitMembers != nil && !hasCharacter(r, func(c models.Character) bool { _, ok := unitMembers[c.ID]; return ok }) {
				continue
			}

			rv := ReactionView{ID: r.ID, Characters: r.Characters}
			if isChecked {
				rv.CheckedBy = &checked
			}
			view.Reactions = append(view.Reactions, rv)
		}

		if reactionFiltered && len(view.Reactions) == 0 {
			continue
		}
		views = append(views, view)
	}
	return views, nil
}

// Check marks the reaction as directly checked by userID. Checking twice is
// a no-op.
func (s *Service) Check(ctx context.Context, userID, reactionID string) (*CheckResult, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureExists(tx, &models.FurnitureReaction{}, reactionID, ErrReactionNotFound); err != nil {
			return err
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.UserReactionCheck{UserID: userID, ReactionID: reactionID}).Error; err != nil {
			return fmt.Errorf("failed to check reaction: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.ReactionChecks.WithLabelValues("check").Inc()
	direct := CheckedDirect
	return &CheckResult{ReactionID: reactionID, CheckedBy: &direct}, nil
}

// Uncheck removes the direct check of userID on the reaction. The result
// still reports "group" when another furniture of the group is checked.
func (s *Service) Uncheck(ctx context.Context, userID, reactionID string) (*CheckResult, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureExists(tx, &models.FurnitureReaction{}, reactionID, ErrReactionNotFound); err != nil {
			return err
		}
		if err := tx.Where("user_id = ? AND reaction_id = ?", userID, reactionID).
			Delete(&models.UserReactionCheck{}).Error; err != nil {
			return fmt.Errorf("failed to uncheck reaction: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.ReactionChecks.WithLabelValues("uncheck").Inc()

	_, status, err := s.resolveAll(ctx, userID)
	if err != nil {
		return nil, err
	}
	result := &CheckResult{ReactionID: reactionID}
	if st, ok := status[reactionID]; ok {
		result.CheckedBy = &st
	}
	return result, nil
}

// resolveAll loads the catalogue and resolves every check of userID.
func (s *Service) resolveAll(ctx context.Context, userID string) ([]models.Furniture, map[string]CheckStatus, error) {
	furnitures, err := s.ListFurnitures(ctx, FurnitureFilter{})
	if err != nil {
		return nil, nil, err
	}

	var groups []models.FurnitureGroup
	if err := s.db.WithContext(ctx).Preload("ExcludedCombinations.Characters").Find(&groups).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to load groups: %w", err)
	}

	var checked []string
	if err := s.db.WithContext(ctx).Model(&models.UserReactionCheck{}).
		Where("user_id = ?", userID).
		Pluck("reaction_id", &checked).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to load checks: %w", err)
	}
	direct := make(map[string]struct{}, len(checked))
	for _, id := range checked {
		direct[id] = struct{}{}
	}

	s.logger.Debug("Resolved reaction checks",
		zap.String("user_id", userID),
		zap.Int("furnitures", len(furnitures)),
		zap.Int("direct", len(direct)),
	)
	return furnitures, ResolveChecks(furnitures, direct, ExcludedKeys(groups)), nil
}

func (s *Service) unitCharacterIDs(ctx context.Context, unitCode string) (map[string]struct{}, error) {
	var ids []string
	if err := s.db.WithContext(ctx).Model(&models.Character{}).
		Joins("JOIN units ON units.id = characters.unit_id").
		Where("units.code = ?", unitCode).
		Pluck("characters.id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to load unit characters: %w", err)
	}
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}

func hasCharacter(r models.FurnitureReaction, match func(models.Character) bool) bool {
	for _, c := range r.Characters {
		if match(c) {
			return true
		}
	}
	return false
}
