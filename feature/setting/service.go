package setting

import (
	"context"
	"errors"
	"fmt"

	"prsk-lab/feature/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrCharacterNotFound is returned when the leader character does not exist.
	ErrCharacterNotFound = errors.New("character not found")
	// ErrUnitNotFound is returned when a visible unit code does not exist.
	ErrUnitNotFound = errors.New("unit not found")
)

// View is the JSON representation of a user's settings.
type View struct {
	LeaderCharacterID    *string           `json:"leader_character_id"`
	LeaderCharacter      *models.Character `json:"leader_character"`
	HideCheckedReactions bool              `json:"hide_checked_reactions"`
	VisibleUnitCodes     []string          `json:"visible_unit_codes"`
}

// Update is the full set of user preferences.
type Update struct {
	LeaderCharacterID    *string
	HideCheckedReactions bool
	VisibleUnitCodes     []string
}

// Service reads and writes settings.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates a new setting service.
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// Load returns the stored setting of userID, or the defaults.
func (s *Service) Load(ctx context.Context, userID string) (models.Setting, error) {
	var setting models.Setting
	err := s.db.WithContext(ctx).
		Preload("LeaderCharacter").
		Where("user_id = ?", userID).
		Take(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.DefaultSetting(userID), nil
	}
	if err != nil {
		return models.Setting{}, fmt.Errorf("failed to load setting: %w", err)
	}
	return setting, nil
}

// Get returns the settings of userID.
func (s *Service) Get(ctx context.Context, userID string) (*View, error) {
	setting, err := s.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toView(setting), nil
}

// Put replaces the settings of userID.
func (s *Service) Put(ctx context.Context, userID string, u Update) (*View, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if u.LeaderCharacterID != nil {
			var count int64
			if err := tx.Model(&models.Character{}).Where("id = ?", *u.LeaderCharacterID).Count(&count).Error; err != nil {
				return fmt.Errorf("failed to check character: %w", err)
			}
			if count == 0 {
				return ErrCharacterNotFound
			}
		}

		if len(u.VisibleUnitCodes) > 0 {
			var count int64
			if err := tx.Model(&models.Unit{}).Where("code IN ?", u.VisibleUnitCodes).Count(&count).Error; err != nil {
				return fmt.Errorf("failed to check units: %w", err)
			}
			if int(count) != len(u.VisibleUnitCodes) {
				return ErrUnitNotFound
			}
		}

		setting := models.Setting{
			UserID:               userID,
			LeaderCharacterID:    u.LeaderCharacterID,
			HideCheckedReactions: u.HideCheckedReactions,
		}
		setting.SetUnitCodes(u.VisibleUnitCodes)

		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"leader_character_id", "hide_checked_reactions", "visible_unit_codes", "updated_at"}),
		}).Create(&setting).Error; err != nil {
			return fmt.Errorf("failed to save setting: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, userID)
}

func toView(s models.Setting) *View {
	return &View{
		LeaderCharacterID:    s.LeaderCharacterID,
		LeaderCharacter:      s.LeaderCharacter,
		HideCheckedReactions: s.HideCheckedReactions,
		VisibleUnitCodes:     s.UnitCodes(),
	}
}
