package furniture

import (
	"context"
	"errors"
	"fmt"

	"prsk-lab/core/storage"
	"prsk-lab/feature/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SettingsLoader returns a user's settings.
type SettingsLoader interface {
	Load(ctx context.Context, userID string) (models.Setting, error)
}

// Service handles furniture operations.
type Service struct {
	db       *gorm.DB
	logger   *zap.Logger
	client   storage.Client
	storage  storage.Config
	settings SettingsLoader
}

// NewService creates a new furniture service.
func NewService(db *gorm.DB, logger *zap.Logger, client storage.Client, storageCfg storage.Config, settings SettingsLoader) *Service {
	return &Service{
		db:       db,
		logger:   logger,
		client:   client,
		storage:  storageCfg,
		settings: settings,
	}
}

// notFound maps gorm.ErrRecordNotFound to sentinel.
func notFound(err, sentinel error, action string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}

// ensureExists returns sentinel unless a row of model with id exists.
func ensureExists(tx *gorm.DB, model any, id string, sentinel error) error {
	var count int64
	if err := tx.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check existence: %w", err)
	}
	if count == 0 {
		return sentinel
	}
	return nil
}

// loadCharacters returns the characters with ids, or ErrCharacterNotFound
// if any is missing.
func loadCharacters(tx *gorm.DB, ids []string) ([]models.Character, error) {
	ids = models.SplitCombinationKey(models.CombinationKey(ids))

	var characters []models.Character
	if err := tx.Where("id IN ?", ids).Find(&characters).Error; err != nil {
		return nil, fmt.Errorf("failed to load characters: %w", err)
	}
	if len(characters) != len(ids) {
		return nil, ErrCharacterNotFound
	}
	models.SortCharacters(characters)
	return characters, nil
}
