package unit

import (
	"context"
	"errors"
	"fmt"

	"prsk-lab/core/cache"
	"prsk-lab/feature/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrNotFound is returned when no unit matches.
var ErrNotFound = errors.New("unit not found")

const cacheKey = "units"

// Service reads units and seeds master data.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
	cache  *cache.Store[[]models.Unit]
	// onSeed runs after a successful seed, e.g. to drop other caches.
	onSeed []func()
}

// NewService creates a new unit service.
func NewService(db *gorm.DB, logger *zap.Logger, cacheCfg cache.Config, onSeed ...func()) *Service {
	return &Service{
		db:     db,
		logger: logger,
		cache:  cache.FromConfig[[]models.Unit](cacheCfg),
		onSeed: onSeed,
	}
}

// List returns every unit with its characters.
func (s *Service) List(ctx context.Context) ([]models.Unit, error) {
	return s.cache.GetOrLoad(ctx, cacheKey, s.load)
}

// Get returns the unit with code.
func (s *Service) Get(ctx context.Context, code string) (*models.Unit, error) {
	units, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range units {
		if units[i].Code == code {
			return &units[i], nil
		}
	}
	return nil, ErrNotFound
}

// Seed upserts the static master data and invalidates the caches.
func (s *Service) Seed(ctx context.Context) (*models.SeedResult, error) {
	result, err := models.Seed(ctx, s.db)
	if err != nil {
		return nil, err
	}

	s.cache.InvalidateAll()
	for _, fn := range s.onSeed {
		fn()
	}

	s.logger.Info("Seeded master data",
		zap.Int("units", result.Units),
		zap.Int("characters", result.Characters),
	)
	return result, nil
}

func (s *Service) load(ctx context.Context) ([]models.Unit, error) {
	var units []models.Unit
	err := s.db.WithContext(ctx).
		Preload("Characters", func(db *gorm.DB) *gorm.DB {
			return db.Order("priority, code")
		}).
		Order("priority, code").
		Find(&units).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load units: %w", err)
	}
	return units, nil
}
