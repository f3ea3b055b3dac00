package character

import (
	"context"
	"errors"
	"fmt"

	"prsk-lab/core/cache"
	"prsk-lab/feature/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrNotFound is returned when no character matches.
var ErrNotFound = errors.New("character not found")

const cacheKey = "characters"

// View is a character with the code of its unit.
type View struct {
	models.Character
	UnitCode string `json:"unit_code"`
}

// IsVirtualSinger reports whether the character belongs to VIRTUAL SINGER.
func (v View) IsVirtualSinger() bool {
	return v.UnitCode == models.UnitCodeVirtualSinger
}

// Service reads characters.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
	cache  *cache.Store[[]View]
}

// NewService creates a new character service.
func NewService(db *gorm.DB, logger *zap.Logger, cacheCfg cache.Config) *Service {
	return &Service{
		db:     db,
		logger: logger,
		cache:  cache.FromConfig[[]View](cacheCfg),
	}
}

// List returns every character ordered by priority, then code.
// An empty unitCode returns all characters.
func (s *Service) List(ctx context.Context, unitCode string) ([]View, error) {
	all, err := s.cache.GetOrLoad(ctx, cacheKey, s.load)
	if err != nil {
		return nil, err
	}
	if unitCode == "" {
		return all, nil
	}

	filtered := make([]View, 0)
	for _, c := range all {
		if c.UnitCode == unitCode {
			filtered = append(filtered, c)
		}
	}
	return filtered, nil
}

// Get returns the character with code.
func (s *Service) Get(ctx context.Context, code string) (*View, error) {
	all, err := s.List(ctx, "")
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].Code == code {
			return &all[i], nil
		}
	}
	return nil, ErrNotFound
}

// ByCode returns every character keyed by code.
func (s *Service) ByCode(ctx context.Context) (map[string]View, error) {
	all, err := s.List(ctx, "")
	if err != nil {
		return nil, err
	}
	byCode := make(map[string]View, len(all))
	for _, c := range all {
		byCode[c.Code] = c
	}
	return byCode, nil
}

// InvalidateCache drops the cached characters.
func (s *Service) InvalidateCache() {
	s.cache.InvalidateAll()
}

func (s *Service) load(ctx context.Context) ([]View, error) {
	var views []View
	err := s.db.WithContext(ctx).
		Model(&models.Character{}).
		Select("characters.*, units.code AS unit_code").
		Joins("LEFT JOIN units ON units.id = characters.unit_id").
		Order("characters.priority, characters.code").
		Scan(&views).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load characters: %w", err)
	}
	if views == nil {
		views = []View{}
	}

	s.logger.Debug("Loaded characters", zap.Int("count", len(views)))
	return views, nil
}
