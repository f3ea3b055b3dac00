package character

import (
	"prsk-lab/core/cache"
	"prsk-lab/core/loader"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new Character feature.
func NewFeature(db *gorm.DB, logger *zap.Logger, cacheCfg cache.Config) *Feature {
	svc := NewService(db, logger, cacheCfg)
	return &Feature{service: svc, handler: NewHandler(svc)}
}

// Service returns the feature's service for use by other features.
func (f *Feature) Service() *Service {
	return f.service
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "character"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(r loader.Routes) error {
	f.handler.RegisterRoutes(r.API)
	return nil
}
