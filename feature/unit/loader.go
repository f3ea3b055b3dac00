package unit

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

// NewFeature creates a new Unit feature. onSeed callbacks run after every
// successful seed.
func NewFeature(db *gorm.DB, logger *zap.Logger, cacheCfg cache.Config, onSeed ...func()) *Feature {
	svc := NewService(db, logger, cacheCfg, onSeed...)
	return &Feature{service: svc, handler: NewHandler(svc)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "unit"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(r loader.Routes) error {
	f.handler.RegisterRoutes(r.API)
	f.handler.RegisterAdminRoutes(r.Admin)
	return nil
}
