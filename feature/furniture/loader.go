package furniture

import (
	"prsk-lab/core/loader"
	"prsk-lab/core/storage"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new Furniture feature.
func NewFeature(db *gorm.DB, logger *zap.Logger, client storage.Client, storageCfg storage.Config, settings SettingsLoader) *Feature {
	svc := NewService(db, logger, client, storageCfg, settings)
	return &Feature{service: svc, handler: NewHandler(svc)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "furniture"
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
