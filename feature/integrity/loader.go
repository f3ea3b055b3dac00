package integrity

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

// NewFeature creates a new Integrity feature.
func NewFeature(db *gorm.DB, client storage.Client, storageCfg storage.Config, logger *zap.Logger) *Feature {
	svc := NewService(db, client, storageCfg, logger)
	return &Feature{service: svc, handler: NewHandler(svc)}
}

// Service returns the feature's service, used by the integrity command.
func (f *Feature) Service() *Service {
	return f.service
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "integrity"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(r loader.Routes) error {
	f.handler.RegisterAdminRoutes(r.Admin)
	return nil
}
