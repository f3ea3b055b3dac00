package user

import (
	"prsk-lab/core/loader"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new User feature.
func NewFeature(db *gorm.DB, logger *zap.Logger, adminEmails []string) *Feature {
	svc := NewService(db, logger, adminEmails)
	return &Feature{service: svc, handler: NewHandler(svc)}
}

// Service returns the feature's service for use by the auth feature.
func (f *Feature) Service() *Service {
	return f.service
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "user"
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
