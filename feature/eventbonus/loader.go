package eventbonus

import (
	"prsk-lab/core/loader"

	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	handler *Handler
}

// NewFeature creates a new event bonus feature.
func NewFeature(characters Characters, logger *zap.Logger) *Feature {
	return &Feature{handler: NewHandler(NewService(characters, logger))}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "eventbonus"
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
