package auth

import (
	"prsk-lab/core/loader"
	"prsk-lab/core/oauth"
	"prsk-lab/core/session"

	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	handler *Handler
}

// NewFeature creates a new Auth feature.
func NewFeature(provider oauth.Provider, sessions *session.Manager, users Users, secure bool, logger *zap.Logger) *Feature {
	return &Feature{handler: NewHandler(NewService(provider, sessions, users, logger), secure)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "auth"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(r loader.Routes) error {
	f.handler.RegisterRoutes(r.Public)
	return nil
}
