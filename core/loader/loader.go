package loader

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Routes are the router groups a feature can register on.
type Routes struct {
	// Public is the application root, served without a session.
	Public fiber.Router
	// API is /api, protected by the session middleware.
	API fiber.Router
	// Admin is /api/admin, restricted to the admin role.
	Admin fiber.Router
}

// Feature is a self-contained module of the application.
type Feature interface {
	// Name returns the name of the feature.
	Name() string
	// IsEnabled reports whether the feature should be loaded.
	IsEnabled() bool
	// Load registers the feature's routes.
	Load(r Routes) error
}

// Manager holds the registry of features.
type Manager struct {
	features []Feature
}

// NewManager creates an empty feature manager.
func NewManager() *Manager {
	return &Manager{}
}

// Register adds a feature to the registry.
func (m *Manager) Register(f Feature) {
	m.features = append(m.features, f)
}

// Features returns the registered features in registration order.
func (m *Manager) Features() []Feature {
	return m.features
}

// LoadAll loads every enabled feature, stopping at the first failure.
// It returns the names of the loaded features.
func (m *Manager) LoadAll(r Routes) ([]string, error) {
	var loaded []string
	for _, f := range m.features {
		if !f.IsEnabled() {
			continue
		}
		if err := f.Load(r); err != nil {
			return loaded, fmt.Errorf("failed to load feature %s: %w", f.Name(), err)
		}
		loaded = append(loaded, f.Name())
	}
	return loaded, nil
}
