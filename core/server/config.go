package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// BaseURL is the externally visible origin, used for redirects.
	BaseURL string `mapstructure:"base_url" default:"http://localhost:8080"`
	// Environment is the deployment environment (development, production).
	Environment string `mapstructure:"environment" default:"development"`
	// BodyLimitMB caps request bodies, image uploads included.
	BodyLimitMB int `mapstructure:"body_limit_mb" default:"8"`
	// StaticDir holds the built pages served behind the login gate. Empty disables it.
	StaticDir string `mapstructure:"static_dir" default:""`
}

const (
	EnvironmentDevelopment = "development"
	EnvironmentProduction  = "production"
)

// IsValidEnvironment checks if the configured environment is known.
func (c Config) IsValidEnvironment() bool {
	switch c.Environment {
	case EnvironmentDevelopment, EnvironmentProduction:
		return true
	default:
		return false
	}
}

// IsProduction reports whether the server runs in production mode.
func (c Config) IsProduction() bool {
	return c.Environment == EnvironmentProduction
}
