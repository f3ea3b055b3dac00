package session

// Config holds configuration for the signed session cookie.
type Config struct {
	// Secret is the HMAC key used to sign session tokens.
	Secret string `mapstructure:"secret" default:""`
	// CookieName is the name of the session cookie.
	CookieName string `mapstructure:"cookie_name" default:"prsk_session"`
	// TTLHours is the lifetime of a session in hours.
	TTLHours int `mapstructure:"ttl_hours" default:"720"`
	// Secure marks the cookie as HTTPS only.
	Secure bool `mapstructure:"secure" default:"false"`
}
