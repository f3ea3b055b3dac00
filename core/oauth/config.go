package oauth

// Config holds configuration for the OAuth 2.0 login provider.
type Config struct {
	// Provider selects the preset (google, discord, custom).
	Provider string `mapstructure:"provider" default:"google"`
	// ClientID is the OAuth client id.
	ClientID string `mapstructure:"client_id" default:""`
	// ClientSecret is the OAuth client secret.
	ClientSecret string `mapstructure:"client_secret" default:""`
	// RedirectURL is the callback registered with the provider.
	RedirectURL string `mapstructure:"redirect_url" default:"http://localhost:8080/auth/callback"`
	// AuthURL overrides the authorization endpoint (custom provider).
	AuthURL string `mapstructure:"auth_url" default:""`
	// TokenURL overrides the token endpoint (custom provider).
	TokenURL string `mapstructure:"token_url" default:""`
	// UserInfoURL overrides the profile endpoint (custom provider).
	UserInfoURL string `mapstructure:"user_info_url" default:""`
	// AdminEmails are promoted to the admin role on login.
	AdminEmails []string `mapstructure:"admin_emails" default:""`
	// TimeoutSeconds bounds token exchange and profile requests.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"10"`
}

const (
	ProviderGoogle  = "google"
	ProviderDiscord = "discord"
	ProviderCustom  = "custom"
)
