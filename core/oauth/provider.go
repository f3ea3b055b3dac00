package oauth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
	"golang.org/x/oauth2/google"
)

const (
	googleUserInfoURL  = "https://openidconnect.googleapis.com/v1/userinfo"
	discordUserInfoURL = "https://discord.com/api/users/@me"
	discordAvatarURL   = "https://cdn.discordapp.com/avatars/%s/%s.png"
)

var (
	// ErrUnknownProvider is returned for an unsupported provider name.
	ErrUnknownProvider = errors.New("unknown oauth provider")
	// ErrExchange is returned when the authorization code cannot be redeemed.
	ErrExchange = errors.New("oauth code exchange failed")
	// ErrProfile is returned when the user profile cannot be fetched.
	ErrProfile = errors.New("oauth profile fetch failed")
)

// Profile is the normalized identity returned by a provider.
type Profile struct {
	ID    string
	Name  string
	Email string
	Image string
}

// Provider is a third-party identity provider.
type Provider interface {
	// Name returns the provider key stored on users (google, discord, custom).
	Name() string
	// AuthCodeURL returns the consent page URL for the given state.
	AuthCodeURL(state string) string
	// Exchange redeems the authorization code and fetches the user profile.
	Exchange(ctx context.Context, code string) (*Profile, error)
}

type provider struct {
	name        string
	config      *oauth2.Config
	userInfoURL string
	timeout     time.Duration
	parse       func([]byte) (*Profile, error)
}

// NewProvider creates the provider selected by the configuration.
func NewProvider(cfg Config) (Provider, error) {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	p := &provider{
		name:    cfg.Provider,
		timeout: timeout,
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
		},
	}

	switch cfg.Provider {
	case ProviderGoogle:
		p.config.Endpoint = google.Endpoint
		p.config.Scopes = []string{"openid", "email", "profile"}
		p.userInfoURL = googleUserInfoURL
		p.parse = parseOIDCProfile
	case ProviderDiscord:
		p.config.Endpoint = endpoints.Discord
		p.config.Scopes = []string{"identify", "email"}
		p.userInfoURL = discordUserInfoURL
		p.parse = parseDiscordProfile
	case ProviderCustom:
		if cfg.AuthURL == "" || cfg.TokenURL == "" || cfg.UserInfoURL == "" {
			return nil, fmt.Errorf("custom oauth provider requires auth_url, token_url and user_info_url")
		}
		p.config.Endpoint = oauth2.Endpoint{AuthURL: cfg.AuthURL, TokenURL: cfg.TokenURL}
		p.config.Scopes = []string{"openid", "email", "profile"}
		p.userInfoURL = cfg.UserInfoURL
		p.parse = parseOIDCProfile
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
	}

	// Overrides let a preset point at a proxy or a test server.
	if cfg.Provider != ProviderCustom {
		if cfg.AuthURL != "" {
			p.config.Endpoint.AuthURL = cfg.AuthURL
		}
		if cfg.TokenURL != "" {
			p.config.Endpoint.TokenURL = cfg.TokenURL
		}
		if cfg.UserInfoURL != "" {
			p.userInfoURL = cfg.UserInfoURL
		}
	}

	return p, nil
}

func (p *provider) Name() string {
	return p.name
}

func (p *provider) AuthCodeURL(state string) string {
	return p.config.AuthCodeURL(state)
}

func (p *provider) Exchange(ctx context.Context, code string) (*Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExchange, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.userInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProfile, err)
	}

	resp, err := p.config.Client(ctx, token).Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProfile, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrProfile, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProfile, err)
	}

	profile, err := p.parse(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProfile, err)
	}
	if profile.ID == "" {
		return nil, fmt.Errorf("%w: profile has no subject", ErrProfile)
	}
	return profile, nil
}

func parseOIDCProfile(body []byte) (*Profile, error) {
	var info struct {
		Sub     string `json:"sub"`
		ID      string `json:"id"`
		Name    string `json:"name"`
		Email   string `json:"email"`
		Picture string `json:"picture"`
	}
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, err
	}

	id := info.Sub
	if id == "" {
		id = info.ID
	}
	return &Profile{ID: id, Name: info.Name, Email: info.Email, Image: info.Picture}, nil
}

func parseDiscordProfile(body []byte) (*Profile, error) {
	var info struct {
		ID         string `json:"id"`
		Username   string `json:"username"`
		GlobalName string `json:"global_name"`
		Email      string `json:"email"`
		Avatar     string `json:"avatar"`
	}
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(info.GlobalName)
	if name == "" {
		name = info.Username
	}

	image := ""
	if info.Avatar != "" {
		image = fmt.Sprintf(discordAvatarURL, info.ID, info.Avatar)
	}
	return &Profile{ID: info.ID, Name: name, Email: info.Email, Image: image}, nil
}
