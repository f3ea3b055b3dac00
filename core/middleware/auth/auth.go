package auth

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"prsk-lab/core/logger"
	"prsk-lab/core/response"
	"prsk-lab/core/session"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	// LocalsKey is the Fiber locals key holding *session.Claims.
	LocalsKey = "session"

	RoleUser  = "user"
	RoleAdmin = "admin"
)

// ErrUnknownUser is returned by a RoleSource when the session's user is gone.
var ErrUnknownUser = errors.New("unknown user")

// RoleSource returns the current role of a user. Roles change while a
// session token stays valid, so the stored role wins over the claim.
type RoleSource interface {
	Role(ctx context.Context, userID string) (string, error)
}

// Config configures the auth middleware.
type Config struct {
	// Sessions verifies session tokens.
	Sessions *session.Manager
	// Roles, when set, replaces the role claim with the stored role and
	// rejects sessions of deleted users.
	Roles RoleSource
	// Logger receives authentication failures.
	Logger *zap.Logger
	// LoginPath is where anonymous page requests are redirected.
	LoginPath string
	// PublicPrefixes are paths served without a session by the page gate.
	PublicPrefixes []string
}

// New returns a middleware that rejects requests without a valid session
// with a 401 envelope. The claims are stored under LocalsKey.
func New(cfg Config) fiber.Handler {
	l := cfg.Logger
	if l == nil {
		l = zap.NewNop()
	}

	return func(c *fiber.Ctx) error {
		claims, err := cfg.Sessions.FromRequest(c)
		if err != nil {
			if !errors.Is(err, session.ErrNoSession) {
				logger.WithRayID(l, c).Debug("Session rejected", zap.Error(err))
			}
			return response.Unauthorized(c)
		}

		claims, err = refreshRole(c, cfg.Roles, claims)
		if errors.Is(err, ErrUnknownUser) {
			logger.WithRayID(l, c).Debug("Session of unknown user", zap.String("user_id", claims.UserID))
			return response.Unauthorized(c)
		}
		if err != nil {
			return response.Internal(c, l, "Failed to load session role", err)
		}

		c.Locals(LocalsKey, claims)
		return c.Next()
	}
}

func refreshRole(c *fiber.Ctx, roles RoleSource, claims *session.Claims) (*session.Claims, error) {
	if roles == nil {
		return claims, nil
	}
	role, err := roles.Role(c.Context(), claims.UserID)
	if err != nil {
		return claims, err
	}
	current := *claims
	current.Role = role
	return &current, nil
}

// RequireRole returns a middleware allowing only sessions with the given role.
// It must run after New, which loads the stored role when Config.Roles is set.
func RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := Claims(c)
		if !ok {
			return response.Unauthorized(c)
		}
		if claims.Role != role {
			return response.Forbidden(c)
		}
		return c.Next()
	}
}

// Gate redirects page requests without a valid session to the login path,
// passing the original path as callback_url. Public prefixes pass through.
func Gate(cfg Config) fiber.Handler {
	loginPath := cfg.LoginPath
	if loginPath == "" {
		loginPath = "/auth/login"
	}

	return func(c *fiber.Ctx) error {
		path := c.Path()
		for _, prefix := range cfg.PublicPrefixes {
			if path == prefix || strings.HasPrefix(path, strings.TrimSuffix(prefix, "/")+"/") {
				return c.Next()
			}
		}

		claims, err := cfg.Sessions.FromRequest(c)
		if err != nil {
			target := loginPath + "?callback_url=" + url.QueryEscape(c.OriginalURL())
			return c.Redirect(target, fiber.StatusFound)
		}
		c.Locals(LocalsKey, claims)
		return c.Next()
	}
}

// Claims returns the session claims stored by New or Gate.
func Claims(c *fiber.Ctx) (*session.Claims, bool) {
	claims, ok := c.Locals(LocalsKey).(*session.Claims)
	return claims, ok && claims != nil
}

// UserID returns the authenticated user id, or "" for anonymous requests.
func UserID(c *fiber.Ctx) string {
	if claims, ok := Claims(c); ok {
		return claims.UserID
	}
	return ""
}
