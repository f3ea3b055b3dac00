package auth

import (
	"errors"
	"strings"
	"time"

	"prsk-lab/core/logger"
	"prsk-lab/core/middleware/metrics"
	"prsk-lab/core/oauth"
	"prsk-lab/core/response"
	"prsk-lab/core/session"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	stateCookie    = "prsk_oauth_state"
	callbackCookie = "prsk_oauth_callback"
	flowTTL        = 10 * time.Minute
)

// SessionView is the body of GET /auth/session.
type SessionView struct {
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Handler handles HTTP requests for login and sessions.
type Handler struct {
	service  *Service
	sessions *session.Manager
	secure   bool
}

// NewHandler creates a new HTTP handler. secure marks the flow cookies as
// HTTPS only.
func NewHandler(service *Service, secure bool) *Handler {
	return &Handler{service: service, sessions: service.sessions, secure: secure}
}

// RegisterRoutes registers the public auth routes.
func (h *Handler) RegisterRoutes(public fiber.Router) {
	group := public.Group("/auth")
	group.Get("/login", h.HandleLogin)
	group.Get("/callback", h.HandleCallback)
	group.Post("/logout", h.HandleLogout)
	group.Get("/session", h.HandleSession)
}

// SafeCallback returns target when it is a local path, "/" otherwise.
func SafeCallback(target string) string {
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return "/"
	}
	return target
}

func (h *Handler) flowCookie(c *fiber.Ctx, name, value string, expires time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/auth",
		Expires:  expires,
		HTTPOnly: true,
		Secure:   h.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func (h *Handler) clearFlow(c *fiber.Ctx) {
	h.flowCookie(c, stateCookie, "", time.Unix(0, 0))
	h.flowCookie(c, callbackCookie, "", time.Unix(0, 0))
}

// HandleLogin starts the OAuth flow.
// @Summary Login
// @Description Redirects to the OAuth provider. callback_url must be a local path.
// @Tags auth
// @Param callback_url query string false "Path to return to after login"
// @Success 302
// @Router /auth/login [get]
func (h *Handler) HandleLogin(c *fiber.Ctx) error {
	state := uuid.NewString()
	expires := time.Now().Add(flowTTL)
	h.flowCookie(c, stateCookie, state, expires)
	h.flowCookie(c, callbackCookie, SafeCallback(c.Query("callback_url")), expires)

	return c.Redirect(h.service.LoginURL(state), fiber.StatusFound)
}

// HandleCallback finishes the OAuth flow.
// @Summary OAuth Callback
// @Tags auth
// @Param code query string true "Authorization code"
// @Param state query string true "State from the login redirect"
// @Success 302
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/callback [get]
func (h *Handler) HandleCallback(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	provider := h.service.Provider()

	state := c.Cookies(stateCookie)
	if state == "" || c.Query("state") != state || c.Query("code") == "" {
		metrics.Logins.WithLabelValues(provider, "invalid_state").Inc()
		l.Warn("OAuth callback rejected", zap.Bool("has_state_cookie", state != ""))
		h.clearFlow(c)
		return response.Fail(c, fiber.StatusBadRequest, "Invalid OAuth state")
	}
	target := SafeCallback(c.Cookies(callbackCookie))
	h.clearFlow(c)

	sess, err := h.service.Complete(c.Context(), c.Query("code"))
	if err != nil {
		metrics.Logins.WithLabelValues(provider, "failed").Inc()
		if errors.Is(err, oauth.ErrExchange) || errors.Is(err, oauth.ErrProfile) {
			l.Warn("OAuth login failed", zap.Error(err))
			return response.Unauthorized(c)
		}
		return response.Internal(c, h.service.logger, "Failed to complete login", err)
	}

	metrics.Logins.WithLabelValues(provider, "success").Inc()
	h.sessions.SetCookie(c, sess.Token, sess.Expires)
	return c.Redirect(target, fiber.StatusFound)
}

// HandleLogout clears the session cookie.
// @Summary Logout
// @Tags auth
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /auth/logout [post]
func (h *Handler) HandleLogout(c *fiber.Ctx) error {
	h.sessions.ClearCookie(c)
	return response.OK(c, nil)
}

// HandleSession returns the current session.
// @Summary Current Session
// @Tags auth
// @Produce json
// @Success 200 {object} response.Envelope{data=SessionView}
// @Router /auth/session [get]
func (h *Handler) HandleSession(c *fiber.Ctx) error {
	claims, err := h.sessions.FromRequest(c)
	if err != nil {
		return response.OK(c, nil)
	}

	view := SessionView{UserID: claims.UserID, Name: claims.Name, Role: claims.Role}
	if claims.ExpiresAt != nil {
		view.ExpiresAt = claims.ExpiresAt.Time
	}
	return response.OK(c, view)
}
