package auth

import (
	"context"
	"fmt"
	"time"

	"prsk-lab/core/oauth"
	"prsk-lab/core/session"
	"prsk-lab/feature/models"
	"prsk-lab/feature/user"

	"go.uber.org/zap"
)

// Users upserts accounts of OAuth identities.
type Users interface {
	UpsertOAuthUser(ctx context.Context, id user.Identity) (*models.User, error)
}

// Session is a signed session for a logged in user.
type Session struct {
	User    *models.User
	Token   string
	Expires time.Time
}

// Service completes OAuth logins.
type Service struct {
	provider oauth.Provider
	sessions *session.Manager
	users    Users
	logger   *zap.Logger
}

// NewService creates a new auth service.
func NewService(provider oauth.Provider, sessions *session.Manager, users Users, logger *zap.Logger) *Service {
	return &Service{
		provider: provider,
		sessions: sessions,
		users:    users,
		logger:   logger,
	}
}

// Provider returns the name of the OAuth provider.
func (s *Service) Provider() string {
	return s.provider.Name()
}

// LoginURL returns the provider URL that starts a login with state.
func (s *Service) LoginURL(state string) string {
	return s.provider.AuthCodeURL(state)
}

// Complete exchanges code for the provider profile, upserts the user and
// issues a session for them.
func (s *Service) Complete(ctx context.Context, code string) (*Session, error) {
	profile, err := s.provider.Exchange(ctx, code)
	if err != nil {
		return nil, err
	}

	u, err := s.users.UpsertOAuthUser(ctx, user.Identity{
		Provider:  s.provider.Name(),
		AccountID: profile.ID,
		Name:      profile.Name,
		Email:     profile.Email,
		Image:     profile.Image,
	})
	if err != nil {
		return nil, err
	}

	token, exp, err := s.sessions.Issue(u.ID, u.Name, u.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session: %w", err)
	}

	s.logger.Info("User logged in",
		zap.String("user_id", u.ID),
		zap.String("provider", s.provider.Name()),
		zap.String("role", u.Role),
	)
	return &Session{User: u, Token: token, Expires: exp}, nil
}
