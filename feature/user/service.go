package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"prsk-lab/core/middleware/auth"
	"prsk-lab/feature/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrNotFound is returned when no user matches.
	ErrNotFound = errors.New("user not found")
	// ErrOwnRole is returned when an admin tries to change their own role.
	ErrOwnRole = errors.New("cannot change own role")
)

// Identity is the account data returned by an OAuth provider.
type Identity struct {
	Provider  string
	AccountID string
	Name      string
	Email     string
	Image     string
}

// Service manages users.
type Service struct {
	db          *gorm.DB
	logger      *zap.Logger
	adminEmails map[string]struct{}
}

// NewService creates a new user service. Users logging in with one of
// adminEmails are promoted to admin.
func NewService(db *gorm.DB, logger *zap.Logger, adminEmails []string) *Service {
	emails := make(map[string]struct{}, len(adminEmails))
	for _, e := range adminEmails {
		e = strings.ToLower(strings.TrimSpace(e))
		if e != "" {
			emails[e] = struct{}{}
		}
	}
	return &Service{db: db, logger: logger, adminEmails: emails}
}

// Get returns the user with id.
func (s *Service) Get(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

// UpdateName renames the user.
func (s *Service) UpdateName(ctx context.Context, id, name string) (*models.User, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if err := s.db.WithContext(ctx).Model(u).Update("name", name).Error; err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	u.Name = name
	return u, nil
}

// List returns users ordered by creation, optionally filtered by role.
func (s *Service) List(ctx context.Context, role string) ([]models.User, error) {
	q := s.db.WithContext(ctx).Order("created_at, id")
	if role != "" {
		q = q.Where("role = ?", role)
	}

	var users []models.User
	if err := q.Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// Role returns the stored role of user id, or auth.ErrUnknownUser.
func (s *Service) Role(ctx context.Context, id string) (string, error) {
	var u models.User
	err := s.db.WithContext(ctx).Select("role").Where("id = ?", id).Take(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", auth.ErrUnknownUser
	}
	if err != nil {
		return "", fmt.Errorf("failed to load role: %w", err)
	}
	return u.Role, nil
}

// UpdateRole changes the role of user id on behalf of actorID.
func (s *Service) UpdateRole(ctx context.Context, actorID, id, role string) (*models.User, error) {
	if actorID == id {
		return nil, ErrOwnRole
	}

	u, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(u).Update("role", role).Error; err != nil {
		return nil, fmt.Errorf("failed to update role: %w", err)
	}
	u.Role = role

	s.logger.Info("User role changed",
		zap.String("actor_id", actorID),
		zap.String("user_id", id),
		zap.String("role", role),
	)
	return u, nil
}

// UpsertOAuthUser creates or refreshes the account of an OAuth identity.
// Profile fields are overwritten on every login. The role is only raised,
// never lowered, by the admin email list.
func (s *Service) UpsertOAuthUser(ctx context.Context, id Identity) (*models.User, error) {
	role := models.RoleUser
	if s.IsAdminEmail(id.Email) {
		role = models.RoleAdmin
	}

	u := models.User{
		Provider:          id.Provider,
		ProviderAccountID: id.AccountID,
		Name:              id.Name,
		Email:             id.Email,
		Image:             id.Image,
		Role:              role,
	}

	updates := []string{"name", "email", "image", "updated_at"}
	if role == models.RoleAdmin {
		updates = append(updates, "role")
	}

	var stored models.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "provider"}, {Name: "provider_account_id"}},
			DoUpdates: clause.AssignmentColumns(updates),
		}).Create(&u).Error; err != nil {
			return fmt.Errorf("failed to upsert user: %w", err)
		}

		// u.ID holds the generated ID even when the row already existed,
		// so read the stored row into a zero value
		if err := tx.Where("provider = ? AND provider_account_id = ?", id.Provider, id.AccountID).Take(&stored).Error; err != nil {
			return fmt.Errorf("failed to load user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

// IsAdminEmail reports whether email is configured as an admin.
func (s *Service) IsAdminEmail(email string) bool {
	_, ok := s.adminEmails[strings.ToLower(strings.TrimSpace(email))]
	return ok
}
