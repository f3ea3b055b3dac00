package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is an account created on first OAuth login.
type User struct {
	ID                string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Provider          string    `gorm:"type:varchar(32);not null;uniqueIndex:idx_users_provider_account" json:"provider"`
	ProviderAccountID string    `gorm:"type:varchar(191);not null;uniqueIndex:idx_users_provider_account" json:"-"`
	Name              string    `gorm:"type:varchar(100);not null;default:''" json:"name"`
	Email             string    `gorm:"type:varchar(191);not null;default:''" json:"email"`
	Image             string    `gorm:"type:varchar(512);not null;default:''" json:"image"`
	Role              string    `gorm:"type:varchar(16);not null;default:'user'" json:"role"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	ensureID(&u.ID)
	if u.Role == "" {
		u.Role = RoleUser
	}
	return nil
}

// UserReactionCheck marks a reaction as directly checked by a user.
type UserReactionCheck struct {
	UserID     string             `gorm:"primaryKey;type:varchar(36)" json:"user_id"`
	ReactionID string             `gorm:"primaryKey;type:varchar(36);index" json:"reaction_id"`
	User       *User              `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Reaction   *FurnitureReaction `gorm:"foreignKey:ReactionID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt  time.Time          `json:"created_at"`
}

func (UserReactionCheck) TableName() string {
	return "user_reaction_checks"
}

// Setting holds a user's preferences. Users without a row get DefaultSetting.
type Setting struct {
	ID                   string     `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID               string     `gorm:"type:varchar(36);uniqueIndex;not null" json:"user_id"`
	User                 *User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	LeaderCharacterID    *string    `gorm:"type:varchar(36);index" json:"leader_character_id"`
	LeaderCharacter      *Character `gorm:"foreignKey:LeaderCharacterID;constraint:OnDelete:SET NULL" json:"leader_character,omitempty"`
	HideCheckedReactions bool       `gorm:"not null;default:false" json:"hide_checked_reactions"`
	VisibleUnitCodes     string     `gorm:"type:varchar(255);not null;default:''" json:"-"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

func (Setting) TableName() string {
	return "settings"
}

func (s *Setting) BeforeCreate(tx *gorm.DB) error {
	ensureID(&s.ID)
	return nil
}

// DefaultSetting returns the settings of a user who never saved any.
func DefaultSetting(userID string) Setting {
	return Setting{UserID: userID}
}

// UnitCodes returns the visible unit codes. Empty means every unit is visible.
func (s Setting) UnitCodes() []string {
	if s.VisibleUnitCodes == "" {
		return []string{}
	}
	return strings.Split(s.VisibleUnitCodes, ",")
}

// SetUnitCodes stores codes as a comma list.
func (s *Setting) SetUnitCodes(codes []string) {
	s.VisibleUnitCodes = strings.Join(codes, ",")
}
