package models

import (
	"time"

	"gorm.io/gorm"
)

// UnitCodeVirtualSinger is the code of the VIRTUAL SINGER unit.
const UnitCodeVirtualSinger = "vs"

// Unit is a music unit grouping characters.
type Unit struct {
	ID         string      `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Code       string      `gorm:"type:varchar(32);uniqueIndex;not null" json:"code"`
	Name       string      `gorm:"type:varchar(100);not null" json:"name"`
	ShortName  string      `gorm:"type:varchar(32);not null" json:"short_name"`
	Color      string      `gorm:"type:varchar(7);not null;default:''" json:"color"`
	BgColor    string      `gorm:"type:varchar(7);not null;default:''" json:"bg_color"`
	Priority   int         `gorm:"not null;default:0" json:"priority"`
	Characters []Character `gorm:"foreignKey:UnitID;constraint:OnDelete:SET NULL" json:"characters,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

func (Unit) TableName() string {
	return "units"
}

func (u *Unit) BeforeCreate(tx *gorm.DB) error {
	ensureID(&u.ID)
	return nil
}

// Character is a playable character, optionally belonging to a unit.
type Character struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Code      string    `gorm:"type:varchar(32);uniqueIndex;not null" json:"code"`
	UnitID    *string   `gorm:"type:varchar(36);index" json:"unit_id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	ShortName string    `gorm:"type:varchar(32);not null" json:"short_name"`
	Color     string    `gorm:"type:varchar(7);not null;default:''" json:"color"`
	BgColor   string    `gorm:"type:varchar(7);not null;default:''" json:"bg_color"`
	Priority  int       `gorm:"not null;default:0" json:"priority"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Character) TableName() string {
	return "characters"
}

func (c *Character) BeforeCreate(tx *gorm.DB) error {
	ensureID(&c.ID)
	return nil
}
