package models

import (
	"time"

	"gorm.io/gorm"
)

// FurnitureTag categorises furniture for filtering.
type FurnitureTag struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name      string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Priority  int       `gorm:"not null;default:0" json:"priority"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (FurnitureTag) TableName() string {
	return "furniture_tags"
}

func (t *FurnitureTag) BeforeCreate(tx *gorm.DB) error {
	ensureID(&t.ID)
	return nil
}

// FurnitureGroup links furniture whose reactions share checks.
type FurnitureGroup struct {
	ID                   string                              `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name                 string                              `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Priority             int                                 `gorm:"not null;default:0" json:"priority"`
	ExcludedCombinations []FurnitureGroupExcludedCombination `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE" json:"excluded_combinations,omitempty"`
	CreatedAt            time.Time                           `json:"created_at"`
	UpdatedAt            time.Time                           `json:"updated_at"`
}

func (FurnitureGroup) TableName() string {
	return "furniture_groups"
}

func (g *FurnitureGroup) BeforeCreate(tx *gorm.DB) error {
	ensureID(&g.ID)
	return nil
}

// FurnitureGroupExcludedCombination is a character combination that does
// not share checks across the furniture of its group.
type FurnitureGroupExcludedCombination struct {
	ID         string      `gorm:"primaryKey;type:varchar(36)" json:"id"`
	GroupID    string      `gorm:"type:varchar(36);index;not null" json:"group_id"`
	Characters []Character `gorm:"many2many:furniture_group_excluded_combination_characters;constraint:OnDelete:CASCADE" json:"characters"`
	CreatedAt  time.Time   `json:"created_at"`
}

func (FurnitureGroupExcludedCombination) TableName() string {
	return "furniture_group_excluded_combinations"
}

func (e *FurnitureGroupExcludedCombination) BeforeCreate(tx *gorm.DB) error {
	ensureID(&e.ID)
	return nil
}

// Key returns the combination key of the excluded characters.
func (e FurnitureGroupExcludedCombination) Key() string {
	return CombinationKey(CharacterIDs(e.Characters))
}

// Furniture is an in-game decorative item.
type Furniture struct {
	ID        string              `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name      string              `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	ImageKey  *string             `gorm:"type:varchar(255)" json:"image_key"`
	TagID     *string             `gorm:"type:varchar(36);index" json:"tag_id"`
	Tag       *FurnitureTag       `gorm:"foreignKey:TagID;constraint:OnDelete:SET NULL" json:"tag,omitempty"`
	GroupID   *string             `gorm:"type:varchar(36);index" json:"group_id"`
	Group     *FurnitureGroup     `gorm:"foreignKey:GroupID;constraint:OnDelete:SET NULL" json:"group,omitempty"`
	Reactions []FurnitureReaction `gorm:"foreignKey:FurnitureID;constraint:OnDelete:CASCADE" json:"reactions,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

func (Furniture) TableName() string {
	return "furnitures"
}

func (f *Furniture) BeforeCreate(tx *gorm.DB) error {
	ensureID(&f.ID)
	return nil
}

// FurnitureReaction records which characters react together to a furniture.
type FurnitureReaction struct {
	ID          string      `gorm:"primaryKey;type:varchar(36)" json:"id"`
	FurnitureID string      `gorm:"type:varchar(36);index;not null" json:"furniture_id"`
	Characters  []Character `gorm:"many2many:furniture_reaction_characters;constraint:OnDelete:CASCADE" json:"characters"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

func (FurnitureReaction) TableName() string {
	return "furniture_reactions"
}

func (r *FurnitureReaction) BeforeCreate(tx *gorm.DB) error {
	ensureID(&r.ID)
	return nil
}

// Key returns the combination key of the reacting characters.
func (r FurnitureReaction) Key() string {
	return CombinationKey(CharacterIDs(r.Characters))
}
