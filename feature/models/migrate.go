package models

import (
	"fmt"

	"gorm.io/gorm"
)

// All returns every model in dependency order.
func All() []any {
	return []any{
		&Unit{},
		&Character{},
		&FurnitureTag{},
		&FurnitureGroup{},
		&FurnitureGroupExcludedCombination{},
		&Furniture{},
		&FurnitureReaction{},
		&User{},
		&UserReactionCheck{},
		&Setting{},
	}
}

// AutoMigrate creates or updates the schema from the models.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(All()...); err != nil {
		return fmt.Errorf("failed to auto migrate: %w", err)
	}
	return nil
}
