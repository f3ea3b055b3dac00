// Package modelstest provides database fixtures for tests.
package modelstest

import (
	"context"
	"testing"

	"prsk-lab/core/database"
	"prsk-lab/feature/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// NewDB returns an empty in-memory sqlite database with the schema applied.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// NewSeededDB returns an in-memory database holding the seeded units and characters.
func NewSeededDB(t testing.TB) *gorm.DB {
	t.Helper()

	db := NewDB(t)
	_, err := models.Seed(context.Background(), db)
	require.NoError(t, err)
	return db
}

// NewMockDB returns a GORM handle backed by sqlmock for forcing driver errors.
func NewMockDB(t testing.TB) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	return db, mock
}

// Character returns the seeded character with code.
func Character(t testing.TB, db *gorm.DB, code string) models.Character {
	t.Helper()

	var c models.Character
	require.NoError(t, db.Where("code = ?", code).First(&c).Error)
	return c
}

// User creates a user with the given role.
func User(t testing.TB, db *gorm.DB, name, role string) models.User {
	t.Helper()

	u := models.User{Provider: "test", ProviderAccountID: name, Name: name, Email: name + "@example.com", Role: role}
	require.NoError(t, db.Create(&u).Error)
	return u
}

// Furniture creates a furniture in group (which may be nil) with one reaction
// per character combination. It returns the furniture and the reaction IDs.
func Furniture(t testing.TB, db *gorm.DB, name string, groupID *string, combinations ...[]models.Character) (models.Furniture, []string) {
	t.Helper()

	f := models.Furniture{Name: name, GroupID: groupID}
	require.NoError(t, db.Create(&f).Error)

	ids := make([]string, 0, len(combinations))
	for _, chars := range combinations {
		r := models.FurnitureReaction{FurnitureID: f.ID, Characters: chars}
		require.NoError(t, db.Create(&r).Error)
		ids = append(ids, r.ID)
	}
	return f, ids
}
