package models_test

import (
	"context"
	"testing"

	"prsk-lab/feature/models"
	"prsk-lab/feature/models/modelstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCombinationKey(t *testing.T) {
	assert.Equal(t, "a,b,c", models.CombinationKey([]string{"c", "a", "b"}))
	assert.Equal(t, "a,b", models.CombinationKey([]string{"b", "a", "b", ""}))
	assert.Equal(t, "", models.CombinationKey(nil))
	assert.Equal(t, models.CombinationKey([]string{"x", "y"}), models.CombinationKey([]string{"y", "x"}))

	assert.Equal(t, []string{"a", "b"}, models.SplitCombinationKey("a,b"))
	assert.Nil(t, models.SplitCombinationKey(""))
}

func TestSortCharacters(t *testing.T) {
	chars := []models.Character{
		{Code: "b", Priority: 2},
		{Code: "z", Priority: 1},
		{Code: "a", Priority: 2},
	}
	models.SortCharacters(chars)
	assert.Equal(t, []string{"z", "a", "b"}, []string{chars[0].Code, chars[1].Code, chars[2].Code})
}

func TestTableNames(t *testing.T) {
	assert.Equal(t, "furnitures", models.Furniture{}.TableName())
	assert.Equal(t, "furniture_group_excluded_combinations", models.FurnitureGroupExcludedCombination{}.TableName())
	assert.Equal(t, "user_reaction_checks", models.UserReactionCheck{}.TableName())
}

func TestSettingUnitCodes(t *testing.T) {
	s := models.DefaultSetting("u1")
	assert.Equal(t, []string{}, s.UnitCodes())
	assert.False(t, s.HideCheckedReactions)

	s.SetUnitCodes([]string{"ln", "vbs"})
	assert.Equal(t, "ln,vbs", s.VisibleUnitCodes)
	assert.Equal(t, []string{"ln", "vbs"}, s.UnitCodes())
}

func TestSeed(t *testing.T) {
	db := modelstest.NewDB(t)

	result, err := models.Seed(context.Background(), db)
	require.NoError(t, err)
	assert.Equal(t, len(models.SeedUnits), result.Units)
	assert.Equal(t, len(models.SeedCharacters), result.Characters)

	miku := modelstest.Character(t, db, "miku")
	require.NotNil(t, miku.UnitID)

	var vs models.Unit
	require.NoError(t, db.Where("code = ?", "vs").First(&vs).Error)
	assert.Equal(t, vs.ID, *miku.UnitID)

	t.Run("Idempotent", func(t *testing.T) {
		_, err := models.Seed(context.Background(), db)
		require.NoError(t, err)

		var count int64
		require.NoError(t, db.Model(&models.Character{}).Count(&count).Error)
		assert.Equal(t, int64(len(models.SeedCharacters)), count)

		again := modelstest.Character(t, db, "miku")
		assert.Equal(t, miku.ID, again.ID)
	})
}

func TestConstraints(t *testing.T) {
	db := modelstest.NewSeededDB(t)

	t.Run("DuplicateTagName", func(t *testing.T) {
		require.NoError(t, db.Create(&models.FurnitureTag{Name: "Sofa"}).Error)
		err := db.Create(&models.FurnitureTag{Name: "Sofa"}).Error
		assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
	})

	t.Run("ReactionCascade", func(t *testing.T) {
		ichika := modelstest.Character(t, db, "ichika")
		f, ids := modelstest.Furniture(t, db, "Cascade Chair", nil, []models.Character{ichika})
		u := modelstest.User(t, db, "cascade", models.RoleUser)
		require.NoError(t, db.Create(&models.UserReactionCheck{UserID: u.ID, ReactionID: ids[0]}).Error)

		require.NoError(t, db.Delete(&models.Furniture{}, "id = ?", f.ID).Error)

		var reactions, checks int64
		db.Model(&models.FurnitureReaction{}).Where("id = ?", ids[0]).Count(&reactions)
		db.Model(&models.UserReactionCheck{}).Where("reaction_id = ?", ids[0]).Count(&checks)
		assert.Zero(t, reactions)
		assert.Zero(t, checks)
	})

	t.Run("GroupSetNull", func(t *testing.T) {
		g := models.FurnitureGroup{Name: "Set Null Group"}
		require.NoError(t, db.Create(&g).Error)
		f, _ := modelstest.Furniture(t, db, "Grouped Lamp", &g.ID)

		require.NoError(t, db.Delete(&models.FurnitureGroup{}, "id = ?", g.ID).Error)

		var reloaded models.Furniture
		require.NoError(t, db.First(&reloaded, "id = ?", f.ID).Error)
		assert.Nil(t, reloaded.GroupID)
	})
}
