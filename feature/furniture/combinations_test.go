package furniture_test

import (
	"testing"

	"prsk-lab/feature/furniture"
	"prsk-lab/feature/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	charA = models.Character{ID: "a", Code: "ichika", Priority: 7}
	charB = models.Character{ID: "b", Code: "saki", Priority: 8}
	charC = models.Character{ID: "c", Code: "miku", Priority: 1}
)

func reaction(id string, chars ...models.Character) models.FurnitureReaction {
	return models.FurnitureReaction{ID: id, Characters: chars}
}

func furnitureIn(id string, groupID *string, reactions ...models.FurnitureReaction) models.Furniture {
	for i := range reactions {
		reactions[i].FurnitureID = id
	}
	return models.Furniture{ID: id, GroupID: groupID, Reactions: reactions}
}

func TestBuildCombinations(t *testing.T) {
	g := "g1"
	furnitures := []models.Furniture{
		furnitureIn("f1", &g, reaction("r1", charA, charB), reaction("r2", charC)),
		furnitureIn("f2", &g, reaction("r3", charB, charA)),
		furnitureIn("f3", &g, reaction("r4", charA, charB), reaction("r5", charB, charA)),
	}
	excluded := []models.FurnitureGroupExcludedCombination{
		{Characters: []models.Character{charC}},
		{Characters: []models.Character{charA, charC}},
	}

	combinations := furniture.BuildCombinations(furnitures, excluded)
	require.Len(t, combinations, 3)

	// Ordered by character count, then key
	single := combinations[0]
	assert.Equal(t, "c", single.Key)
	assert.True(t, single.Excluded)
	assert.Equal(t, []string{"r2"}, single.ReactionIDs)
	assert.Equal(t, 1, single.FurnitureCount)

	pair := combinations[1]
	assert.Equal(t, "a,b", pair.Key)
	assert.False(t, pair.Excluded)
	assert.Equal(t, []string{"r1", "r3", "r4", "r5"}, pair.ReactionIDs)
	assert.Equal(t, []string{"f1", "f2", "f3"}, pair.FurnitureIDs)
	assert.Equal(t, 3, pair.FurnitureCount)
	// Characters ordered by priority
	assert.Equal(t, "a", pair.Characters[0].ID)

	stale := combinations[2]
	assert.Equal(t, "a,c", stale.Key)
	assert.True(t, stale.Excluded)
	assert.Empty(t, stale.ReactionIDs)
	assert.Equal(t, 0, stale.FurnitureCount)
	assert.Equal(t, "c", stale.Characters[0].ID)
}

func TestBuildCombinations_Empty(t *testing.T) {
	combinations := furniture.BuildCombinations(nil, nil)
	assert.NotNil(t, combinations)
	assert.Empty(t, combinations)

	// Reactions and exclusions without characters are ignored
	combinations = furniture.BuildCombinations(
		[]models.Furniture{furnitureIn("f1", nil, reaction("r1"))},
		[]models.FurnitureGroupExcludedCombination{{}},
	)
	assert.Empty(t, combinations)
}
