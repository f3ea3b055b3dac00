package furniture_test

import (
	"context"
	"errors"
	"testing"

	"prsk-lab/core/storage"
	"prsk-lab/core/storage/mocks"
	"prsk-lab/feature/furniture"
	"prsk-lab/feature/models"
	"prsk-lab/feature/models/modelstest"
	"prsk-lab/feature/setting"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	db      *gorm.DB
	svc     *furniture.Service
	storage *mocks.Client
	user    models.User
	ichika  models.Character
	saki    models.Character
	miku    models.Character
	toya    models.Character
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := modelstest.NewSeededDB(t)
	client := new(mocks.Client)
	logger := zap.NewNop()

	return &fixture{
		db:      db,
		svc:     furniture.NewService(db, logger, client, storage.Config{Bucket: "prsk-lab"}, setting.NewService(db, logger)),
		storage: client,
		user:    modelstest.User(t, db, "player", models.RoleUser),
		ichika:  modelstest.Character(t, db, "ichika"),
		saki:    modelstest.Character(t, db, "saki"),
		miku:    modelstest.Character(t, db, "miku"),
		toya:    modelstest.Character(t, db, "toya"),
	}
}

func (f *fixture) group(t *testing.T, name string) models.FurnitureGroup {
	t.Helper()
	g, err := f.svc.CreateGroup(context.Background(), furniture.GroupInput{Name: name})
	require.NoError(t, err)
	return *g
}

func TestTagsAndGroups(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tag, err := f.svc.CreateTag(ctx, furniture.TagInput{Name: "Sofa", Priority: 2})
	require.NoError(t, err)

	_, err = f.svc.CreateTag(ctx, furniture.TagInput{Name: "Sofa"})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	updated, err := f.svc.UpdateTag(ctx, tag.ID, furniture.TagInput{Name: "Couch", Priority: 0})
	require.NoError(t, err)
	assert.Equal(t, "Couch", updated.Name)
	assert.Equal(t, 0, updated.Priority)

	_, err = f.svc.UpdateTag(ctx, uuid.NewString(), furniture.TagInput{Name: "x"})
	assert.ErrorIs(t, err, furniture.ErrTagNotFound)

	g := f.group(t, "Band Set")
	item, err := f.svc.CreateFurniture(ctx, furniture.FurnitureInput{Name: "Amp", TagID: &tag.ID, GroupID: &g.ID})
	require.NoError(t, err)
	require.NotNil(t, item.Tag)
	assert.Equal(t, "Couch", item.Tag.Name)

	require.NoError(t, f.svc.DeleteTag(ctx, tag.ID))
	assert.ErrorIs(t, f.svc.DeleteTag(ctx, tag.ID), furniture.ErrTagNotFound)

	require.NoError(t, f.svc.DeleteGroup(ctx, g.ID))
	reloaded, err := f.svc.GetFurniture(ctx, item.ID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.TagID)
	assert.Nil(t, reloaded.GroupID)
}

func TestCreateFurniture_MissingRefs(t *testing.T) {
	f := newFixture(t)
	missing := uuid.NewString()

	_, err := f.svc.CreateFurniture(context.Background(), furniture.FurnitureInput{Name: "Desk", TagID: &missing})
	assert.ErrorIs(t, err, furniture.ErrTagNotFound)

	_, err = f.svc.CreateFurniture(context.Background(), furniture.FurnitureInput{Name: "Desk", GroupID: &missing})
	assert.ErrorIs(t, err, furniture.ErrGroupNotFound)
}

func TestReactions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	item, err := f.svc.CreateFurniture(ctx, furniture.FurnitureInput{Name: "Guitar Stand"})
	require.NoError(t, err)

	r, err := f.svc.CreateReaction(ctx, item.ID, []string{f.saki.ID, f.ichika.ID})
	require.NoError(t, err)
	assert.Len(t, r.Characters, 2)
	assert.Equal(t, "ichika", r.Characters[0].Code)

	_, err = f.svc.CreateReaction(ctx, item.ID, []string{f.ichika.ID, f.saki.ID})
	assert.ErrorIs(t, err, furniture.ErrDuplicateReaction)

	_, err = f.svc.CreateReaction(ctx, item.ID, []string{uuid.NewString()})
	assert.ErrorIs(t, err, furniture.ErrCharacterNotFound)

	_, err = f.svc.CreateReaction(ctx, uuid.NewString(), []string{f.ichika.ID})
	assert.ErrorIs(t, err, furniture.ErrFurnitureNotFound)

	updated, err := f.svc.UpdateReaction(ctx, r.ID, []string{f.miku.ID})
	require.NoError(t, err)
	assert.Equal(t, f.miku.ID, updated.Key())

	reloaded, err := f.svc.GetFurniture(ctx, item.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Reactions, 1)
	assert.Equal(t, f.miku.ID, reloaded.Reactions[0].Key())

	require.NoError(t, f.svc.DeleteReaction(ctx, r.ID))
	assert.ErrorIs(t, f.svc.DeleteReaction(ctx, r.ID), furniture.ErrReactionNotFound)
}

func TestReplaceExcludedCombinations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	g := f.group(t, "Stage")

	t.Run("Replace", func(t *testing.T) {
		group, err := f.svc.ReplaceExcludedCombinations(ctx, g.ID, [][]string{
			{f.saki.ID, f.ichika.ID},
			{f.miku.ID},
		})
		require.NoError(t, err)
		require.Len(t, group.ExcludedCombinations, 2)
		assert.Equal(t, f.miku.ID, group.ExcludedCombinations[0].Key())

		group, err = f.svc.ReplaceExcludedCombinations(ctx, g.ID, [][]string{{f.toya.ID}})
		require.NoError(t, err)
		require.Len(t, group.ExcludedCombinations, 1)
		assert.Equal(t, f.toya.ID, group.ExcludedCombinations[0].Key())
	})

	t.Run("Clear", func(t *testing.T) {
		group, err := f.svc.ReplaceExcludedCombinations(ctx, g.ID, nil)
		require.NoError(t, err)
		assert.Empty(t, group.ExcludedCombinations)

		var rows int64
		require.NoError(t, f.db.Model(&models.FurnitureGroupExcludedCombination{}).Where("group_id = ?", g.ID).Count(&rows).Error)
		assert.Zero(t, rows)
	})

	t.Run("DuplicateKeys", func(t *testing.T) {
		_, err := f.svc.ReplaceExcludedCombinations(ctx, g.ID, [][]string{
			{f.ichika.ID, f.saki.ID},
			{f.saki.ID, f.ichika.ID},
		})
		var combErr *furniture.CombinationError
		require.True(t, errors.As(err, &combErr))
		assert.Equal(t, 1, combErr.Index)
		assert.Equal(t, "combinations[1]", combErr.Field())
		assert.ErrorIs(t, err, furniture.ErrInvalidCombination)
	})

	t.Run("Empty", func(t *testing.T) {
		_, err := f.svc.ReplaceExcludedCombinations(ctx, g.ID, [][]string{{}})
		assert.ErrorIs(t, err, furniture.ErrInvalidCombination)
	})

	t.Run("UnknownCharacter", func(t *testing.T) {
		_, err := f.svc.ReplaceExcludedCombinations(ctx, g.ID, [][]string{{uuid.NewString()}})
		assert.ErrorIs(t, err, furniture.ErrCharacterNotFound)
	})

	t.Run("UnknownGroup", func(t *testing.T) {
		_, err := f.svc.ReplaceExcludedCombinations(ctx, uuid.NewString(), [][]string{{f.miku.ID}})
		assert.ErrorIs(t, err, furniture.ErrGroupNotFound)
	})
}

func TestGroupCombinations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	g := f.group(t, "Cafe")

	modelstest.Furniture(t, f.db, "Cafe Table", &g.ID, []models.Character{f.ichika, f.saki}, []models.Character{f.miku})
	modelstest.Furniture(t, f.db, "Cafe Chair", &g.ID, []models.Character{f.saki, f.ichika})
	modelstest.Furniture(t, f.db, "Elsewhere", nil, []models.Character{f.toya})

	_, err := f.svc.ReplaceExcludedCombinations(ctx, g.ID, [][]string{{f.miku.ID}, {f.toya.ID, f.miku.ID}})
	require.NoError(t, err)

	combinations, err := f.svc.GroupCombinations(ctx, g.ID)
	require.NoError(t, err)
	require.Len(t, combinations, 3)

	byKey := map[string]furniture.Combination{}
	for _, c := range combinations {
		byKey[c.Key] = c
	}
	pair := byKey[models.CombinationKey([]string{f.ichika.ID, f.saki.ID})]
	assert.Equal(t, 2, pair.FurnitureCount)
	assert.False(t, pair.Excluded)

	single := byKey[f.miku.ID]
	assert.True(t, single.Excluded)
	assert.Equal(t, 1, single.FurnitureCount)

	stale := byKey[models.CombinationKey([]string{f.toya.ID, f.miku.ID})]
	assert.True(t, stale.Excluded)
	assert.Zero(t, stale.FurnitureCount)

	_, err = f.svc.GroupCombinations(ctx, uuid.NewString())
	assert.ErrorIs(t, err, furniture.ErrGroupNotFound)
}

func TestListReactionsAndChecks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	g := f.group(t, "Studio")

	_, table := modelstest.Furniture(t, f.db, "Studio Table", &g.ID, []models.Character{f.ichika, f.saki}, []models.Character{f.miku})
	_, chair := modelstest.Furniture(t, f.db, "Studio Chair", &g.ID, []models.Character{f.ichika, f.saki}, []models.Character{f.miku})
	_, lamp := modelstest.Furniture(t, f.db, "Lamp", nil, []models.Character{f.toya})

	statusOf := func(t *testing.T, views []furniture.FurnitureView, reactionID string) *furniture.CheckStatus {
		t.Helper()
		for _, v := range views {
			for _, r := range v.Reactions {
				if r.ID == reactionID {
					return r.CheckedBy
				}
			}
		}
		t.Fatalf("reaction %s not listed", reactionID)
		return nil
	}

	_, err := f.svc.ReplaceExcludedCombinations(ctx, g.ID, [][]string{{f.miku.ID}})
	require.NoError(t, err)

	result, err := f.svc.Check(ctx, f.user.ID, table[0])
	require.NoError(t, err)
	assert.Equal(t, furniture.CheckedDirect, *result.CheckedBy)

	// Checking twice is a no-op
	_, err = f.svc.Check(ctx, f.user.ID, table[0])
	require.NoError(t, err)

	_, err = f.svc.Check(ctx, f.user.ID, table[1])
	require.NoError(t, err)

	views, err := f.svc.ListReactions(ctx, f.user.ID, furniture.ReactionFilter{})
	require.NoError(t, err)
	require.Len(t, views, 3)
	assert.Equal(t, furniture.CheckedDirect, *statusOf(t, views, table[0]))
	assert.Equal(t, furniture.CheckedGroup, *statusOf(t, views, chair[0]))
	// Excluded combination does not share
	assert.Nil(t, statusOf(t, views, chair[1]))
	assert.Nil(t, statusOf(t, views, lamp[0]))

	t.Run("Filters", func(t *testing.T) {
		views, err := f.svc.ListReactions(ctx, f.user.ID, furniture.ReactionFilter{GroupID: g.ID, Unchecked: true})
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, "Studio Chair", views[0].Name)
		require.Len(t, views[0].Reactions, 1)
		assert.Equal(t, chair[1], views[0].Reactions[0].ID)

		views, err = f.svc.ListReactions(ctx, f.user.ID, furniture.ReactionFilter{CharacterID: f.toya.ID})
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, "Lamp", views[0].Name)

		views, err = f.svc.ListReactions(ctx, f.user.ID, furniture.ReactionFilter{UnitCode: "ln"})
		require.NoError(t, err)
		assert.Len(t, views, 2)

		views, err = f.svc.ListReactions(ctx, f.user.ID, furniture.ReactionFilter{UnitCode: "xx"})
		require.NoError(t, err)
		assert.Empty(t, views)
	})

	t.Run("HideCheckedSetting", func(t *testing.T) {
		require.NoError(t, f.db.Create(&models.Setting{UserID: f.user.ID, HideCheckedReactions: true}).Error)

		views, err := f.svc.ListReactions(ctx, f.user.ID, furniture.ReactionFilter{})
		require.NoError(t, err)
		for _, v := range views {
			for _, r := range v.Reactions {
				assert.Nil(t, r.CheckedBy, r.ID)
			}
		}
	})

	t.Run("UncheckKeepsGroup", func(t *testing.T) {
		_, err := f.svc.Check(ctx, f.user.ID, chair[0])
		require.NoError(t, err)

		result, err := f.svc.Uncheck(ctx, f.user.ID, chair[0])
		require.NoError(t, err)
		require.NotNil(t, result.CheckedBy)
		assert.Equal(t, furniture.CheckedGroup, *result.CheckedBy)

		result, err = f.svc.Uncheck(ctx, f.user.ID, lamp[0])
		require.NoError(t, err)
		assert.Nil(t, result.CheckedBy)
	})

	t.Run("UnknownReaction", func(t *testing.T) {
		_, err := f.svc.Check(ctx, f.user.ID, uuid.NewString())
		assert.ErrorIs(t, err, furniture.ErrReactionNotFound)
		_, err = f.svc.Uncheck(ctx, f.user.ID, uuid.NewString())
		assert.ErrorIs(t, err, furniture.ErrReactionNotFound)
	})
}

func TestListFurnitures_QueryMatchesLiterally(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	modelstest.Furniture(t, f.db, "50% Off Sign", nil)
	modelstest.Furniture(t, f.db, "500 Stage Lights", nil)
	modelstest.Furniture(t, f.db, "Snack_Bar", nil)
	modelstest.Furniture(t, f.db, "Snack Bar", nil)
	modelstest.Furniture(t, f.db, "Wow! Poster", nil)

	for _, tc := range []struct {
		query string
		want  []string
	}{
		{query: "50%", want: []string{"50% Off Sign"}},
		{query: "Snack_", want: []string{"Snack_Bar"}},
		{query: "!", want: []string{"Wow! Poster"}},
		{query: "%", want: []string{"50% Off Sign"}},
		{query: "Snack", want: []string{"Snack Bar", "Snack_Bar"}},
	} {
		t.Run(tc.query, func(t *testing.T) {
			list, err := f.svc.ListFurnitures(ctx, furniture.FurnitureFilter{Query: tc.query})
			require.NoError(t, err)

			names := make([]string, 0, len(list))
			for _, item := range list {
				names = append(names, item.Name)
			}
			assert.ElementsMatch(t, tc.want, names)
		})
	}
}
