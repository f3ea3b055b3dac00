package eventbonus_test

import (
	"context"
	"testing"

	"prsk-lab/core/cache"
	"prsk-lab/core/loader"
	"prsk-lab/core/response/responsetest"
	"prsk-lab/core/server"
	"prsk-lab/feature/character"
	"prsk-lab/feature/eventbonus"
	"prsk-lab/feature/models/modelstest"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newApp(t *testing.T) *fiber.App {
	t.Helper()

	db := modelstest.NewSeededDB(t)
	characters := character.NewService(db, zap.NewNop(), cache.Config{})
	f := eventbonus.NewFeature(characters, zap.NewNop())

	app := server.New(server.Config{}, zap.NewNop())
	require.NoError(t, f.Load(loader.Routes{Public: app, API: app.Group("/api"), Admin: app.Group("/api/admin")}))
	return app
}

func TestService_Team(t *testing.T) {
	db := modelstest.NewSeededDB(t)
	svc := eventbonus.NewService(character.NewService(db, zap.NewNop(), cache.Config{}), zap.NewNop())
	ctx := context.Background()

	t.Run("ResolvesVirtualSinger", func(t *testing.T) {
		team, err := svc.Team(ctx, eventbonus.TeamInput{
			Event: eventbonus.Event{Unit: "mmj", Characters: []string{"rin", "airi"}},
			Cards: []eventbonus.CardInput{
				{Character: "rin", Rarity: eventbonus.Rarity4, SupportUnit: "vbs"},
				{Character: "rin", Rarity: eventbonus.Rarity4, SupportUnit: "mmj"},
				{Character: "airi", Rarity: eventbonus.Rarity4},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, 0.0, team.Cards[0].CharacterBonus)
		assert.Equal(t, 25.0, team.Cards[1].CharacterBonus)
		assert.Equal(t, 25.0, team.Cards[2].CharacterBonus)
		assert.Equal(t, 80.0, team.Total)
	})

	t.Run("UnknownCharacter", func(t *testing.T) {
		_, err := svc.Team(ctx, eventbonus.TeamInput{Cards: []eventbonus.CardInput{{Character: "nobody", Rarity: eventbonus.Rarity1}}})
		assert.ErrorIs(t, err, eventbonus.ErrCharacterNotFound)

		_, err = svc.Team(ctx, eventbonus.TeamInput{Event: eventbonus.Event{Characters: []string{"nobody"}}})
		assert.ErrorIs(t, err, eventbonus.ErrCharacterNotFound)
	})

	t.Run("UnknownUnit", func(t *testing.T) {
		_, err := svc.Team(ctx, eventbonus.TeamInput{Event: eventbonus.Event{Unit: "xx"}})
		assert.ErrorIs(t, err, eventbonus.ErrUnitNotFound)
	})
}

func TestHandlers(t *testing.T) {
	app := newApp(t)

	t.Run("Team", func(t *testing.T) {
		resp, err := app.Test(responsetest.JSON(t, "POST", "/api/event-bonus/team", map[string]any{
			"event": map[string]any{"attribute": "mysterious", "unit_code": "25", "character_codes": []string{"mizuki"}},
			"cards": []map[string]any{
				{"character_code": "mizuki", "attribute": "mysterious", "rarity": "rarity_4", "master_rank": 5},
			},
		}))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var team eventbonus.TeamBonus
		responsetest.Data(t, resp, &team)
		assert.Equal(t, 75.0, team.Total)
	})

	t.Run("TeamValidation", func(t *testing.T) {
		resp, err := app.Test(responsetest.JSON(t, "POST", "/api/event-bonus/team", map[string]any{
			"cards": []map[string]any{{"character_code": "mizuki", "attribute": "sparkly", "rarity": "rarity_4", "master_rank": 9}},
		}))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

		body := responsetest.Decode(t, resp)
		assert.Equal(t, "must be one of [cute cool pure happy mysterious]", body.Errors["cards[0].attribute"])
		assert.Equal(t, "must be less than or equal to 5", body.Errors["cards[0].master_rank"])
	})

	t.Run("TeamUnknownCharacter", func(t *testing.T) {
		resp, err := app.Test(responsetest.JSON(t, "POST", "/api/event-bonus/team", map[string]any{
			"cards": []map[string]any{{"character_code": "nobody", "attribute": "cute", "rarity": "rarity_1"}},
		}))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "Character not found", responsetest.Decode(t, resp).Message)
	})

	t.Run("Points", func(t *testing.T) {
		resp, err := app.Test(responsetest.JSON(t, "POST", "/api/event-bonus/points", map[string]any{
			"score": 2000000, "event_rate": 100, "bonus": 250, "energy": 3,
		}))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var result eventbonus.PointsResult
		responsetest.Data(t, resp, &result)
		assert.Equal(t, 10500, result.Points)
	})

	t.Run("PointsValidation", func(t *testing.T) {
		resp, err := app.Test(responsetest.JSON(t, "POST", "/api/event-bonus/points", map[string]any{"score": -1, "energy": 11}))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

		body := responsetest.Decode(t, resp)
		assert.Contains(t, body.Errors, "score")
		assert.Contains(t, body.Errors, "energy")
	})

	t.Run("PointsScoreBound", func(t *testing.T) {
		resp, err := app.Test(responsetest.JSON(t, "POST", "/api/event-bonus/points", map[string]any{
			"score": int64(9000000000000000000), "event_rate": 1000, "bonus": 1000, "energy": 10,
		}))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

		body := responsetest.Decode(t, resp)
		assert.Equal(t, "must be less than or equal to 100000000", body.Errors["score"])
	})

	t.Run("Plays", func(t *testing.T) {
		resp, err := app.Test(responsetest.JSON(t, "POST", "/api/event-bonus/plays", map[string]any{
			"current": 0, "target": 100000, "points_per_play": 10500, "energy": 3,
		}))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var plays eventbonus.Plays
		responsetest.Data(t, resp, &plays)
		assert.Equal(t, 10, plays.Plays)
		assert.Equal(t, 30, plays.Energy)
	})

	t.Run("InvalidBody", func(t *testing.T) {
		resp, err := app.Test(responsetest.Raw("POST", "/api/event-bonus/plays", "not json"))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}
