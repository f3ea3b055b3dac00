package eventbonus_test

import (
	"testing"

	"prsk-lab/feature/eventbonus"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateTeamBonus(t *testing.T) {
	event := eventbonus.Event{Attribute: "cute", Unit: "ln", Characters: []string{"ichika", "saki", "miku"}}

	tests := []struct {
		name string
		card eventbonus.Card
		want eventbonus.CardBonus
	}{
		{
			name: "CharacterAndAttribute",
			card: eventbonus.Card{Character: "ichika", Attribute: "cute", Rarity: eventbonus.Rarity4, MasterRank: 1},
			want: eventbonus.CardBonus{Character: "ichika", CharacterBonus: 25, AttributeBonus: 25, MasterRankBonus: 12.5, Total: 62.5},
		},
		{
			name: "AttributeOnly",
			card: eventbonus.Card{Character: "an", Attribute: "cute", Rarity: eventbonus.Rarity2, MasterRank: 3},
			want: eventbonus.CardBonus{Character: "an", AttributeBonus: 25, MasterRankBonus: 0.6, Total: 25.6},
		},
		{
			name: "VirtualSingerSupportingEventUnit",
			card: eventbonus.Card{Character: "miku", VirtualSinger: true, SupportUnit: "ln", Attribute: "cool", Rarity: eventbonus.RarityBirthday, MasterRank: 5},
			want: eventbonus.CardBonus{Character: "miku", CharacterBonus: 25, MasterRankBonus: 17.5, Total: 42.5},
		},
		{
			name: "VirtualSingerSupportingOtherUnit",
			card: eventbonus.Card{Character: "miku", VirtualSinger: true, SupportUnit: "ws", Attribute: "cool", Rarity: eventbonus.Rarity3, MasterRank: 2},
			want: eventbonus.CardBonus{Character: "miku", MasterRankBonus: 1, Total: 1},
		},
		{
			name: "OneStar",
			card: eventbonus.Card{Character: "toya", Attribute: "pure", Rarity: eventbonus.Rarity1, MasterRank: 5},
			want: eventbonus.CardBonus{Character: "toya", MasterRankBonus: 0.5, Total: 0.5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			team, err := eventbonus.CalculateTeamBonus(event, []eventbonus.Card{tt.card})
			require.NoError(t, err)
			require.Len(t, team.Cards, 1)
			assert.Equal(t, tt.want, team.Cards[0])
			assert.Equal(t, tt.want.Total, team.Total)
		})
	}
}

func TestCalculateTeamBonus_MixedEvent(t *testing.T) {
	event := eventbonus.Event{Characters: []string{"miku"}}
	cards := []eventbonus.Card{
		{Character: "miku", VirtualSinger: true, SupportUnit: "25", Rarity: eventbonus.Rarity4},
		{Character: "miku", VirtualSinger: true, Rarity: eventbonus.Rarity4},
	}

	team, err := eventbonus.CalculateTeamBonus(event, cards)
	require.NoError(t, err)
	assert.Equal(t, 35.0, team.Cards[0].Total)
	assert.Equal(t, 35.0, team.Cards[1].Total)
	assert.Equal(t, 70.0, team.Total)
}

func TestCalculateTeamBonus_Errors(t *testing.T) {
	card := eventbonus.Card{Character: "ena", Rarity: eventbonus.Rarity4}

	_, err := eventbonus.CalculateTeamBonus(eventbonus.Event{}, []eventbonus.Card{card, card, card, card, card, card})
	assert.ErrorIs(t, err, eventbonus.ErrTooManyCards)

	_, err = eventbonus.CalculateTeamBonus(eventbonus.Event{}, []eventbonus.Card{{Character: "ena", Rarity: "rarity_5"}})
	assert.ErrorIs(t, err, eventbonus.ErrInvalidRarity)

	_, err = eventbonus.CalculateTeamBonus(eventbonus.Event{}, []eventbonus.Card{{Character: "ena", Rarity: eventbonus.Rarity4, MasterRank: 6}})
	assert.ErrorIs(t, err, eventbonus.ErrInvalidMasterRank)

	team, err := eventbonus.CalculateTeamBonus(eventbonus.Event{}, nil)
	require.NoError(t, err)
	assert.Empty(t, team.Cards)
	assert.Zero(t, team.Total)
}

func TestCalculateEventPoints(t *testing.T) {
	tests := []struct {
		name   string
		score  int
		rate   int
		bonus  float64
		energy int
		want   int
	}{
		{"Reference", 2000000, 100, 250, 3, 10500},
		{"DefaultRate", 2000000, 0, 250, 3, 10500},
		{"NoEnergy", 2000000, 100, 250, 0, 700},
		{"FloorsScore", 19999, 100, 0, 1, 500},
		{"FractionalBonus", 1000000, 100, 212.5, 1, 2340},
		{"MaxEnergy", 0, 120, 0, 10, 4200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := eventbonus.CalculateEventPoints(tt.score, tt.rate, tt.bonus, tt.energy)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := eventbonus.CalculateEventPoints(0, 100, 0, 11)
	assert.ErrorIs(t, err, eventbonus.ErrInvalidEnergy)
}

func TestCalculateEventPoints_Bounds(t *testing.T) {
	got, err := eventbonus.CalculateEventPoints(eventbonus.MaxScore, eventbonus.MaxEventRate, eventbonus.MaxBonus, eventbonus.MaxEnergy)
	require.NoError(t, err)
	assert.Equal(t, 19635000, got)

	tests := []struct {
		name  string
		score int
		rate  int
		bonus float64
		want  error
	}{
		{"HugeScore", 9000000000000000000, 1000, 1000, eventbonus.ErrInvalidScore},
		{"ScoreAboveMax", eventbonus.MaxScore + 1, 100, 0, eventbonus.ErrInvalidScore},
		{"NegativeScore", -1, 100, 0, eventbonus.ErrInvalidScore},
		{"RateAboveMax", 0, eventbonus.MaxEventRate + 1, 0, eventbonus.ErrInvalidEventRate},
		{"NegativeRate", 0, -100, 0, eventbonus.ErrInvalidEventRate},
		{"BonusAboveMax", 0, 100, 1000.1, eventbonus.ErrInvalidBonus},
		{"NegativeBonus", 0, 100, -5, eventbonus.ErrInvalidBonus},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := eventbonus.CalculateEventPoints(tt.score, tt.rate, tt.bonus, 10)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCalculatePlays(t *testing.T) {
	plays, err := eventbonus.CalculatePlays(1000, 25000, 10500, 3)
	require.NoError(t, err)
	assert.Equal(t, &eventbonus.Plays{Remaining: 24000, Plays: 3, Energy: 9}, plays)

	plays, err = eventbonus.CalculatePlays(0, 21000, 10500, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, plays.Plays)
	assert.Zero(t, plays.Energy)

	plays, err = eventbonus.CalculatePlays(30000, 25000, 10500, 3)
	require.NoError(t, err)
	assert.Equal(t, &eventbonus.Plays{}, plays)

	_, err = eventbonus.CalculatePlays(0, 100, 0, 1)
	assert.ErrorIs(t, err, eventbonus.ErrInvalidPoints)

	_, err = eventbonus.CalculatePlays(0, eventbonus.MaxPoints+1, 10500, 1)
	assert.ErrorIs(t, err, eventbonus.ErrPointsOutOfRange)

	_, err = eventbonus.CalculatePlays(0, 100, eventbonus.MaxPoints+1, 1)
	assert.ErrorIs(t, err, eventbonus.ErrPointsOutOfRange)

	plays, err = eventbonus.CalculatePlays(0, eventbonus.MaxPoints, eventbonus.MaxPoints, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, plays.Plays)
}
