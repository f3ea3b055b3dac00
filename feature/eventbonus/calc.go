package eventbonus

import (
	"errors"
	"fmt"
	"math"
)

// Card rarities as named in the game data.
const (
	Rarity1        = "rarity_1"
	Rarity2        = "rarity_2"
	Rarity3        = "rarity_3"
	Rarity4        = "rarity_4"
	RarityBirthday = "rarity_birthday"
)

const (
	// MaxCards is the size of a team.
	MaxCards = 5
	// MaxMasterRank is the highest master rank of a card.
	MaxMasterRank = 5
	// MaxEnergy is the highest energy spent on one play.
	MaxEnergy = 10
	// DefaultEventRate applies when a request leaves the rate out.
	DefaultEventRate = 100
	// MaxScore, MaxEventRate and MaxBonus bound the points inputs so the
	// result fits a 32-bit int.
	MaxScore     = 100000000
	MaxEventRate = 1000
	MaxBonus     = 1000
	// MaxPoints bounds current, target and per-play points.
	MaxPoints = 1000000000

	characterBonus = 250
	attributeBonus = 250
)

var (
	ErrTooManyCards      = errors.New("too many cards")
	ErrInvalidRarity     = errors.New("invalid rarity")
	ErrInvalidMasterRank = errors.New("invalid master rank")
	ErrInvalidEnergy     = errors.New("invalid energy")
	ErrInvalidPoints     = errors.New("points per play must be positive")
	ErrInvalidScore      = errors.New("invalid score")
	ErrInvalidEventRate  = errors.New("invalid event rate")
	ErrInvalidBonus      = errors.New("invalid bonus")
	ErrPointsOutOfRange  = errors.New("points out of range")
)

// masterRankBonus holds the bonus per master rank 0..5, in tenths of a percent.
var masterRankBonus = map[string][MaxMasterRank + 1]int{
	Rarity4:        {100, 125, 150, 175, 200, 250},
	RarityBirthday: {50, 75, 100, 125, 150, 175},
	Rarity3:        {0, 5, 10, 15, 20, 25},
	Rarity2:        {0, 2, 4, 6, 8, 10},
	Rarity1:        {0, 1, 2, 3, 4, 5},
}

// energyMultiplier is the point multiplier per energy spent.
var energyMultiplier = [MaxEnergy + 1]int{1, 5, 10, 15, 19, 23, 26, 29, 31, 33, 35}

// Event is the part of an event that decides card bonuses.
type Event struct {
	Attribute string
	// Unit is the unit code of a unit event, empty for mixed events.
	Unit string
	// Characters are the codes of the bonus characters.
	Characters []string
}

// Card is a team member.
type Card struct {
	Character     string
	VirtualSinger bool
	Attribute     string
	Rarity        string
	MasterRank    int
	// SupportUnit is the unit a VIRTUAL SINGER card supports.
	SupportUnit string
}

// CardBonus is the bonus of one card.
type CardBonus struct {
	Character       string  `json:"character"`
	CharacterBonus  float64 `json:"character_bonus"`
	AttributeBonus  float64 `json:"attribute_bonus"`
	MasterRankBonus float64 `json:"master_rank_bonus"`
	Total           float64 `json:"total"`
}

// TeamBonus is the bonus of a whole team.
type TeamBonus struct {
	Cards []CardBonus `json:"cards"`
	Total float64     `json:"total"`
}

func percent(tenths int) float64 {
	return float64(tenths) / 10
}

// CalculateTeamBonus returns the event bonus of cards.
func CalculateTeamBonus(event Event, cards []Card) (*TeamBonus, error) {
	if len(cards) > MaxCards {
		return nil, ErrTooManyCards
	}

	bonusCharacters := make(map[string]struct{}, len(event.Characters))
	for _, code := range event.Characters {
		bonusCharacters[code] = struct{}{}
	}

	team := &TeamBonus{Cards: make([]CardBonus, 0, len(cards))}
	total := 0
	for i, card := range cards {
		ranks, ok := masterRankBonus[card.Rarity]
		if !ok {
			return nil, fmt.Errorf("card %d: %w", i, ErrInvalidRarity)
		}
		if card.MasterRank < 0 || card.MasterRank > MaxMasterRank {
			return nil, fmt.Errorf("card %d: %w", i, ErrInvalidMasterRank)
		}

		var char, attr int
		if _, ok := bonusCharacters[card.Character]; ok && supportsEvent(event, card) {
			char = characterBonus
		}
		if event.Attribute != "" && card.Attribute == event.Attribute {
			attr = attributeBonus
		}
		rank := ranks[card.MasterRank]

		sum := char + attr + rank
		total += sum
		team.Cards = append(team.Cards, CardBonus{
			Character:       card.Character,
			CharacterBonus:  percent(char),
			AttributeBonus:  percent(attr),
			MasterRankBonus: percent(rank),
			Total:           percent(sum),
		})
	}
	team.Total = percent(total)
	return team, nil
}

// supportsEvent reports whether a bonus character card counts for event.
// VIRTUAL SINGER cards of a unit event must support that unit.
func supportsEvent(event Event, card Card) bool {
	if !card.VirtualSinger || event.Unit == "" {
		return true
	}
	return card.SupportUnit == event.Unit
}

// CalculateEventPoints returns the event points of one play. bonus is the
// team bonus in percent and eventRate defaults to 100 when zero.
func CalculateEventPoints(score, eventRate int, bonus float64, energy int) (int, error) {
	if energy < 0 || energy > MaxEnergy {
		return 0, ErrInvalidEnergy
	}
	if score < 0 || score > MaxScore {
		return 0, ErrInvalidScore
	}
	if eventRate < 0 || eventRate > MaxEventRate {
		return 0, ErrInvalidEventRate
	}
	if math.IsNaN(bonus) || bonus < 0 || bonus > MaxBonus {
		return 0, ErrInvalidBonus
	}
	if eventRate == 0 {
		eventRate = DefaultEventRate
	}
	bonusTenths := int(math.Round(bonus * 10))

	base := 100 + score/20000
	rated := base * eventRate / 100
	boosted := rated * (1000 + bonusTenths) / 1000
	return boosted * energyMultiplier[energy], nil
}

// Plays is the effort needed to reach a target.
type Plays struct {
	Remaining int `json:"remaining"`
	Plays     int `json:"plays"`
	Energy    int `json:"energy"`
}

// CalculatePlays returns how many plays of pointsPerPlay, each spending
// energy, take current to target.
func CalculatePlays(current, target, pointsPerPlay, energy int) (*Plays, error) {
	if pointsPerPlay <= 0 {
		return nil, ErrInvalidPoints
	}
	if pointsPerPlay > MaxPoints || current < 0 || current > MaxPoints || target < 0 || target > MaxPoints {
		return nil, ErrPointsOutOfRange
	}
	if energy < 0 || energy > MaxEnergy {
		return nil, ErrInvalidEnergy
	}

	remaining := target - current
	if remaining <= 0 {
		return &Plays{}, nil
	}
	plays := (remaining + pointsPerPlay - 1) / pointsPerPlay
	return &Plays{Remaining: remaining, Plays: plays, Energy: plays * energy}, nil
}
