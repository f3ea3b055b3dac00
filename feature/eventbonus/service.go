package eventbonus

import (
	"context"
	"errors"

	"prsk-lab/feature/character"

	"go.uber.org/zap"
)

var (
	ErrCharacterNotFound = errors.New("character not found")
	ErrUnitNotFound      = errors.New("unit not found")
)

// Characters looks up characters by code.
type Characters interface {
	ByCode(ctx context.Context) (map[string]character.View, error)
}

// Service resolves calculator input against the character master data.
type Service struct {
	characters Characters
	logger     *zap.Logger
}

// NewService creates a new event bonus service.
func NewService(characters Characters, logger *zap.Logger) *Service {
	return &Service{characters: characters, logger: logger}
}

// TeamInput is a team bonus request with characters given by code.
type TeamInput struct {
	Event Event
	Cards []CardInput
}

// CardInput is a card with its character given by code.
type CardInput struct {
	Character   string
	Attribute   string
	Rarity      string
	MasterRank  int
	SupportUnit string
}

// Team resolves the characters of in and computes the team bonus.
func (s *Service) Team(ctx context.Context, in TeamInput) (*TeamBonus, error) {
	byCode, err := s.characters.ByCode(ctx)
	if err != nil {
		return nil, err
	}

	units := make(map[string]struct{})
	for _, c := range byCode {
		if c.UnitCode != "" {
			units[c.UnitCode] = struct{}{}
		}
	}
	knownUnit := func(code string) bool {
		if code == "" {
			return true
		}
		_, ok := units[code]
		return ok
	}

	if !knownUnit(in.Event.Unit) {
		return nil, ErrUnitNotFound
	}
	for _, code := range in.Event.Characters {
		if _, ok := byCode[code]; !ok {
			return nil, ErrCharacterNotFound
		}
	}

	cards := make([]Card, 0, len(in.Cards))
	for _, ci := range in.Cards {
		view, ok := byCode[ci.Character]
		if !ok {
			return nil, ErrCharacterNotFound
		}
		if !knownUnit(ci.SupportUnit) {
			return nil, ErrUnitNotFound
		}
		cards = append(cards, Card{
			Character:     ci.Character,
			VirtualSinger: view.IsVirtualSinger(),
			Attribute:     ci.Attribute,
			Rarity:        ci.Rarity,
			MasterRank:    ci.MasterRank,
			SupportUnit:   ci.SupportUnit,
		})
	}

	team, err := CalculateTeamBonus(in.Event, cards)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("Calculated team bonus",
		zap.Int("cards", len(cards)),
		zap.Float64("total", team.Total),
	)
	return team, nil
}
