package eventbonus

// TeamRequest is the body of POST /api/event-bonus/team.
type TeamRequest struct {
	Event EventRequest  `json:"event"`
	Cards []CardRequest `json:"cards" validate:"min=1,max=5,dive"`
}

// EventRequest describes the event of a team request.
type EventRequest struct {
	Attribute string `json:"attribute" validate:"omitempty,oneof=cute cool pure happy mysterious"`
	// UnitCode is empty for mixed events.
	UnitCode       string   `json:"unit_code" validate:"max=32"`
	CharacterCodes []string `json:"character_codes" validate:"max=26,unique,dive,required,max=32"`
}

// CardRequest is a team member.
type CardRequest struct {
	CharacterCode string `json:"character_code" validate:"required,max=32"`
	Attribute     string `json:"attribute" validate:"required,oneof=cute cool pure happy mysterious"`
	Rarity        string `json:"rarity" validate:"required,oneof=rarity_1 rarity_2 rarity_3 rarity_4 rarity_birthday"`
	MasterRank    int    `json:"master_rank" validate:"gte=0,lte=5"`
	// SupportUnit is the unit a VIRTUAL SINGER card supports.
	SupportUnit string `json:"support_unit" validate:"max=32"`
}

// PointsRequest is the body of POST /api/event-bonus/points.
type PointsRequest struct {
	Score     int     `json:"score" validate:"gte=0,lte=100000000"`
	EventRate int     `json:"event_rate" validate:"gte=0,lte=1000"`
	Bonus     float64 `json:"bonus" validate:"gte=0,lte=1000"`
	Energy    int     `json:"energy" validate:"gte=0,lte=10"`
}

// PointsResult is the response of POST /api/event-bonus/points.
type PointsResult struct {
	Points int `json:"points"`
}

// PlaysRequest is the body of POST /api/event-bonus/plays.
type PlaysRequest struct {
	Current       int `json:"current" validate:"gte=0,lte=1000000000"`
	Target        int `json:"target" validate:"gte=0,lte=1000000000"`
	PointsPerPlay int `json:"points_per_play" validate:"gt=0,lte=1000000000"`
	Energy        int `json:"energy" validate:"gte=0,lte=10"`
}

func (r TeamRequest) input() TeamInput {
	in := TeamInput{
		Event: Event{
			Attribute:  r.Event.Attribute,
			Unit:       r.Event.UnitCode,
			Characters: r.Event.CharacterCodes,
		},
		Cards: make([]CardInput, 0, len(r.Cards)),
	}
	for _, c := range r.Cards {
		in.Cards = append(in.Cards, CardInput{
			Character:   c.CharacterCode,
			Attribute:   c.Attribute,
			Rarity:      c.Rarity,
			MasterRank:  c.MasterRank,
			SupportUnit: c.SupportUnit,
		})
	}
	return in
}
