package furniture

// TagRequest is the body of tag create and update.
type TagRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Priority int    `json:"priority" validate:"gte=0"`
}

// GroupRequest is the body of group create and update.
type GroupRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Priority int    `json:"priority" validate:"gte=0"`
}

// FurnitureRequest is the body of furniture create and update.
type FurnitureRequest struct {
	Name    string  `json:"name" validate:"required,max=100"`
	TagID   *string `json:"tag_id" validate:"omitempty,uuid"`
	GroupID *string `json:"group_id" validate:"omitempty,uuid"`
}

// ReactionRequest is the body of reaction create and update.
type ReactionRequest struct {
	CharacterIDs []string `json:"character_ids" validate:"min=1,max=10,unique,dive,uuid"`
}

// ExcludedCombinationsRequest replaces the excluded combinations of a group.
type ExcludedCombinationsRequest struct {
	Combinations [][]string `json:"combinations" validate:"max=200,dive,min=1,max=10,dive,uuid"`
}
