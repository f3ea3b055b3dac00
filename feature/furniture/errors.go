package furniture

import (
	"errors"
	"fmt"
)

var (
	ErrTagNotFound       = errors.New("furniture tag not found")
	ErrGroupNotFound     = errors.New("furniture group not found")
	ErrFurnitureNotFound = errors.New("furniture not found")
	ErrReactionNotFound  = errors.New("reaction not found")
	ErrCharacterNotFound = errors.New("character not found")
	ErrImageNotFound     = errors.New("image not found")
	// ErrDuplicateReaction is returned when a furniture already has a
	// reaction with the same characters.
	ErrDuplicateReaction = errors.New("reaction already exists")
	// ErrInvalidCombination is wrapped by CombinationError.
	ErrInvalidCombination = errors.New("invalid combination")
)

// CombinationError reports which combination of a request is invalid.
type CombinationError struct {
	Index  int
	Reason string
}

func (e *CombinationError) Error() string {
	return fmt.Sprintf("combination %d: %s", e.Index, e.Reason)
}

func (e *CombinationError) Unwrap() error {
	return ErrInvalidCombination
}

// Field returns the request field the error refers to.
func (e *CombinationError) Field() string {
	return fmt.Sprintf("combinations[%d]", e.Index)
}
