package furniture

import (
	"sort"

	"prsk-lab/feature/models"
)

// Combination is a character set shared by reactions of a group.
type Combination struct {
	Key            string             `json:"key"`
	Characters     []models.Character `json:"characters"`
	ReactionIDs    []string           `json:"reaction_ids"`
	FurnitureIDs   []string           `json:"furniture_ids"`
	FurnitureCount int                `json:"furniture_count"`
	Excluded       bool               `json:"excluded"`
}

// BuildCombinations groups the reactions of furnitures by combination key
// in a single pass. Excluded combinations are flagged, and listed with no
// furniture when no reaction uses them. The result is ordered by number of
// characters, then key.
func BuildCombinations(furnitures []models.Furniture, excluded []models.FurnitureGroupExcludedCombination) []Combination {
	byKey := make(map[string]*Combination)
	seenFurniture := make(map[string]map[string]struct{})

	entry := func(key string, characters []models.Character) *Combination {
		if c, ok := byKey[key]; ok {
			return c
		}
		chars := append([]models.Character(nil), characters...)
		models.SortCharacters(chars)
		c := &Combination{
			Key:          key,
			Characters:   chars,
			ReactionIDs:  []string{},
			FurnitureIDs: []string{},
		}
		byKey[key] = c
		seenFurniture[key] = make(map[string]struct{})
		return c
	}

	for _, f := range furnitures {
		for _, r := range f.Reactions {
			key := r.Key()
			if key == "" {
				continue
			}
			c := entry(key, r.Characters)
			c.ReactionIDs = append(c.ReactionIDs, r.ID)
			if _, ok := seenFurniture[key][f.ID]; !ok {
				seenFurniture[key][f.ID] = struct{}{}
				c.FurnitureIDs = append(c.FurnitureIDs, f.ID)
			}
		}
	}

	for _, e := range excluded {
		key := e.Key()
		if key == "" {
			continue
		}
		entry(key, e.Characters).Excluded = true
	}

	result := make([]Combination, 0, len(byKey))
	for _, c := range byKey {
		c.FurnitureCount = len(c.FurnitureIDs)
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool {
		if len(result[i].Characters) != len(result[j].Characters) {
			return len(result[i].Characters) < len(result[j].Characters)
		}
		return result[i].Key < result[j].Key
	})
	return result
}

// ExcludedKeys returns the combination keys excluded in each group.
func ExcludedKeys(groups []models.FurnitureGroup) map[string]map[string]struct{} {
	keys := make(map[string]map[string]struct{}, len(groups))
	for _, g := range groups {
		set := make(map[string]struct{}, len(g.ExcludedCombinations))
		for _, e := range g.ExcludedCombinations {
			set[e.Key()] = struct{}{}
		}
		keys[g.ID] = set
	}
	return keys
}
