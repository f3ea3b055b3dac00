package models

import (
	"sort"
	"strings"
)

// CombinationKey normalises character IDs into a comparable key.
func CombinationKey(characterIDs []string) string {
	seen := make(map[string]struct{}, len(characterIDs))
	ids := make([]string, 0, len(characterIDs))
	for _, id := range characterIDs {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return strings.Join(ids, ",")
}

// SplitCombinationKey returns the character IDs of a key.
func SplitCombinationKey(key string) []string {
	if key == "" {
		return nil
	}
	return strings.Split(key, ",")
}

// CharacterIDs returns the IDs of characters in order.
func CharacterIDs(characters []Character) []string {
	ids := make([]string, len(characters))
	for i, c := range characters {
		ids[i] = c.ID
	}
	return ids
}

// SortCharacters orders characters by priority, then code.
func SortCharacters(characters []Character) {
	sort.SliceStable(characters, func(i, j int) bool {
		if characters[i].Priority != characters[j].Priority {
			return characters[i].Priority < characters[j].Priority
		}
		return characters[i].Code < characters[j].Code
	})
}
