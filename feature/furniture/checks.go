package furniture

import (
	"prsk-lab/feature/models"
)

// CheckStatus is how a reaction counts as checked for a user.
type CheckStatus string

const (
	// CheckedDirect means the user checked the reaction itself.
	CheckedDirect CheckStatus = "direct"
	// CheckedGroup means a reaction with the same characters on another
	// furniture of the group is directly checked.
	CheckedGroup CheckStatus = "group"
)

// ResolveChecks returns the status of every checked reaction of furnitures.
// Unchecked reactions are absent from the result.
//
// direct holds the IDs of directly checked reactions. excluded holds, per
// group ID, the combination keys that do not share checks.
func ResolveChecks(furnitures []models.Furniture, direct map[string]struct{}, excluded map[string]map[string]struct{}) map[string]CheckStatus {
	// group ID -> combination key -> furniture IDs with a direct check
	checkedIn := make(map[string]map[string]map[string]struct{})
	for _, f := range furnitures {
		if f.GroupID == nil {
			continue
		}
		for _, r := range f.Reactions {
			if _, ok := direct[r.ID]; !ok {
				continue
			}
			byKey, ok := checkedIn[*f.GroupID]
			if !ok {
				byKey = make(map[string]map[string]struct{})
				checkedIn[*f.GroupID] = byKey
			}
			key := r.Key()
			if byKey[key] == nil {
				byKey[key] = make(map[string]struct{})
			}
			byKey[key][f.ID] = struct{}{}
		}
	}

	status := make(map[string]CheckStatus)
	for _, f := range furnitures {
		for _, r := range f.Reactions {
			if _, ok := direct[r.ID]; ok {
				status[r.ID] = CheckedDirect
				continue
			}
			if f.GroupID == nil {
				continue
			}
			key := r.Key()
			if key == "" {
				continue
			}
			if _, skip := excluded[*f.GroupID][key]; skip {
				continue
			}
			for other := range checkedIn[*f.GroupID][key] {
				if other != f.ID {
					status[r.ID] = CheckedGroup
					break
				}
			}
		}
	}
	return status
}
