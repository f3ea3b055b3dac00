package models

import "github.com/google/uuid"

// ensureID assigns a new UUIDv4 when id is empty.
func ensureID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}
