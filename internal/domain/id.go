package domain

import "github.com/google/uuid"

// newID returns a time-ordered UUIDv7, falling back to v4 if the clock
// source fails.
func newID() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return id
}
