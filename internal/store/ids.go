package store

import "github.com/google/uuid"

// NewID returns a new globally unique record id. UUIDv7 keeps ids
// time-ordered, the same property the legacy base36-timestamp ids had.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
