package models

import (
	"time"

	"github.com/google/uuid"
)

// Member represents a person taking part in group expenses.
type Member struct {
	// ID is the unique identifier for the member (UUID format).
	ID string

	// Name is the display name. Names are unique across the ledger so that
	// groups can be created from a list of names.
	Name string

	// CreatedAt is the Unix timestamp when the member was created.
	CreatedAt int64
}

// NewMember creates a member with a fresh ID.
func NewMember(name string) *Member {
	return &Member{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now().Unix(),
	}
}
