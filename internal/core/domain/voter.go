package domain

import (
	"time"

	"github.com/google/uuid"
)

// VoterField is a demographic category configured per election (for example
// "College" or "Program"). Voters carry a value for each field in their
// field map.
type VoterField struct {
	ID         uuid.UUID `json:"id"`
	ElectionID uuid.UUID `json:"election_id"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"created_at"`
}

type Voter struct {
	ID         uuid.UUID `json:"id"`
	ElectionID uuid.UUID `json:"election_id"`
	Email      string    `json:"email"`

	// Field maps voter-field ids to this voter's values.
	Field map[string]string `json:"field,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// VoterWithStatus is a roster row for commissioner views.
type VoterWithStatus struct {
	Voter
	HasVoted bool `json:"has_voted"`
}
