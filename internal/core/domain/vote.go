package domain

import (
	"time"

	"github.com/google/uuid"
)

// Vote is one persisted ballot line. A row referencing a candidate records a
// choice; a row referencing only a position records an abstention for that
// position. A voter has either no rows for an election or the rows of exactly
// one complete ballot.
type Vote struct {
	ID          uuid.UUID  `json:"id"`
	ElectionID  uuid.UUID  `json:"election_id"`
	VoterID     uuid.UUID  `json:"voter_id"`
	PositionID  *uuid.UUID `json:"position_id,omitempty"`
	CandidateID *uuid.UUID `json:"candidate_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// IsAbstain reports whether this row records an abstention.
func (v *Vote) IsAbstain() bool {
	return v.CandidateID == nil
}
