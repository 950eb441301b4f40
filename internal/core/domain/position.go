package domain

import (
	"time"

	"github.com/google/uuid"
)

type Position struct {
	ID         uuid.UUID `json:"id"`
	ElectionID uuid.UUID `json:"election_id"`
	Name       string    `json:"name"`

	// Order is the stable display order within the election, used for both
	// ballots and results.
	Order int `json:"order"`

	// MaxSelections is the number of candidates a voter may pick for this
	// position. 1 for single-choice offices.
	MaxSelections int `json:"max_selections"`

	CreatedAt time.Time  `json:"created_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// IndependentAcronym is the reserved partylist acronym for unaffiliated
// candidates, auto-created with every election.
const IndependentAcronym = "IND"

type Partylist struct {
	ID         uuid.UUID  `json:"id"`
	ElectionID uuid.UUID  `json:"election_id"`
	Name       string     `json:"name"`
	Acronym    string     `json:"acronym"`
	CreatedAt  time.Time  `json:"created_at"`
	DeletedAt  *time.Time `json:"deleted_at,omitempty"`
}
