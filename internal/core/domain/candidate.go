package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Candidate struct {
	ID          uuid.UUID `json:"id"`
	ElectionID  uuid.UUID `json:"election_id"`
	PositionID  uuid.UUID `json:"position_id"`
	PartylistID uuid.UUID `json:"partylist_id"`
	FirstName   string    `json:"first_name"`
	MiddleName  string    `json:"middle_name,omitempty"`
	LastName    string    `json:"last_name"`

	CreatedAt time.Time  `json:"created_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// FullName formats the candidate's name following the election's arrangement
// policy. Display only; tabulation never depends on it.
func (c *Candidate) FullName(arrangement NameArrangement) string {
	middle := c.MiddleName
	if middle != "" {
		middle = middle + " "
	}
	if arrangement == NameArrangementLastFirst {
		return strings.TrimSpace(c.LastName + ", " + c.FirstName + " " + middle)
	}
	return strings.TrimSpace(c.FirstName + " " + middle + c.LastName)
}
