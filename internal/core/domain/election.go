package domain

import (
	"time"

	"github.com/google/uuid"
)

// Publicity controls who can see an election and its results.
type Publicity string

const (
	PublicityPrivate Publicity = "PRIVATE"
	PublicityVoter   Publicity = "VOTER"
	PublicityPublic  Publicity = "PUBLIC"
)

// NameArrangement controls how candidate names are displayed.
type NameArrangement string

const (
	NameArrangementFirstLast NameArrangement = "FIRST_LAST"
	NameArrangementLastFirst NameArrangement = "LAST_FIRST"
)

type Election struct {
	ID          uuid.UUID `json:"id"`
	Slug        string    `json:"slug"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`

	// Optional hour-of-day window, both bounds inclusive (0-23). When nil
	// the election accepts votes at any hour within the date range.
	VotingHourStart *int `json:"voting_hour_start,omitempty"`
	VotingHourEnd   *int `json:"voting_hour_end,omitempty"`

	Publicity       Publicity       `json:"publicity"`
	NameArrangement NameArrangement `json:"name_arrangement"`

	// IsCandidatesVisibleInRealtime exposes candidate identities in realtime
	// results while the election is still ongoing.
	IsCandidatesVisibleInRealtime bool `json:"is_candidates_visible_in_realtime"`

	// IsFree marks free-plan elections, whose realtime results lag behind by
	// up to an hour.
	IsFree bool `json:"is_free"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// IsOngoing reports whether the election accepts votes at the given instant.
// Both date bounds are inclusive, as is the voting-hour window. The cast path
// and the results path must share this predicate so they cannot drift.
func (e *Election) IsOngoing(now time.Time) bool {
	if now.Before(e.StartDate) || now.After(e.EndDate) {
		return false
	}
	if e.VotingHourStart != nil && e.VotingHourEnd != nil {
		hour := now.Hour()
		if hour < *e.VotingHourStart || hour > *e.VotingHourEnd {
			return false
		}
	}
	return true
}

// HasEnded reports whether the election's voting window is fully over.
func (e *Election) HasEnded(now time.Time) bool {
	return now.After(e.EndDate)
}
