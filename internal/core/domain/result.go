package domain

import (
	"time"

	"github.com/google/uuid"
)

// CandidateResult is one candidate's tally within a position. Name and
// PartylistAcronym are blanked and replaced with a rank-based label while
// the election hides candidate identities in realtime results.
type CandidateResult struct {
	CandidateID      uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	PartylistAcronym string    `json:"partylist_acronym,omitempty"`
	VoteCount        int64     `json:"vote_count"`
}

// PositionResult aggregates the ballots recorded for one position,
// candidates ordered by descending vote count.
type PositionResult struct {
	PositionID   uuid.UUID         `json:"id"`
	Name         string            `json:"name"`
	Order        int               `json:"order"`
	TotalBallots int64             `json:"total_ballots"`
	AbstainCount int64             `json:"abstain_count"`
	Candidates   []CandidateResult `json:"candidates"`
}

// ElectionResults is the full tabulation output for an election.
type ElectionResults struct {
	ElectionID uuid.UUID        `json:"election_id"`
	Slug       string           `json:"slug"`
	Name       string           `json:"name"`
	Anonymized bool             `json:"anonymized"`
	AsOf       time.Time        `json:"as_of"`
	Positions  []PositionResult `json:"positions"`
}

// FieldValueCount counts voters holding one value of a voter field and how
// many of them have cast a ballot.
type FieldValueCount struct {
	Value      string `json:"value"`
	VoterCount int    `json:"voter_count"`
	VotedCount int    `json:"voted_count"`
}

// VoterFieldStats groups the voter roster by one configured field.
type VoterFieldStats struct {
	FieldID   uuid.UUID         `json:"field_id"`
	FieldName string            `json:"field_name"`
	Values    []FieldValueCount `json:"values"`
}
