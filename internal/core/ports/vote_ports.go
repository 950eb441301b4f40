package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/eboto-mo/eboto-api/internal/core/domain"
)

type VoteRepository interface {
	HasVoted(ctx context.Context, electionID, voterID uuid.UUID) (bool, error)
	// CastBallot persists every row of one ballot atomically. It locks the
	// voter row and re-checks for an existing ballot inside the transaction,
	// so a concurrent double submission from the same voter fails with
	// ErrAlreadyVoted instead of producing a second ballot.
	CastBallot(ctx context.Context, electionID, voterID uuid.UUID, rows []*domain.Vote) error
}

// BallotSelection is one per-position choice: either an abstention or a
// non-empty list of candidate ids.
type BallotSelection struct {
	PositionID   uuid.UUID
	Abstain      bool
	CandidateIDs []uuid.UUID
}

type CastBallotInput struct {
	ElectionID uuid.UUID
	Caller     AuthenticatedUser
	Selections []BallotSelection
}

type VoteService interface {
	CastBallot(ctx context.Context, input CastBallotInput) error
}
