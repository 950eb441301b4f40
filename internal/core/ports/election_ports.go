package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/eboto-mo/eboto-api/internal/core/domain"
)

type ElectionRepository interface {
	// Create persists the election together with its independent partylist
	// and its creator commissioner in a single transaction.
	Create(ctx context.Context, election *domain.Election, creator *domain.Commissioner, independent *domain.Partylist) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Election, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Election, error)
	SlugTaken(ctx context.Context, slug string) (bool, error)
	// SoftDelete tombstones the election and everything it owns.
	SoftDelete(ctx context.Context, id uuid.UUID) error
	ListByCommissioner(ctx context.Context, userID uuid.UUID) ([]*domain.Election, error)

	AddCommissioner(ctx context.Context, commissioner *domain.Commissioner) error
	GetCommissioner(ctx context.Context, electionID, userID uuid.UUID) (*domain.Commissioner, error)
	GetCommissionerByID(ctx context.Context, id uuid.UUID) (*domain.Commissioner, error)
	ListCommissioners(ctx context.Context, electionID uuid.UUID) ([]*domain.Commissioner, error)
	SoftDeleteCommissioner(ctx context.Context, id uuid.UUID) error
}

type CreateElectionInput struct {
	Slug            string
	Name            string
	Description     string
	StartDate       time.Time
	EndDate         time.Time
	VotingHourStart *int
	VotingHourEnd   *int
	Publicity       domain.Publicity
	NameArrangement domain.NameArrangement
	IsCandidatesVisibleInRealtime bool
	IsFree                        bool
}

// CandidateWithPartylist is a ballot-facing read model.
type CandidateWithPartylist struct {
	domain.Candidate
	Partylist *domain.Partylist `json:"partylist,omitempty"`
}

type PositionWithCandidates struct {
	domain.Position
	Candidates []CandidateWithPartylist `json:"candidates"`
}

// ElectionPage bundles everything the public election page needs.
type ElectionPage struct {
	Election  *domain.Election         `json:"election"`
	Positions []PositionWithCandidates `json:"positions"`
	IsOngoing bool                     `json:"is_ongoing"`
	MyVoter   *domain.Voter            `json:"my_voter,omitempty"`
	HasVoted  bool                     `json:"has_voted"`
}

type ElectionService interface {
	Create(ctx context.Context, creatorUserID uuid.UUID, input CreateElectionInput) (*domain.Election, error)
	GetPage(ctx context.Context, slug string, caller *AuthenticatedUser) (*ElectionPage, error)
	Delete(ctx context.Context, electionID, callerUserID uuid.UUID) error
	MyElections(ctx context.Context, userID uuid.UUID) ([]*domain.Election, error)

	AddCommissioner(ctx context.Context, electionID, callerUserID uuid.UUID, email string) (*domain.Commissioner, error)
	RemoveCommissioner(ctx context.Context, electionID, callerUserID, commissionerID uuid.UUID) error

	// RequireCommissioner resolves the caller's live commissioner row or
	// fails with ErrNotACommissioner.
	RequireCommissioner(ctx context.Context, electionID, userID uuid.UUID) (*domain.Commissioner, error)
}

// AuthenticatedUser is the caller identity the session middleware resolves.
type AuthenticatedUser struct {
	ID    uuid.UUID
	Email string
}
