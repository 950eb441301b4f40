package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/eboto-mo/eboto-api/internal/core/domain"
)

type PositionRepository interface {
	Create(ctx context.Context, position *domain.Position) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Position, error)
	// ListByElection returns live positions ordered by their display order.
	ListByElection(ctx context.Context, electionID uuid.UUID) ([]*domain.Position, error)
	MaxOrder(ctx context.Context, electionID uuid.UUID) (int, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type CandidateRepository interface {
	Create(ctx context.Context, candidate *domain.Candidate) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Candidate, error)
	// ListByElection returns live candidates in creation order.
	ListByElection(ctx context.Context, electionID uuid.UUID) ([]*domain.Candidate, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type PartylistRepository interface {
	Create(ctx context.Context, partylist *domain.Partylist) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Partylist, error)
	// GetByAcronym returns nil when no live partylist matches.
	GetByAcronym(ctx context.Context, electionID uuid.UUID, acronym string) (*domain.Partylist, error)
	// ListByElection returns live partylists; the independent ("IND")
	// partylist is excluded unless includeIndependent is set.
	ListByElection(ctx context.Context, electionID uuid.UUID, includeIndependent bool) ([]*domain.Partylist, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type CreatePositionInput struct {
	Name          string
	MaxSelections int
}

type CreateCandidateInput struct {
	PositionID  uuid.UUID
	PartylistID *uuid.UUID // nil means independent
	FirstName   string
	MiddleName  string
	LastName    string
}

type CreatePartylistInput struct {
	Name    string
	Acronym string
}

// RosterService manages the contested offices and the people running for
// them. All operations are commissioner-gated.
type RosterService interface {
	CreatePosition(ctx context.Context, electionID, callerUserID uuid.UUID, input CreatePositionInput) (*domain.Position, error)
	DeletePosition(ctx context.Context, electionID, callerUserID, positionID uuid.UUID) error

	CreateCandidate(ctx context.Context, electionID, callerUserID uuid.UUID, input CreateCandidateInput) (*domain.Candidate, error)
	DeleteCandidate(ctx context.Context, electionID, callerUserID, candidateID uuid.UUID) error

	CreatePartylist(ctx context.Context, electionID, callerUserID uuid.UUID, input CreatePartylistInput) (*domain.Partylist, error)
	ListPartylists(ctx context.Context, electionID, callerUserID uuid.UUID) ([]*domain.Partylist, error)
	DeletePartylist(ctx context.Context, electionID, callerUserID, partylistID uuid.UUID) error
}
