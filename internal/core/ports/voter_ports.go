package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/eboto-mo/eboto-api/internal/core/domain"
)

type VoterRepository interface {
	Create(ctx context.Context, voter *domain.Voter) error
	Update(ctx context.Context, voter *domain.Voter) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Voter, error)
	// GetByEmail returns nil when no live voter matches.
	GetByEmail(ctx context.Context, electionID uuid.UUID, email string) (*domain.Voter, error)
	EmailTaken(ctx context.Context, electionID uuid.UUID, email string) (bool, error)
	ListByElection(ctx context.Context, electionID uuid.UUID) ([]*domain.VoterWithStatus, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error

	CreateField(ctx context.Context, field *domain.VoterField) error
	ListFields(ctx context.Context, electionID uuid.UUID) ([]*domain.VoterField, error)
}

type AddVoterInput struct {
	Email string
	Field map[string]string
}

type VoterService interface {
	Add(ctx context.Context, electionID, callerUserID uuid.UUID, input AddVoterInput) (*domain.Voter, error)
	Edit(ctx context.Context, electionID, callerUserID, voterID uuid.UUID, input AddVoterInput) (*domain.Voter, error)
	Remove(ctx context.Context, electionID, callerUserID, voterID uuid.UUID) error
	List(ctx context.Context, electionID, callerUserID uuid.UUID) ([]*domain.VoterWithStatus, error)
	CreateField(ctx context.Context, electionID, callerUserID uuid.UUID, name string) (*domain.VoterField, error)
}
