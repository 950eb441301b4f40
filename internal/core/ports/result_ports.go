package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/eboto-mo/eboto-api/internal/core/domain"
)

type ResultRepository interface {
	// CandidateVoteCounts returns vote counts keyed by candidate id. When
	// cutoff is non-nil only ballots recorded at or before it are counted.
	CandidateVoteCounts(ctx context.Context, electionID uuid.UUID, cutoff *time.Time) (map[uuid.UUID]int64, error)
	// AbstainCounts returns abstain-row counts keyed by position id.
	AbstainCounts(ctx context.Context, electionID uuid.UUID, cutoff *time.Time) (map[uuid.UUID]int64, error)

	SaveSnapshot(ctx context.Context, electionID uuid.UUID, results *domain.ElectionResults) error
	HasSnapshot(ctx context.Context, electionID uuid.UUID) (bool, error)
	// ListEndedWithoutSnapshot returns live elections whose voting window is
	// over and which have no stored final result yet.
	ListEndedWithoutSnapshot(ctx context.Context, now time.Time) ([]*domain.Election, error)
}

type ResultService interface {
	GetRealtimeResults(ctx context.Context, slug string) (*domain.ElectionResults, error)
	GetVoterFieldStats(ctx context.Context, electionID, callerUserID uuid.UUID) ([]domain.VoterFieldStats, error)
}

// SnapshotService persists final tabulations for elections that have ended.
type SnapshotService interface {
	GenerateDueResults(ctx context.Context) error
}
