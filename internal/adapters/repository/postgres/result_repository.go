package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/eboto-mo/eboto-api/internal/core/domain"
	"github.com/eboto-mo/eboto-api/internal/core/ports"
)

type resultRepository struct {
	db *sql.DB
}

func NewResultRepository(db *sql.DB) ports.ResultRepository {
	return &resultRepository{
		db: db,
	}
}

func (r *resultRepository) CandidateVoteCounts(ctx context.Context, electionID uuid.UUID, cutoff *time.Time) (map[uuid.UUID]int64, error) {
	query := `
		SELECT candidate_id, COUNT(*)
		FROM votes
		WHERE election_id = $1
			AND candidate_id IS NOT NULL
			AND ($2::timestamptz IS NULL OR created_at <= $2)
		GROUP BY candidate_id
	`
	return r.countRows(ctx, query, electionID, cutoff)
}

func (r *resultRepository) AbstainCounts(ctx context.Context, electionID uuid.UUID, cutoff *time.Time) (map[uuid.UUID]int64, error) {
	query := `
		SELECT position_id, COUNT(*)
		FROM votes
		WHERE election_id = $1
			AND candidate_id IS NULL
			AND position_id IS NOT NULL
			AND ($2::timestamptz IS NULL OR created_at <= $2)
		GROUP BY position_id
	`
	return r.countRows(ctx, query, electionID, cutoff)
}

func (r *resultRepository) countRows(ctx context.Context, query string, electionID uuid.UUID, cutoff *time.Time) (map[uuid.UUID]int64, error) {
	rows, err := r.db.QueryContext(ctx, query, electionID, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to count votes: %w", err)
	}
	defer rows.Close()

	counts := make(map[uuid.UUID]int64)
	for rows.Next() {
		var id uuid.UUID
		var count int64
		if err := rows.Scan(&id, &count); err != nil {
			return nil, fmt.Errorf("failed to scan vote count: %w", err)
		}
		counts[id] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating vote counts: %w", err)
	}
	return counts, nil
}

func (r *resultRepository) SaveSnapshot(ctx context.Context, electionID uuid.UUID, results *domain.ElectionResults) error {
	data, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}

	query := `
		INSERT INTO election_results (election_id, data, generated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (election_id) DO UPDATE
		SET data = EXCLUDED.data,
		    generated_at = NOW()
	`
	_, err = r.db.ExecContext(ctx, query, electionID, data)
	if err != nil {
		return fmt.Errorf("failed to save results snapshot: %w", err)
	}
	return nil
}

func (r *resultRepository) HasSnapshot(ctx context.Context, electionID uuid.UUID) (bool, error) {
	query := `SELECT 1 FROM election_results WHERE election_id = $1 LIMIT 1`
	var exists int
	err := r.db.QueryRowContext(ctx, query, electionID).Scan(&exists)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check results snapshot: %w", err)
	}
	return true, nil
}

func (r *resultRepository) ListEndedWithoutSnapshot(ctx context.Context, now time.Time) ([]*domain.Election, error) {
	query := `
		SELECT ` + electionColumns + `
		FROM elections e
		WHERE e.deleted_at IS NULL
			AND e.end_date < $1
			AND NOT EXISTS (
				SELECT 1 FROM election_results er WHERE er.election_id = e.id
			)
	`
	rows, err := r.db.QueryContext(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("failed to list ended elections: %w", err)
	}
	defer rows.Close()

	var elections []*domain.Election
	for rows.Next() {
		var election domain.Election
		err := rows.Scan(
			&election.ID, &election.Slug, &election.Name, &election.Description,
			&election.StartDate, &election.EndDate,
			&election.VotingHourStart, &election.VotingHourEnd,
			&election.Publicity, &election.NameArrangement,
			&election.IsCandidatesVisibleInRealtime, &election.IsFree,
			&election.CreatedAt, &election.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan election: %w", err)
		}
		elections = append(elections, &election)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating elections: %w", err)
	}
	return elections, nil
}
