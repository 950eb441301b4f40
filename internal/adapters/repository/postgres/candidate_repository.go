package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/eboto-mo/eboto-api/internal/core/domain"
	"github.com/eboto-mo/eboto-api/internal/core/ports"
)

type candidateRepository struct {
	db *sql.DB
}

func NewCandidateRepository(db *sql.DB) ports.CandidateRepository {
	return &candidateRepository{
		db: db,
	}
}

func (r *candidateRepository) Create(ctx context.Context, candidate *domain.Candidate) error {
	query := `
		INSERT INTO candidates (id, election_id, position_id, partylist_id, first_name, middle_name, last_name)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		candidate.ID, candidate.ElectionID, candidate.PositionID, candidate.PartylistID,
		candidate.FirstName, candidate.MiddleName, candidate.LastName,
	).Scan(&candidate.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert candidate: %w", err)
	}
	return nil
}

func (r *candidateRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Candidate, error) {
	query := `
		SELECT id, election_id, position_id, partylist_id, first_name, middle_name, last_name, created_at
		FROM candidates
		WHERE id = $1 AND deleted_at IS NULL
	`
	var candidate domain.Candidate
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&candidate.ID, &candidate.ElectionID, &candidate.PositionID, &candidate.PartylistID,
		&candidate.FirstName, &candidate.MiddleName, &candidate.LastName, &candidate.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCandidateNotFound
		}
		return nil, fmt.Errorf("failed to get candidate: %w", err)
	}
	return &candidate, nil
}

// ListByElection returns live candidates in creation order. Tabulation relies
// on this ordering to break vote-count ties deterministically.
func (r *candidateRepository) ListByElection(ctx context.Context, electionID uuid.UUID) ([]*domain.Candidate, error) {
	query := `
		SELECT id, election_id, position_id, partylist_id, first_name, middle_name, last_name, created_at
		FROM candidates
		WHERE election_id = $1 AND deleted_at IS NULL
		ORDER BY created_at ASC, id ASC
	`
	rows, err := r.db.QueryContext(ctx, query, electionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	defer rows.Close()

	var candidates []*domain.Candidate
	for rows.Next() {
		var candidate domain.Candidate
		err := rows.Scan(
			&candidate.ID, &candidate.ElectionID, &candidate.PositionID, &candidate.PartylistID,
			&candidate.FirstName, &candidate.MiddleName, &candidate.LastName, &candidate.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		candidates = append(candidates, &candidate)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating candidates: %w", err)
	}
	return candidates, nil
}

func (r *candidateRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE candidates SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to soft delete candidate: %w", err)
	}
	return nil
}
