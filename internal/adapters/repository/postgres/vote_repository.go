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

type voteRepository struct {
	db *sql.DB
}

func NewVoteRepository(db *sql.DB) ports.VoteRepository {
	return &voteRepository{
		db: db,
	}
}

func (r *voteRepository) HasVoted(ctx context.Context, electionID, voterID uuid.UUID) (bool, error) {
	query := `SELECT 1 FROM votes WHERE election_id = $1 AND voter_id = $2 LIMIT 1`
	var exists int
	err := r.db.QueryRowContext(ctx, query, electionID, voterID).Scan(&exists)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check existing ballot: %w", err)
	}
	return true, nil
}

// CastBallot inserts every row of one ballot in a single transaction. The
// voter row is locked first and the ballot re-checked under the lock, so two
// concurrent submissions from the same voter serialize and the loser gets
// ErrAlreadyVoted.
func (r *voteRepository) CastBallot(ctx context.Context, electionID, voterID uuid.UUID, rows []*domain.Vote) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	lockQuery := `SELECT 1 FROM voters WHERE id = $1 AND deleted_at IS NULL FOR UPDATE`
	var locked int
	if err := tx.QueryRowContext(ctx, lockQuery, voterID).Scan(&locked); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotAVoter
		}
		return fmt.Errorf("failed to lock voter: %w", err)
	}

	existsQuery := `SELECT 1 FROM votes WHERE election_id = $1 AND voter_id = $2 LIMIT 1`
	var exists int
	err = tx.QueryRowContext(ctx, existsQuery, electionID, voterID).Scan(&exists)
	if err == nil {
		return domain.ErrAlreadyVoted
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("failed to check existing ballot: %w", err)
	}

	insertQuery := `
		INSERT INTO votes (id, election_id, voter_id, position_id, candidate_id)
		VALUES ($1, $2, $3, $4, $5)
	`
	stmt, err := tx.PrepareContext(ctx, insertQuery)
	if err != nil {
		return fmt.Errorf("failed to prepare vote statement: %w", err)
	}
	defer stmt.Close()

	for _, row := range rows {
		_, err := stmt.ExecContext(ctx, row.ID, row.ElectionID, row.VoterID, row.PositionID, row.CandidateID)
		if err != nil {
			return fmt.Errorf("failed to insert vote: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
