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

type electionRepository struct {
	db *sql.DB
}

func NewElectionRepository(db *sql.DB) ports.ElectionRepository {
	return &electionRepository{
		db: db,
	}
}

const electionColumns = `
	id, slug, name, description, start_date, end_date,
	voting_hour_start, voting_hour_end, publicity, name_arrangement,
	is_candidates_visible_in_realtime, is_free, created_at, updated_at
`

// electionColumnsQualified carries the e alias so queries joining tables
// that share column names (id, created_at, deleted_at) stay unambiguous.
const electionColumnsQualified = `
	e.id, e.slug, e.name, e.description, e.start_date, e.end_date,
	e.voting_hour_start, e.voting_hour_end, e.publicity, e.name_arrangement,
	e.is_candidates_visible_in_realtime, e.is_free, e.created_at, e.updated_at
`

func (r *electionRepository) Create(ctx context.Context, election *domain.Election, creator *domain.Commissioner, independent *domain.Partylist) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	queryElection := `
		INSERT INTO elections (
			id, slug, name, description, start_date, end_date,
			voting_hour_start, voting_hour_end, publicity, name_arrangement,
			is_candidates_visible_in_realtime, is_free
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at
	`
	err = tx.QueryRowContext(ctx, queryElection,
		election.ID, election.Slug, election.Name, election.Description,
		election.StartDate, election.EndDate,
		election.VotingHourStart, election.VotingHourEnd,
		election.Publicity, election.NameArrangement,
		election.IsCandidatesVisibleInRealtime, election.IsFree,
	).Scan(&election.CreatedAt, &election.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert election: %w", err)
	}

	queryCommissioner := `
		INSERT INTO commissioners (id, election_id, user_id, is_creator)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	err = tx.QueryRowContext(ctx, queryCommissioner,
		creator.ID, creator.ElectionID, creator.UserID, creator.IsCreator,
	).Scan(&creator.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert creator commissioner: %w", err)
	}

	queryPartylist := `
		INSERT INTO partylists (id, election_id, name, acronym)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	err = tx.QueryRowContext(ctx, queryPartylist,
		independent.ID, independent.ElectionID, independent.Name, independent.Acronym,
	).Scan(&independent.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert independent partylist: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (r *electionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Election, error) {
	query := `SELECT ` + electionColumns + ` FROM elections WHERE id = $1 AND deleted_at IS NULL`
	return r.scanElection(r.db.QueryRowContext(ctx, query, id))
}

func (r *electionRepository) GetBySlug(ctx context.Context, slug string) (*domain.Election, error) {
	query := `SELECT ` + electionColumns + ` FROM elections WHERE slug = $1 AND deleted_at IS NULL`
	return r.scanElection(r.db.QueryRowContext(ctx, query, slug))
}

func (r *electionRepository) scanElection(row *sql.Row) (*domain.Election, error) {
	var election domain.Election
	err := row.Scan(
		&election.ID, &election.Slug, &election.Name, &election.Description,
		&election.StartDate, &election.EndDate,
		&election.VotingHourStart, &election.VotingHourEnd,
		&election.Publicity, &election.NameArrangement,
		&election.IsCandidatesVisibleInRealtime, &election.IsFree,
		&election.CreatedAt, &election.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrElectionNotFound
		}
		return nil, fmt.Errorf("failed to get election: %w", err)
	}
	return &election, nil
}

func (r *electionRepository) SlugTaken(ctx context.Context, slug string) (bool, error) {
	query := `SELECT 1 FROM elections WHERE slug = $1 AND deleted_at IS NULL LIMIT 1`
	var exists int
	err := r.db.QueryRowContext(ctx, query, slug).Scan(&exists)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check slug: %w", err)
	}
	return true, nil
}

// SoftDelete tombstones the election and every row it owns so the slug and
// voter emails become reusable while the data stays recoverable.
func (r *electionRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	statements := []string{
		`UPDATE elections SET deleted_at = NOW(), updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`,
		`UPDATE commissioners SET deleted_at = NOW() WHERE election_id = $1 AND deleted_at IS NULL`,
		`UPDATE partylists SET deleted_at = NOW() WHERE election_id = $1 AND deleted_at IS NULL`,
		`UPDATE positions SET deleted_at = NOW() WHERE election_id = $1 AND deleted_at IS NULL`,
		`UPDATE candidates SET deleted_at = NOW() WHERE election_id = $1 AND deleted_at IS NULL`,
		`UPDATE voters SET deleted_at = NOW() WHERE election_id = $1 AND deleted_at IS NULL`,
	}
	for _, statement := range statements {
		if _, err := tx.ExecContext(ctx, statement, id); err != nil {
			return fmt.Errorf("failed to soft delete election: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (r *electionRepository) ListByCommissioner(ctx context.Context, userID uuid.UUID) ([]*domain.Election, error) {
	query := `
		SELECT ` + electionColumnsQualified + `
		FROM elections e
		JOIN commissioners c ON c.election_id = e.id
		WHERE c.user_id = $1 AND c.deleted_at IS NULL AND e.deleted_at IS NULL
		ORDER BY e.created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list elections: %w", err)
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

func (r *electionRepository) AddCommissioner(ctx context.Context, commissioner *domain.Commissioner) error {
	query := `
		INSERT INTO commissioners (id, election_id, user_id, is_creator)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		commissioner.ID, commissioner.ElectionID, commissioner.UserID, commissioner.IsCreator,
	).Scan(&commissioner.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert commissioner: %w", err)
	}
	return nil
}

func (r *electionRepository) GetCommissioner(ctx context.Context, electionID, userID uuid.UUID) (*domain.Commissioner, error) {
	query := `
		SELECT id, election_id, user_id, is_creator, created_at
		FROM commissioners
		WHERE election_id = $1 AND user_id = $2 AND deleted_at IS NULL
	`
	return r.scanCommissioner(r.db.QueryRowContext(ctx, query, electionID, userID))
}

func (r *electionRepository) GetCommissionerByID(ctx context.Context, id uuid.UUID) (*domain.Commissioner, error) {
	query := `
		SELECT id, election_id, user_id, is_creator, created_at
		FROM commissioners
		WHERE id = $1 AND deleted_at IS NULL
	`
	return r.scanCommissioner(r.db.QueryRowContext(ctx, query, id))
}

func (r *electionRepository) scanCommissioner(row *sql.Row) (*domain.Commissioner, error) {
	var commissioner domain.Commissioner
	err := row.Scan(
		&commissioner.ID, &commissioner.ElectionID, &commissioner.UserID,
		&commissioner.IsCreator, &commissioner.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get commissioner: %w", err)
	}
	return &commissioner, nil
}

func (r *electionRepository) ListCommissioners(ctx context.Context, electionID uuid.UUID) ([]*domain.Commissioner, error) {
	query := `
		SELECT id, election_id, user_id, is_creator, created_at
		FROM commissioners
		WHERE election_id = $1 AND deleted_at IS NULL
		ORDER BY created_at ASC
	`
	rows, err := r.db.QueryContext(ctx, query, electionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list commissioners: %w", err)
	}
	defer rows.Close()

	var commissioners []*domain.Commissioner
	for rows.Next() {
		var commissioner domain.Commissioner
		err := rows.Scan(
			&commissioner.ID, &commissioner.ElectionID, &commissioner.UserID,
			&commissioner.IsCreator, &commissioner.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan commissioner: %w", err)
		}
		commissioners = append(commissioners, &commissioner)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating commissioners: %w", err)
	}
	return commissioners, nil
}

func (r *electionRepository) SoftDeleteCommissioner(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE commissioners SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to soft delete commissioner: %w", err)
	}
	return nil
}
