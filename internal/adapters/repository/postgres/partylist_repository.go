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

type partylistRepository struct {
	db *sql.DB
}

func NewPartylistRepository(db *sql.DB) ports.PartylistRepository {
	return &partylistRepository{
		db: db,
	}
}

func (r *partylistRepository) Create(ctx context.Context, partylist *domain.Partylist) error {
	query := `
		INSERT INTO partylists (id, election_id, name, acronym)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		partylist.ID, partylist.ElectionID, partylist.Name, partylist.Acronym,
	).Scan(&partylist.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert partylist: %w", err)
	}
	return nil
}

func (r *partylistRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Partylist, error) {
	query := `
		SELECT id, election_id, name, acronym, created_at
		FROM partylists
		WHERE id = $1 AND deleted_at IS NULL
	`
	var partylist domain.Partylist
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&partylist.ID, &partylist.ElectionID, &partylist.Name, &partylist.Acronym, &partylist.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPartylistNotFound
		}
		return nil, fmt.Errorf("failed to get partylist: %w", err)
	}
	return &partylist, nil
}

func (r *partylistRepository) GetByAcronym(ctx context.Context, electionID uuid.UUID, acronym string) (*domain.Partylist, error) {
	query := `
		SELECT id, election_id, name, acronym, created_at
		FROM partylists
		WHERE election_id = $1 AND acronym = $2 AND deleted_at IS NULL
	`
	var partylist domain.Partylist
	err := r.db.QueryRowContext(ctx, query, electionID, acronym).Scan(
		&partylist.ID, &partylist.ElectionID, &partylist.Name, &partylist.Acronym, &partylist.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get partylist by acronym: %w", err)
	}
	return &partylist, nil
}

func (r *partylistRepository) ListByElection(ctx context.Context, electionID uuid.UUID, includeIndependent bool) ([]*domain.Partylist, error) {
	query := `
		SELECT id, election_id, name, acronym, created_at
		FROM partylists
		WHERE election_id = $1 AND deleted_at IS NULL AND ($2 OR acronym <> $3)
		ORDER BY created_at ASC
	`
	rows, err := r.db.QueryContext(ctx, query, electionID, includeIndependent, domain.IndependentAcronym)
	if err != nil {
		return nil, fmt.Errorf("failed to list partylists: %w", err)
	}
	defer rows.Close()

	var partylists []*domain.Partylist
	for rows.Next() {
		var partylist domain.Partylist
		err := rows.Scan(
			&partylist.ID, &partylist.ElectionID, &partylist.Name, &partylist.Acronym, &partylist.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan partylist: %w", err)
		}
		partylists = append(partylists, &partylist)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating partylists: %w", err)
	}
	return partylists, nil
}

func (r *partylistRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE partylists SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to soft delete partylist: %w", err)
	}
	return nil
}
