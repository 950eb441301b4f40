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

type positionRepository struct {
	db *sql.DB
}

func NewPositionRepository(db *sql.DB) ports.PositionRepository {
	return &positionRepository{
		db: db,
	}
}

func (r *positionRepository) Create(ctx context.Context, position *domain.Position) error {
	query := `
		INSERT INTO positions (id, election_id, name, "order", max_selections)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		position.ID, position.ElectionID, position.Name, position.Order, position.MaxSelections,
	).Scan(&position.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert position: %w", err)
	}
	return nil
}

func (r *positionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Position, error) {
	query := `
		SELECT id, election_id, name, "order", max_selections, created_at
		FROM positions
		WHERE id = $1 AND deleted_at IS NULL
	`
	var position domain.Position
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&position.ID, &position.ElectionID, &position.Name,
		&position.Order, &position.MaxSelections, &position.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPositionNotFound
		}
		return nil, fmt.Errorf("failed to get position: %w", err)
	}
	return &position, nil
}

func (r *positionRepository) ListByElection(ctx context.Context, electionID uuid.UUID) ([]*domain.Position, error) {
	query := `
		SELECT id, election_id, name, "order", max_selections, created_at
		FROM positions
		WHERE election_id = $1 AND deleted_at IS NULL
		ORDER BY "order" ASC
	`
	rows, err := r.db.QueryContext(ctx, query, electionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list positions: %w", err)
	}
	defer rows.Close()

	var positions []*domain.Position
	for rows.Next() {
		var position domain.Position
		err := rows.Scan(
			&position.ID, &position.ElectionID, &position.Name,
			&position.Order, &position.MaxSelections, &position.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan position: %w", err)
		}
		positions = append(positions, &position)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating positions: %w", err)
	}
	return positions, nil
}

func (r *positionRepository) MaxOrder(ctx context.Context, electionID uuid.UUID) (int, error) {
	query := `
		SELECT COALESCE(MAX("order"), 0)
		FROM positions
		WHERE election_id = $1 AND deleted_at IS NULL
	`
	var maxOrder int
	if err := r.db.QueryRowContext(ctx, query, electionID).Scan(&maxOrder); err != nil {
		return 0, fmt.Errorf("failed to get max position order: %w", err)
	}
	return maxOrder, nil
}

func (r *positionRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE positions SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to soft delete position: %w", err)
	}
	return nil
}
