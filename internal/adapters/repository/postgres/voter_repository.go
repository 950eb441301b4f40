package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/eboto-mo/eboto-api/internal/core/domain"
	"github.com/eboto-mo/eboto-api/internal/core/ports"
)

type voterRepository struct {
	db *sql.DB
}

func NewVoterRepository(db *sql.DB) ports.VoterRepository {
	return &voterRepository{
		db: db,
	}
}

func (r *voterRepository) Create(ctx context.Context, voter *domain.Voter) error {
	field, err := marshalField(voter.Field)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO voters (id, election_id, email, field)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	err = r.db.QueryRowContext(ctx, query, voter.ID, voter.ElectionID, voter.Email, field).Scan(&voter.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert voter: %w", err)
	}
	return nil
}

func (r *voterRepository) Update(ctx context.Context, voter *domain.Voter) error {
	field, err := marshalField(voter.Field)
	if err != nil {
		return err
	}

	query := `UPDATE voters SET email = $1, field = $2 WHERE id = $3 AND deleted_at IS NULL`
	_, err = r.db.ExecContext(ctx, query, voter.Email, field, voter.ID)
	if err != nil {
		return fmt.Errorf("failed to update voter: %w", err)
	}
	return nil
}

func (r *voterRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Voter, error) {
	query := `
		SELECT id, election_id, email, field, created_at
		FROM voters
		WHERE id = $1 AND deleted_at IS NULL
	`
	voter, err := r.scanVoter(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}
	if voter == nil {
		return nil, domain.ErrVoterNotFound
	}
	return voter, nil
}

func (r *voterRepository) GetByEmail(ctx context.Context, electionID uuid.UUID, email string) (*domain.Voter, error) {
	query := `
		SELECT id, election_id, email, field, created_at
		FROM voters
		WHERE election_id = $1 AND email = $2 AND deleted_at IS NULL
	`
	return r.scanVoter(r.db.QueryRowContext(ctx, query, electionID, email))
}

func (r *voterRepository) scanVoter(row *sql.Row) (*domain.Voter, error) {
	var voter domain.Voter
	var field []byte
	err := row.Scan(&voter.ID, &voter.ElectionID, &voter.Email, &field, &voter.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get voter: %w", err)
	}
	if err := unmarshalField(field, &voter.Field); err != nil {
		return nil, err
	}
	return &voter, nil
}

func (r *voterRepository) EmailTaken(ctx context.Context, electionID uuid.UUID, email string) (bool, error) {
	query := `SELECT 1 FROM voters WHERE election_id = $1 AND email = $2 AND deleted_at IS NULL LIMIT 1`
	var exists int
	err := r.db.QueryRowContext(ctx, query, electionID, email).Scan(&exists)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check voter email: %w", err)
	}
	return true, nil
}

func (r *voterRepository) ListByElection(ctx context.Context, electionID uuid.UUID) ([]*domain.VoterWithStatus, error) {
	query := `
		SELECT v.id, v.election_id, v.email, v.field, v.created_at,
			EXISTS (
				SELECT 1 FROM votes b
				WHERE b.election_id = v.election_id AND b.voter_id = v.id
			) AS has_voted
		FROM voters v
		WHERE v.election_id = $1 AND v.deleted_at IS NULL
		ORDER BY v.created_at ASC
	`
	rows, err := r.db.QueryContext(ctx, query, electionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list voters: %w", err)
	}
	defer rows.Close()

	var voters []*domain.VoterWithStatus
	for rows.Next() {
		var voter domain.VoterWithStatus
		var field []byte
		err := rows.Scan(
			&voter.ID, &voter.ElectionID, &voter.Email, &field, &voter.CreatedAt, &voter.HasVoted,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan voter: %w", err)
		}
		if err := unmarshalField(field, &voter.Field); err != nil {
			return nil, err
		}
		voters = append(voters, &voter)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating voters: %w", err)
	}
	return voters, nil
}

func (r *voterRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE voters SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to soft delete voter: %w", err)
	}
	return nil
}

func (r *voterRepository) CreateField(ctx context.Context, field *domain.VoterField) error {
	query := `
		INSERT INTO voter_fields (id, election_id, name)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query, field.ID, field.ElectionID, field.Name).Scan(&field.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert voter field: %w", err)
	}
	return nil
}

func (r *voterRepository) ListFields(ctx context.Context, electionID uuid.UUID) ([]*domain.VoterField, error) {
	query := `
		SELECT id, election_id, name, created_at
		FROM voter_fields
		WHERE election_id = $1
		ORDER BY created_at ASC
	`
	rows, err := r.db.QueryContext(ctx, query, electionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list voter fields: %w", err)
	}
	defer rows.Close()

	var fields []*domain.VoterField
	for rows.Next() {
		var field domain.VoterField
		if err := rows.Scan(&field.ID, &field.ElectionID, &field.Name, &field.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan voter field: %w", err)
		}
		fields = append(fields, &field)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating voter fields: %w", err)
	}
	return fields, nil
}

func marshalField(field map[string]string) ([]byte, error) {
	if field == nil {
		field = map[string]string{}
	}
	data, err := json.Marshal(field)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal voter field: %w", err)
	}
	return data, nil
}

func unmarshalField(data []byte, field *map[string]string) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, field); err != nil {
		return fmt.Errorf("failed to unmarshal voter field: %w", err)
	}
	return nil
}
