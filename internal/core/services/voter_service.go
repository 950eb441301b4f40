package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/eboto-mo/eboto-api/internal/core/domain"
	"github.com/eboto-mo/eboto-api/internal/core/ports"
)

type voterService struct {
	electionRepo ports.ElectionRepository
	voterRepo    ports.VoterRepository
}

func NewVoterService(electionRepo ports.ElectionRepository, voterRepo ports.VoterRepository) ports.VoterService {
	return &voterService{
		electionRepo: electionRepo,
		voterRepo:    voterRepo,
	}
}

func (s *voterService) Add(ctx context.Context, electionID, callerUserID uuid.UUID, input ports.AddVoterInput) (*domain.Voter, error) {
	election, err := s.electionRepo.GetByID(ctx, electionID)
	if err != nil {
		return nil, err
	}
	if _, err := requireCommissioner(ctx, s.electionRepo, election.ID, callerUserID); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: invalid voter email", domain.ErrInvalidInput)
	}

	taken, err := s.voterRepo.EmailTaken(ctx, election.ID, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check voter email: %w", err)
	}
	if taken {
		return nil, domain.ErrVoterExists
	}

	voter := &domain.Voter{
		ID:         uuid.New(),
		ElectionID: election.ID,
		Email:      email,
		Field:      input.Field,
	}
	if err := s.voterRepo.Create(ctx, voter); err != nil {
		return nil, err
	}
	return voter, nil
}

func (s *voterService) Edit(ctx context.Context, electionID, callerUserID, voterID uuid.UUID, input ports.AddVoterInput) (*domain.Voter, error) {
	if _, err := requireCommissioner(ctx, s.electionRepo, electionID, callerUserID); err != nil {
		return nil, err
	}

	voter, err := s.voterRepo.GetByID(ctx, voterID)
	if err != nil {
		return nil, err
	}
	if voter.ElectionID != electionID {
		return nil, domain.ErrVoterNotFound
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: invalid voter email", domain.ErrInvalidInput)
	}
	if email != voter.Email {
		taken, err := s.voterRepo.EmailTaken(ctx, electionID, email)
		if err != nil {
			return nil, fmt.Errorf("failed to check voter email: %w", err)
		}
		if taken {
			return nil, domain.ErrVoterExists
		}
	}

	voter.Email = email
	if input.Field != nil {
		voter.Field = input.Field
	}
	if err := s.voterRepo.Update(ctx, voter); err != nil {
		return nil, err
	}
	return voter, nil
}

func (s *voterService) Remove(ctx context.Context, electionID, callerUserID, voterID uuid.UUID) error {
	if _, err := requireCommissioner(ctx, s.electionRepo, electionID, callerUserID); err != nil {
		return err
	}
	voter, err := s.voterRepo.GetByID(ctx, voterID)
	if err != nil {
		return err
	}
	if voter.ElectionID != electionID {
		return domain.ErrVoterNotFound
	}
	return s.voterRepo.SoftDelete(ctx, voter.ID)
}

func (s *voterService) List(ctx context.Context, electionID, callerUserID uuid.UUID) ([]*domain.VoterWithStatus, error) {
	election, err := s.electionRepo.GetByID(ctx, electionID)
	if err != nil {
		return nil, err
	}
	if _, err := requireCommissioner(ctx, s.electionRepo, election.ID, callerUserID); err != nil {
		return nil, err
	}
	return s.voterRepo.ListByElection(ctx, election.ID)
}

func (s *voterService) CreateField(ctx context.Context, electionID, callerUserID uuid.UUID, name string) (*domain.VoterField, error) {
	election, err := s.electionRepo.GetByID(ctx, electionID)
	if err != nil {
		return nil, err
	}
	if _, err := requireCommissioner(ctx, s.electionRepo, election.ID, callerUserID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: field name is required", domain.ErrInvalidInput)
	}

	field := &domain.VoterField{
		ID:         uuid.New(),
		ElectionID: election.ID,
		Name:       strings.TrimSpace(name),
	}
	if err := s.voterRepo.CreateField(ctx, field); err != nil {
		return nil, err
	}
	return field, nil
}
