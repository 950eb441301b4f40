package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/eboto-mo/eboto-api/internal/core/domain"
	"github.com/eboto-mo/eboto-api/internal/core/ports"
)

type rosterService struct {
	electionRepo  ports.ElectionRepository
	positionRepo  ports.PositionRepository
	candidateRepo ports.CandidateRepository
	partylistRepo ports.PartylistRepository
}

func NewRosterService(
	electionRepo ports.ElectionRepository,
	positionRepo ports.PositionRepository,
	candidateRepo ports.CandidateRepository,
	partylistRepo ports.PartylistRepository,
) ports.RosterService {
	return &rosterService{
		electionRepo:  electionRepo,
		positionRepo:  positionRepo,
		candidateRepo: candidateRepo,
		partylistRepo: partylistRepo,
	}
}

func (s *rosterService) CreatePosition(ctx context.Context, electionID, callerUserID uuid.UUID, input ports.CreatePositionInput) (*domain.Position, error) {
	election, err := s.electionRepo.GetByID(ctx, electionID)
	if err != nil {
		return nil, err
	}
	if _, err := requireCommissioner(ctx, s.electionRepo, election.ID, callerUserID); err != nil {
		return nil, err
	}
	if input.Name == "" {
		return nil, fmt.Errorf("%w: position name is required", domain.ErrInvalidInput)
	}

	maxOrder, err := s.positionRepo.MaxOrder(ctx, election.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute position order: %w", err)
	}

	maxSelections := input.MaxSelections
	if maxSelections < 1 {
		maxSelections = 1
	}

	position := &domain.Position{
		ID:            uuid.New(),
		ElectionID:    election.ID,
		Name:          input.Name,
		Order:         maxOrder + 1,
		MaxSelections: maxSelections,
	}
	if err := s.positionRepo.Create(ctx, position); err != nil {
		return nil, err
	}
	return position, nil
}

func (s *rosterService) DeletePosition(ctx context.Context, electionID, callerUserID, positionID uuid.UUID) error {
	if _, err := requireCommissioner(ctx, s.electionRepo, electionID, callerUserID); err != nil {
		return err
	}
	position, err := s.positionRepo.GetByID(ctx, positionID)
	if err != nil {
		return err
	}
	if position.ElectionID != electionID {
		return domain.ErrPositionNotFound
	}
	return s.positionRepo.SoftDelete(ctx, position.ID)
}

func (s *rosterService) CreateCandidate(ctx context.Context, electionID, callerUserID uuid.UUID, input ports.CreateCandidateInput) (*domain.Candidate, error) {
	election, err := s.electionRepo.GetByID(ctx, electionID)
	if err != nil {
		return nil, err
	}
	if _, err := requireCommissioner(ctx, s.electionRepo, election.ID, callerUserID); err != nil {
		return nil, err
	}
	if input.FirstName == "" || input.LastName == "" {
		return nil, fmt.Errorf("%w: candidate name is required", domain.ErrInvalidInput)
	}

	position, err := s.positionRepo.GetByID(ctx, input.PositionID)
	if err != nil {
		return nil, err
	}
	if position.ElectionID != election.ID {
		return nil, domain.ErrPositionNotFound
	}

	var partylist *domain.Partylist
	if input.PartylistID == nil {
		// Unaffiliated candidates go under the reserved independent list.
		partylist, err = s.partylistRepo.GetByAcronym(ctx, election.ID, domain.IndependentAcronym)
		if err != nil {
			return nil, err
		}
		if partylist == nil {
			return nil, domain.ErrPartylistNotFound
		}
	} else {
		partylist, err = s.partylistRepo.GetByID(ctx, *input.PartylistID)
		if err != nil {
			return nil, err
		}
		if partylist.ElectionID != election.ID {
			return nil, domain.ErrPartylistNotFound
		}
	}

	candidate := &domain.Candidate{
		ID:          uuid.New(),
		ElectionID:  election.ID,
		PositionID:  position.ID,
		PartylistID: partylist.ID,
		FirstName:   input.FirstName,
		MiddleName:  input.MiddleName,
		LastName:    input.LastName,
	}
	if err := s.candidateRepo.Create(ctx, candidate); err != nil {
		return nil, err
	}
	return candidate, nil
}

func (s *rosterService) DeleteCandidate(ctx context.Context, electionID, callerUserID, candidateID uuid.UUID) error {
	if _, err := requireCommissioner(ctx, s.electionRepo, electionID, callerUserID); err != nil {
		return err
	}
	candidate, err := s.candidateRepo.GetByID(ctx, candidateID)
	if err != nil {
		return err
	}
	if candidate.ElectionID != electionID {
		return domain.ErrCandidateNotFound
	}
	return s.candidateRepo.SoftDelete(ctx, candidate.ID)
}

func (s *rosterService) CreatePartylist(ctx context.Context, electionID, callerUserID uuid.UUID, input ports.CreatePartylistInput) (*domain.Partylist, error) {
	election, err := s.electionRepo.GetByID(ctx, electionID)
	if err != nil {
		return nil, err
	}
	if _, err := requireCommissioner(ctx, s.electionRepo, election.ID, callerUserID); err != nil {
		return nil, err
	}

	acronym := strings.ToUpper(strings.TrimSpace(input.Acronym))
	if input.Name == "" || acronym == "" {
		return nil, fmt.Errorf("%w: partylist name and acronym are required", domain.ErrInvalidInput)
	}
	if acronym == domain.IndependentAcronym {
		return nil, domain.ErrReservedAcronym
	}

	existing, err := s.partylistRepo.GetByAcronym(ctx, election.ID, acronym)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrPartylistExists
	}

	partylist := &domain.Partylist{
		ID:         uuid.New(),
		ElectionID: election.ID,
		Name:       input.Name,
		Acronym:    acronym,
	}
	if err := s.partylistRepo.Create(ctx, partylist); err != nil {
		return nil, err
	}
	return partylist, nil
}

// ListPartylists returns the election's partylists, excluding the reserved
// independent list.
func (s *rosterService) ListPartylists(ctx context.Context, electionID, callerUserID uuid.UUID) ([]*domain.Partylist, error) {
	if _, err := requireCommissioner(ctx, s.electionRepo, electionID, callerUserID); err != nil {
		return nil, err
	}
	return s.partylistRepo.ListByElection(ctx, electionID, false)
}

// DeletePartylist tombstones a partylist. The reserved independent list can
// never be removed, and a list still carrying live candidates has to be
// emptied first so candidates never point at a tombstoned partylist.
func (s *rosterService) DeletePartylist(ctx context.Context, electionID, callerUserID, partylistID uuid.UUID) error {
	if _, err := requireCommissioner(ctx, s.electionRepo, electionID, callerUserID); err != nil {
		return err
	}
	partylist, err := s.partylistRepo.GetByID(ctx, partylistID)
	if err != nil {
		return err
	}
	if partylist.ElectionID != electionID {
		return domain.ErrPartylistNotFound
	}
	if partylist.Acronym == domain.IndependentAcronym {
		return domain.ErrReservedAcronym
	}

	candidates, err := s.candidateRepo.ListByElection(ctx, electionID)
	if err != nil {
		return err
	}
	for _, candidate := range candidates {
		if candidate.PartylistID == partylist.ID {
			return fmt.Errorf("%w: partylist still has candidates", domain.ErrInvalidInput)
		}
	}

	return s.partylistRepo.SoftDelete(ctx, partylist.ID)
}
