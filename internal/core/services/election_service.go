package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/eboto-mo/eboto-api/internal/core/domain"
	"github.com/eboto-mo/eboto-api/internal/core/ports"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// reservedSlugs would collide with top-level routes of the voting site.
var reservedSlugs = map[string]bool{
	"api":       true,
	"dashboard": true,
	"elections": true,
	"sign-in":   true,
	"sign-up":   true,
	"account":   true,
	"realtime":  true,
	"admin":     true,
}

type electionService struct {
	electionRepo  ports.ElectionRepository
	positionRepo  ports.PositionRepository
	candidateRepo ports.CandidateRepository
	partylistRepo ports.PartylistRepository
	voterRepo     ports.VoterRepository
	voteRepo      ports.VoteRepository
	userRepo      ports.UserRepository
	now           func() time.Time
}

func NewElectionService(
	electionRepo ports.ElectionRepository,
	positionRepo ports.PositionRepository,
	candidateRepo ports.CandidateRepository,
	partylistRepo ports.PartylistRepository,
	voterRepo ports.VoterRepository,
	voteRepo ports.VoteRepository,
	userRepo ports.UserRepository,
) ports.ElectionService {
	return &electionService{
		electionRepo:  electionRepo,
		positionRepo:  positionRepo,
		candidateRepo: candidateRepo,
		partylistRepo: partylistRepo,
		voterRepo:     voterRepo,
		voteRepo:      voteRepo,
		userRepo:      userRepo,
		now:           time.Now,
	}
}

// requireCommissioner resolves the caller's live commissioner row for the
// election or fails with ErrNotACommissioner. Shared by every
// commissioner-gated service method.
func requireCommissioner(ctx context.Context, repo ports.ElectionRepository, electionID, userID uuid.UUID) (*domain.Commissioner, error) {
	commissioner, err := repo.GetCommissioner(ctx, electionID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up commissioner: %w", err)
	}
	if commissioner == nil {
		return nil, domain.ErrNotACommissioner
	}
	return commissioner, nil
}

func (s *electionService) Create(ctx context.Context, creatorUserID uuid.UUID, input ports.CreateElectionInput) (*domain.Election, error) {
	slug := strings.ToLower(strings.TrimSpace(input.Slug))
	if !slugPattern.MatchString(slug) || reservedSlugs[slug] {
		return nil, fmt.Errorf("%w: invalid slug %q", domain.ErrInvalidInput, slug)
	}
	if input.Name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if !input.EndDate.After(input.StartDate) {
		return nil, fmt.Errorf("%w: end date must be after start date", domain.ErrInvalidInput)
	}
	if err := validateVotingHours(input.VotingHourStart, input.VotingHourEnd); err != nil {
		return nil, err
	}

	taken, err := s.electionRepo.SlugTaken(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to check slug: %w", err)
	}
	if taken {
		return nil, domain.ErrSlugTaken
	}

	publicity := input.Publicity
	if publicity == "" {
		publicity = domain.PublicityPrivate
	}
	arrangement := input.NameArrangement
	if arrangement == "" {
		arrangement = domain.NameArrangementFirstLast
	}

	election := &domain.Election{
		ID:              uuid.New(),
		Slug:            slug,
		Name:            input.Name,
		Description:     input.Description,
		StartDate:       input.StartDate,
		EndDate:         input.EndDate,
		VotingHourStart: input.VotingHourStart,
		VotingHourEnd:   input.VotingHourEnd,
		Publicity:       publicity,
		NameArrangement: arrangement,
		IsCandidatesVisibleInRealtime: input.IsCandidatesVisibleInRealtime,
		IsFree:                        input.IsFree,
	}
	creator := &domain.Commissioner{
		ID:         uuid.New(),
		ElectionID: election.ID,
		UserID:     creatorUserID,
		IsCreator:  true,
	}
	independent := &domain.Partylist{
		ID:         uuid.New(),
		ElectionID: election.ID,
		Name:       "Independent",
		Acronym:    domain.IndependentAcronym,
	}

	if err := s.electionRepo.Create(ctx, election, creator, independent); err != nil {
		return nil, err
	}
	return election, nil
}

func validateVotingHours(start, end *int) error {
	if (start == nil) != (end == nil) {
		return fmt.Errorf("%w: voting hours must set both bounds", domain.ErrInvalidInput)
	}
	if start == nil {
		return nil
	}
	if *start < 0 || *start > 23 || *end < 0 || *end > 23 || *start > *end {
		return fmt.Errorf("%w: voting hours out of range", domain.ErrInvalidInput)
	}
	return nil
}

// GetPage assembles the public election page: the election, its ballot
// (positions with candidates and partylists), and the caller's own voting
// status. Publicity gating: PRIVATE is commissioner-only, VOTER also admits
// registered voters, PUBLIC admits everyone.
func (s *electionService) GetPage(ctx context.Context, slug string, caller *ports.AuthenticatedUser) (*ports.ElectionPage, error) {
	election, err := s.electionRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	var myVoter *domain.Voter
	var commissioner *domain.Commissioner
	if caller != nil {
		myVoter, err = s.voterRepo.GetByEmail(ctx, election.ID, caller.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to look up voter: %w", err)
		}
		commissioner, err = s.electionRepo.GetCommissioner(ctx, election.ID, caller.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to look up commissioner: %w", err)
		}
	}

	switch election.Publicity {
	case domain.PublicityPublic:
	case domain.PublicityVoter:
		if myVoter == nil && commissioner == nil {
			return nil, domain.ErrElectionNotVisible
		}
	default:
		if commissioner == nil {
			return nil, domain.ErrElectionNotVisible
		}
	}

	positions, err := s.positionRepo.ListByElection(ctx, election.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list positions: %w", err)
	}
	candidates, err := s.candidateRepo.ListByElection(ctx, election.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	partylists, err := s.partylistRepo.ListByElection(ctx, election.ID, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list partylists: %w", err)
	}

	partylistByID := make(map[uuid.UUID]*domain.Partylist, len(partylists))
	for _, p := range partylists {
		partylistByID[p.ID] = p
	}

	page := &ports.ElectionPage{
		Election:  election,
		IsOngoing: election.IsOngoing(s.now()),
		MyVoter:   myVoter,
		Positions: make([]ports.PositionWithCandidates, 0, len(positions)),
	}

	for _, position := range positions {
		pwc := ports.PositionWithCandidates{Position: *position}
		for _, candidate := range candidates {
			if candidate.PositionID != position.ID {
				continue
			}
			pwc.Candidates = append(pwc.Candidates, ports.CandidateWithPartylist{
				Candidate: *candidate,
				Partylist: partylistByID[candidate.PartylistID],
			})
		}
		page.Positions = append(page.Positions, pwc)
	}

	if myVoter != nil {
		hasVoted, err := s.voteRepo.HasVoted(ctx, election.ID, myVoter.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check existing ballot: %w", err)
		}
		page.HasVoted = hasVoted
	}

	return page, nil
}

func (s *electionService) Delete(ctx context.Context, electionID, callerUserID uuid.UUID) error {
	election, err := s.electionRepo.GetByID(ctx, electionID)
	if err != nil {
		return err
	}
	if _, err := requireCommissioner(ctx, s.electionRepo, election.ID, callerUserID); err != nil {
		return err
	}
	return s.electionRepo.SoftDelete(ctx, election.ID)
}

func (s *electionService) MyElections(ctx context.Context, userID uuid.UUID) ([]*domain.Election, error) {
	return s.electionRepo.ListByCommissioner(ctx, userID)
}

func (s *electionService) AddCommissioner(ctx context.Context, electionID, callerUserID uuid.UUID, email string) (*domain.Commissioner, error) {
	election, err := s.electionRepo.GetByID(ctx, electionID)
	if err != nil {
		return nil, err
	}
	if _, err := requireCommissioner(ctx, s.electionRepo, election.ID, callerUserID); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	existing, err := s.electionRepo.GetCommissioner(ctx, election.ID, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up commissioner: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrCommissionerExists
	}

	commissioner := &domain.Commissioner{
		ID:         uuid.New(),
		ElectionID: election.ID,
		UserID:     user.ID,
	}
	if err := s.electionRepo.AddCommissioner(ctx, commissioner); err != nil {
		return nil, err
	}
	return commissioner, nil
}

// RemoveCommissioner is creator-only, and the creator themselves can never
// be removed.
func (s *electionService) RemoveCommissioner(ctx context.Context, electionID, callerUserID, commissionerID uuid.UUID) error {
	election, err := s.electionRepo.GetByID(ctx, electionID)
	if err != nil {
		return err
	}
	caller, err := requireCommissioner(ctx, s.electionRepo, election.ID, callerUserID)
	if err != nil {
		return err
	}
	if !caller.IsCreator {
		return domain.ErrNotTheCreator
	}

	target, err := s.electionRepo.GetCommissionerByID(ctx, commissionerID)
	if err != nil {
		return fmt.Errorf("failed to look up commissioner: %w", err)
	}
	if target == nil || target.ElectionID != election.ID {
		return domain.ErrCommissionerNotFound
	}
	if target.IsCreator {
		return domain.ErrCannotRemoveCreator
	}

	return s.electionRepo.SoftDeleteCommissioner(ctx, target.ID)
}

func (s *electionService) RequireCommissioner(ctx context.Context, electionID, userID uuid.UUID) (*domain.Commissioner, error) {
	return requireCommissioner(ctx, s.electionRepo, electionID, userID)
}
