package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/eboto-mo/eboto-api/internal/core/domain"
	"github.com/eboto-mo/eboto-api/internal/core/ports"
	"github.com/eboto-mo/eboto-api/internal/platform/metrics"
)

type voteService struct {
	electionRepo  ports.ElectionRepository
	positionRepo  ports.PositionRepository
	candidateRepo ports.CandidateRepository
	voterRepo     ports.VoterRepository
	voteRepo      ports.VoteRepository
	mailer        ports.ReceiptMailer
	metrics       *metrics.Metrics
	logger        *slog.Logger
	now           func() time.Time
}

func NewVoteService(
	electionRepo ports.ElectionRepository,
	positionRepo ports.PositionRepository,
	candidateRepo ports.CandidateRepository,
	voterRepo ports.VoterRepository,
	voteRepo ports.VoteRepository,
	mailer ports.ReceiptMailer,
	m *metrics.Metrics,
	logger *slog.Logger,
) ports.VoteService {
	if logger == nil {
		logger = slog.Default()
	}
	return &voteService{
		electionRepo:  electionRepo,
		positionRepo:  positionRepo,
		candidateRepo: candidateRepo,
		voterRepo:     voterRepo,
		voteRepo:      voteRepo,
		mailer:        mailer,
		metrics:       m,
		logger:        logger,
		now:           time.Now,
	}
}

// CastBallot validates and records one complete ballot. Checks run in a
// fixed order so callers always see the most specific failure: election
// exists, election is ongoing, caller has not voted yet, caller is a
// registered voter. Persistence is all-or-nothing.
func (s *voteService) CastBallot(ctx context.Context, input ports.CastBallotInput) error {
	election, err := s.electionRepo.GetByID(ctx, input.ElectionID)
	if err != nil {
		return err
	}

	now := s.now()
	if !election.IsOngoing(now) {
		s.countRejected()
		return domain.ErrElectionNotOngoing
	}

	voter, err := s.voterRepo.GetByEmail(ctx, election.ID, input.Caller.Email)
	if err != nil {
		return fmt.Errorf("failed to look up voter: %w", err)
	}
	if voter != nil {
		hasVoted, err := s.voteRepo.HasVoted(ctx, election.ID, voter.ID)
		if err != nil {
			return fmt.Errorf("failed to check existing ballot: %w", err)
		}
		if hasVoted {
			s.countRejected()
			return domain.ErrAlreadyVoted
		}
	}
	if voter == nil {
		s.countRejected()
		return domain.ErrNotAVoter
	}

	positions, candidates, err := s.loadBallotContext(ctx, election.ID)
	if err != nil {
		return err
	}

	rows, err := buildBallotRows(election.ID, voter.ID, input.Selections, positions, candidates)
	if err != nil {
		s.countRejected()
		return err
	}

	if err := s.voteRepo.CastBallot(ctx, election.ID, voter.ID, rows); err != nil {
		return err
	}

	if s.metrics != nil {
		s.metrics.BallotsCast.Inc()
	}

	s.sendReceipt(voter.Email, election, input.Selections, positions, candidates)
	return nil
}

func (s *voteService) loadBallotContext(ctx context.Context, electionID uuid.UUID) (map[uuid.UUID]*domain.Position, map[uuid.UUID]*domain.Candidate, error) {
	positionList, err := s.positionRepo.ListByElection(ctx, electionID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list positions: %w", err)
	}
	positions := make(map[uuid.UUID]*domain.Position, len(positionList))
	for _, p := range positionList {
		positions[p.ID] = p
	}

	candidateList, err := s.candidateRepo.ListByElection(ctx, electionID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	candidates := make(map[uuid.UUID]*domain.Candidate, len(candidateList))
	for _, c := range candidateList {
		candidates[c.ID] = c
	}

	return positions, candidates, nil
}

// buildBallotRows validates every selection against the live roster and
// returns the rows to persist. Every live position needs a selection or an
// explicit abstention; any violation rejects the whole ballot.
func buildBallotRows(
	electionID, voterID uuid.UUID,
	selections []ports.BallotSelection,
	positions map[uuid.UUID]*domain.Position,
	candidates map[uuid.UUID]*domain.Candidate,
) ([]*domain.Vote, error) {
	if len(selections) == 0 {
		return nil, domain.ErrInvalidBallot
	}

	var rows []*domain.Vote
	seenPositions := make(map[uuid.UUID]bool, len(selections))

	for _, sel := range selections {
		position, ok := positions[sel.PositionID]
		if !ok {
			return nil, domain.ErrPositionNotFound
		}
		if seenPositions[position.ID] {
			return nil, domain.ErrInvalidBallot
		}
		seenPositions[position.ID] = true

		if sel.Abstain {
			if len(sel.CandidateIDs) > 0 {
				return nil, domain.ErrInvalidBallot
			}
			positionID := position.ID
			rows = append(rows, &domain.Vote{
				ID:         uuid.New(),
				ElectionID: electionID,
				VoterID:    voterID,
				PositionID: &positionID,
			})
			continue
		}

		maxSelections := position.MaxSelections
		if maxSelections < 1 {
			maxSelections = 1
		}
		if len(sel.CandidateIDs) == 0 || len(sel.CandidateIDs) > maxSelections {
			return nil, domain.ErrInvalidBallot
		}

		seenCandidates := make(map[uuid.UUID]bool, len(sel.CandidateIDs))
		for _, candidateID := range sel.CandidateIDs {
			candidate, ok := candidates[candidateID]
			if !ok {
				return nil, domain.ErrCandidateNotFound
			}
			if candidate.PositionID != position.ID || seenCandidates[candidateID] {
				return nil, domain.ErrInvalidBallot
			}
			seenCandidates[candidateID] = true

			id := candidateID
			rows = append(rows, &domain.Vote{
				ID:          uuid.New(),
				ElectionID:  electionID,
				VoterID:     voterID,
				CandidateID: &id,
			})
		}
	}

	// A ballot can only be cast once, so a position skipped here could never
	// be voted on later. Reject instead of locking the voter out.
	if len(seenPositions) != len(positions) {
		return nil, domain.ErrInvalidBallot
	}

	return rows, nil
}

// sendReceipt mails the voter a summary of their recorded choices. Delivery
// runs in the background; a failure is logged and never rolls back the vote.
func (s *voteService) sendReceipt(
	email string,
	election *domain.Election,
	selections []ports.BallotSelection,
	positions map[uuid.UUID]*domain.Position,
	candidates map[uuid.UUID]*domain.Candidate,
) {
	if s.mailer == nil {
		return
	}

	receipt := ports.VoteReceipt{
		Email:        email,
		ElectionName: election.Name,
		ElectionSlug: election.Slug,
	}
	for _, sel := range selections {
		rp := ports.ReceiptPosition{Abstained: sel.Abstain}
		if position, ok := positions[sel.PositionID]; ok {
			rp.Name = position.Name
		}
		for _, candidateID := range sel.CandidateIDs {
			if candidate, ok := candidates[candidateID]; ok {
				rp.Candidates = append(rp.Candidates, candidate.FullName(election.NameArrangement))
			}
		}
		receipt.Positions = append(receipt.Positions, rp)
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := s.mailer.SendVoteReceipt(ctx, receipt); err != nil {
			if s.metrics != nil {
				s.metrics.ReceiptsFailed.Inc()
			}
			s.logger.Error("failed to send vote receipt",
				"election", election.Slug,
				"error", err,
			)
			return
		}
		if s.metrics != nil {
			s.metrics.ReceiptsSent.Inc()
		}
	}()
}

func (s *voteService) countRejected() {
	if s.metrics != nil {
		s.metrics.BallotsRejected.Inc()
	}
}
