package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/eboto-mo/eboto-api/internal/core/domain"
	"github.com/eboto-mo/eboto-api/internal/core/ports"
)

type resultService struct {
	electionRepo  ports.ElectionRepository
	positionRepo  ports.PositionRepository
	candidateRepo ports.CandidateRepository
	partylistRepo ports.PartylistRepository
	voterRepo     ports.VoterRepository
	resultRepo    ports.ResultRepository
	now           func() time.Time
}

func NewResultService(
	electionRepo ports.ElectionRepository,
	positionRepo ports.PositionRepository,
	candidateRepo ports.CandidateRepository,
	partylistRepo ports.PartylistRepository,
	voterRepo ports.VoterRepository,
	resultRepo ports.ResultRepository,
) ports.ResultService {
	return &resultService{
		electionRepo:  electionRepo,
		positionRepo:  positionRepo,
		candidateRepo: candidateRepo,
		partylistRepo: partylistRepo,
		voterRepo:     voterRepo,
		resultRepo:    resultRepo,
		now:           time.Now,
	}
}

// GetRealtimeResults recomputes the tally from the persisted ballot rows.
// Free-plan elections that have not ended count only ballots recorded at or
// before the start of the current clock hour. While the election is ongoing
// and candidate identities are hidden, names are replaced by rank-based
// placeholders assigned after sorting.
func (s *resultService) GetRealtimeResults(ctx context.Context, slug string) (*domain.ElectionResults, error) {
	election, err := s.electionRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	now := s.now()

	var cutoff *time.Time
	if election.IsFree && !election.HasEnded(now) {
		hour := now.Truncate(time.Hour)
		cutoff = &hour
	}

	results, err := s.tabulate(ctx, election, cutoff)
	if err != nil {
		return nil, err
	}

	if election.IsOngoing(now) && !election.HasEnded(now) && !election.IsCandidatesVisibleInRealtime {
		anonymize(results)
	}

	results.AsOf = now
	if cutoff != nil {
		results.AsOf = *cutoff
	}
	return results, nil
}

// tabulate builds the full, named tally for an election. Candidates are
// sorted by descending vote count; ties keep creation order.
func (s *resultService) tabulate(ctx context.Context, election *domain.Election, cutoff *time.Time) (*domain.ElectionResults, error) {
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
	voteCounts, err := s.resultRepo.CandidateVoteCounts(ctx, election.ID, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to count candidate votes: %w", err)
	}
	abstainCounts, err := s.resultRepo.AbstainCounts(ctx, election.ID, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to count abstentions: %w", err)
	}

	acronyms := make(map[uuid.UUID]string, len(partylists))
	for _, p := range partylists {
		acronyms[p.ID] = p.Acronym
	}

	byPosition := make(map[uuid.UUID][]*domain.Candidate)
	for _, c := range candidates {
		byPosition[c.PositionID] = append(byPosition[c.PositionID], c)
	}

	results := &domain.ElectionResults{
		ElectionID: election.ID,
		Slug:       election.Slug,
		Name:       election.Name,
		Positions:  make([]domain.PositionResult, 0, len(positions)),
	}

	for _, position := range positions {
		pr := domain.PositionResult{
			PositionID:   position.ID,
			Name:         position.Name,
			Order:        position.Order,
			AbstainCount: abstainCounts[position.ID],
		}
		pr.TotalBallots = pr.AbstainCount

		for _, candidate := range byPosition[position.ID] {
			count := voteCounts[candidate.ID]
			pr.Candidates = append(pr.Candidates, domain.CandidateResult{
				CandidateID:      candidate.ID,
				Name:             candidate.FullName(election.NameArrangement),
				PartylistAcronym: acronyms[candidate.PartylistID],
				VoteCount:        count,
			})
			pr.TotalBallots += count
		}

		sort.SliceStable(pr.Candidates, func(i, j int) bool {
			return pr.Candidates[i].VoteCount > pr.Candidates[j].VoteCount
		})

		results.Positions = append(results.Positions, pr)
	}

	return results, nil
}

// anonymize replaces candidate identity with a placeholder that tracks the
// candidate's current rank, not their id.
func anonymize(results *domain.ElectionResults) {
	results.Anonymized = true
	for pi := range results.Positions {
		for ci := range results.Positions[pi].Candidates {
			results.Positions[pi].Candidates[ci].Name = fmt.Sprintf("Candidate %d", ci+1)
			results.Positions[pi].Candidates[ci].PartylistAcronym = ""
		}
	}
}

// GetVoterFieldStats groups the voter roster by each configured field value
// and reports, per value, how many voters hold it and how many have voted.
// Voters missing a value bucket under the empty string.
func (s *resultService) GetVoterFieldStats(ctx context.Context, electionID, callerUserID uuid.UUID) ([]domain.VoterFieldStats, error) {
	election, err := s.electionRepo.GetByID(ctx, electionID)
	if err != nil {
		return nil, err
	}
	if _, err := requireCommissioner(ctx, s.electionRepo, election.ID, callerUserID); err != nil {
		return nil, err
	}

	fields, err := s.voterRepo.ListFields(ctx, election.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list voter fields: %w", err)
	}
	voters, err := s.voterRepo.ListByElection(ctx, election.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list voters: %w", err)
	}

	stats := make([]domain.VoterFieldStats, 0, len(fields))
	for _, field := range fields {
		buckets := make(map[string]*domain.FieldValueCount)
		order := make([]string, 0)

		for _, voter := range voters {
			value := voter.Field[field.ID.String()]
			bucket, ok := buckets[value]
			if !ok {
				bucket = &domain.FieldValueCount{Value: value}
				buckets[value] = bucket
				order = append(order, value)
			}
			bucket.VoterCount++
			if voter.HasVoted {
				bucket.VotedCount++
			}
		}

		fs := domain.VoterFieldStats{
			FieldID:   field.ID,
			FieldName: field.Name,
			Values:    make([]domain.FieldValueCount, 0, len(order)),
		}
		for _, value := range order {
			fs.Values = append(fs.Values, *buckets[value])
		}
		sort.SliceStable(fs.Values, func(i, j int) bool {
			if fs.Values[i].VoterCount != fs.Values[j].VoterCount {
				return fs.Values[i].VoterCount > fs.Values[j].VoterCount
			}
			return fs.Values[i].Value < fs.Values[j].Value
		})

		stats = append(stats, fs)
	}

	return stats, nil
}
