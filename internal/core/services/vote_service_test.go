package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eboto-mo/eboto-api/internal/core/domain"
	"github.com/eboto-mo/eboto-api/internal/core/ports"
)

type ballotFixture struct {
	electionRepo  *fakeElectionRepo
	positionRepo  *fakePositionRepo
	candidateRepo *fakeCandidateRepo
	voterRepo     *fakeVoterRepo
	voteRepo      *fakeVoteRepo
	mailer        *fakeMailer

	election  *domain.Election
	president *domain.Position
	senator   *domain.Position
	alice     *domain.Candidate
	bob       *domain.Candidate
	carol     *domain.Candidate
	voter     *domain.Voter
}

func newBallotFixture(t *testing.T) *ballotFixture {
	t.Helper()

	f := &ballotFixture{
		electionRepo:  newFakeElectionRepo(),
		positionRepo:  &fakePositionRepo{},
		candidateRepo: &fakeCandidateRepo{},
		voterRepo:     newFakeVoterRepo(),
		voteRepo:      newFakeVoteRepo(),
		mailer:        newFakeMailer(),
	}

	f.election = &domain.Election{
		ID:              uuid.New(),
		Slug:            "ssc-2026",
		Name:            "SSC 2026",
		StartDate:       time.Now().Add(-time.Hour),
		EndDate:         time.Now().Add(time.Hour),
		NameArrangement: domain.NameArrangementFirstLast,
	}
	f.electionRepo.elections[f.election.ID] = f.election
	f.electionRepo.slugs[f.election.Slug] = f.election.ID

	f.president = &domain.Position{ID: uuid.New(), ElectionID: f.election.ID, Name: "President", Order: 1, MaxSelections: 1}
	f.senator = &domain.Position{ID: uuid.New(), ElectionID: f.election.ID, Name: "Senator", Order: 2, MaxSelections: 2}
	f.positionRepo.positions = []*domain.Position{f.president, f.senator}

	f.alice = &domain.Candidate{ID: uuid.New(), ElectionID: f.election.ID, PositionID: f.president.ID, FirstName: "Alice", LastName: "Reyes"}
	f.bob = &domain.Candidate{ID: uuid.New(), ElectionID: f.election.ID, PositionID: f.senator.ID, FirstName: "Bob", LastName: "Cruz"}
	f.carol = &domain.Candidate{ID: uuid.New(), ElectionID: f.election.ID, PositionID: f.senator.ID, FirstName: "Carol", LastName: "Santos"}
	f.candidateRepo.candidates = []*domain.Candidate{f.alice, f.bob, f.carol}

	f.voter = &domain.Voter{ID: uuid.New(), ElectionID: f.election.ID, Email: "voter@example.com"}
	f.voterRepo.voters = []*domain.Voter{f.voter}

	return f
}

func (f *ballotFixture) service() ports.VoteService {
	return NewVoteService(f.electionRepo, f.positionRepo, f.candidateRepo, f.voterRepo, f.voteRepo, f.mailer, nil, nil)
}

func (f *ballotFixture) caller() ports.AuthenticatedUser {
	return ports.AuthenticatedUser{ID: uuid.New(), Email: f.voter.Email}
}

func TestCastBallot(t *testing.T) {
	f := newBallotFixture(t)
	svc := f.service()

	err := svc.CastBallot(context.Background(), ports.CastBallotInput{
		ElectionID: f.election.ID,
		Caller:     f.caller(),
		Selections: []ports.BallotSelection{
			{PositionID: f.president.ID, Abstain: true},
			{PositionID: f.senator.ID, CandidateIDs: []uuid.UUID{f.bob.ID, f.carol.ID}},
		},
	})
	require.NoError(t, err)

	require.Len(t, f.voteRepo.rows, 3)

	abstains, choices := 0, 0
	for _, row := range f.voteRepo.rows {
		assert.Equal(t, f.election.ID, row.ElectionID)
		assert.Equal(t, f.voter.ID, row.VoterID)
		if row.IsAbstain() {
			abstains++
			require.NotNil(t, row.PositionID)
			assert.Equal(t, f.president.ID, *row.PositionID)
		} else {
			choices++
		}
	}
	assert.Equal(t, 1, abstains)
	assert.Equal(t, 2, choices)

	select {
	case receipt := <-f.mailer.receipts:
		assert.Equal(t, f.voter.Email, receipt.Email)
		assert.Equal(t, f.election.Slug, receipt.ElectionSlug)
		require.Len(t, receipt.Positions, 2)
		assert.True(t, receipt.Positions[0].Abstained)
		assert.Equal(t, []string{"Bob Cruz", "Carol Santos"}, receipt.Positions[1].Candidates)
	case <-time.After(2 * time.Second):
		t.Fatal("expected a vote receipt")
	}
}

func TestCastBallotNotOngoing(t *testing.T) {
	f := newBallotFixture(t)
	f.election.StartDate = time.Now().Add(-48 * time.Hour)
	f.election.EndDate = time.Now().Add(-24 * time.Hour)

	err := f.service().CastBallot(context.Background(), ports.CastBallotInput{
		ElectionID: f.election.ID,
		Caller:     f.caller(),
		Selections: []ports.BallotSelection{{PositionID: f.president.ID, Abstain: true}},
	})
	assert.ErrorIs(t, err, domain.ErrElectionNotOngoing)
	assert.Empty(t, f.voteRepo.rows)
}

func TestCastBallotAlreadyVoted(t *testing.T) {
	f := newBallotFixture(t)
	f.voteRepo.voted[f.voter.ID] = true

	err := f.service().CastBallot(context.Background(), ports.CastBallotInput{
		ElectionID: f.election.ID,
		Caller:     f.caller(),
		Selections: []ports.BallotSelection{{PositionID: f.president.ID, Abstain: true}},
	})
	assert.ErrorIs(t, err, domain.ErrAlreadyVoted)
}

func TestCastBallotNotAVoter(t *testing.T) {
	f := newBallotFixture(t)

	err := f.service().CastBallot(context.Background(), ports.CastBallotInput{
		ElectionID: f.election.ID,
		Caller:     ports.AuthenticatedUser{ID: uuid.New(), Email: "stranger@example.com"},
		Selections: []ports.BallotSelection{{PositionID: f.president.ID, Abstain: true}},
	})
	assert.ErrorIs(t, err, domain.ErrNotAVoter)
}

func TestCastBallotElectionNotFound(t *testing.T) {
	f := newBallotFixture(t)

	err := f.service().CastBallot(context.Background(), ports.CastBallotInput{
		ElectionID: uuid.New(),
		Caller:     f.caller(),
	})
	assert.ErrorIs(t, err, domain.ErrElectionNotFound)
}

func TestCastBallotMustCoverEveryPosition(t *testing.T) {
	f := newBallotFixture(t)
	svc := f.service()

	err := svc.CastBallot(context.Background(), ports.CastBallotInput{
		ElectionID: f.election.ID,
		Caller:     f.caller(),
		Selections: []ports.BallotSelection{
			{PositionID: f.president.ID, CandidateIDs: []uuid.UUID{f.alice.ID}},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidBallot)
	assert.Empty(t, f.voteRepo.rows)

	// The rejected partial ballot must not burn the voter's single cast.
	err = svc.CastBallot(context.Background(), ports.CastBallotInput{
		ElectionID: f.election.ID,
		Caller:     f.caller(),
		Selections: []ports.BallotSelection{
			{PositionID: f.president.ID, CandidateIDs: []uuid.UUID{f.alice.ID}},
			{PositionID: f.senator.ID, Abstain: true},
		},
	})
	require.NoError(t, err)
	assert.Len(t, f.voteRepo.rows, 2)
}

func TestCastBallotValidation(t *testing.T) {
	tests := []struct {
		name       string
		selections func(f *ballotFixture) []ports.BallotSelection
		wantErr    error
	}{
		{
			name:       "empty ballot",
			selections: func(f *ballotFixture) []ports.BallotSelection { return nil },
			wantErr:    domain.ErrInvalidBallot,
		},
		{
			name: "unknown position",
			selections: func(f *ballotFixture) []ports.BallotSelection {
				return []ports.BallotSelection{{PositionID: uuid.New(), Abstain: true}}
			},
			wantErr: domain.ErrPositionNotFound,
		},
		{
			name: "duplicate position",
			selections: func(f *ballotFixture) []ports.BallotSelection {
				return []ports.BallotSelection{
					{PositionID: f.president.ID, Abstain: true},
					{PositionID: f.president.ID, CandidateIDs: []uuid.UUID{f.alice.ID}},
				}
			},
			wantErr: domain.ErrInvalidBallot,
		},
		{
			name: "abstain with candidates",
			selections: func(f *ballotFixture) []ports.BallotSelection {
				return []ports.BallotSelection{{PositionID: f.president.ID, Abstain: true, CandidateIDs: []uuid.UUID{f.alice.ID}}}
			},
			wantErr: domain.ErrInvalidBallot,
		},
		{
			name: "no candidates and no abstain",
			selections: func(f *ballotFixture) []ports.BallotSelection {
				return []ports.BallotSelection{{PositionID: f.president.ID}}
			},
			wantErr: domain.ErrInvalidBallot,
		},
		{
			name: "over max selections",
			selections: func(f *ballotFixture) []ports.BallotSelection {
				return []ports.BallotSelection{{PositionID: f.president.ID, CandidateIDs: []uuid.UUID{f.alice.ID, f.alice.ID}}}
			},
			wantErr: domain.ErrInvalidBallot,
		},
		{
			name: "unknown candidate",
			selections: func(f *ballotFixture) []ports.BallotSelection {
				return []ports.BallotSelection{{PositionID: f.president.ID, CandidateIDs: []uuid.UUID{uuid.New()}}}
			},
			wantErr: domain.ErrCandidateNotFound,
		},
		{
			name: "candidate from another position",
			selections: func(f *ballotFixture) []ports.BallotSelection {
				return []ports.BallotSelection{{PositionID: f.president.ID, CandidateIDs: []uuid.UUID{f.bob.ID}}}
			},
			wantErr: domain.ErrInvalidBallot,
		},
		{
			name: "position left unanswered",
			selections: func(f *ballotFixture) []ports.BallotSelection {
				return []ports.BallotSelection{{PositionID: f.president.ID, CandidateIDs: []uuid.UUID{f.alice.ID}}}
			},
			wantErr: domain.ErrInvalidBallot,
		},
		{
			name: "duplicate candidate",
			selections: func(f *ballotFixture) []ports.BallotSelection {
				return []ports.BallotSelection{{PositionID: f.senator.ID, CandidateIDs: []uuid.UUID{f.bob.ID, f.bob.ID}}}
			},
			wantErr: domain.ErrInvalidBallot,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBallotFixture(t)

			err := f.service().CastBallot(context.Background(), ports.CastBallotInput{
				ElectionID: f.election.ID,
				Caller:     f.caller(),
				Selections: tt.selections(f),
			})
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, f.voteRepo.rows)
		})
	}
}
