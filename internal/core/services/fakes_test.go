package services

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/eboto-mo/eboto-api/internal/core/domain"
	"github.com/eboto-mo/eboto-api/internal/core/ports"
)

// In-memory fakes shared by the service tests.

type fakeElectionRepo struct {
	elections     map[uuid.UUID]*domain.Election
	commissioners map[uuid.UUID]*domain.Commissioner
	slugs         map[string]uuid.UUID
}

func newFakeElectionRepo() *fakeElectionRepo {
	return &fakeElectionRepo{
		elections:     make(map[uuid.UUID]*domain.Election),
		commissioners: make(map[uuid.UUID]*domain.Commissioner),
		slugs:         make(map[string]uuid.UUID),
	}
}

func (r *fakeElectionRepo) Create(_ context.Context, election *domain.Election, creator *domain.Commissioner, independent *domain.Partylist) error {
	r.elections[election.ID] = election
	r.slugs[election.Slug] = election.ID
	r.commissioners[creator.ID] = creator
	return nil
}

func (r *fakeElectionRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Election, error) {
	election, ok := r.elections[id]
	if !ok || election.DeletedAt != nil {
		return nil, domain.ErrElectionNotFound
	}
	return election, nil
}

func (r *fakeElectionRepo) GetBySlug(_ context.Context, slug string) (*domain.Election, error) {
	id, ok := r.slugs[slug]
	if !ok {
		return nil, domain.ErrElectionNotFound
	}
	return r.GetByID(context.Background(), id)
}

func (r *fakeElectionRepo) SlugTaken(_ context.Context, slug string) (bool, error) {
	_, ok := r.slugs[slug]
	return ok, nil
}

func (r *fakeElectionRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if election, ok := r.elections[id]; ok {
		now := time.Now()
		election.DeletedAt = &now
		delete(r.slugs, election.Slug)
	}
	return nil
}

func (r *fakeElectionRepo) ListByCommissioner(_ context.Context, userID uuid.UUID) ([]*domain.Election, error) {
	var elections []*domain.Election
	for _, c := range r.commissioners {
		if c.UserID != userID || c.DeletedAt != nil {
			continue
		}
		if election, ok := r.elections[c.ElectionID]; ok && election.DeletedAt == nil {
			elections = append(elections, election)
		}
	}
	sort.Slice(elections, func(i, j int) bool { return elections[i].Slug < elections[j].Slug })
	return elections, nil
}

func (r *fakeElectionRepo) AddCommissioner(_ context.Context, commissioner *domain.Commissioner) error {
	r.commissioners[commissioner.ID] = commissioner
	return nil
}

func (r *fakeElectionRepo) GetCommissioner(_ context.Context, electionID, userID uuid.UUID) (*domain.Commissioner, error) {
	for _, c := range r.commissioners {
		if c.ElectionID == electionID && c.UserID == userID && c.DeletedAt == nil {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeElectionRepo) GetCommissionerByID(_ context.Context, id uuid.UUID) (*domain.Commissioner, error) {
	c, ok := r.commissioners[id]
	if !ok || c.DeletedAt != nil {
		return nil, nil
	}
	return c, nil
}

func (r *fakeElectionRepo) ListCommissioners(_ context.Context, electionID uuid.UUID) ([]*domain.Commissioner, error) {
	var commissioners []*domain.Commissioner
	for _, c := range r.commissioners {
		if c.ElectionID == electionID && c.DeletedAt == nil {
			commissioners = append(commissioners, c)
		}
	}
	return commissioners, nil
}

func (r *fakeElectionRepo) SoftDeleteCommissioner(_ context.Context, id uuid.UUID) error {
	if c, ok := r.commissioners[id]; ok {
		now := time.Now()
		c.DeletedAt = &now
	}
	return nil
}

type fakePositionRepo struct {
	positions []*domain.Position
}

func (r *fakePositionRepo) Create(_ context.Context, position *domain.Position) error {
	r.positions = append(r.positions, position)
	return nil
}

func (r *fakePositionRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Position, error) {
	for _, p := range r.positions {
		if p.ID == id && p.DeletedAt == nil {
			return p, nil
		}
	}
	return nil, domain.ErrPositionNotFound
}

func (r *fakePositionRepo) ListByElection(_ context.Context, electionID uuid.UUID) ([]*domain.Position, error) {
	var positions []*domain.Position
	for _, p := range r.positions {
		if p.ElectionID == electionID && p.DeletedAt == nil {
			positions = append(positions, p)
		}
	}
	sort.Slice(positions, func(i, j int) bool { return positions[i].Order < positions[j].Order })
	return positions, nil
}

func (r *fakePositionRepo) MaxOrder(_ context.Context, electionID uuid.UUID) (int, error) {
	maxOrder := 0
	for _, p := range r.positions {
		if p.ElectionID == electionID && p.DeletedAt == nil && p.Order > maxOrder {
			maxOrder = p.Order
		}
	}
	return maxOrder, nil
}

func (r *fakePositionRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	for _, p := range r.positions {
		if p.ID == id {
			now := time.Now()
			p.DeletedAt = &now
		}
	}
	return nil
}

type fakeCandidateRepo struct {
	candidates []*domain.Candidate
}

func (r *fakeCandidateRepo) Create(_ context.Context, candidate *domain.Candidate) error {
	r.candidates = append(r.candidates, candidate)
	return nil
}

func (r *fakeCandidateRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Candidate, error) {
	for _, c := range r.candidates {
		if c.ID == id && c.DeletedAt == nil {
			return c, nil
		}
	}
	return nil, domain.ErrCandidateNotFound
}

func (r *fakeCandidateRepo) ListByElection(_ context.Context, electionID uuid.UUID) ([]*domain.Candidate, error) {
	var candidates []*domain.Candidate
	for _, c := range r.candidates {
		if c.ElectionID == electionID && c.DeletedAt == nil {
			candidates = append(candidates, c)
		}
	}
	return candidates, nil
}

func (r *fakeCandidateRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	for _, c := range r.candidates {
		if c.ID == id {
			now := time.Now()
			c.DeletedAt = &now
		}
	}
	return nil
}

type fakePartylistRepo struct {
	partylists []*domain.Partylist
}

func (r *fakePartylistRepo) Create(_ context.Context, partylist *domain.Partylist) error {
	r.partylists = append(r.partylists, partylist)
	return nil
}

func (r *fakePartylistRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Partylist, error) {
	for _, p := range r.partylists {
		if p.ID == id && p.DeletedAt == nil {
			return p, nil
		}
	}
	return nil, domain.ErrPartylistNotFound
}

func (r *fakePartylistRepo) GetByAcronym(_ context.Context, electionID uuid.UUID, acronym string) (*domain.Partylist, error) {
	for _, p := range r.partylists {
		if p.ElectionID == electionID && p.Acronym == acronym && p.DeletedAt == nil {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakePartylistRepo) ListByElection(_ context.Context, electionID uuid.UUID, includeIndependent bool) ([]*domain.Partylist, error) {
	var partylists []*domain.Partylist
	for _, p := range r.partylists {
		if p.ElectionID != electionID || p.DeletedAt != nil {
			continue
		}
		if !includeIndependent && p.Acronym == domain.IndependentAcronym {
			continue
		}
		partylists = append(partylists, p)
	}
	return partylists, nil
}

func (r *fakePartylistRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	for _, p := range r.partylists {
		if p.ID == id {
			now := time.Now()
			p.DeletedAt = &now
		}
	}
	return nil
}

type fakeVoterRepo struct {
	voters []*domain.Voter
	fields []*domain.VoterField
	voted  map[uuid.UUID]bool
}

func newFakeVoterRepo() *fakeVoterRepo {
	return &fakeVoterRepo{voted: make(map[uuid.UUID]bool)}
}

func (r *fakeVoterRepo) Create(_ context.Context, voter *domain.Voter) error {
	r.voters = append(r.voters, voter)
	return nil
}

func (r *fakeVoterRepo) Update(_ context.Context, voter *domain.Voter) error {
	for i, v := range r.voters {
		if v.ID == voter.ID {
			r.voters[i] = voter
		}
	}
	return nil
}

func (r *fakeVoterRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Voter, error) {
	for _, v := range r.voters {
		if v.ID == id && v.DeletedAt == nil {
			return v, nil
		}
	}
	return nil, domain.ErrVoterNotFound
}

func (r *fakeVoterRepo) GetByEmail(_ context.Context, electionID uuid.UUID, email string) (*domain.Voter, error) {
	for _, v := range r.voters {
		if v.ElectionID == electionID && v.Email == email && v.DeletedAt == nil {
			return v, nil
		}
	}
	return nil, nil
}

func (r *fakeVoterRepo) EmailTaken(ctx context.Context, electionID uuid.UUID, email string) (bool, error) {
	voter, _ := r.GetByEmail(ctx, electionID, email)
	return voter != nil, nil
}

func (r *fakeVoterRepo) ListByElection(_ context.Context, electionID uuid.UUID) ([]*domain.VoterWithStatus, error) {
	var voters []*domain.VoterWithStatus
	for _, v := range r.voters {
		if v.ElectionID == electionID && v.DeletedAt == nil {
			voters = append(voters, &domain.VoterWithStatus{Voter: *v, HasVoted: r.voted[v.ID]})
		}
	}
	return voters, nil
}

func (r *fakeVoterRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	for _, v := range r.voters {
		if v.ID == id {
			now := time.Now()
			v.DeletedAt = &now
		}
	}
	return nil
}

func (r *fakeVoterRepo) CreateField(_ context.Context, field *domain.VoterField) error {
	r.fields = append(r.fields, field)
	return nil
}

func (r *fakeVoterRepo) ListFields(_ context.Context, electionID uuid.UUID) ([]*domain.VoterField, error) {
	var fields []*domain.VoterField
	for _, f := range r.fields {
		if f.ElectionID == electionID {
			fields = append(fields, f)
		}
	}
	return fields, nil
}

type fakeVoteRepo struct {
	rows  []*domain.Vote
	voted map[uuid.UUID]bool
}

func newFakeVoteRepo() *fakeVoteRepo {
	return &fakeVoteRepo{voted: make(map[uuid.UUID]bool)}
}

func (r *fakeVoteRepo) HasVoted(_ context.Context, _ uuid.UUID, voterID uuid.UUID) (bool, error) {
	return r.voted[voterID], nil
}

func (r *fakeVoteRepo) CastBallot(_ context.Context, _ uuid.UUID, voterID uuid.UUID, rows []*domain.Vote) error {
	if r.voted[voterID] {
		return domain.ErrAlreadyVoted
	}
	r.voted[voterID] = true
	r.rows = append(r.rows, rows...)
	return nil
}

type fakeResultRepo struct {
	candidateCounts map[uuid.UUID]int64
	abstainCounts   map[uuid.UUID]int64
	lastCutoff      *time.Time
	snapshots       map[uuid.UUID]*domain.ElectionResults
	ended           []*domain.Election
}

func newFakeResultRepo() *fakeResultRepo {
	return &fakeResultRepo{
		candidateCounts: make(map[uuid.UUID]int64),
		abstainCounts:   make(map[uuid.UUID]int64),
		snapshots:       make(map[uuid.UUID]*domain.ElectionResults),
	}
}

func (r *fakeResultRepo) CandidateVoteCounts(_ context.Context, _ uuid.UUID, cutoff *time.Time) (map[uuid.UUID]int64, error) {
	r.lastCutoff = cutoff
	return r.candidateCounts, nil
}

func (r *fakeResultRepo) AbstainCounts(_ context.Context, _ uuid.UUID, cutoff *time.Time) (map[uuid.UUID]int64, error) {
	return r.abstainCounts, nil
}

func (r *fakeResultRepo) SaveSnapshot(_ context.Context, electionID uuid.UUID, results *domain.ElectionResults) error {
	r.snapshots[electionID] = results
	return nil
}

func (r *fakeResultRepo) HasSnapshot(_ context.Context, electionID uuid.UUID) (bool, error) {
	_, ok := r.snapshots[electionID]
	return ok, nil
}

func (r *fakeResultRepo) ListEndedWithoutSnapshot(_ context.Context, _ time.Time) ([]*domain.Election, error) {
	var elections []*domain.Election
	for _, e := range r.ended {
		if _, ok := r.snapshots[e.ID]; !ok {
			elections = append(elections, e)
		}
	}
	return elections, nil
}

type fakeUserRepo struct {
	users map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	return r.users[email], nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID.String() == id {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	r.users[user.Email] = user
	return nil
}

type fakeMailer struct {
	receipts chan ports.VoteReceipt
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{receipts: make(chan ports.VoteReceipt, 1)}
}

func (m *fakeMailer) SendVoteReceipt(_ context.Context, receipt ports.VoteReceipt) error {
	m.receipts <- receipt
	return nil
}
