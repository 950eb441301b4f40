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

type voterFixture struct {
	electionRepo *fakeElectionRepo
	voterRepo    *fakeVoterRepo

	election *domain.Election
	creator  uuid.UUID
}

func newVoterFixture(t *testing.T) *voterFixture {
	t.Helper()

	f := &voterFixture{
		electionRepo: newFakeElectionRepo(),
		voterRepo:    newFakeVoterRepo(),
	}

	f.creator = uuid.New()
	f.election = &domain.Election{
		ID:        uuid.New(),
		Slug:      "sk-2026",
		Name:      "SK 2026",
		StartDate: time.Now().Add(24 * time.Hour),
		EndDate:   time.Now().Add(48 * time.Hour),
	}
	f.electionRepo.elections[f.election.ID] = f.election
	f.electionRepo.slugs[f.election.Slug] = f.election.ID

	commissioner := &domain.Commissioner{ID: uuid.New(), ElectionID: f.election.ID, UserID: f.creator, IsCreator: true}
	f.electionRepo.commissioners[commissioner.ID] = commissioner

	return f
}

func (f *voterFixture) service() ports.VoterService {
	return NewVoterService(f.electionRepo, f.voterRepo)
}

func TestAddVoterNormalizesEmail(t *testing.T) {
	f := newVoterFixture(t)

	voter, err := f.service().Add(context.Background(), f.election.ID, f.creator, ports.AddVoterInput{Email: " Voter@Example.COM "})
	require.NoError(t, err)
	assert.Equal(t, "voter@example.com", voter.Email)
}

func TestAddVoterInvalidEmail(t *testing.T) {
	f := newVoterFixture(t)
	svc := f.service()

	for _, email := range []string{"", "   ", "not-an-email"} {
		_, err := svc.Add(context.Background(), f.election.ID, f.creator, ports.AddVoterInput{Email: email})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "email %q", email)
	}
}

func TestAddVoterDuplicateEmail(t *testing.T) {
	f := newVoterFixture(t)
	svc := f.service()

	_, err := svc.Add(context.Background(), f.election.ID, f.creator, ports.AddVoterInput{Email: "voter@example.com"})
	require.NoError(t, err)

	_, err = svc.Add(context.Background(), f.election.ID, f.creator, ports.AddVoterInput{Email: "VOTER@example.com"})
	assert.ErrorIs(t, err, domain.ErrVoterExists)
}

func TestAddVoterRequiresCommissioner(t *testing.T) {
	f := newVoterFixture(t)

	_, err := f.service().Add(context.Background(), f.election.ID, uuid.New(), ports.AddVoterInput{Email: "voter@example.com"})
	assert.ErrorIs(t, err, domain.ErrNotACommissioner)
}

func TestEditVoter(t *testing.T) {
	f := newVoterFixture(t)
	svc := f.service()

	fieldID := uuid.New().String()
	voter, err := svc.Add(context.Background(), f.election.ID, f.creator, ports.AddVoterInput{
		Email: "voter@example.com",
		Field: map[string]string{fieldID: "Engineering"},
	})
	require.NoError(t, err)

	updated, err := svc.Edit(context.Background(), f.election.ID, f.creator, voter.ID, ports.AddVoterInput{
		Email: "Renamed@Example.com",
		Field: map[string]string{fieldID: "Law"},
	})
	require.NoError(t, err)
	assert.Equal(t, "renamed@example.com", updated.Email)
	assert.Equal(t, "Law", updated.Field[fieldID])
}

func TestEditVoterDuplicateEmail(t *testing.T) {
	f := newVoterFixture(t)
	svc := f.service()

	first, err := svc.Add(context.Background(), f.election.ID, f.creator, ports.AddVoterInput{Email: "first@example.com"})
	require.NoError(t, err)
	_, err = svc.Add(context.Background(), f.election.ID, f.creator, ports.AddVoterInput{Email: "second@example.com"})
	require.NoError(t, err)

	_, err = svc.Edit(context.Background(), f.election.ID, f.creator, first.ID, ports.AddVoterInput{Email: "second@example.com"})
	assert.ErrorIs(t, err, domain.ErrVoterExists)

	// Keeping the same email is not a conflict.
	_, err = svc.Edit(context.Background(), f.election.ID, f.creator, first.ID, ports.AddVoterInput{Email: "FIRST@example.com"})
	assert.NoError(t, err)
}

func TestRemoveVoterScopedToElection(t *testing.T) {
	f := newVoterFixture(t)
	svc := f.service()

	stray := &domain.Voter{ID: uuid.New(), ElectionID: uuid.New(), Email: "stray@example.com"}
	f.voterRepo.voters = append(f.voterRepo.voters, stray)

	err := svc.Remove(context.Background(), f.election.ID, f.creator, stray.ID)
	assert.ErrorIs(t, err, domain.ErrVoterNotFound)

	voter, err := svc.Add(context.Background(), f.election.ID, f.creator, ports.AddVoterInput{Email: "voter@example.com"})
	require.NoError(t, err)

	require.NoError(t, svc.Remove(context.Background(), f.election.ID, f.creator, voter.ID))
	_, err = f.voterRepo.GetByID(context.Background(), voter.ID)
	assert.ErrorIs(t, err, domain.ErrVoterNotFound)
}

func TestListVotersWithStatus(t *testing.T) {
	f := newVoterFixture(t)
	svc := f.service()

	voted, err := svc.Add(context.Background(), f.election.ID, f.creator, ports.AddVoterInput{Email: "voted@example.com"})
	require.NoError(t, err)
	_, err = svc.Add(context.Background(), f.election.ID, f.creator, ports.AddVoterInput{Email: "pending@example.com"})
	require.NoError(t, err)
	f.voterRepo.voted[voted.ID] = true

	voters, err := svc.List(context.Background(), f.election.ID, f.creator)
	require.NoError(t, err)
	require.Len(t, voters, 2)

	byEmail := map[string]bool{}
	for _, v := range voters {
		byEmail[v.Email] = v.HasVoted
	}
	assert.True(t, byEmail["voted@example.com"])
	assert.False(t, byEmail["pending@example.com"])
}

func TestCreateVoterField(t *testing.T) {
	f := newVoterFixture(t)
	svc := f.service()

	field, err := svc.CreateField(context.Background(), f.election.ID, f.creator, "  College  ")
	require.NoError(t, err)
	assert.Equal(t, "College", field.Name)

	_, err = svc.CreateField(context.Background(), f.election.ID, f.creator, "   ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
