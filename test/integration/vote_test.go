package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eboto-mo/eboto-api/internal/core/domain"
)

func createPosition(t *testing.T, app *TestApp, token string, electionID uuid.UUID, name string, maxSelections int) domain.Position {
	t.Helper()

	body, _ := json.Marshal(map[string]interface{}{"name": name, "max_selections": maxSelections})
	resp := app.doJSON(t, "POST", fmt.Sprintf("/api/elections/%s/positions", electionID), token, body)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var position domain.Position
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&position))
	return position
}

func createCandidate(t *testing.T, app *TestApp, token string, electionID, positionID uuid.UUID, firstName, lastName string) domain.Candidate {
	t.Helper()

	body, _ := json.Marshal(map[string]interface{}{
		"position_id": positionID,
		"first_name":  firstName,
		"last_name":   lastName,
	})
	resp := app.doJSON(t, "POST", fmt.Sprintf("/api/elections/%s/candidates", electionID), token, body)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var candidate domain.Candidate
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&candidate))
	return candidate
}

func addVoter(t *testing.T, app *TestApp, token string, electionID uuid.UUID, email string) domain.Voter {
	t.Helper()

	body, _ := json.Marshal(map[string]string{"email": email})
	resp := app.doJSON(t, "POST", fmt.Sprintf("/api/elections/%s/voters", electionID), token, body)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var voter domain.Voter
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&voter))
	return voter
}

func ongoingElectionPayload(slug string) map[string]interface{} {
	payload := createElectionPayload(slug)
	payload["start_date"] = time.Now().Add(-24 * time.Hour).Format(time.RFC3339)
	payload["end_date"] = time.Now().Add(24 * time.Hour).Format(time.RFC3339)
	return payload
}

func TestCastBallotRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	adminToken := createUserAndToken(t, app.DB, "")
	election := createElection(t, app, adminToken, ongoingElectionPayload("cast-2026"))
	base := fmt.Sprintf("/api/elections/%s", election.ID)

	president := createPosition(t, app, adminToken, election.ID, "President", 1)
	senator := createPosition(t, app, adminToken, election.ID, "Senator", 2)
	createCandidate(t, app, adminToken, election.ID, president.ID, "Alice", "Reyes")
	bob := createCandidate(t, app, adminToken, election.ID, senator.ID, "Bob", "Cruz")
	carol := createCandidate(t, app, adminToken, election.ID, senator.ID, "Carol", "Santos")

	voter := addVoter(t, app, adminToken, election.ID, "voter@example.com")
	voterToken := createUserAndToken(t, app.DB, "voter@example.com")

	ballot, _ := json.Marshal(map[string]interface{}{
		"selections": []map[string]interface{}{
			{"position_id": president.ID, "abstain": true},
			{"position_id": senator.ID, "candidate_ids": []uuid.UUID{bob.ID, carol.ID}},
		},
	})
	resp := app.doJSON(t, "POST", base+"/votes", voterToken, ballot)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// One row per selection: the abstain row has only the position set.
	var rows, abstains int
	require.NoError(t, app.DB.QueryRow("SELECT COUNT(*) FROM votes WHERE election_id=$1 AND voter_id=$2", election.ID, voter.ID).Scan(&rows))
	assert.Equal(t, 3, rows)
	require.NoError(t, app.DB.QueryRow("SELECT COUNT(*) FROM votes WHERE election_id=$1 AND position_id=$2 AND candidate_id IS NULL", election.ID, president.ID).Scan(&abstains))
	assert.Equal(t, 1, abstains)

	// The roster reflects the cast ballot.
	resp = app.doJSON(t, "GET", base+"/voters", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var voters []domain.VoterWithStatus
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&voters))
	resp.Body.Close()
	require.Len(t, voters, 1)
	assert.True(t, voters[0].HasVoted)

	// Ballots are one-shot.
	resp = app.doJSON(t, "POST", base+"/votes", voterToken, ballot)
	resp.Body.Close()
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	var total int
	require.NoError(t, app.DB.QueryRow("SELECT COUNT(*) FROM votes WHERE election_id=$1", election.ID).Scan(&total))
	assert.Equal(t, 3, total)
}

func TestCastBallotRejections(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	adminToken := createUserAndToken(t, app.DB, "")
	election := createElection(t, app, adminToken, ongoingElectionPayload("reject-2026"))
	base := fmt.Sprintf("/api/elections/%s", election.ID)

	president := createPosition(t, app, adminToken, election.ID, "President", 1)
	alice := createCandidate(t, app, adminToken, election.ID, president.ID, "Alice", "Reyes")
	addVoter(t, app, adminToken, election.ID, "voter@example.com")

	ballot, _ := json.Marshal(map[string]interface{}{
		"selections": []map[string]interface{}{
			{"position_id": president.ID, "candidate_ids": []uuid.UUID{alice.ID}},
		},
	})

	// Not on the roster.
	strangerToken := createUserAndToken(t, app.DB, "stranger@example.com")
	resp := app.doJSON(t, "POST", base+"/votes", strangerToken, ballot)
	resp.Body.Close()
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	// No session at all.
	resp = app.doJSON(t, "POST", base+"/votes", "", ballot)
	resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// An empty ballot is rejected before touching the database.
	voterToken := createUserAndToken(t, app.DB, "voter@example.com")
	empty, _ := json.Marshal(map[string]interface{}{"selections": []map[string]interface{}{}})
	resp = app.doJSON(t, "POST", base+"/votes", voterToken, empty)
	resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var total int
	require.NoError(t, app.DB.QueryRow("SELECT COUNT(*) FROM votes WHERE election_id=$1", election.ID).Scan(&total))
	assert.Equal(t, 0, total)
}

func TestCastBallotClosedElection(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	adminToken := createUserAndToken(t, app.DB, "")
	payload := createElectionPayload("closed-2026")
	payload["start_date"] = time.Now().Add(-72 * time.Hour).Format(time.RFC3339)
	payload["end_date"] = time.Now().Add(-24 * time.Hour).Format(time.RFC3339)
	election := createElection(t, app, adminToken, payload)

	president := createPosition(t, app, adminToken, election.ID, "President", 1)
	addVoter(t, app, adminToken, election.ID, "voter@example.com")
	voterToken := createUserAndToken(t, app.DB, "voter@example.com")

	ballot, _ := json.Marshal(map[string]interface{}{
		"selections": []map[string]interface{}{
			{"position_id": president.ID, "abstain": true},
		},
	})
	resp := app.doJSON(t, "POST", fmt.Sprintf("/api/elections/%s/votes", election.ID), voterToken, ballot)
	resp.Body.Close()
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}
