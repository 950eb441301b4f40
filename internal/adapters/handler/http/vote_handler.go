package http

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/eboto-mo/eboto-api/internal/core/ports"
)

type VoteHandler struct {
	service ports.VoteService
}

func NewVoteHandler(service ports.VoteService) *VoteHandler {
	return &VoteHandler{
		service: service,
	}
}

type ballotSelectionRequest struct {
	PositionID   uuid.UUID   `json:"position_id"`
	Abstain      bool        `json:"abstain"`
	CandidateIDs []uuid.UUID `json:"candidate_ids"`
}

type castBallotRequest struct {
	Selections []ballotSelectionRequest `json:"selections"`
}

// CastBallot godoc
// @Summary      Casts a ballot
// @Description  Records the caller's complete ballot for an ongoing election. One ballot per voter.
// @Tags         votes
// @Accept       json
// @Success      201
// @Failure      400
// @Failure      403
// @Failure      409
// @Router       /elections/{id}/votes [post]
func (h *VoteHandler) CastBallot(w http.ResponseWriter, r *http.Request) {
	caller, electionID, ok := callerAndElectionID(w, r)
	if !ok {
		return
	}

	var req castBallotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	input := ports.CastBallotInput{
		ElectionID: electionID,
		Caller:     *caller,
	}
	for _, sel := range req.Selections {
		input.Selections = append(input.Selections, ports.BallotSelection{
			PositionID:   sel.PositionID,
			Abstain:      sel.Abstain,
			CandidateIDs: sel.CandidateIDs,
		})
	}

	if err := h.service.CastBallot(r.Context(), input); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}
