package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/eboto-mo/eboto-api/internal/core/domain"
	"github.com/eboto-mo/eboto-api/internal/core/ports"
)

type ElectionHandler struct {
	service ports.ElectionService
}

func NewElectionHandler(service ports.ElectionService) *ElectionHandler {
	return &ElectionHandler{
		service: service,
	}
}

type createElectionRequest struct {
	Slug                          string    `json:"slug"`
	Name                          string    `json:"name"`
	Description                   string    `json:"description"`
	StartDate                     time.Time `json:"start_date"`
	EndDate                       time.Time `json:"end_date"`
	VotingHourStart               *int      `json:"voting_hour_start"`
	VotingHourEnd                 *int      `json:"voting_hour_end"`
	Publicity                     string    `json:"publicity"`
	NameArrangement               string    `json:"name_arrangement"`
	IsCandidatesVisibleInRealtime bool      `json:"is_candidates_visible_in_realtime"`
	IsFree                        bool      `json:"is_free"`
}

// CreateElection godoc
// @Summary      Creates an election
// @Description  Creates an election with its independent partylist, registering the caller as creator commissioner
// @Tags         elections
// @Accept       json
// @Produce      json
// @Success      201
// @Failure      400
// @Failure      409
// @Router       /elections [post]
func (h *ElectionHandler) CreateElection(w http.ResponseWriter, r *http.Request) {
	caller := callerFromContext(r.Context())
	if caller == nil {
		http.Error(w, "Unauthorized: missing user context", http.StatusUnauthorized)
		return
	}

	var req createElectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	input := ports.CreateElectionInput{
		Slug:                          req.Slug,
		Name:                          req.Name,
		Description:                   req.Description,
		StartDate:                     req.StartDate,
		EndDate:                       req.EndDate,
		VotingHourStart:               req.VotingHourStart,
		VotingHourEnd:                 req.VotingHourEnd,
		Publicity:                     domain.Publicity(req.Publicity),
		NameArrangement:               domain.NameArrangement(req.NameArrangement),
		IsCandidatesVisibleInRealtime: req.IsCandidatesVisibleInRealtime,
		IsFree:                        req.IsFree,
	}

	election, err := h.service.Create(r.Context(), caller.ID, input)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, election)
}

// GetElection godoc
// @Summary      Gets the election page
// @Description  Returns the election with its ballot, gated by the election's publicity
// @Tags         elections
// @Produce      json
// @Success      200
// @Failure      404
// @Router       /elections/{slug} [get]
func (h *ElectionHandler) GetElection(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if slug == "" {
		http.Error(w, "missing election slug", http.StatusBadRequest)
		return
	}

	page, err := h.service.GetPage(r.Context(), slug, callerFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

func (h *ElectionHandler) DeleteElection(w http.ResponseWriter, r *http.Request) {
	caller, electionID, ok := callerAndElectionID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), electionID, caller.ID); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ElectionHandler) MyElections(w http.ResponseWriter, r *http.Request) {
	caller := callerFromContext(r.Context())
	if caller == nil {
		http.Error(w, "Unauthorized: missing user context", http.StatusUnauthorized)
		return
	}

	elections, err := h.service.MyElections(r.Context(), caller.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, elections)
}

type addCommissionerRequest struct {
	Email string `json:"email"`
}

func (h *ElectionHandler) AddCommissioner(w http.ResponseWriter, r *http.Request) {
	caller, electionID, ok := callerAndElectionID(w, r)
	if !ok {
		return
	}

	var req addCommissionerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	commissioner, err := h.service.AddCommissioner(r.Context(), electionID, caller.ID, req.Email)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, commissioner)
}

func (h *ElectionHandler) RemoveCommissioner(w http.ResponseWriter, r *http.Request) {
	caller, electionID, ok := callerAndElectionID(w, r)
	if !ok {
		return
	}

	commissionerID, err := uuid.Parse(chi.URLParam(r, "commissionerID"))
	if err != nil {
		http.Error(w, "invalid commissioner id", http.StatusBadRequest)
		return
	}

	if err := h.service.RemoveCommissioner(r.Context(), electionID, caller.ID, commissionerID); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// callerAndElectionID pulls the authenticated caller and the {id} route param
// shared by every commissioner-gated route.
func callerAndElectionID(w http.ResponseWriter, r *http.Request) (*ports.AuthenticatedUser, uuid.UUID, bool) {
	caller := callerFromContext(r.Context())
	if caller == nil {
		http.Error(w, "Unauthorized: missing user context", http.StatusUnauthorized)
		return nil, uuid.Nil, false
	}

	electionID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid election id", http.StatusBadRequest)
		return nil, uuid.Nil, false
	}

	return caller, electionID, true
}
