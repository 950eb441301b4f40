package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/eboto-mo/eboto-api/internal/core/ports"
)

type RosterHandler struct {
	service ports.RosterService
}

func NewRosterHandler(service ports.RosterService) *RosterHandler {
	return &RosterHandler{
		service: service,
	}
}

type createPositionRequest struct {
	Name          string `json:"name"`
	MaxSelections int    `json:"max_selections"`
}

func (h *RosterHandler) CreatePosition(w http.ResponseWriter, r *http.Request) {
	caller, electionID, ok := callerAndElectionID(w, r)
	if !ok {
		return
	}

	var req createPositionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	position, err := h.service.CreatePosition(r.Context(), electionID, caller.ID, ports.CreatePositionInput{
		Name:          req.Name,
		MaxSelections: req.MaxSelections,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, position)
}

func (h *RosterHandler) DeletePosition(w http.ResponseWriter, r *http.Request) {
	caller, electionID, ok := callerAndElectionID(w, r)
	if !ok {
		return
	}

	positionID, err := uuid.Parse(chi.URLParam(r, "positionID"))
	if err != nil {
		http.Error(w, "invalid position id", http.StatusBadRequest)
		return
	}

	if err := h.service.DeletePosition(r.Context(), electionID, caller.ID, positionID); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type createCandidateRequest struct {
	PositionID  uuid.UUID  `json:"position_id"`
	PartylistID *uuid.UUID `json:"partylist_id"`
	FirstName   string     `json:"first_name"`
	MiddleName  string     `json:"middle_name"`
	LastName    string     `json:"last_name"`
}

func (h *RosterHandler) CreateCandidate(w http.ResponseWriter, r *http.Request) {
	caller, electionID, ok := callerAndElectionID(w, r)
	if !ok {
		return
	}

	var req createCandidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	candidate, err := h.service.CreateCandidate(r.Context(), electionID, caller.ID, ports.CreateCandidateInput{
		PositionID:  req.PositionID,
		PartylistID: req.PartylistID,
		FirstName:   req.FirstName,
		MiddleName:  req.MiddleName,
		LastName:    req.LastName,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, candidate)
}

func (h *RosterHandler) DeleteCandidate(w http.ResponseWriter, r *http.Request) {
	caller, electionID, ok := callerAndElectionID(w, r)
	if !ok {
		return
	}

	candidateID, err := uuid.Parse(chi.URLParam(r, "candidateID"))
	if err != nil {
		http.Error(w, "invalid candidate id", http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteCandidate(r.Context(), electionID, caller.ID, candidateID); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type createPartylistRequest struct {
	Name    string `json:"name"`
	Acronym string `json:"acronym"`
}

func (h *RosterHandler) CreatePartylist(w http.ResponseWriter, r *http.Request) {
	caller, electionID, ok := callerAndElectionID(w, r)
	if !ok {
		return
	}

	var req createPartylistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	partylist, err := h.service.CreatePartylist(r.Context(), electionID, caller.ID, ports.CreatePartylistInput{
		Name:    req.Name,
		Acronym: req.Acronym,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, partylist)
}

func (h *RosterHandler) ListPartylists(w http.ResponseWriter, r *http.Request) {
	caller, electionID, ok := callerAndElectionID(w, r)
	if !ok {
		return
	}

	partylists, err := h.service.ListPartylists(r.Context(), electionID, caller.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, partylists)
}

func (h *RosterHandler) DeletePartylist(w http.ResponseWriter, r *http.Request) {
	caller, electionID, ok := callerAndElectionID(w, r)
	if !ok {
		return
	}

	partylistID, err := uuid.Parse(chi.URLParam(r, "partylistID"))
	if err != nil {
		http.Error(w, "invalid partylist id", http.StatusBadRequest)
		return
	}

	if err := h.service.DeletePartylist(r.Context(), electionID, caller.ID, partylistID); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
