package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/eboto-mo/eboto-api/internal/core/ports"
)

type VoterHandler struct {
	service ports.VoterService
}

func NewVoterHandler(service ports.VoterService) *VoterHandler {
	return &VoterHandler{
		service: service,
	}
}

type voterRequest struct {
	Email string            `json:"email"`
	Field map[string]string `json:"field"`
}

func (h *VoterHandler) AddVoter(w http.ResponseWriter, r *http.Request) {
	caller, electionID, ok := callerAndElectionID(w, r)
	if !ok {
		return
	}

	var req voterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	voter, err := h.service.Add(r.Context(), electionID, caller.ID, ports.AddVoterInput{
		Email: req.Email,
		Field: req.Field,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, voter)
}

func (h *VoterHandler) EditVoter(w http.ResponseWriter, r *http.Request) {
	caller, electionID, ok := callerAndElectionID(w, r)
	if !ok {
		return
	}

	voterID, err := uuid.Parse(chi.URLParam(r, "voterID"))
	if err != nil {
		http.Error(w, "invalid voter id", http.StatusBadRequest)
		return
	}

	var req voterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	voter, err := h.service.Edit(r.Context(), electionID, caller.ID, voterID, ports.AddVoterInput{
		Email: req.Email,
		Field: req.Field,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, voter)
}

func (h *VoterHandler) RemoveVoter(w http.ResponseWriter, r *http.Request) {
	caller, electionID, ok := callerAndElectionID(w, r)
	if !ok {
		return
	}

	voterID, err := uuid.Parse(chi.URLParam(r, "voterID"))
	if err != nil {
		http.Error(w, "invalid voter id", http.StatusBadRequest)
		return
	}

	if err := h.service.Remove(r.Context(), electionID, caller.ID, voterID); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *VoterHandler) ListVoters(w http.ResponseWriter, r *http.Request) {
	caller, electionID, ok := callerAndElectionID(w, r)
	if !ok {
		return
	}

	voters, err := h.service.List(r.Context(), electionID, caller.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, voters)
}

type createVoterFieldRequest struct {
	Name string `json:"name"`
}

func (h *VoterHandler) CreateVoterField(w http.ResponseWriter, r *http.Request) {
	caller, electionID, ok := callerAndElectionID(w, r)
	if !ok {
		return
	}

	var req createVoterFieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	field, err := h.service.CreateField(r.Context(), electionID, caller.ID, req.Name)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, field)
}
