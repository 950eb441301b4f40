package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/eboto-mo/eboto-api/internal/core/ports"
)

type ResultHandler struct {
	service ports.ResultService
}

func NewResultHandler(service ports.ResultService) *ResultHandler {
	return &ResultHandler{
		service: service,
	}
}

// GetRealtimeResults godoc
// @Summary      Gets realtime election results
// @Description  Returns the current tabulation, anonymized while the election hides candidates and lagged for free-tier elections
// @Tags         results
// @Produce      json
// @Success      200
// @Failure      404
// @Router       /elections/{slug}/realtime [get]
func (h *ResultHandler) GetRealtimeResults(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if slug == "" {
		http.Error(w, "missing election slug", http.StatusBadRequest)
		return
	}

	results, err := h.service.GetRealtimeResults(r.Context(), slug)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, results)
}

func (h *ResultHandler) GetVoterFieldStats(w http.ResponseWriter, r *http.Request) {
	caller, electionID, ok := callerAndElectionID(w, r)
	if !ok {
		return
	}

	stats, err := h.service.GetVoterFieldStats(r.Context(), electionID, caller.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
