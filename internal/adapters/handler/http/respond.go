package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/eboto-mo/eboto-api/internal/core/domain"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

// writeServiceError maps domain sentinels to HTTP statuses. Visibility
// failures answer 404 so private elections are indistinguishable from absent
// ones.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidBallot),
		errors.Is(err, domain.ErrReservedAcronym):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, domain.ErrElectionNotOngoing),
		errors.Is(err, domain.ErrNotAVoter),
		errors.Is(err, domain.ErrNotACommissioner),
		errors.Is(err, domain.ErrNotTheCreator),
		errors.Is(err, domain.ErrCannotRemoveCreator):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, domain.ErrElectionNotFound),
		errors.Is(err, domain.ErrElectionNotVisible),
		errors.Is(err, domain.ErrPositionNotFound),
		errors.Is(err, domain.ErrCandidateNotFound),
		errors.Is(err, domain.ErrPartylistNotFound),
		errors.Is(err, domain.ErrVoterNotFound),
		errors.Is(err, domain.ErrCommissionerNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrAlreadyVoted),
		errors.Is(err, domain.ErrSlugTaken),
		errors.Is(err, domain.ErrVoterExists),
		errors.Is(err, domain.ErrCommissionerExists),
		errors.Is(err, domain.ErrPartylistExists):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		// Unexpected errors carry wrapped driver details; keep those out of
		// the response body.
		http.Error(w, domain.ErrInternal.Error(), http.StatusInternalServerError)
	}
}
