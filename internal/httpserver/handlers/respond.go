package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hoardapp/hoard/internal/bookmarks"
	"github.com/hoardapp/hoard/internal/domain"
	"github.com/hoardapp/hoard/internal/storage"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps engine errors onto HTTP status codes:
// validation 422, not found 404, lifecycle policy conflicts 409,
// purge guard 400, unknown root 400, everything else 500.
func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, errStatus(err), errorResponse{Error: err.Error()})
}

func errStatus(err error) int {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, bookmarks.ErrAlreadyDeleted),
		errors.Is(err, bookmarks.ErrNotDeleted):
		return http.StatusConflict
	case errors.Is(err, bookmarks.ErrPurgeNotAllowed):
		return http.StatusBadRequest
	case errors.Is(err, storage.ErrRootNotFound):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
