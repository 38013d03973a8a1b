package handlers

import (
	"net/http"

	"github.com/hoardapp/hoard/internal/httpserver/deps"
)

type readyzResponse struct {
	Ready    bool     `json:"ready"`
	Storages []string `json:"storages"`
}

// Readyz reports readiness: the service is ready once the storage
// manager holds at least one loaded root.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		names := d.Storage.RootNames()
		status := http.StatusOK
		if len(names) == 0 {
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, readyzResponse{
			Ready:    len(names) > 0,
			Storages: names,
		})
	}
}
