package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hoardapp/hoard/internal/httpserver/deps"
	"github.com/hoardapp/hoard/internal/storage"
)

type storageInfo struct {
	Name      string `json:"name"`
	Path      string `json:"path"`
	IsCurrent bool   `json:"is_current"`
	IsDefault bool   `json:"is_default"`
}

type listStoragesResponse struct {
	Storages []storageInfo `json:"storages"`
	Current  string        `json:"current"`
}

type storageStatsResponse struct {
	Name  string        `json:"name"`
	Stats storage.Stats `json:"stats"`
}

type conflictsResponse struct {
	Conflicts []string `json:"conflicts"`
}

// ListStorages handles GET /storages.
func ListStorages(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roots := d.Storage.Roots()
		out := make([]storageInfo, 0, len(roots))
		for _, root := range roots {
			out = append(out, storageInfo{
				Name:      root.Name,
				Path:      root.Path,
				IsCurrent: root.IsCurrent,
				IsDefault: root.IsDefault,
			})
		}

		writeJSON(w, http.StatusOK, listStoragesResponse{
			Storages: out,
			Current:  d.Storage.CurrentRootName(),
		})
	}
}

// StorageStats handles GET /storages/{name}/stats.
func StorageStats(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		stats, err := d.Storage.Stats(name)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, storageStatsResponse{Name: name, Stats: stats})
	}
}

// Conflicts handles GET /conflicts, exposing recent duplicate-ID
// resolutions across all storages.
func Conflicts(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conflicts := d.Storage.RecentConflicts(0)
		if conflicts == nil {
			conflicts = []string{}
		}
		writeJSON(w, http.StatusOK, conflictsResponse{Conflicts: conflicts})
	}
}
