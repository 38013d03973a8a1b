package handlers

import (
	"net/http"

	"github.com/hoardapp/hoard/internal/httpserver/deps"
)

type componentStatus struct {
	OK        bool   `json:"ok"`
	Bookmarks *int   `json:"bookmarks,omitempty"`
	Errors    int    `json:"errors,omitempty"`
	Conflicts int    `json:"conflicts,omitempty"`
	Impact    string `json:"impact,omitempty"`
	Error     string `json:"error,omitempty"`
}

type infraResponse struct {
	Mode       string                     `json:"mode"`
	Components map[string]componentStatus `json:"components"`
}

// Infra reports per-storage health: index sizes, load errors and
// conflict counts, condensed into an overall mode.
func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		components := make(map[string]componentStatus)

		for _, name := range d.Storage.RootNames() {
			stats, err := d.Storage.Stats(name)
			if err != nil {
				components[name] = componentStatus{
					OK:     false,
					Impact: "storage-unavailable",
					Error:  err.Error(),
				}
				continue
			}

			status := componentStatus{
				OK:        true,
				Bookmarks: &stats.Total,
				Errors:    stats.Errors,
				Conflicts: stats.Conflicts,
			}
			if stats.Errors > 0 {
				status.Impact = "some-records-unreadable"
			}
			components[name] = status
		}

		writeJSON(w, http.StatusOK, infraResponse{
			Mode:       determineMode(components),
			Components: components,
		})
	}
}

func determineMode(components map[string]componentStatus) string {
	if len(components) == 0 {
		return "critical"
	}

	healthy := 0
	degraded := false
	for _, c := range components {
		if !c.OK {
			continue
		}
		healthy++
		if c.Errors > 0 || c.Conflicts > 0 {
			degraded = true
		}
	}

	switch {
	case healthy == 0:
		return "critical"
	case healthy < len(components) || degraded:
		return "degraded"
	default:
		return "ok"
	}
}
