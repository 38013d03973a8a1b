package handlers

import (
	"net/http"

	"github.com/hoardapp/hoard/internal/httpserver/deps"
	"github.com/hoardapp/hoard/internal/logger"
)

type reloadResponse struct {
	Triggered bool   `json:"triggered"`
	Message   string `json:"message"`
}

// Reload triggers a manual rescan of all storage roots.
func Reload(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		select {
		case d.RescanTrigger <- struct{}{}:
			d.Logger.Info("manual rescan triggered via endpoint",
				logger.String("remote_ip", r.RemoteAddr))
			writeJSON(w, http.StatusAccepted, reloadResponse{
				Triggered: true,
				Message:   "rescan triggered",
			})
		default:
			d.Logger.Warn("rescan already in progress",
				logger.String("remote_ip", r.RemoteAddr))
			writeJSON(w, http.StatusTooManyRequests, reloadResponse{
				Triggered: false,
				Message:   "rescan already in progress, please wait",
			})
		}
	}
}
