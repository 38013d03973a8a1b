package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/hoardapp/hoard/internal/httpserver/deps"
	"github.com/hoardapp/hoard/internal/httpserver/handlers"
)

func init() { Register(registerStorages) }

func registerStorages(r chi.Router, d deps.Deps) {
	r.Get("/storages", handlers.ListStorages(d))
	r.Get("/storages/{name}/stats", handlers.StorageStats(d))
	r.Get("/conflicts", handlers.Conflicts(d))
}
