package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/hoardapp/hoard/internal/httpserver/deps"
	"github.com/hoardapp/hoard/internal/httpserver/handlers"
)

func init() { Register(registerBookmarks) }

func registerBookmarks(r chi.Router, d deps.Deps) {
	r.Route("/bookmarks", func(r chi.Router) {
		r.Post("/", handlers.CreateBookmark(d))
		r.Get("/", handlers.ListBookmarks(d))
		r.Get("/{id}", handlers.GetBookmark(d))
		r.Put("/{id}", handlers.UpdateBookmark(d))
		r.Delete("/{id}", handlers.DeleteBookmark(d))
		r.Post("/{id}/restore", handlers.RestoreBookmark(d))
		r.Post("/{id}/access", handlers.TrackBookmarkAccess(d))
	})
}
