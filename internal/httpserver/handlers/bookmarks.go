package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hoardapp/hoard/internal/bookmarks"
	"github.com/hoardapp/hoard/internal/domain"
	"github.com/hoardapp/hoard/internal/httpserver/deps"
	"github.com/hoardapp/hoard/internal/storage"
)

type createBookmarkRequest struct {
	URL         string   `json:"url"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
	Tags        []string `json:"tags"`
	FolderPath  string   `json:"folder_path"`
	Storage     string   `json:"storage"`
}

type updateBookmarkRequest struct {
	URL         *string  `json:"url"`
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	FolderPath  *string  `json:"folder_path"`
	Keywords    []string `json:"keywords"`
	Tags        []string `json:"tags"`
}

type listBookmarksResponse struct {
	Bookmarks []*domain.Bookmark `json:"bookmarks"`
	Total     int                `json:"total"`
}

// CreateBookmark handles POST /bookmarks.
func CreateBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createBookmarkRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
			return
		}

		b, err := d.Bookmarks.Create(bookmarks.CreateInput{
			URL:         req.URL,
			Title:       req.Title,
			Description: req.Description,
			Keywords:    req.Keywords,
			Tags:        req.Tags,
			FolderPath:  req.FolderPath,
			Storage:     req.Storage,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, b)
	}
}

// ListBookmarks handles GET /bookmarks with storage, include_deleted and
// folder query filters.
func ListBookmarks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		filter := storage.ListFilter{
			IncludeDeleted: q.Get("include_deleted") == "true",
		}
		if q.Has("folder") {
			folder := q.Get("folder")
			filter.Folder = &folder
		}

		list, err := d.Bookmarks.List(q.Get("storage"), filter)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, listBookmarksResponse{
			Bookmarks: list,
			Total:     len(list),
		})
	}
}

// GetBookmark handles GET /bookmarks/{id}.
func GetBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := d.Bookmarks.Get(chi.URLParam(r, "id"), r.URL.Query().Get("storage"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, b)
	}
}

// UpdateBookmark handles PUT /bookmarks/{id}.
func UpdateBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateBookmarkRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
			return
		}

		b, err := d.Bookmarks.Update(chi.URLParam(r, "id"), r.URL.Query().Get("storage"),
			bookmarks.UpdateInput{
				URL:         req.URL,
				Title:       req.Title,
				Description: req.Description,
				FolderPath:  req.FolderPath,
				Keywords:    req.Keywords,
				Tags:        req.Tags,
			})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, b)
	}
}

// DeleteBookmark handles DELETE /bookmarks/{id}. By default it
// soft-deletes; ?permanent=true purges a previously soft-deleted
// bookmark for good.
func DeleteBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		rootName := r.URL.Query().Get("storage")

		if r.URL.Query().Get("permanent") == "true" {
			if err := d.Bookmarks.Purge(id, rootName); err != nil {
				writeError(w, err)
				return
			}
			w.WriteHeader(http.StatusNoContent)
			return
		}

		b, err := d.Bookmarks.Delete(id, rootName)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, b)
	}
}

// RestoreBookmark handles POST /bookmarks/{id}/restore.
func RestoreBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := d.Bookmarks.Restore(chi.URLParam(r, "id"), r.URL.Query().Get("storage"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, b)
	}
}

// TrackBookmarkAccess handles POST /bookmarks/{id}/access.
func TrackBookmarkAccess(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := d.Bookmarks.TrackAccess(chi.URLParam(r, "id"), r.URL.Query().Get("storage"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, b)
	}
}
