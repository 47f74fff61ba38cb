package httpapi

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"jobpilot-engine/internal/domain"
	"jobpilot-engine/internal/events"
	"jobpilot-engine/internal/store"
)

type FavoritesHandler struct {
	DB  *sql.DB
	Hub *events.Hub
}

func (h FavoritesHandler) List(w http.ResponseWriter, r *http.Request) {
	favs, err := store.ListFavorites(r.Context(), h.DB)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", "could not list favorites")
		return
	}
	writeJSON(w, favs)
}

func (h FavoritesHandler) Save(w http.ResponseWriter, r *http.Request) {
	var job domain.JobPosting
	if err := json.NewDecoder(r.Body).Decode(&job); err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_request", "invalid json")
		return
	}
	if strings.TrimSpace(job.Title) == "" || strings.TrimSpace(job.Company) == "" {
		WriteError(w, r, http.StatusBadRequest, "bad_request", "title and company are required")
		return
	}

	id, err := store.SaveFavorite(r.Context(), h.DB, job)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", "could not save favorite")
		return
	}
	if id > 0 && h.Hub != nil {
		h.Hub.Publish(events.MakeEvent(RequestIDFrom(r.Context()), events.TypeFavoriteSaved, 1,
			map[string]any{"id": id}))
	}
	writeJSON(w, map[string]any{"ok": true, "id": id, "alreadySaved": id == 0})
}

func (h FavoritesHandler) DeleteByPath(w http.ResponseWriter, r *http.Request) {
	idStr := strings.TrimPrefix(r.URL.Path, "/favorites/")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		WriteError(w, r, http.StatusBadRequest, "bad_request", "invalid id")
		return
	}
	if err := store.DeleteFavorite(r.Context(), h.DB, id); err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", "could not delete favorite")
		return
	}
	writeJSON(w, map[string]any{"ok": true, "id": id})
}

type SearchesHandler struct {
	DB *sql.DB
}

func (h SearchesHandler) Recent(w http.ResponseWriter, r *http.Request) {
	limit := intParam(r.URL.Query().Get("limit"), 20)
	recs, err := store.RecentSearches(r.Context(), h.DB, limit)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", "could not list searches")
		return
	}
	writeJSON(w, recs)
}
