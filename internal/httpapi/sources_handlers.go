package httpapi

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"jobpilot-engine/internal/store"
)

type SourcesHandler struct {
	DB *sql.DB
}

func (h SourcesHandler) List(w http.ResponseWriter, r *http.Request) {
	sources, err := store.ListSources(r.Context(), h.DB)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", "could not list sources")
		return
	}
	writeJSON(w, sources)
}

// UpdateByPath handles PUT /sources/{name}: active flag, per-minute rate
// and weight. The source name itself is fixed by the registered fetchers.
func (h SourcesHandler) UpdateByPath(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/sources/")
	if name == "" || strings.Contains(name, "/") {
		WriteError(w, r, http.StatusBadRequest, "bad_request", "invalid source name")
		return
	}

	var req struct {
		Active     *bool `json:"active"`
		RatePerMin *int  `json:"ratePerMin"`
		Weight     *int  `json:"weight"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_request", "invalid json")
		return
	}

	sources, err := store.ListSources(r.Context(), h.DB)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", "could not load source")
		return
	}

	var cur *store.SourceSetting
	for i := range sources {
		if sources[i].Name == name {
			cur = &sources[i]
			break
		}
	}
	if cur == nil {
		WriteError(w, r, http.StatusNotFound, "not_found", "unknown source")
		return
	}

	if req.Active != nil {
		cur.Active = *req.Active
	}
	if req.RatePerMin != nil && *req.RatePerMin >= 0 {
		cur.RatePerMin = *req.RatePerMin
	}
	if req.Weight != nil && *req.Weight >= 0 {
		cur.Weight = *req.Weight
	}

	if err := store.UpdateSource(r.Context(), h.DB, *cur); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteError(w, r, http.StatusNotFound, "not_found", "unknown source")
			return
		}
		WriteError(w, r, http.StatusInternalServerError, "db_error", "could not update source")
		return
	}
	writeJSON(w, cur)
}
