package httpapi

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"

	"jobpilot-engine/internal/aggregate"
	"jobpilot-engine/internal/config"
	"jobpilot-engine/internal/domain"
	"jobpilot-engine/internal/events"
	"jobpilot-engine/internal/paginate"
	"jobpilot-engine/internal/rank"
	"jobpilot-engine/internal/store"
)

type SearchHandler struct {
	DB        *sql.DB
	Hub       *events.Hub
	CfgVal    *atomic.Value // config.Config
	RunSearch func(ctx context.Context, q domain.SearchQuery) (aggregate.Outcome, error)
}

// Search is the whole pipeline behind GET /search: validate, aggregate,
// filter, rank, paginate. Individual source failures never fail the
// request; an invalid query is the only client error.
func (h SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	cfg := h.CfgVal.Load().(config.Config)
	query := parseQuery(r, cfg)

	if !query.Valid() {
		WriteJSON(w, http.StatusBadRequest, FailResponse{
			Message: "Keywords are required",
		})
		return
	}

	out, err := h.RunSearch(r.Context(), query)
	if err != nil {
		// a pipeline fault, not a source failure; keep internals out of
		// the response
		log.Printf("level=error msg=\"search pipeline\" request_id=%s err=%v", RequestIDFrom(r.Context()), err)
		WriteJSON(w, http.StatusInternalServerError, FailResponse{
			Error:   "internal_error",
			Message: "Search failed",
		})
		return
	}

	jobs := rank.Rank(rank.Filter(out.Jobs, query), query.Keywords)
	pg := paginate.Slice(jobs, query.Page, cfg.Search.PageSize, paginate.Totals{
		Available:  out.TotalAvailable,
		Returnable: out.MaxReturnable,
	})

	if h.DB != nil {
		if err := store.LogSearch(r.Context(), h.DB, store.SearchRecord{
			Keywords: query.Keywords,
			Location: query.Location,
			Results:  pg.TotalCount,
			Partial:  out.Partial,
		}); err != nil {
			log.Printf("[search] history log failed: %v", err)
		}
	}
	if h.Hub != nil {
		h.Hub.Publish(events.MakeEvent(RequestIDFrom(r.Context()), events.TypeSearchCompleted, 1,
			map[string]any{"keywords": query.Keywords, "results": pg.TotalCount, "partial": out.Partial}))
	}

	WriteJSON(w, http.StatusOK, SearchResponse{
		Success:               true,
		Jobs:                  pg.Items,
		TotalCount:            pg.TotalCount,
		TotalResultsAvailable: out.TotalAvailable,
		MaxResultsReturnable:  out.MaxReturnable,
		Page:                  pg.Page,
		TotalPages:            pg.TotalPages,
		Partial:               out.Partial,
		Warnings:              out.Warnings,
		Message:               searchMessage(pg.TotalCount, out.Partial),
	})
}

func parseQuery(r *http.Request, cfg config.Config) domain.SearchQuery {
	v := r.URL.Query()

	keywords := strings.TrimSpace(v.Get("q"))
	if keywords == "" {
		keywords = strings.TrimSpace(v.Get("keywords"))
	}

	limit := intParam(v.Get("limit"), cfg.Search.DefaultLimit)
	if limit > cfg.Search.MaxLimit {
		limit = cfg.Search.MaxLimit
	}

	return domain.SearchQuery{
		Keywords:        keywords,
		Location:        strings.TrimSpace(v.Get("location")),
		EmploymentType:  strings.TrimSpace(v.Get("employmentType")),
		ExperienceLevel: strings.TrimSpace(v.Get("experienceLevel")),
		DatePosted:      strings.TrimSpace(v.Get("datePosted")),
		Page:            intParam(v.Get("page"), 1),
		Limit:           limit,
	}
}

func intParam(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func searchMessage(count int, partial bool) string {
	switch {
	case count == 0 && partial:
		return "No results; one or more sources were unavailable"
	case count == 0:
		return "No jobs matched your search"
	default:
		return fmt.Sprintf("Found %d jobs", count)
	}
}
