package fetch

import (
	"context"
)

// Kind tags the fetch strategy a source uses. Call sites treat all kinds
// uniformly; only resource lifetimes (browser sessions) differ.
type Kind string

const (
	KindBrowser   Kind = "browser"
	KindHTTP      Kind = "http"
	KindAPI       Kind = "api"
	KindSynthetic Kind = "synthetic"
)

// Query is what a fetcher gets asked for. Limit is the per-source sub-limit
// computed by the aggregator, not the caller's overall limit.
type Query struct {
	Keywords string
	Location string
	Limit    int
}

// RawJob is a source-specific record before normalization. Fields are
// best-effort strings; anything the source didn't expose stays empty.
type RawJob struct {
	ID          string
	Title       string
	Company     string
	Location    string
	Description string
	Salary      string
	URL         string
	PostedText  string // free-form: "3 days ago", "2026-08-12", "Recent"
	Tags        []string
	Benefits    []string
}

// Result is one source's outcome for a single fetch.
//
// TotalAvailable is the provider-reported count of postings that exist,
// which for API sources can far exceed anything retrievable. MaxReturnable
// is the hard platform cap. Both are zero when the source has no such
// notion (scrapers, synthetic).
type Result struct {
	Source         string
	Jobs           []RawJob
	TotalAvailable int
	MaxReturnable  int
}

// Fetcher is one job-board or search-API integration. Implementations must
// not panic across Fetch; on failure they return an empty Result and an
// error which the aggregator absorbs — fewer results than requested is
// success, not an error.
type Fetcher interface {
	Name() string
	Kind() Kind
	Fetch(ctx context.Context, q Query) (Result, error)
}
