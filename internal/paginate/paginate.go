// Package paginate slices the final deduplicated, ranked list into pages.
package paginate

import "jobpilot-engine/internal/domain"

// Totals carries provider-reported figures from API-backed sources.
// Available is how many postings the provider claims exist; Returnable is
// the hard cap on what that provider will ever hand out. Zero means
// unknown.
type Totals struct {
	Available  int
	Returnable int
}

// Page is one slice of results plus pagination metadata.
//
// TotalCount reflects the filtered/deduplicated set actually held in
// memory. TotalPages is computed from min(Available, Returnable) when both
// are known — the provider may report far more results than can ever be
// fetched, and the page count must not promise those.
type Page struct {
	Items      []domain.JobPosting
	TotalCount int
	TotalPages int
	Page       int
}

// Slice returns the requested page. Out-of-range pages (page < 1 or past
// the end) are not an error: they return empty items with the same
// metadata; clamping is the caller's business.
func Slice(jobs []domain.JobPosting, page, pageSize int, t Totals) Page {
	if pageSize <= 0 {
		pageSize = 10
	}

	effective := len(jobs)
	if t.Available > 0 && t.Returnable > 0 {
		effective = t.Available
		if t.Returnable < effective {
			effective = t.Returnable
		}
	}

	totalPages := (effective + pageSize - 1) / pageSize

	out := Page{
		Items:      []domain.JobPosting{},
		TotalCount: len(jobs),
		TotalPages: totalPages,
		Page:       page,
	}

	if page < 1 || page > totalPages {
		return out
	}

	start := (page - 1) * pageSize
	if start >= len(jobs) {
		return out
	}
	end := start + pageSize
	if end > len(jobs) {
		end = len(jobs)
	}
	out.Items = jobs[start:end]
	return out
}
