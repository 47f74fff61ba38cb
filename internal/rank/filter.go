// Package rank filters the merged set by query fields and orders it by
// keyword relevance. Filters are independent conjunctions; ranking is a
// stable partition, not a numeric sort.
package rank

import (
	"strings"
	"time"

	"jobpilot-engine/internal/domain"
)

// Filter applies the query's optional filters: employment-type equality,
// experience-level equality, case-insensitive location substring (remote
// postings match any location filter), and posted-date window.
func Filter(jobs []domain.JobPosting, q domain.SearchQuery) []domain.JobPosting {
	cutoff, hasCutoff := dateCutoff(q.DatePosted, time.Now())

	out := make([]domain.JobPosting, 0, len(jobs))
	for _, j := range jobs {
		if q.EmploymentType != "" && !strings.EqualFold(j.EmploymentType, q.EmploymentType) {
			continue
		}
		if q.ExperienceLevel != "" && !strings.EqualFold(j.ExperienceLevel, q.ExperienceLevel) {
			continue
		}
		if q.Location != "" && !matchesLocation(j, q.Location) {
			continue
		}
		if hasCutoff && j.PostedDate.Before(cutoff) {
			continue
		}
		out = append(out, j)
	}
	return out
}

func matchesLocation(j domain.JobPosting, want string) bool {
	// remote is a wildcard: a remote posting satisfies any location filter
	if j.IsRemote() {
		return true
	}
	return strings.Contains(strings.ToLower(j.Location), strings.ToLower(strings.TrimSpace(want)))
}

func dateCutoff(window string, now time.Time) (time.Time, bool) {
	switch strings.ToLower(window) {
	case "today":
		return now.AddDate(0, 0, -1), true
	case "week":
		return now.AddDate(0, 0, -7), true
	case "month":
		return now.AddDate(0, 0, -30), true
	default: // "all", empty, or unrecognized
		return time.Time{}, false
	}
}
