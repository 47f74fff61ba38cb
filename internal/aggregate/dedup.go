package aggregate

import (
	mapset "github.com/deckarep/golang-set/v2"

	"jobpilot-engine/internal/domain"
)

// Dedupe drops later occurrences of the same (case-folded title, company)
// key, preserving input order. O(n) with a seen-set; no fuzzy matching.
func Dedupe(jobs []domain.JobPosting) []domain.JobPosting {
	seen := mapset.NewThreadUnsafeSet[string]()
	out := make([]domain.JobPosting, 0, len(jobs))
	for _, j := range jobs {
		if seen.Add(j.DedupKey()) {
			out = append(out, j)
		}
	}
	return out
}
