package rank

import (
	"strings"

	"jobpilot-engine/internal/domain"
)

// Rank moves postings whose title contains a search keyword ahead of the
// rest. This is a boolean partition, not a score sort: relative order
// within each partition is exactly the input order. Each posting also gets
// a MatchScore annotation (0–100) for downstream consumers.
func Rank(jobs []domain.JobPosting, keywords string) []domain.JobPosting {
	terms := strings.Fields(strings.ToLower(keywords))

	hits := make([]domain.JobPosting, 0, len(jobs))
	rest := make([]domain.JobPosting, 0, len(jobs))

	for _, j := range jobs {
		j.MatchScore = Score(j, terms)
		if titleMatches(j.Title, terms) {
			hits = append(hits, j)
		} else {
			rest = append(rest, j)
		}
	}
	return append(hits, rest...)
}

func titleMatches(title string, terms []string) bool {
	low := strings.ToLower(title)
	for _, t := range terms {
		if strings.Contains(low, t) {
			return true
		}
	}
	return false
}

// Score is a keyword-spotting relevance estimate: title hits weigh most,
// description and extracted keywords less. Clamped to 0..100.
func Score(j domain.JobPosting, terms []string) int {
	if len(terms) == 0 {
		return 0
	}

	title := strings.ToLower(j.Title)
	desc := strings.ToLower(j.Description)

	score := 30
	for _, t := range terms {
		if strings.Contains(title, t) {
			score += 40
		}
		if strings.Contains(desc, t) {
			score += 15
		}
	}
	if len(j.Keywords) > 0 {
		score += 5 * len(j.Keywords)
	}

	if score > 100 {
		return 100
	}
	return score
}
