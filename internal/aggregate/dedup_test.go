package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"jobpilot-engine/internal/domain"
)

func job(id, title, company string) domain.JobPosting {
	return domain.JobPosting{ID: id, Title: title, Company: company}
}

func TestDedupe(t *testing.T) {
	tests := []struct {
		name    string
		in      []domain.JobPosting
		wantIDs []string
	}{
		{
			name: "first occurrence wins",
			in: []domain.JobPosting{
				job("a", "Go Developer", "Acme"),
				job("b", "Go Developer", "Acme"),
				job("c", "Go Developer", "Other"),
			},
			wantIDs: []string{"a", "c"},
		},
		{
			name: "key is case-insensitive",
			in: []domain.JobPosting{
				job("a", "Go Developer", "Acme"),
				job("b", "GO DEVELOPER", "ACME"),
				job("c", "go developer", "acme"),
			},
			wantIDs: []string{"a"},
		},
		{
			name: "same title different company survives",
			in: []domain.JobPosting{
				job("a", "Backend Engineer", "Acme"),
				job("b", "Backend Engineer", "Globex"),
			},
			wantIDs: []string{"a", "b"},
		},
		{
			name: "order preserved across duplicates",
			in: []domain.JobPosting{
				job("a", "DevOps", "Acme"),
				job("b", "QA", "Acme"),
				job("c", "DevOps", "Acme"),
				job("d", "SRE", "Acme"),
			},
			wantIDs: []string{"a", "b", "d"},
		},
		{
			name:    "empty input",
			in:      nil,
			wantIDs: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Dedupe(tt.in)
			ids := make([]string, 0, len(got))
			for _, j := range got {
				ids = append(ids, j.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestDedupeIsIdempotent(t *testing.T) {
	in := []domain.JobPosting{
		job("a", "Go Developer", "Acme"),
		job("b", "GO DEVELOPER", "ACME"),
		job("c", "Go Developer", "Globex"),
		job("d", "QA Engineer", "Acme"),
		job("e", "qa engineer", "acme"),
	}

	once := Dedupe(in)
	twice := Dedupe(once)
	assert.Equal(t, once, twice, "a deduplicated list must pass through unchanged")
}
