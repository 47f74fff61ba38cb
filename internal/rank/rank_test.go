package rank

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobpilot-engine/internal/domain"
)

func TestRankPartitionsByTitleMatch(t *testing.T) {
	in := []domain.JobPosting{
		{ID: "a", Title: "Data Analyst"},
		{ID: "b", Title: "Go Developer"},
		{ID: "c", Title: "Product Manager"},
		{ID: "d", Title: "Senior Golang Engineer"},
	}

	got := Rank(in, "golang go")

	ids := make([]string, len(got))
	for i, j := range got {
		ids[i] = j.ID
	}
	// matches first in input order, then the rest in input order
	assert.Equal(t, []string{"b", "d", "a", "c"}, ids)
}

func TestRankIsStableWithinPartitions(t *testing.T) {
	in := []domain.JobPosting{
		{ID: "a", Title: "Go Developer"},
		{ID: "b", Title: "Go Engineer"},
		{ID: "c", Title: "Go Lead"},
	}

	got := Rank(in, "go")

	require.Len(t, got, 3)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "b", got[1].ID)
	assert.Equal(t, "c", got[2].ID)
}

func TestRankEmptyKeywordsKeepsOrder(t *testing.T) {
	in := []domain.JobPosting{
		{ID: "a", Title: "Zebra"},
		{ID: "b", Title: "Aardvark"},
	}

	got := Rank(in, "")

	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "b", got[1].ID)
	assert.Zero(t, got[0].MatchScore)
}

func TestScore(t *testing.T) {
	tests := []struct {
		name  string
		job   domain.JobPosting
		terms []string
		want  int
	}{
		{
			name:  "title hit",
			job:   domain.JobPosting{Title: "Go Developer"},
			terms: []string{"go"},
			want:  70,
		},
		{
			name:  "description hit only",
			job:   domain.JobPosting{Title: "Backend Engineer", Description: "We use Go and Postgres"},
			terms: []string{"go"},
			want:  45,
		},
		{
			name:  "clamped at 100",
			job:   domain.JobPosting{Title: "Go Go Go", Description: "go go go", Keywords: []string{"go", "dev", "remote"}},
			terms: []string{"go", "dev", "remote"},
			want:  100,
		},
		{
			name:  "no terms",
			job:   domain.JobPosting{Title: "Go Developer"},
			terms: nil,
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Score(tt.job, tt.terms))
		})
	}
}
