package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobpilot-engine/internal/domain"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, Migrate(db.Pool))
	return db.Pool
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := testDB(t)
	require.NoError(t, Migrate(db))
}

func TestSourcesRoundTrip(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	require.NoError(t, SeedSource(ctx, db, SourceSetting{Name: "alljobs", Kind: "http", Active: true, RatePerMin: 30, Weight: 40}))
	require.NoError(t, SeedSource(ctx, db, SourceSetting{Name: "synthetic", Kind: "synthetic", Active: true, Weight: 10}))

	// reseeding must not clobber the existing row
	require.NoError(t, SeedSource(ctx, db, SourceSetting{Name: "alljobs", Kind: "http", Active: false, Weight: 1}))

	got, err := ListSources(ctx, db)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "alljobs", got[0].Name, "ordered by weight desc")
	assert.True(t, got[0].Active)
	assert.Equal(t, 40, got[0].Weight)

	require.NoError(t, UpdateSource(ctx, db, SourceSetting{Name: "alljobs", Active: false, RatePerMin: 5, Weight: 40}))
	got, err = ListSources(ctx, db)
	require.NoError(t, err)
	assert.False(t, got[0].Active)
	assert.Equal(t, 5, got[0].RatePerMin)

	err = UpdateSource(ctx, db, SourceSetting{Name: "nope"})
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestFavoritesRoundTrip(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	job := domain.JobPosting{ID: "x1", Title: "Go Developer", Company: "Acme", Location: "Tel Aviv"}

	id, err := SaveFavorite(ctx, db, job)
	require.NoError(t, err)
	assert.Positive(t, id)

	// same dedup key: silently ignored
	dup, err := SaveFavorite(ctx, db, domain.JobPosting{ID: "x2", Title: "go developer", Company: "ACME"})
	require.NoError(t, err)
	assert.Zero(t, dup)

	favs, err := ListFavorites(ctx, db)
	require.NoError(t, err)
	require.Len(t, favs, 1)
	assert.Equal(t, "Go Developer", favs[0].Job.Title)
	assert.Equal(t, "Tel Aviv", favs[0].Job.Location)
	assert.False(t, favs[0].SavedAt.IsZero())

	require.NoError(t, DeleteFavorite(ctx, db, id))
	favs, err = ListFavorites(ctx, db)
	require.NoError(t, err)
	assert.Empty(t, favs)
}

func TestSearchHistory(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	require.NoError(t, LogSearch(ctx, db, SearchRecord{Keywords: "golang", Location: "haifa", Results: 12}))
	require.NoError(t, LogSearch(ctx, db, SearchRecord{Keywords: "devops", Results: 3, Partial: true}))

	recs, err := RecentSearches(ctx, db, 10)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	byKeywords := map[string]SearchRecord{}
	for _, r := range recs {
		byKeywords[r.Keywords] = r
	}
	assert.Equal(t, 12, byKeywords["golang"].Results)
	assert.False(t, byKeywords["golang"].Partial)
	assert.True(t, byKeywords["devops"].Partial)
}

func TestMarkAlertSeen(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	isNew, err := MarkAlertSeen(ctx, db, "go developer|acme")
	require.NoError(t, err)
	assert.True(t, isNew)

	isNew, err = MarkAlertSeen(ctx, db, "go developer|acme")
	require.NoError(t, err)
	assert.False(t, isNew)
}
