package httpapi

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobpilot-engine/internal/store"
)

func sourcesDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, store.Migrate(db.Pool))

	ctx := context.Background()
	require.NoError(t, store.SeedSource(ctx, db.Pool, store.SourceSetting{Name: "alljobs", Kind: "http", Active: true, RatePerMin: 30, Weight: 40}))
	require.NoError(t, store.SeedSource(ctx, db.Pool, store.SourceSetting{Name: "synthetic", Kind: "synthetic", Active: true, Weight: 10}))
	return db.Pool
}

func TestSourcesList(t *testing.T) {
	h := SourcesHandler{DB: sourcesDB(t)}

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/sources", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var got []store.SourceSetting
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "alljobs", got[0].Name)
}

func TestSourcesPartialUpdate(t *testing.T) {
	db := sourcesDB(t)
	h := SourcesHandler{DB: db}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/sources/alljobs", strings.NewReader(`{"active":false}`))
	h.UpdateByPath(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	// untouched fields survive
	sources, err := store.ListSources(context.Background(), db)
	require.NoError(t, err)
	for _, s := range sources {
		if s.Name == "alljobs" {
			assert.False(t, s.Active)
			assert.Equal(t, 30, s.RatePerMin)
			assert.Equal(t, 40, s.Weight)
		}
	}
}

func TestSourcesUpdateUnknown(t *testing.T) {
	h := SourcesHandler{DB: sourcesDB(t)}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/sources/nope", strings.NewReader(`{"active":true}`))
	h.UpdateByPath(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
