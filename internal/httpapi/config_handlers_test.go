package httpapi

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobpilot-engine/internal/config"
)

func TestConfigGetNeverExposesSecrets(t *testing.T) {
	var cfg config.Config
	cfg.App.Port = 38472
	cfg.Search.DefaultLimit = 20
	cfg.Search.MaxLimit = 100
	cfg.Search.PageSize = 10
	cfg.GSearchAPIKey = "live-api-key"
	cfg.TelegramToken = "live-bot-token"

	var v atomic.Value
	v.Store(cfg)
	h := ConfigHandler{CfgVal: &v}

	rec := httptest.NewRecorder()
	h.Get(rec, httptest.NewRequest(http.MethodGet, "/config", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.NotContains(t, body, "live-api-key")
	assert.NotContains(t, body, "live-bot-token")
	assert.NotContains(t, body, "GSearchAPIKey")
	assert.NotContains(t, body, "TelegramToken")
	assert.Contains(t, body, "38472", "non-secret fields still come through")
}
