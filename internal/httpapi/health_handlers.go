package httpapi

import (
	"net/http"
	"time"
)

type HealthHandler struct{}

// Health is the liveness probe the desktop shell polls while starting the
// engine.
func (h HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"ok":   true,
		"time": time.Now().UTC().Format(time.RFC3339),
	})
}
