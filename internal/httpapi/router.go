package httpapi

import "net/http"

// NewMux returns the raw mux so main() can still attach /shutdown (needs
// the server handle and token).
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	// Search pipeline
	sh := SearchHandler{DB: d.DB, Hub: d.Hub, CfgVal: d.CfgVal, RunSearch: d.RunSearch}
	mux.HandleFunc("/search", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: sh.Search,
	}))

	// Source settings
	srcH := SourcesHandler{DB: d.DB}
	mux.HandleFunc("/sources", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: srcH.List,
	}))
	mux.HandleFunc("/sources/", methodMux(map[string]http.HandlerFunc{
		http.MethodPut: srcH.UpdateByPath, // expects /sources/{name}
	}))

	// Favorites
	fh := FavoritesHandler{DB: d.DB, Hub: d.Hub}
	mux.HandleFunc("/favorites", methodMux(map[string]http.HandlerFunc{
		http.MethodGet:  fh.List,
		http.MethodPost: fh.Save,
	}))
	mux.HandleFunc("/favorites/", methodMux(map[string]http.HandlerFunc{
		http.MethodDelete: fh.DeleteByPath, // expects /favorites/{id}
	}))

	// Search history
	hist := SearchesHandler{DB: d.DB}
	mux.HandleFunc("/searches/recent", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hist.Recent,
	}))

	// Config
	ch := ConfigHandler{CfgVal: d.CfgVal, UserCfgPath: d.UserCfgPath, LoadCfg: d.LoadCfg}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
		http.MethodPut: ch.Put,
	}))
	mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Path,
	}))

	// Secrets (keychain only, never persisted here)
	sec := SecretsHandler{}
	mux.HandleFunc("/api/secrets/gsearch", methodMux(map[string]http.HandlerFunc{
		http.MethodPost:   sec.SetGSearchKey,
		http.MethodDelete: sec.DeleteGSearchKey,
	}))

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	// Health
	hh := HealthHandler{}
	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hh.Health,
	}))

	return mux
}
