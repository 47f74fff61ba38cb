package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofrs/flock"

	"jobpilot-engine/internal/aggregate"
	"jobpilot-engine/internal/alerts"
	"jobpilot-engine/internal/browser"
	"jobpilot-engine/internal/config"
	"jobpilot-engine/internal/domain"
	"jobpilot-engine/internal/events"
	"jobpilot-engine/internal/fetch"
	"jobpilot-engine/internal/fetch/alljobs"
	"jobpilot-engine/internal/fetch/drushim"
	"jobpilot-engine/internal/fetch/gsearch"
	"jobpilot-engine/internal/fetch/synthetic"
	"jobpilot-engine/internal/httpapi"
	"jobpilot-engine/internal/notify"
	"jobpilot-engine/internal/secrets"
	"jobpilot-engine/internal/store"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// Engine data dir: env wins (the desktop shell passes one), else local.
	dataDir := os.Getenv("JOBPILOT_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return err
	}

	// Single instance per data dir; a second engine would fight over the db.
	lock := flock.New(filepath.Join(dataDir, "engine.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("instance lock: %w", err)
	}
	if !locked {
		return errors.New("another engine is already running for this data dir")
	}
	defer func() { _ = lock.Unlock() }()

	defaultCfgPath := filepath.Join("config", "config.yml")
	userCfgPath, err := config.EnsureUserConfig(dataDir, defaultCfgPath)
	if err != nil {
		return fmt.Errorf("config bootstrap: %w", err)
	}

	var cfgVal atomic.Value // stores config.Config
	loadCfg := func() (config.Config, error) {
		return config.Load(userCfgPath)
	}
	cfg, err := loadCfg()
	if err != nil {
		return fmt.Errorf("config load (%s): %w", userCfgPath, err)
	}
	cfgVal.Store(cfg)

	db, err := store.Open(filepath.Join(dataDir, "jobpilot.db"))
	if err != nil {
		return err
	}
	defer db.Close()
	if err := store.Migrate(db.Pool); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	hub := events.NewHub()

	reg, cleanup := buildFetchers(cfg)
	defer cleanup()

	if err := seedSources(db, cfg, reg); err != nil {
		return fmt.Errorf("seed sources: %w", err)
	}

	limiter := fetch.NewSourceLimiter(time.Minute)
	runner := &aggregate.Runner{Limiter: limiter}

	runSearch := func(ctx context.Context, q domain.SearchQuery) (aggregate.Outcome, error) {
		rows, err := store.ListSources(ctx, db.Pool)
		if err != nil {
			return aggregate.Outcome{}, fmt.Errorf("list sources: %w", err)
		}

		var sources []aggregate.Source
		for _, row := range rows {
			f, ok := reg[row.Name]
			if !ok || !row.Active {
				continue
			}
			limiter.SetLimit(row.Name, row.RatePerMin)
			sources = append(sources, aggregate.Source{Fetcher: f, Weight: row.Weight})
		}
		if len(sources) == 0 {
			return aggregate.Outcome{
				Partial:  true,
				Warnings: []string{"no sources enabled"},
			}, nil
		}
		return runner.Run(ctx, sources, q), nil
	}

	// Background alert watcher; Telegram is optional.
	rootCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	watcher := &alerts.Watcher{
		DB:        db.Pool,
		CfgVal:    &cfgVal,
		Hub:       hub,
		RunSearch: runSearch,
	}
	if tg, err := buildTelegram(cfg); err != nil {
		log.Printf("[alerts] telegram disabled: %v", err)
	} else if tg != nil {
		watcher.Notifier = tg
	}
	go watcher.Start(rootCtx)

	mux := httpapi.NewMux(httpapi.Deps{
		DB:          db.Pool,
		Hub:         hub,
		CfgVal:      &cfgVal,
		UserCfgPath: userCfgPath,
		LoadCfg:     loadCfg,
		RunSearch:   runSearch,
	})

	handler := httpapi.Chain(mux,
		httpapi.RequestID,
		httpapi.Recover,
		httpapi.AccessLog,
		httpapi.Cors,
	)

	addr := fmt.Sprintf("127.0.0.1:%d", cfg.App.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	token, err := randomToken(16)
	if err != nil {
		return err
	}
	mux.HandleFunc("/shutdown", shutdownHandler(&token, srv))
	if err := writeRuntimeInfo(dataDir, addr, token); err != nil {
		return err
	}

	log.Printf("level=info msg=\"engine listening\" addr=http://%s data_dir=%s", addr, dataDir)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	select {
	case <-rootCtx.Done():
		log.Printf("level=info msg=\"shutting down\"")
		shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shCtx)
		<-errCh
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// buildFetchers wires every known source. All of them are registered; the
// sources table decides at request time which ones actually run. The
// browser only launches if drushim ever fetches.
func buildFetchers(cfg config.Config) (map[string]fetch.Fetcher, func()) {
	hostLimiter := fetch.NewHostLimiter(cfg.Fetch.HostRatePerSec, cfg.Fetch.HostBurst)
	mgr := browser.NewManager()

	apiKey := cfg.GSearchAPIKey
	if apiKey == "" {
		if v, err := secrets.Get(secrets.GSearchAccount); err == nil {
			apiKey = v
		}
	}

	reg := map[string]fetch.Fetcher{}
	for _, f := range []fetch.Fetcher{
		alljobs.New(alljobs.Config{}, hostLimiter),
		drushim.New(mgr),
		gsearch.New(gsearch.Config{
			APIKey: apiKey,
			CX:     cfg.Sources.GSearch.CX,
			Site:   cfg.Sources.GSearch.Site,
		}, hostLimiter),
		synthetic.New(time.Now().UnixNano()),
	} {
		reg[f.Name()] = f
	}
	return reg, func() { mgr.Close() }
}

// seedSources inserts a row per registered fetcher with the config file's
// defaults. INSERT OR IGNORE, so user edits via PUT /sources survive
// restarts.
func seedSources(db *store.DB, cfg config.Config, reg map[string]fetch.Fetcher) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	defaults := map[string]config.SourceSettings{
		"alljobs":   cfg.Sources.AllJobs,
		"drushim":   cfg.Sources.Drushim,
		"gsearch":   cfg.Sources.GSearch.SourceSettings,
		"synthetic": cfg.Sources.Synthetic,
	}

	for name, f := range reg {
		s, ok := defaults[name]
		if !ok {
			continue
		}
		err := store.SeedSource(ctx, db.Pool, store.SourceSetting{
			Name:       name,
			Kind:       string(f.Kind()),
			Active:     s.Enabled,
			RatePerMin: s.RatePerMin,
			Weight:     s.Weight,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func buildTelegram(cfg config.Config) (*notify.Telegram, error) {
	token := cfg.TelegramToken
	if token == "" {
		if v, err := secrets.Get(secrets.TelegramAccount); err == nil {
			token = v
		}
	}
	if token == "" || cfg.Alerts.TelegramChatID == 0 {
		return nil, nil
	}
	return notify.NewTelegram(token, cfg.Alerts.TelegramChatID)
}
