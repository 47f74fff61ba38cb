package alerts

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"sync/atomic"
	"time"

	"jobpilot-engine/internal/aggregate"
	"jobpilot-engine/internal/config"
	"jobpilot-engine/internal/domain"
	"jobpilot-engine/internal/events"
	"jobpilot-engine/internal/scheduler"
	"jobpilot-engine/internal/store"
)

// Notifier is what we need from a messaging backend; notify.Telegram
// satisfies it.
type Notifier interface {
	SendJobs(keywords string, jobs []domain.JobPosting) error
}

type Watcher struct {
	DB       *sql.DB
	CfgVal   *atomic.Value // config.Config
	Hub      *events.Hub
	Notifier Notifier

	// Same entrypoint the /search handler uses, so alerts see exactly
	// what a user search would see.
	RunSearch func(ctx context.Context, q domain.SearchQuery) (aggregate.Outcome, error)
}

// Start blocks until ctx is cancelled. Interval comes from config on
// every tick, so a config reload takes effect without a restart.
func (w *Watcher) Start(ctx context.Context) {
	cfg := w.CfgVal.Load().(config.Config)
	interval := time.Duration(cfg.Alerts.IntervalMinutes) * time.Minute
	if interval <= 0 {
		interval = time.Hour
	}
	scheduler.Every(ctx, interval, "alerts", w.runOnce)
}

func (w *Watcher) runOnce(ctx context.Context) error {
	cfg := w.CfgVal.Load().(config.Config)
	if !cfg.Alerts.Enabled || len(cfg.Alerts.Keywords) == 0 {
		return nil
	}
	keywords := strings.Join(cfg.Alerts.Keywords, " ")

	out, err := w.RunSearch(ctx, domain.SearchQuery{
		Keywords: keywords,
		Location: cfg.Alerts.Location,
		Page:     1,
		Limit:    cfg.Search.DefaultLimit,
	})
	if err != nil {
		return fmt.Errorf("alert search: %w", err)
	}

	fresh := make([]domain.JobPosting, 0, len(out.Jobs))
	for _, j := range out.Jobs {
		isNew, err := store.MarkAlertSeen(ctx, w.DB, j.DedupKey())
		if err != nil {
			return fmt.Errorf("mark seen: %w", err)
		}
		if isNew {
			fresh = append(fresh, j)
		}
	}
	if len(fresh) == 0 {
		log.Printf("[alerts] no new matches keywords=%q", keywords)
		return nil
	}

	log.Printf("[alerts] %d new matches keywords=%q", len(fresh), keywords)
	if w.Hub != nil {
		w.Hub.Publish(events.MakeEvent("", events.TypeAlertMatch, 1,
			map[string]any{"keywords": keywords, "count": len(fresh)}))
	}
	if w.Notifier != nil {
		if err := w.Notifier.SendJobs(keywords, fresh); err != nil {
			return fmt.Errorf("notify: %w", err)
		}
	}
	return nil
}
