package httpapi

import (
	"context"
	"database/sql"
	"sync/atomic"

	"jobpilot-engine/internal/aggregate"
	"jobpilot-engine/internal/config"
	"jobpilot-engine/internal/domain"
	"jobpilot-engine/internal/events"
)

type Deps struct {
	DB *sql.DB

	Hub *events.Hub

	// Atomic store of config.Config, reloadable at runtime
	CfgVal *atomic.Value

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)

	// Aggregation entrypoint (injected for testability); called only
	// after query validation passes.
	RunSearch func(ctx context.Context, q domain.SearchQuery) (aggregate.Outcome, error)
}
