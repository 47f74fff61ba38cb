package config

import (
	"errors"
	"fmt"
	"strings"
)

func Validate(cfg Config) error {
	var errs []string

	if cfg.App.Port <= 0 || cfg.App.Port > 65535 {
		errs = append(errs, "app.port must be 1..65535")
	}
	if cfg.Search.DefaultLimit <= 0 {
		errs = append(errs, "search.default_limit must be > 0")
	}
	if cfg.Search.MaxLimit < cfg.Search.DefaultLimit {
		errs = append(errs, "search.max_limit must be >= search.default_limit")
	}
	if cfg.Search.PageSize <= 0 || cfg.Search.PageSize > 100 {
		errs = append(errs, "search.page_size must be 1..100")
	}

	checkSource := func(name string, s SourceSettings) {
		if s.Weight < 0 {
			errs = append(errs, fmt.Sprintf("sources.%s.weight must be >= 0", name))
		}
		if s.RatePerMin < 0 {
			errs = append(errs, fmt.Sprintf("sources.%s.rate_per_min must be >= 0", name))
		}
	}
	checkSource("alljobs", cfg.Sources.AllJobs)
	checkSource("drushim", cfg.Sources.Drushim)
	checkSource("gsearch", cfg.Sources.GSearch.SourceSettings)
	checkSource("synthetic", cfg.Sources.Synthetic)

	if cfg.Sources.GSearch.Enabled && cfg.Sources.GSearch.CX == "" {
		errs = append(errs, "sources.gsearch.cx is required when gsearch is enabled")
	}

	if cfg.Alerts.Enabled {
		if len(cfg.Alerts.Keywords) == 0 {
			errs = append(errs, "alerts.keywords must have at least 1 term when alerts are enabled")
		}
		if cfg.Alerts.IntervalMinutes <= 0 {
			errs = append(errs, "alerts.interval_minutes must be > 0")
		}
	}

	if len(errs) > 0 {
		return errors.New("config validation failed:\n- " + strings.Join(errs, "\n- "))
	}
	return nil
}
