// Package aggregate runs the selected source fetchers concurrently, settles
// every outcome (success, empty, or failure), normalizes and merges results,
// and deduplicates the merged set. A failing source never fails the request.
package aggregate

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"jobpilot-engine/internal/domain"
	"jobpilot-engine/internal/fetch"
	"jobpilot-engine/internal/normalize"
)

// Source pairs a fetcher with its settings for one run.
type Source struct {
	Fetcher fetch.Fetcher
	Weight  int
}

// Outcome is the merged result of one aggregation run.
//
// TotalAvailable / MaxReturnable are provider-reported figures from
// API-backed sources (zero when no such source ran); Jobs holds what was
// actually retrieved. Partial is set whenever any selected source
// contributed nothing because of a failure, so callers can tell "nothing
// matched" apart from "everything broke".
type Outcome struct {
	Jobs           []domain.JobPosting
	TotalAvailable int
	MaxReturnable  int
	Partial        bool
	Warnings       []string
}

type Runner struct {
	Limiter *fetch.SourceLimiter
}

type sourceOutcome struct {
	res     fetch.Result
	err     error
	skipped bool
}

// Run fetches from every source concurrently and waits for all of them to
// settle. Per-source failures are absorbed into warnings; there is no
// cross-fetcher cancellation, so latency is bounded by the slowest source.
func (r *Runner) Run(ctx context.Context, sources []Source, q domain.SearchQuery) Outcome {
	weights := make([]int, len(sources))
	for i, s := range sources {
		weights[i] = s.Weight
	}
	limits := SplitLimit(effectiveLimit(q.Limit), weights)

	outcomes := make([]sourceOutcome, len(sources))

	var g errgroup.Group
	for i, s := range sources {
		i, s := i, s

		if r.Limiter != nil && !r.Limiter.Allow(s.Fetcher.Name()) {
			outcomes[i] = sourceOutcome{err: fetch.ErrRateLimited, skipped: true}
			continue
		}

		g.Go(func() error {
			fctx, cancel := context.WithTimeout(ctx, timeoutFor(s.Fetcher.Kind()))
			defer cancel()

			log.Printf("[%s] fetching keywords=%q limit=%d", s.Fetcher.Name(), q.Keywords, limits[i])
			res, err := s.Fetcher.Fetch(fctx, fetch.Query{
				Keywords: q.Keywords,
				Location: q.Location,
				Limit:    limits[i],
			})
			outcomes[i] = sourceOutcome{res: res, err: err}
			// best-effort: never cancel siblings
			return nil
		})
	}
	_ = g.Wait()

	// Concatenate in source-declaration order, not completion order.
	var out Outcome
	for i, s := range sources {
		name := s.Fetcher.Name()
		oc := outcomes[i]

		if oc.err != nil {
			out.Partial = true
			switch {
			case errors.Is(oc.err, fetch.ErrQuotaExceeded):
				log.Printf("[%s] quota exceeded", name)
				out.Warnings = append(out.Warnings, fmt.Sprintf("%s: quota exceeded, results may be partial", name))
			case errors.Is(oc.err, fetch.ErrRateLimited):
				log.Printf("[%s] rate limited", name)
				out.Warnings = append(out.Warnings, fmt.Sprintf("%s: rate limited", name))
			default:
				log.Printf("[%s] error: %v", name, oc.err)
				out.Warnings = append(out.Warnings, fmt.Sprintf("%s: unavailable", name))
			}
			if oc.skipped {
				continue
			}
		}

		if oc.res.TotalAvailable > out.TotalAvailable {
			out.TotalAvailable = oc.res.TotalAvailable
		}
		if oc.res.MaxReturnable > out.MaxReturnable {
			out.MaxReturnable = oc.res.MaxReturnable
		}

		kept := 0
		for _, raw := range oc.res.Jobs {
			job, ok := normalize.Job(raw, name, q.Keywords)
			if !ok {
				continue // malformed record, dropped at the boundary
			}
			out.Jobs = append(out.Jobs, job)
			kept++
		}
		if len(oc.res.Jobs) > 0 {
			log.Printf("[%s] got %d records, kept %d", name, len(oc.res.Jobs), kept)
		}
	}

	out.Jobs = Dedupe(out.Jobs)
	return out
}

func effectiveLimit(limit int) int {
	if limit <= 0 {
		return 20
	}
	if limit > 100 {
		return 100
	}
	return limit
}

// Browser sessions are slow to navigate; plain HTTP and API calls are not.
// A timed-out source contributes zero records, same as a failed one.
func timeoutFor(k fetch.Kind) time.Duration {
	switch k {
	case fetch.KindBrowser:
		return 30 * time.Second
	case fetch.KindHTTP:
		return 15 * time.Second
	case fetch.KindAPI:
		return 10 * time.Second
	default:
		return 5 * time.Second
	}
}
