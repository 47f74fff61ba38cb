package aggregate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobpilot-engine/internal/domain"
	"jobpilot-engine/internal/fetch"
)

type fakeFetcher struct {
	name  string
	res   fetch.Result
	err   error
	delay time.Duration
	calls int
}

func (f *fakeFetcher) Name() string     { return f.name }
func (f *fakeFetcher) Kind() fetch.Kind { return fetch.KindSynthetic }

func (f *fakeFetcher) Fetch(ctx context.Context, q fetch.Query) (fetch.Result, error) {
	f.calls++
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return fetch.Result{}, ctx.Err()
		}
	}
	return f.res, f.err
}

func raw(title, company string) fetch.RawJob {
	return fetch.RawJob{Title: title, Company: company}
}

func TestRunMergesInDeclarationOrder(t *testing.T) {
	// the slower source is declared first and must still come first
	first := &fakeFetcher{
		name:  "slow",
		delay: 50 * time.Millisecond,
		res:   fetch.Result{Source: "slow", Jobs: []fetch.RawJob{raw("Go Developer", "Acme")}},
	}
	second := &fakeFetcher{
		name: "fast",
		res:  fetch.Result{Source: "fast", Jobs: []fetch.RawJob{raw("Java Developer", "Globex")}},
	}

	r := &Runner{}
	out := r.Run(context.Background(), []Source{
		{Fetcher: first, Weight: 1},
		{Fetcher: second, Weight: 1},
	}, domain.SearchQuery{Keywords: "developer", Limit: 10})

	require.Len(t, out.Jobs, 2)
	assert.Equal(t, "slow", out.Jobs[0].Source)
	assert.Equal(t, "fast", out.Jobs[1].Source)
	assert.False(t, out.Partial)
	assert.Empty(t, out.Warnings)
}

func TestRunPartialOnSourceFailure(t *testing.T) {
	ok := &fakeFetcher{
		name: "good",
		res:  fetch.Result{Source: "good", Jobs: []fetch.RawJob{raw("Go Developer", "Acme")}},
	}
	bad := &fakeFetcher{name: "broken", err: errors.New("connection refused")}

	r := &Runner{}
	out := r.Run(context.Background(), []Source{
		{Fetcher: ok, Weight: 1},
		{Fetcher: bad, Weight: 1},
	}, domain.SearchQuery{Keywords: "go", Limit: 10})

	require.Len(t, out.Jobs, 1)
	assert.True(t, out.Partial)
	require.Len(t, out.Warnings, 1)
	assert.Contains(t, out.Warnings[0], "broken")
}

func TestRunAllSourcesFail(t *testing.T) {
	a := &fakeFetcher{name: "a", err: errors.New("boom")}
	b := &fakeFetcher{name: "b", err: errors.New("boom")}

	r := &Runner{}
	out := r.Run(context.Background(), []Source{
		{Fetcher: a, Weight: 1},
		{Fetcher: b, Weight: 1},
	}, domain.SearchQuery{Keywords: "go", Limit: 10})

	assert.Empty(t, out.Jobs)
	assert.True(t, out.Partial)
	assert.Len(t, out.Warnings, 2)
}

func TestRunQuotaExceededKeepsPartialResults(t *testing.T) {
	quota := &fakeFetcher{
		name: "gsearch",
		res:  fetch.Result{Source: "gsearch", Jobs: []fetch.RawJob{raw("Go Developer", "Acme")}, TotalAvailable: 4200, MaxReturnable: 100},
		err:  fetch.ErrQuotaExceeded,
	}

	r := &Runner{}
	out := r.Run(context.Background(), []Source{{Fetcher: quota, Weight: 1}},
		domain.SearchQuery{Keywords: "go", Limit: 10})

	// quota is not a hard failure: whatever was fetched before it is kept
	require.Len(t, out.Jobs, 1)
	assert.True(t, out.Partial)
	require.Len(t, out.Warnings, 1)
	assert.Contains(t, out.Warnings[0], "quota")
	assert.Equal(t, 4200, out.TotalAvailable)
	assert.Equal(t, 100, out.MaxReturnable)
}

func TestRunRateLimitedSourceIsSkipped(t *testing.T) {
	limited := &fakeFetcher{
		name: "noisy",
		res:  fetch.Result{Source: "noisy", Jobs: []fetch.RawJob{raw("Go Developer", "Acme")}},
	}

	lim := fetch.NewSourceLimiter(time.Minute)
	lim.SetLimit("noisy", 1)
	require.True(t, lim.Allow("noisy")) // burn the budget

	r := &Runner{Limiter: lim}
	out := r.Run(context.Background(), []Source{{Fetcher: limited, Weight: 1}},
		domain.SearchQuery{Keywords: "go", Limit: 10})

	assert.Zero(t, limited.calls, "fetcher must not run when its window is full")
	assert.Empty(t, out.Jobs)
	assert.True(t, out.Partial)
	require.Len(t, out.Warnings, 1)
	assert.Contains(t, out.Warnings[0], "rate limited")
}

func TestRunDeduplicatesAcrossSources(t *testing.T) {
	a := &fakeFetcher{
		name: "a",
		res:  fetch.Result{Source: "a", Jobs: []fetch.RawJob{raw("Go Developer", "Acme")}},
	}
	b := &fakeFetcher{
		name: "b",
		res:  fetch.Result{Source: "b", Jobs: []fetch.RawJob{raw("go developer", "ACME")}},
	}

	r := &Runner{}
	out := r.Run(context.Background(), []Source{
		{Fetcher: a, Weight: 1},
		{Fetcher: b, Weight: 1},
	}, domain.SearchQuery{Keywords: "go", Limit: 10})

	require.Len(t, out.Jobs, 1)
	assert.Equal(t, "a", out.Jobs[0].Source, "first source wins the duplicate")
}

func TestRunDropsMalformedRecords(t *testing.T) {
	f := &fakeFetcher{
		name: "messy",
		res: fetch.Result{Source: "messy", Jobs: []fetch.RawJob{
			raw("Go Developer", "Acme"),
			raw("", ""), // no title, no company: dropped at normalization
		}},
	}

	r := &Runner{}
	out := r.Run(context.Background(), []Source{{Fetcher: f, Weight: 1}},
		domain.SearchQuery{Keywords: "go", Limit: 10})

	require.Len(t, out.Jobs, 1)
	assert.False(t, out.Partial, "dropped records are not a source failure")
}

func TestEffectiveLimit(t *testing.T) {
	assert.Equal(t, 20, effectiveLimit(0))
	assert.Equal(t, 20, effectiveLimit(-5))
	assert.Equal(t, 35, effectiveLimit(35))
	assert.Equal(t, 100, effectiveLimit(250))
}
