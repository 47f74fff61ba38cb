package fetch

import (
	"sync"
	"time"
)

// SourceLimiter is a sliding-window counter per source name: at most N
// requests per window, denying immediately when the window is full.
// It is the only mutable state shared across requests to the same source.
type SourceLimiter struct {
	mu     sync.Mutex
	window time.Duration
	hits   map[string][]time.Time
	limits map[string]int

	now func() time.Time // injectable for tests
}

func NewSourceLimiter(window time.Duration) *SourceLimiter {
	return &SourceLimiter{
		window: window,
		hits:   make(map[string][]time.Time),
		limits: make(map[string]int),
		now:    time.Now,
	}
}

// SetLimit configures the per-window budget for a source.
// A limit <= 0 means unlimited.
func (l *SourceLimiter) SetLimit(source string, perWindow int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.limits[source] = perWindow
}

// Allow records one request against the source's window and reports whether
// it fits. Old timestamps are pruned on every call.
func (l *SourceLimiter) Allow(source string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	limit := l.limits[source]
	if limit <= 0 {
		return true
	}

	now := l.now()
	cutoff := now.Add(-l.window)

	kept := l.hits[source][:0]
	for _, t := range l.hits[source] {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}

	if len(kept) >= limit {
		l.hits[source] = kept
		return false
	}

	l.hits[source] = append(kept, now)
	return true
}
