package fetch

import "errors"

var (
	// ErrRateLimited means the per-source request window is exhausted.
	// The call fails immediately; nothing is queued.
	ErrRateLimited = errors.New("source rate limit exceeded")

	// ErrQuotaExceeded means an upstream search API rejected us for quota,
	// not for a transient fault. Surfaced distinctly so the UI can say
	// "showing partial results" instead of a generic failure.
	ErrQuotaExceeded = errors.New("upstream search quota exceeded")
)
