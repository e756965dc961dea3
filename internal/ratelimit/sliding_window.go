package ratelimit

import (
	"sync"
	"time"
)

// SlidingWindowLimiter throttles per-requester queries: at most limit
// requests inside any trailing window. Entries are created lazily and their
// timestamp slices self-prune on every check, so inactive requesters cost
// one map slot at most.
type SlidingWindowLimiter struct {
	windows map[int64]*slidingWindow
	limit   int
	window  time.Duration
	now     func() time.Time
	mu      sync.RWMutex
}

type slidingWindow struct {
	requests []time.Time
	mu       sync.Mutex
}

// NewSlidingWindowLimiter creates a limiter allowing limit requests per
// window per key.
func NewSlidingWindowLimiter(limit int, window time.Duration) *SlidingWindowLimiter {
	return &SlidingWindowLimiter{
		windows: make(map[int64]*slidingWindow),
		limit:   limit,
		window:  window,
		now:     time.Now,
	}
}

// Allow reports whether a request from key may proceed, recording it if so.
// Prune, check and record happen under the per-key lock, so concurrent
// requests from one requester cannot slip past the ceiling.
func (l *SlidingWindowLimiter) Allow(key int64) bool {
	window := l.getOrCreateWindow(key)

	window.mu.Lock()
	defer window.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	valid := window.requests[:0]
	for _, t := range window.requests {
		if t.After(cutoff) {
			valid = append(valid, t)
		}
	}
	window.requests = valid

	if len(window.requests) >= l.limit {
		return false
	}

	window.requests = append(window.requests, now)
	return true
}

// Reset clears the recorded requests for a key.
func (l *SlidingWindowLimiter) Reset(key int64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.windows, key)
}

func (l *SlidingWindowLimiter) getOrCreateWindow(key int64) *slidingWindow {
	l.mu.RLock()
	window, exists := l.windows[key]
	l.mu.RUnlock()

	if exists {
		return window
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// Double-check after acquiring write lock
	if window, exists := l.windows[key]; exists {
		return window
	}

	window = &slidingWindow{}
	l.windows[key] = window
	return window
}
