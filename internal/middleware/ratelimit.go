package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	apperrors "github.com/bareera786/ai-trading-bot-sub001/internal/errors"
)

// RateLimiter admits requests over a trailing window, keyed by client address
// plus request path so limits are per-client-per-endpoint. It is constructed
// once, injected into the router, and owns its map: a background sweep evicts
// keys whose entries have all aged out of the window.
type RateLimiter struct {
	mu     sync.Mutex
	hits   map[string][]time.Time
	window time.Duration

	sweepTick time.Duration
	stopCh    chan struct{}

	now func() time.Time // test hook
}

// NewRateLimiter creates a limiter for the given window and starts the sweep
// goroutine.
func NewRateLimiter(window, sweepTick time.Duration) *RateLimiter {
	rl := &RateLimiter{
		hits:      make(map[string][]time.Time),
		window:    window,
		sweepTick: sweepTick,
		stopCh:    make(chan struct{}),
		now:       time.Now,
	}
	go rl.sweepLoop()
	return rl
}

// Stop terminates the background sweep goroutine.
func (rl *RateLimiter) Stop() {
	close(rl.stopCh)
}

// Admit reports whether another request under key fits within max for the
// current window, recording the request when it does. Entries older than the
// window are pruned lazily; a timestamp exactly at the window start is
// treated as outside the window. Check-and-append happens under one lock
// acquisition so two requests on the same key cannot interleave mid-check.
func (rl *RateLimiter) Admit(key string, max int) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	windowStart := now.Add(-rl.window)

	recent := rl.hits[key][:0]
	for _, t := range rl.hits[key] {
		if t.After(windowStart) {
			recent = append(recent, t)
		}
	}

	if len(recent) >= max {
		rl.hits[key] = recent
		return false
	}
	rl.hits[key] = append(recent, now)
	return true
}

// KeyCount returns the number of tracked keys. For tests and metrics.
func (rl *RateLimiter) KeyCount() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.hits)
}

// Middleware returns an echo middleware enforcing max requests per window for
// the caller's (client IP, path) key. Rejections answer 429 with the standard
// error envelope.
func (rl *RateLimiter) Middleware(max int) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := c.RealIP() + c.Path()
			if !rl.Admit(key, max) {
				return c.JSON(http.StatusTooManyRequests, apperrors.ErrorResponse{
					Error: "Too many requests, please try again later",
				})
			}
			return next(c)
		}
	}
}

func (rl *RateLimiter) sweepLoop() {
	ticker := time.NewTicker(rl.sweepTick)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.sweep()
		case <-rl.stopCh:
			return
		}
	}
}

// sweep drops keys whose every timestamp has left the window.
func (rl *RateLimiter) sweep() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	windowStart := rl.now().Add(-rl.window)
	for key, times := range rl.hits {
		if len(times) == 0 || !times[len(times)-1].After(windowStart) {
			delete(rl.hits, key)
		}
	}
}
