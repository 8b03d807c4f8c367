// Package limiter bounds the rate of submission-relay requests per client
// address over a fixed window. Counters live behind the Store interface so a
// single instance can use an in-process map while a multi-instance
// deployment shares a Postgres-backed store.
package limiter

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/tomasen/realip"
)

// Store counts requests per address key within a fixed window. Increments on
// the same key must be linearized by the implementation.
type Store interface {
	// Incr records one request for key and returns the request count within
	// the current window (including this one) and the time remaining until
	// the window resets.
	Incr(ctx context.Context, key string, window time.Duration) (count int, resetIn time.Duration, err error)
}

// Limiter is HTTP middleware enforcing a per-address admission quota. It is
// applied to the submission endpoint only, not globally.
type Limiter struct {
	max    int
	window time.Duration
	store  Store
}

// New creates a Limiter admitting at most max requests per address per window.
func New(max int, window time.Duration, store Store) *Limiter {
	return &Limiter{max: max, window: window, store: store}
}

// deniedMsg is the fixed payload returned to throttled clients.
const deniedMsg = "Too many requests. Try again later."

// Middleware rejects over-quota requests with 429 before the pipeline runs.
// A store failure admits the request: quota is abuse mitigation, and a down
// shared store must not take the endpoint with it.
func (l *Limiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		count, resetIn, err := l.store.Incr(r.Context(), realip.FromRequest(r), l.window)
		if err != nil {
			slog.Error("rate limit store failed, admitting request", "error", err)
			next.ServeHTTP(w, r)
			return
		}

		if count > l.max {
			w.Header().Set("Retry-After", retryAfterSeconds(resetIn))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"success": false,
				"msg":     deniedMsg,
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}

func retryAfterSeconds(d time.Duration) string {
	secs := int(d.Seconds()) + 1
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}
