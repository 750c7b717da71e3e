package middleware

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	RequestsPerWindow int           // Number of requests allowed per window
	Window            time.Duration // Time window for rate limiting
}

// RateLimiter is a per-client sliding-window limiter. State lives in
// process memory, matching the single-process model of the service.
type RateLimiter struct {
	mu     sync.Mutex
	config RateLimitConfig
	hits   map[string][]time.Time
	logger *zap.Logger
}

// NewRateLimiter creates a RateLimiter with the given configuration
func NewRateLimiter(config RateLimitConfig, logger *zap.Logger) *RateLimiter {
	return &RateLimiter{
		config: config,
		hits:   make(map[string][]time.Time),
		logger: logger,
	}
}

// Middleware blocks clients exceeding the configured request budget with
// 429 and sets X-RateLimit headers on every response.
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := clientIP(r)

		now := time.Now()
		cutoff := now.Add(-l.config.Window)

		count, limited := l.recordAndCheck(clientID, now, cutoff)
		if limited {
			l.logger.Warn("Rate limit exceeded",
				zap.String("client_id", clientID),
				zap.Int("count", count),
				zap.Int("limit", l.config.RequestsPerWindow),
			)

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(l.config.RequestsPerWindow))
			w.Header().Set("X-RateLimit-Remaining", "0")
			w.Header().Set("Retry-After", strconv.Itoa(int(l.config.Window.Seconds())))

			RespondWithError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		remaining := l.config.RequestsPerWindow - count
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(l.config.RequestsPerWindow))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))

		next.ServeHTTP(w, r)
	})
}

func (l *RateLimiter) recordAndCheck(clientID string, now, cutoff time.Time) (int, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	ts := prune(l.hits[clientID], cutoff)

	if len(ts) >= l.config.RequestsPerWindow {
		l.hits[clientID] = ts
		return len(ts), true
	}

	ts = append(ts, now)
	l.hits[clientID] = ts
	return len(ts), false
}

func prune(ts []time.Time, cutoff time.Time) []time.Time {
	n := 0
	for _, t := range ts {
		if t.After(cutoff) {
			ts[n] = t
			n++
		}
	}
	return ts[:n]
}

func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		if ip := strings.TrimSpace(parts[0]); ip != "" {
			return ip
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}
