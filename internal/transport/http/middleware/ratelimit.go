package middleware

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"pieceledger/internal/transport/http/api"
)

type rateBucket struct {
	count int
	reset time.Time
}

type rateLimiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	clients map[string]*rateBucket
}

// RateLimit caps requests per client IP over a fixed window. Exceeding
// the cap returns 429 with a Retry-After hint.
func RateLimit(limit int, window time.Duration) func(http.Handler) http.Handler {
	rl := &rateLimiter{
		limit:   limit,
		window:  window,
		clients: make(map[string]*rateBucket),
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !rl.allow(clientIP(r), time.Now()) {
				w.Header().Set("Retry-After", strconv.Itoa(int(window.Seconds())))
				api.Fail(w, http.StatusTooManyRequests, "rate_limited", "too many requests", GetRequestID(r.Context()))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (rl *rateLimiter) allow(key string, now time.Time) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	bucket, ok := rl.clients[key]
	if !ok || now.After(bucket.reset) {
		rl.clients[key] = &rateBucket{count: 1, reset: now.Add(rl.window)}
		// Drop stale buckets opportunistically so the map stays bounded.
		for k, b := range rl.clients {
			if now.After(b.reset) {
				delete(rl.clients, k)
			}
		}
		return true
	}

	if bucket.count >= rl.limit {
		return false
	}
	bucket.count++
	return true
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
