package middleware

import (
	"net/http"
	"sync"
	"time"
)

const (
	evictEvery = 5 * time.Minute
	idleFor    = 10 * time.Minute
)

// RateLimiter throttles webhook callers per client IP with a token
// bucket. CRM webhook retries arrive in bursts, so the burst size is
// the knob that matters more than the steady rate.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*tokenBucket
	rate    float64
	burst   float64
}

type tokenBucket struct {
	tokens float64
	seen   time.Time
}

// take refills the bucket for the elapsed time, then consumes one token
// if available.
func (b *tokenBucket) take(now time.Time, rate, burst float64) bool {
	b.tokens += now.Sub(b.seen).Seconds() * rate
	if b.tokens > burst {
		b.tokens = burst
	}
	b.seen = now
	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// NewRateLimiter allows rate requests/sec per IP with the given burst.
// A non-positive burst falls back to 1.
func NewRateLimiter(rate float64, burst int) *RateLimiter {
	if burst <= 0 {
		burst = 1
	}
	rl := &RateLimiter{
		clients: make(map[string]*tokenBucket),
		rate:    rate,
		burst:   float64(burst),
	}
	go rl.evictIdle()
	return rl
}

// Allow reports whether a request from ip is within the limit.
func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	b, ok := rl.clients[ip]
	if !ok {
		b = &tokenBucket{tokens: rl.burst, seen: now}
		rl.clients[ip] = b
	}
	return b.take(now, rl.rate, rl.burst)
}

func (rl *RateLimiter) evictIdle() {
	ticker := time.NewTicker(evictEvery)
	defer ticker.Stop()
	for range ticker.C {
		rl.mu.Lock()
		cutoff := time.Now().Add(-idleFor)
		for ip, b := range rl.clients {
			if b.seen.Before(cutoff) {
				delete(rl.clients, ip)
			}
		}
		rl.mu.Unlock()
	}
}

// RateLimit returns middleware that answers 429 once a caller exceeds
// the configured rate.
func RateLimit(rate float64, burst int) func(http.Handler) http.Handler {
	limiter := NewRateLimiter(rate, burst)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := r.RemoteAddr
			// Prefer X-Real-Ip set by chi's RealIP middleware.
			if xri := r.Header.Get("X-Real-Ip"); xri != "" {
				ip = xri
			}
			if !limiter.Allow(ip) {
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
