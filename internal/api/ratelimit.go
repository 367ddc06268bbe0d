package api

import (
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimitConfig sizes the per-IP token buckets.
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
	CleanupInterval   time.Duration // sweep cadence for idle buckets
}

// DefaultRateLimitConfig is generous for a single local viewer polling
// state plus the occasional debug frame.
var DefaultRateLimitConfig = RateLimitConfig{
	RequestsPerSecond: 20,
	Burst:             40,
	CleanupInterval:   5 * time.Minute,
}

type ipBucket struct {
	limiter *rate.Limiter
	seen    time.Time
}

// IPRateLimiter hands each client IP its own token bucket and sweeps
// buckets that have gone quiet so one-off pollers do not accumulate.
type IPRateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*ipBucket
	cfg     RateLimitConfig

	stop     chan struct{}
	stopOnce sync.Once
}

// NewIPRateLimiter builds the limiter and starts its sweep goroutine.
func NewIPRateLimiter(cfg RateLimitConfig) *IPRateLimiter {
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = DefaultRateLimitConfig.CleanupInterval
	}
	rl := &IPRateLimiter{
		buckets: make(map[string]*ipBucket),
		cfg:     cfg,
		stop:    make(chan struct{}),
	}
	go rl.sweepLoop()
	return rl
}

// Stop ends the sweep goroutine. Safe to call more than once.
func (rl *IPRateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

// Allow reports whether a request from ip fits its bucket.
func (rl *IPRateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	b, ok := rl.buckets[ip]
	if !ok {
		b = &ipBucket{
			limiter: rate.NewLimiter(rate.Limit(rl.cfg.RequestsPerSecond), rl.cfg.Burst),
		}
		rl.buckets[ip] = b
	}
	b.seen = time.Now()
	rl.mu.Unlock()

	return b.limiter.Allow()
}

// Middleware rejects over-limit requests with 429 before any handler work.
func (rl *IPRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.Allow(GetClientIP(r)) {
			RecordConnectionRejected("rate_limit")
			w.Header().Set("Retry-After", "1")
			http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (rl *IPRateLimiter) sweepLoop() {
	ticker := time.NewTicker(rl.cfg.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-2 * rl.cfg.CleanupInterval)
			rl.mu.Lock()
			for ip, b := range rl.buckets {
				if b.seen.Before(cutoff) {
					delete(rl.buckets, ip)
				}
			}
			rl.mu.Unlock()
		}
	}
}

// GetClientIP resolves the client address, preferring proxy headers in
// the order a local reverse proxy writes them. X-Forwarded-For is
// client-controlled when the server is exposed directly; the stock
// deployment sits on localhost where that does not matter.
func GetClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// WebSocketRateLimiter caps concurrent stream connections per IP so one
// misbehaving viewer cannot hold every hub slot.
type WebSocketRateLimiter struct {
	mu       sync.Mutex
	active   map[string]int
	maxPerIP int
}

// NewWebSocketRateLimiter builds a per-IP concurrent-connection cap.
func NewWebSocketRateLimiter(maxPerIP int) *WebSocketRateLimiter {
	return &WebSocketRateLimiter{
		active:   make(map[string]int),
		maxPerIP: maxPerIP,
	}
}

// Allow reserves a connection slot for ip; the caller must Release it
// when the connection closes, including on a failed upgrade.
func (wl *WebSocketRateLimiter) Allow(ip string) bool {
	wl.mu.Lock()
	defer wl.mu.Unlock()
	if wl.active[ip] >= wl.maxPerIP {
		return false
	}
	wl.active[ip]++
	return true
}

// Release frees a previously reserved slot.
func (wl *WebSocketRateLimiter) Release(ip string) {
	wl.mu.Lock()
	defer wl.mu.Unlock()
	if n := wl.active[ip]; n > 1 {
		wl.active[ip] = n - 1
	} else {
		delete(wl.active, ip)
	}
}

// IsAllowedOrigin gates CORS and WebSocket upgrades to the local match
// viewer: http on localhost or 127.0.0.1, any port.
func IsAllowedOrigin(origin string) bool {
	u, err := url.Parse(origin)
	if err != nil || u.Scheme != "http" {
		return false
	}
	host := u.Hostname()
	return host == "localhost" || host == "127.0.0.1"
}
