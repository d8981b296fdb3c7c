package middleware

import (
	"maps"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"a11ypack/internal/httputil"
)

// BodyLimit rejects bodies larger than maxBytes.
func BodyLimit(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body == nil || r.Body == http.NoBody {
				next.ServeHTTP(w, r)
				return
			}
			if r.ContentLength > maxBytes {
				http.Error(w, http.StatusText(http.StatusRequestEntityTooLarge), http.StatusRequestEntityTooLarge)
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

type RateLimitConfig struct {
	MaxRequests        int
	Window             time.Duration
	MaxEntries         int
	TrustProxy         bool
	// Methods restricts limiting to these methods when set.
	Methods            []string
	ExemptPaths        []string
	ExemptPathPrefixes []string
}

func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{MaxRequests: 30, Window: time.Minute, MaxEntries: 10_000}
}

type rateLimiterEntry struct {
	count   int
	resetAt time.Time
}

type rateLimiter struct {
	mu        sync.Mutex
	config    RateLimitConfig
	entries   map[string]rateLimiterEntry
	lastSweep time.Time
	now       func() time.Time
}

func newRateLimiter(config RateLimitConfig) *rateLimiter {
	return &rateLimiter{config: config, entries: make(map[string]rateLimiterEntry), now: time.Now}
}

// RateLimit caps requests per client IP within a fixed window.
func RateLimit(config RateLimitConfig) func(http.Handler) http.Handler {
	return newRateLimiter(config).middleware
}

func (l *rateLimiter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions || shouldSkipRateLimit(r, l.config) {
			next.ServeHTTP(w, r)
			return
		}
		allowed, retryAfter := l.allow(l.now(), httputil.ClientIP(r, l.config.TrustProxy))
		if !allowed {
			if retryAfter > 0 {
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			}
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func shouldSkipRateLimit(r *http.Request, config RateLimitConfig) bool {
	if len(config.Methods) > 0 && !slices.Contains(config.Methods, r.Method) {
		return true
	}
	path := r.URL.Path
	for _, exempt := range config.ExemptPaths {
		if path == exempt {
			return true
		}
	}
	for _, prefix := range config.ExemptPathPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func (l *rateLimiter) allow(now time.Time, key string) (bool, int) {
	if key == "" {
		return true, 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if now.Sub(l.lastSweep) >= l.config.Window {
		l.sweep(now)
	}
	entry, known := l.entries[key]
	if !known && l.config.MaxEntries > 0 && len(l.entries) >= l.config.MaxEntries {
		l.sweep(now)
		l.evict(len(l.entries) - l.config.MaxEntries + 1)
	}
	if entry.resetAt.IsZero() || now.After(entry.resetAt) {
		entry = rateLimiterEntry{resetAt: now.Add(l.config.Window)}
	}
	entry.count++
	l.entries[key] = entry
	if entry.count <= l.config.MaxRequests {
		return true, 0
	}
	retryAfter := int(entry.resetAt.Sub(now).Seconds())
	if retryAfter < 0 {
		retryAfter = 0
	}
	return false, retryAfter
}

// sweep drops expired windows. allow runs it at most once per window, or
// when a new client arrives at capacity.
func (l *rateLimiter) sweep(now time.Time) {
	for key, entry := range l.entries {
		if now.After(entry.resetAt) {
			delete(l.entries, key)
		}
	}
	l.lastSweep = now
}

// evict removes the n entries whose windows end first.
func (l *rateLimiter) evict(n int) {
	if n <= 0 {
		return
	}
	keys := slices.Collect(maps.Keys(l.entries))
	slices.SortFunc(keys, func(a, b string) int {
		return l.entries[a].resetAt.Compare(l.entries[b].resetAt)
	})
	for _, key := range keys[:min(n, len(keys))] {
		delete(l.entries, key)
	}
}
