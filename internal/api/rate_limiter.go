package api

import (
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"
)

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ipRateLimiter keeps one token bucket per client IP. Buckets idle for
// longer than idleTTL are dropped on the next sweep.
type ipRateLimiter struct {
	mu        sync.Mutex
	limit     rate.Limit
	burst     int
	idleTTL   time.Duration
	lastSweep time.Time
	entries   map[string]*limiterEntry
}

func newIPRateLimiter(rps float64, burst int, idleTTL time.Duration) *ipRateLimiter {
	return &ipRateLimiter{
		limit:   rate.Limit(rps),
		burst:   burst,
		idleTTL: idleTTL,
		entries: make(map[string]*limiterEntry),
	}
}

func (limiter *ipRateLimiter) allow(key string, now time.Time) bool {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	if now.Sub(limiter.lastSweep) >= limiter.idleTTL {
		limiter.sweepLocked(now)
	}

	entry, ok := limiter.entries[key]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(limiter.limit, limiter.burst)}
		limiter.entries[key] = entry
	}
	entry.lastSeen = now
	return entry.limiter.AllowN(now, 1)
}

func (limiter *ipRateLimiter) sweepLocked(now time.Time) {
	for key, entry := range limiter.entries {
		if now.Sub(entry.lastSeen) >= limiter.idleTTL {
			delete(limiter.entries, key)
		}
	}
	limiter.lastSweep = now
}

func (limiter *ipRateLimiter) size() int {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	return len(limiter.entries)
}

func (handler *Handler) RateLimit(c *fiber.Ctx) error {
	if handler.requestLimiter == nil {
		return c.Next()
	}
	if !handler.requestLimiter.allow(requestLimiterKey(c), time.Now()) {
		c.Set(fiber.HeaderRetryAfter, "1")
		return handler.apiErrorCode(c, fiber.StatusTooManyRequests, codeRateLimited, "error.too_many_requests")
	}
	return c.Next()
}

func requestLimiterKey(c *fiber.Ctx) string {
	key := strings.TrimSpace(c.IP())
	if key == "" {
		return "unknown"
	}
	return key
}
