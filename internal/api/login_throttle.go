package api

import (
	"strings"
	"sync"
	"time"

	"github.com/Yarik-eng/DailyMood/internal/services"
)

const loginThrottleSweepSize = 1024

// loginThrottle locks a client out of one account after repeated failed
// logins. The lockout window opens at the first failure and is not
// extended by later ones.
type loginThrottle struct {
	limit  int
	window time.Duration

	mu       sync.Mutex
	failures map[loginKey]loginFailures
}

type loginKey struct {
	ip    string
	email string
}

type loginFailures struct {
	count   int
	firstAt time.Time
}

func newLoginThrottle(limit int, window time.Duration) *loginThrottle {
	return &loginThrottle{
		limit:    limit,
		window:   window,
		failures: make(map[loginKey]loginFailures),
	}
}

// loginKeyFor falls back to the lowercased input when the email does not parse,
// so malformed addresses are still counted.
func loginKeyFor(ip string, email string) loginKey {
	ip = strings.TrimSpace(ip)
	if ip == "" {
		ip = "unknown"
	}
	normalized := services.NormalizeAuthEmail(email)
	if normalized == "" {
		normalized = strings.ToLower(strings.TrimSpace(email))
	}
	return loginKey{ip: ip, email: normalized}
}

// lockedFor reports how long key stays locked. Zero means a login may be
// attempted.
func (throttle *loginThrottle) lockedFor(key loginKey, now time.Time) time.Duration {
	throttle.mu.Lock()
	defer throttle.mu.Unlock()

	entry, ok := throttle.failures[key]
	if !ok {
		return 0
	}
	resetAt := entry.firstAt.Add(throttle.window)
	if !now.Before(resetAt) {
		delete(throttle.failures, key)
		return 0
	}
	if entry.count < throttle.limit {
		return 0
	}
	return resetAt.Sub(now)
}

func (throttle *loginThrottle) recordFailure(key loginKey, now time.Time) {
	throttle.mu.Lock()
	defer throttle.mu.Unlock()

	if len(throttle.failures) >= loginThrottleSweepSize {
		throttle.sweepLocked(now)
	}

	entry, ok := throttle.failures[key]
	if !ok || !now.Before(entry.firstAt.Add(throttle.window)) {
		entry = loginFailures{firstAt: now}
	}
	entry.count++
	throttle.failures[key] = entry
}

func (throttle *loginThrottle) clear(key loginKey) {
	throttle.mu.Lock()
	defer throttle.mu.Unlock()
	delete(throttle.failures, key)
}

func (throttle *loginThrottle) sweepLocked(now time.Time) {
	for key, entry := range throttle.failures {
		if !now.Before(entry.firstAt.Add(throttle.window)) {
			delete(throttle.failures, key)
		}
	}
}

func (throttle *loginThrottle) size() int {
	throttle.mu.Lock()
	defer throttle.mu.Unlock()
	return len(throttle.failures)
}
