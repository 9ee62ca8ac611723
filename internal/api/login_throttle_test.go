package api

import (
	"testing"
	"time"
)

func TestLoginThrottleLocksAfterLimit(t *testing.T) {
	t.Parallel()

	throttle := newLoginThrottle(3, 15*time.Minute)
	key := loginKeyFor("10.0.0.1", "user@example.com")
	start := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	for attempt := 0; attempt < 3; attempt++ {
		if wait := throttle.lockedFor(key, start); wait != 0 {
			t.Fatalf("attempt %d: expected no lock, got %s", attempt, wait)
		}
		throttle.recordFailure(key, start.Add(time.Duration(attempt)*time.Minute))
	}

	if wait := throttle.lockedFor(key, start.Add(5*time.Minute)); wait != 10*time.Minute {
		t.Fatalf("expected lock until the window closes, got %s", wait)
	}
	if wait := throttle.lockedFor(key, start.Add(15*time.Minute)); wait != 0 {
		t.Fatalf("expected lock to expire with the window, got %s", wait)
	}
	if got := throttle.size(); got != 0 {
		t.Fatalf("expected expired entry to be dropped, got %d", got)
	}
}

func TestLoginThrottleKeysOnIPAndEmail(t *testing.T) {
	t.Parallel()

	throttle := newLoginThrottle(1, time.Hour)
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	throttle.recordFailure(loginKeyFor("10.0.0.1", " User@Example.com "), now)

	if throttle.lockedFor(loginKeyFor("10.0.0.1", "user@example.com"), now) == 0 {
		t.Fatal("expected normalized email to share the lock")
	}
	if throttle.lockedFor(loginKeyFor("10.0.0.1", "other@example.com"), now) != 0 {
		t.Fatal("expected other account from the same IP to be unaffected")
	}
	if throttle.lockedFor(loginKeyFor("10.0.0.2", "user@example.com"), now) != 0 {
		t.Fatal("expected same account from another IP to be unaffected")
	}
}

func TestLoginThrottleClearAndWindowRestart(t *testing.T) {
	t.Parallel()

	throttle := newLoginThrottle(2, 10*time.Minute)
	key := loginKeyFor("", "not an email")
	if key.ip != "unknown" || key.email != "not an email" {
		t.Fatalf("unexpected key %#v", key)
	}

	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	throttle.recordFailure(key, now)
	throttle.clear(key)
	throttle.recordFailure(key, now)
	if throttle.lockedFor(key, now) != 0 {
		t.Fatal("expected clear to reset the failure count")
	}

	throttle.recordFailure(key, now.Add(11*time.Minute))
	if throttle.lockedFor(key, now.Add(11*time.Minute)) != 0 {
		t.Fatal("expected a failure after the window to open a new window")
	}
}
