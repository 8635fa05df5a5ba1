package ratelimit

import (
	"sync"
	"time"
)

const (
	DefaultMaxAttempts = 5
	DefaultWindow      = 15 * time.Minute
)

// Limiter counts attempts per key over a sliding window. Keys are arbitrary
// strings, e.g. "login:alice@example.com". State is in-memory only and lost
// on restart.
type Limiter struct {
	mu          sync.Mutex
	attempts    map[string][]time.Time
	maxAttempts int
	window      time.Duration
	now         func() time.Time
}

func New(maxAttempts int, window time.Duration) *Limiter {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	if window <= 0 {
		window = DefaultWindow
	}
	return &Limiter{
		attempts:    make(map[string][]time.Time),
		maxAttempts: maxAttempts,
		window:      window,
		now:         time.Now,
	}
}

// IsLimited reports whether key has exhausted its attempts. When the key is
// still under the limit the current attempt is recorded; a rejected call is
// not recorded, so being limited does not extend the lockout.
func (l *Limiter) IsLimited(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	valid := l.prune(key, now)

	if len(valid) >= l.maxAttempts {
		return true
	}

	l.attempts[key] = append(valid, now)
	return false
}

// Remaining returns how many attempts are left for key without recording one.
func (l *Limiter) Remaining(key string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	valid := l.prune(key, l.now())
	if len(valid) >= l.maxAttempts {
		return 0
	}
	return l.maxAttempts - len(valid)
}

// Clear removes all recorded attempts for key, e.g. after a successful login.
func (l *Limiter) Clear(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.attempts, key)
}

// prune drops attempts older than the window and updates or deletes the
// key's entry. Caller must hold the mutex.
func (l *Limiter) prune(key string, now time.Time) []time.Time {
	var valid []time.Time
	for _, t := range l.attempts[key] {
		if now.Sub(t) <= l.window {
			valid = append(valid, t)
		}
	}
	if len(valid) == 0 {
		delete(l.attempts, key)
	} else {
		l.attempts[key] = valid
	}
	return valid
}

// Sweep prunes every key once. The HTTP middleware runs this periodically so
// keys that never come back do not pin their window forever.
func (l *Limiter) Sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for key := range l.attempts {
		l.prune(key, now)
	}
}
