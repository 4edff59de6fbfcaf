package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// idleAfter is how long an untouched per-user bucket is kept.
const idleAfter = 10 * time.Minute

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limiter keeps one token bucket per user ID.
// A nil *Limiter allows everything.
type Limiter struct {
	cfg Config
	now func() time.Time

	mu      sync.Mutex
	buckets map[string]*bucket
}

// New returns a Limiter for cfg, or nil when cfg has no limit.
func New(cfg Config, now func() time.Time) *Limiter {
	if !cfg.Enabled() {
		return nil
	}
	if now == nil {
		now = time.Now
	}
	return &Limiter{
		cfg:     cfg,
		now:     now,
		buckets: make(map[string]*bucket),
	}
}

// Allow consumes one token for userID and reports whether it was available.
func (l *Limiter) Allow(userID string) bool {
	if l == nil {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.buckets[userID]
	if !ok {
		every := rate.Every(time.Minute / time.Duration(l.cfg.PerMinute))
		b = &bucket{limiter: rate.NewLimiter(every, l.cfg.burst())}
		l.buckets[userID] = b
	}
	b.lastSeen = now
	l.pruneLocked(now)
	return b.limiter.AllowN(now, 1)
}

func (l *Limiter) pruneLocked(now time.Time) {
	for id, b := range l.buckets {
		if now.Sub(b.lastSeen) > idleAfter {
			delete(l.buckets, id)
		}
	}
}
