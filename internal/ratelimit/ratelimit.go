package ratelimit

import (
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

const defaultCacheSize = 10_000

// Result reports the outcome of a single Check call.
type Result struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}

type entry struct {
	mu      sync.Mutex
	count   int
	resetAt time.Time
}

// Limiter counts requests per key in fixed windows. The counter resets
// at window boundaries rather than sliding, which admits short bursts
// around a boundary in exchange for O(1) state per key.
type Limiter struct {
	window  time.Duration
	max     int
	entries *lru.Cache[string, *entry]
	now     func() time.Time
	stop    chan struct{}
	once    sync.Once
}

type Option func(*Limiter)

// WithClock replaces the limiter's time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) { l.now = now }
}

// WithCacheSize caps the number of tracked keys.
func WithCacheSize(n int) Option {
	return func(l *Limiter) {
		l.entries, _ = lru.New[string, *entry](n)
	}
}

func New(window time.Duration, max int, opts ...Option) *Limiter {
	l := &Limiter{
		window: window,
		max:    max,
		now:    time.Now,
		stop:   make(chan struct{}),
	}
	l.entries, _ = lru.New[string, *entry](defaultCacheSize)
	for _, opt := range opts {
		opt(l)
	}

	go l.sweep()
	return l
}

// NewAuthLimiter is the preset for authentication endpoints: a narrow
// window with a low ceiling to slow down credential stuffing.
func NewAuthLimiter(opts ...Option) *Limiter {
	return New(15*time.Minute, 10, opts...)
}

// NewAPILimiter is the preset for general API endpoints.
func NewAPILimiter(opts ...Option) *Limiter {
	return New(time.Minute, 100, opts...)
}

// Check records one request for key and reports whether it fits in the
// current window. Updates to a single key are serialized on the entry's
// own mutex; different keys do not contend.
func (l *Limiter) Check(key string) Result {
	e, ok := l.entries.Get(key)
	if !ok {
		fresh := &entry{}
		if prev, existed, _ := l.entries.PeekOrAdd(key, fresh); existed {
			e = prev
		} else {
			e = fresh
		}
	}

	e.mu.Lock()
	now := l.now()
	if e.resetAt.IsZero() || now.After(e.resetAt) {
		e.count = 1
		e.resetAt = now.Add(l.window)
	} else {
		e.count++
	}
	res := Result{
		Allowed: e.count <= l.max,
		ResetAt: e.resetAt,
	}
	if remaining := l.max - e.count; remaining > 0 {
		res.Remaining = remaining
	}
	e.mu.Unlock()

	return res
}

// Window returns the configured window duration.
func (l *Limiter) Window() time.Duration { return l.window }

// Max returns the configured per-window ceiling.
func (l *Limiter) Max() int { return l.max }

// Stop terminates the background sweep. Safe to call more than once.
func (l *Limiter) Stop() {
	l.once.Do(func() { close(l.stop) })
}

// sweep drops entries whose window closed more than one window ago,
// bounding memory to the set of recently active keys.
func (l *Limiter) sweep() {
	ticker := time.NewTicker(l.window)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			cutoff := l.now().Add(-l.window)
			for _, key := range l.entries.Keys() {
				e, ok := l.entries.Peek(key)
				if !ok {
					continue
				}
				e.mu.Lock()
				stale := !e.resetAt.IsZero() && e.resetAt.Before(cutoff)
				e.mu.Unlock()
				if stale {
					l.entries.Remove(key)
				}
			}
		case <-l.stop:
			return
		}
	}
}
