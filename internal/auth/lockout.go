package auth

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginLimiter counts failed logins per key and locks the key once the
// threshold is reached inside the window.
type LoginLimiter interface {
	Locked(ctx context.Context, key string) (bool, error)
	RecordFailure(ctx context.Context, key string) error
	Reset(ctx context.Context, key string) error
}

type attempt struct {
	count     int
	expiresAt time.Time
}

// MemoryLimiter is the single-process LoginLimiter used when no redis is
// configured.
type MemoryLimiter struct {
	mu          sync.Mutex
	maxAttempts int
	window      time.Duration
	attempts    map[string]attempt
	now         func() time.Time
}

func NewMemoryLimiter(maxAttempts int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		maxAttempts: maxAttempts,
		window:      window,
		attempts:    make(map[string]attempt),
		now:         time.Now,
	}
}

func (l *MemoryLimiter) Locked(_ context.Context, key string) (bool, error) {
	if l.maxAttempts <= 0 {
		return false, nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	a, ok := l.current(key)
	return ok && a.count >= l.maxAttempts, nil
}

func (l *MemoryLimiter) RecordFailure(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	a, ok := l.current(key)
	if !ok {
		a = attempt{expiresAt: l.now().Add(l.window)}
	}
	a.count++
	l.attempts[key] = a
	return nil
}

func (l *MemoryLimiter) Reset(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.attempts, key)
	return nil
}

// current must be called with mu held. Expired entries are dropped.
func (l *MemoryLimiter) current(key string) (attempt, bool) {
	a, ok := l.attempts[key]
	if !ok {
		return attempt{}, false
	}
	if !l.now().Before(a.expiresAt) {
		delete(l.attempts, key)
		return attempt{}, false
	}
	return a, true
}

// NewLoginLimiter prefers the shared redis store and falls back to memory
// when client is nil.
func NewLoginLimiter(client *redis.Client, maxAttempts int, window time.Duration) LoginLimiter {
	if client == nil {
		return NewMemoryLimiter(maxAttempts, window)
	}
	return NewRedisLimiter(client, maxAttempts, window)
}
