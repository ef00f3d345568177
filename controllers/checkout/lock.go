package checkoutControllers

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// lockTTL bounds how long a user's place-order lock is held if the
// process dies mid-flight.
const lockTTL = 5 * time.Second

// Locker serializes order placement per user so repeated submissions
// (double clicks, impatient retries) cannot place two orders from the
// same cart.
type Locker interface {
	Acquire(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string)
}

// RedisLocker implements Locker with a SET NX per key.
type RedisLocker struct {
	Client *redis.Client
}

func (l *RedisLocker) Acquire(ctx context.Context, key string) (bool, error) {
	return l.Client.SetNX(ctx, "checkout_lock:"+key, "1", lockTTL).Result()
}

func (l *RedisLocker) Release(ctx context.Context, key string) {
	l.Client.Del(ctx, "checkout_lock:"+key)
}

// MemoryLocker is the single-process fallback used when redis is not
// configured, and in tests.
type MemoryLocker struct {
	mu   sync.Mutex
	held map[string]bool
}

func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{held: make(map[string]bool)}
}

func (l *MemoryLocker) Acquire(ctx context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held[key] {
		return false, nil
	}
	l.held[key] = true
	return true, nil
}

func (l *MemoryLocker) Release(ctx context.Context, key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.held, key)
}
