package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"restock-srv/internal/alert"
	"restock-srv/pkg/redis"
)

const (
	lockKeyPrefix = "restock:lock:"
	lockRetry     = 50 * time.Millisecond
)

type localLock struct {
	mu   sync.Mutex
	refs int
}

// keyLocker serializes work per dedup key: a mutex per key in this process, plus a
// SET NX lease in Redis when Redis is configured so other replicas wait as well.
type keyLocker struct {
	redis redis.IRedis
	ttl   time.Duration

	mu    sync.Mutex
	local map[string]*localLock
}

func newKeyLocker(r redis.IRedis, ttl time.Duration) *keyLocker {
	return &keyLocker{
		redis: r,
		ttl:   ttl,
		local: make(map[string]*localLock),
	}
}

// Lock blocks until key is held. Waiting for the Redis lease gives up after ttl.
func (k *keyLocker) Lock(ctx context.Context, key string) (func(), error) {
	unlockLocal := k.lockLocal(key)
	if k.redis == nil {
		return unlockLocal, nil
	}

	redisKey := lockKeyPrefix + key
	token := uuid.NewString()

	waitCtx, cancel := context.WithTimeout(ctx, k.ttl)
	defer cancel()
	for {
		ok, err := k.redis.SetNX(waitCtx, redisKey, token, k.ttl)
		if err != nil {
			unlockLocal()
			return nil, fmt.Errorf("%w: %v", alert.ErrLockUnavailable, err)
		}
		if ok {
			break
		}
		select {
		case <-waitCtx.Done():
			unlockLocal()
			return nil, alert.ErrLockUnavailable
		case <-time.After(lockRetry):
		}
	}

	return func() {
		// A lease that fails to release expires after ttl.
		_, _ = k.redis.DeleteIfEqual(context.Background(), redisKey, token)
		unlockLocal()
	}, nil
}

func (k *keyLocker) lockLocal(key string) func() {
	k.mu.Lock()
	l, ok := k.local[key]
	if !ok {
		l = &localLock{}
		k.local[key] = l
	}
	l.refs++
	k.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		k.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(k.local, key)
		}
		k.mu.Unlock()
	}
}
