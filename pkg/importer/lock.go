package importer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/stridephysio/practice-engine/pkg/apperrors"
)

// RunLock serializes import runs per account. Acquire fails with
// apperrors.ErrImportInProgress while another run holds the lock; the TTL
// bounds how long a crashed run can block the account.
type RunLock interface {
	Acquire(ctx context.Context, accountID uuid.UUID) error
	Release(ctx context.Context, accountID uuid.UUID) error
}

// NewRunLock returns a Redis-backed lock when a client is configured, and an
// in-process lock otherwise (single-instance deployments and tests).
func NewRunLock(client *redis.Client, ttl time.Duration) RunLock {
	if client == nil {
		return newMemoryRunLock(ttl)
	}
	return &redisRunLock{client: client, ttl: ttl}
}

type redisRunLock struct {
	client *redis.Client
	ttl    time.Duration
}

func lockKey(accountID uuid.UUID) string {
	return fmt.Sprintf("import_run:%s", accountID)
}

func (l *redisRunLock) Acquire(ctx context.Context, accountID uuid.UUID) error {
	ok, err := l.client.SetNX(ctx, lockKey(accountID), "1", l.ttl).Result()
	if err != nil {
		return fmt.Errorf("acquiring import lock: %w", err)
	}
	if !ok {
		return apperrors.ErrImportInProgress
	}
	return nil
}

func (l *redisRunLock) Release(ctx context.Context, accountID uuid.UUID) error {
	if err := l.client.Del(ctx, lockKey(accountID)).Err(); err != nil {
		return fmt.Errorf("releasing import lock: %w", err)
	}
	return nil
}

type memoryRunLock struct {
	mu    sync.Mutex
	ttl   time.Duration
	holds map[uuid.UUID]time.Time
	now   func() time.Time
}

func newMemoryRunLock(ttl time.Duration) *memoryRunLock {
	return &memoryRunLock{
		ttl:   ttl,
		holds: make(map[uuid.UUID]time.Time),
		now:   time.Now,
	}
}

func (l *memoryRunLock) Acquire(ctx context.Context, accountID uuid.UUID) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if expiry, held := l.holds[accountID]; held && l.now().Before(expiry) {
		return apperrors.ErrImportInProgress
	}
	l.holds[accountID] = l.now().Add(l.ttl)
	return nil
}

func (l *memoryRunLock) Release(ctx context.Context, accountID uuid.UUID) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.holds, accountID)
	return nil
}
