package lock

import (
	"context"
	"sync"
	"time"

	"dj-booking-engine/internal/pkg/clock"
	"dj-booking-engine/internal/usecase/shared"
)

// LocalLocker serialises holders inside one process. Use RedisLocker when
// more than one instance runs the sweeper.
type LocalLocker struct {
	mu     sync.Mutex
	clock  clock.Clock
	leases map[string]*localLease
}

func NewLocalLocker(clk clock.Clock) *LocalLocker {
	return &LocalLocker{clock: clk, leases: make(map[string]*localLease)}
}

func (l *LocalLocker) TryAcquire(_ context.Context, key string, ttl time.Duration) (shared.Lease, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Now()
	if held, ok := l.leases[key]; ok && now.Before(held.expiresAt) {
		return nil, false, nil
	}
	lease := &localLease{owner: l, key: key, expiresAt: now.Add(ttl)}
	l.leases[key] = lease
	return lease, true, nil
}

func (l *LocalLocker) release(lease *localLease) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.leases[lease.key] == lease {
		delete(l.leases, lease.key)
	}
}

type localLease struct {
	owner     *LocalLocker
	key       string
	expiresAt time.Time
}

func (l *localLease) Release(context.Context) error {
	l.owner.release(l)
	return nil
}
