// Package lock provides the per-guild mutual exclusion taken by bulk operations.
package lock

import (
	"context"
	"fmt"
	"time"

	"warden/pkg/platform/sentinel"
)

// Lease is a held lock.
type Lease interface {
	// Extend pushes the expiry to ttl from now. A lease that already lapsed to
	// another holder yields an error wrapping sentinel.ErrConflict.
	Extend(ctx context.Context, ttl time.Duration) error
	// Release gives the lock back. It is safe to call more than once.
	Release(ctx context.Context) error
}

// Locker hands out non-blocking, TTL-bounded locks.
type Locker interface {
	// TryAcquire takes key for at most ttl. A held key yields an error wrapping
	// sentinel.ErrConflict.
	TryAcquire(ctx context.Context, key string, ttl time.Duration) (Lease, error)
}

// GuildBulkKey is the lock key for bulk operations on one guild.
func GuildBulkKey(guildID string) string {
	return fmt.Sprintf("guild:%s:bulk", guildID)
}

func heldError(key string) error {
	return fmt.Errorf("lock %q is held: %w", key, sentinel.ErrConflict)
}

// KeepAlive extends lease every ttl/3 until the returned stop is called, so the TTL
// only bounds a holder that died. onLost is called once if an extension fails; the
// loop stops after that.
func KeepAlive(ctx context.Context, lease Lease, ttl time.Duration, onLost func(error)) (stop func()) {
	interval := ttl / 3
	if interval <= 0 {
		return func() {}
	}
	done := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := lease.Extend(ctx, ttl); err != nil {
					if onLost != nil {
						onLost(err)
					}
					return
				}
			}
		}
	}()
	return func() {
		close(done)
		<-finished
	}
}
