package lock

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"warden/pkg/platform/sentinel"
)

func TestGuildBulkKey(t *testing.T) {
	assert.Equal(t, "guild:555:bulk", GuildBulkKey("555"))
}

func TestMemoryLocker(t *testing.T) {
	defer goleak.VerifyNone(t)
	ctx := context.Background()

	t.Run("second acquire conflicts until release", func(t *testing.T) {
		l := NewMemoryLocker()
		lease, err := l.TryAcquire(ctx, "k", time.Minute)
		require.NoError(t, err)

		_, err = l.TryAcquire(ctx, "k", time.Minute)
		require.ErrorIs(t, err, sentinel.ErrConflict)

		require.NoError(t, lease.Release(ctx))
		lease2, err := l.TryAcquire(ctx, "k", time.Minute)
		require.NoError(t, err)
		require.NoError(t, lease2.Release(ctx))
	})

	t.Run("distinct keys do not interfere", func(t *testing.T) {
		l := NewMemoryLocker()
		_, err := l.TryAcquire(ctx, GuildBulkKey("1"), time.Minute)
		require.NoError(t, err)
		_, err = l.TryAcquire(ctx, GuildBulkKey("2"), time.Minute)
		require.NoError(t, err)
	})

	t.Run("expired lock can be taken and stale release is a no-op", func(t *testing.T) {
		l := NewMemoryLocker()
		now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		l.now = func() time.Time { return now }

		stale, err := l.TryAcquire(ctx, "k", time.Minute)
		require.NoError(t, err)

		now = now.Add(2 * time.Minute)
		_, err = l.TryAcquire(ctx, "k", time.Minute)
		require.NoError(t, err)

		require.NoError(t, stale.Release(ctx))
		_, err = l.TryAcquire(ctx, "k", time.Minute)
		assert.ErrorIs(t, err, sentinel.ErrConflict, "stale release must not free the new holder")
		assert.ErrorIs(t, stale.Extend(ctx, time.Minute), sentinel.ErrConflict, "a lapsed lease cannot be extended")
	})

	t.Run("extend keeps the lock past its original ttl", func(t *testing.T) {
		l := NewMemoryLocker()
		now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		l.now = func() time.Time { return now }

		lease, err := l.TryAcquire(ctx, "k", time.Minute)
		require.NoError(t, err)

		now = now.Add(50 * time.Second)
		require.NoError(t, lease.Extend(ctx, time.Minute))
		now = now.Add(50 * time.Second)

		_, err = l.TryAcquire(ctx, "k", time.Minute)
		assert.ErrorIs(t, err, sentinel.ErrConflict)
	})

	t.Run("exactly one concurrent caller wins", func(t *testing.T) {
		l := NewMemoryLocker()
		var wins atomic.Int32
		var wg sync.WaitGroup
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := l.TryAcquire(ctx, "k", time.Minute); err == nil {
					wins.Add(1)
				}
			}()
		}
		wg.Wait()
		assert.Equal(t, int32(1), wins.Load())
	})
}

type countingLease struct {
	extends atomic.Int32
	failAt  int32
}

func (c *countingLease) Extend(context.Context, time.Duration) error {
	if n := c.extends.Add(1); c.failAt > 0 && n >= c.failAt {
		return sentinel.ErrConflict
	}
	return nil
}

func (c *countingLease) Release(context.Context) error { return nil }

func TestKeepAlive(t *testing.T) {
	defer goleak.VerifyNone(t)

	t.Run("extends until stopped", func(t *testing.T) {
		lease := &countingLease{}
		stop := KeepAlive(context.Background(), lease, 30*time.Millisecond, nil)
		assert.Eventually(t, func() bool { return lease.extends.Load() >= 3 }, time.Second, 5*time.Millisecond)
		stop()

		after := lease.extends.Load()
		time.Sleep(40 * time.Millisecond)
		assert.Equal(t, after, lease.extends.Load())
	})

	t.Run("reports a lost lease once", func(t *testing.T) {
		lease := &countingLease{failAt: 2}
		lost := make(chan error, 2)
		stop := KeepAlive(context.Background(), lease, 15*time.Millisecond, func(err error) { lost <- err })
		defer stop()

		select {
		case err := <-lost:
			assert.ErrorIs(t, err, sentinel.ErrConflict)
		case <-time.After(time.Second):
			t.Fatal("lost lease was not reported")
		}
		time.Sleep(30 * time.Millisecond)
		assert.Equal(t, int32(2), lease.extends.Load())
	})
}
