package lock

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	token     uint64
	expiresAt time.Time
}

// MemoryLocker keeps locks in process memory. Expired entries are replaced lazily.
type MemoryLocker struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	next    uint64
	now     func() time.Time
}

// NewMemoryLocker returns an empty in-process locker.
func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// TryAcquire implements Locker.
func (l *MemoryLocker) TryAcquire(_ context.Context, key string, ttl time.Duration) (Lease, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if e, ok := l.entries[key]; ok && now.Before(e.expiresAt) {
		return nil, heldError(key)
	}
	l.next++
	l.entries[key] = memoryEntry{token: l.next, expiresAt: now.Add(ttl)}
	return &memoryLease{locker: l, key: key, token: l.next}, nil
}

type memoryLease struct {
	locker *MemoryLocker
	key    string
	token  uint64
}

func (m *memoryLease) Extend(_ context.Context, ttl time.Duration) error {
	l := m.locker
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	e, ok := l.entries[m.key]
	if !ok || e.token != m.token || !now.Before(e.expiresAt) {
		return heldError(m.key)
	}
	e.expiresAt = now.Add(ttl)
	l.entries[m.key] = e
	return nil
}

func (m *memoryLease) Release(context.Context) error {
	l := m.locker
	l.mu.Lock()
	defer l.mu.Unlock()
	// a newer holder may own the key after our TTL ran out
	if e, ok := l.entries[m.key]; ok && e.token == m.token {
		delete(l.entries, m.key)
	}
	return nil
}
