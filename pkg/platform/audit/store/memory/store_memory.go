package memory

import (
	"context"
	"sync"

	audit "warden/pkg/platform/audit"
)

// DefaultCapacity is how many events the store keeps before overwriting the oldest.
const DefaultCapacity = 1000

// InMemoryStore keeps the most recent audit events in a fixed-size ring. It is the
// default sink when no broker is configured.
type InMemoryStore struct {
	mu     sync.RWMutex
	ring   []audit.Event
	next   int
	filled bool
}

type Option func(*InMemoryStore)

// WithCapacity sets the ring size. Non-positive values keep the default.
func WithCapacity(n int) Option {
	return func(s *InMemoryStore) {
		if n > 0 {
			s.ring = make([]audit.Event, n)
		}
	}
}

func NewInMemoryStore(opts ...Option) *InMemoryStore {
	s := &InMemoryStore{ring: make([]audit.Event, DefaultCapacity)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *InMemoryStore) Append(_ context.Context, event audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ring[s.next] = event
	s.next = (s.next + 1) % len(s.ring)
	if s.next == 0 {
		s.filled = true
	}
	return nil
}

// ListByGuild implements audit.Store.
func (s *InMemoryStore) ListByGuild(_ context.Context, guildID string, limit int) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []audit.Event{}
	if limit <= 0 {
		return out, nil
	}
	// walk newest to oldest, then flip
	for i := 0; i < s.len() && len(out) < limit; i++ {
		idx := (s.next - 1 - i + len(s.ring)) % len(s.ring)
		if s.ring[idx].GuildID == guildID {
			out = append(out, s.ring[idx])
		}
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

// Len is the number of events currently held.
func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.len()
}

func (s *InMemoryStore) len() int {
	if s.filled {
		return len(s.ring)
	}
	return s.next
}
