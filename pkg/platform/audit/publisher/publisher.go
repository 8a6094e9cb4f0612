// Package publisher emits audit events either synchronously or through a bounded
// buffer drained by a background worker.
package publisher

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	audit "warden/pkg/platform/audit"
	"warden/pkg/platform/audit/worker"
	"warden/pkg/requestcontext"
)

// ErrBufferFull is returned by Emit in async mode when the buffer has no room.
var ErrBufferFull = errors.New("audit buffer full")

// ErrClosed is returned by Emit after Close.
var ErrClosed = errors.New("audit publisher closed")

// Publisher fans audit events into a Store.
type Publisher struct {
	store      audit.Store
	logger     *slog.Logger
	bufferSize int

	mu     sync.RWMutex
	closed bool
	inbox  chan audit.Event
	done   chan struct{}
}

// Option configures the Publisher.
type Option func(*Publisher)

// WithAsyncBuffer switches the publisher to async mode with a buffer of size n.
func WithAsyncBuffer(n int) Option {
	return func(p *Publisher) {
		p.bufferSize = n
	}
}

// WithLogger sets a logger for error reporting.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

// NewPublisher creates a publisher. Without WithAsyncBuffer every Emit writes
// through to the store before returning.
func NewPublisher(store audit.Store, opts ...Option) *Publisher {
	p := &Publisher{store: store, logger: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	if p.bufferSize > 0 {
		p.inbox = make(chan audit.Event, p.bufferSize)
		p.done = make(chan struct{})
		w := worker.NewWorker(store, p.inbox, p.logger)
		go func() {
			defer close(p.done)
			w.Run(context.Background())
		}()
	}
	return p
}

// Emit records event, stamping the invocation time when unset.
func (p *Publisher) Emit(ctx context.Context, event audit.Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrClosed
	}

	if p.inbox == nil {
		return p.store.Append(ctx, event)
	}

	select {
	case p.inbox <- event:
		return nil
	default:
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		p.logger.WarnContext(ctx, "audit buffer full, dropping event",
			"action", event.Action,
			"guild_id", event.GuildID,
		)
		return ErrBufferFull
	}
}

// Recent returns up to limit of the guild's latest events, oldest first.
func (p *Publisher) Recent(ctx context.Context, guildID string, limit int) ([]audit.Event, error) {
	return p.store.ListByGuild(ctx, guildID, limit)
}

// Close stops accepting events and, in async mode, waits for the buffer to drain.
func (p *Publisher) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	if p.inbox != nil {
		close(p.inbox)
	}
	p.mu.Unlock()

	if p.done != nil {
		<-p.done
	}
	return nil
}
