package worker

import (
	"context"
	"log/slog"

	audit "warden/pkg/platform/audit"
)

// Worker consumes audit events from a channel and persists them. A failed append is
// logged and skipped; audit is never allowed to stall moderation work.
type Worker struct {
	store  audit.Store
	inbox  <-chan audit.Event
	logger *slog.Logger
}

func NewWorker(store audit.Store, inbox <-chan audit.Event, logger *slog.Logger) *Worker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Worker{store: store, inbox: inbox, logger: logger}
}

// Run persists events until the inbox is closed and drained.
// ctx is only used for the store calls, so a drain on shutdown is not cut short by
// the same cancellation that triggered it.
func (w *Worker) Run(ctx context.Context) {
	for event := range w.inbox {
		if err := w.store.Append(ctx, event); err != nil {
			w.logger.ErrorContext(ctx, "audit append failed",
				"action", event.Action,
				"guild_id", event.GuildID,
				"user_id", event.UserID,
				"error", err,
			)
		}
	}
}
