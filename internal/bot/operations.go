package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"warden/internal/guild"
	"warden/internal/platform/config"
	"warden/internal/platform/lock"
	"warden/internal/platform/metrics"
	"warden/internal/reconcile"
	"warden/internal/rules"
	dErrors "warden/pkg/domain-errors"
	"warden/pkg/platform/sentinel"
	"warden/pkg/requestcontext"
)

// Directory looks up live guild state by name.
type Directory interface {
	Members(ctx context.Context, guildID string) ([]guild.Member, error)
	RoleByName(ctx context.Context, guildID, name string) (guild.Role, error)
	ChannelByName(ctx context.Context, guildID, name string) (string, error)
}

type Reconciler interface {
	Reconcile(ctx context.Context, documentURL string, members []guild.Member, role guild.Role) (*reconcile.Report, error)
}

type RulesPublisher interface {
	Publish(ctx context.Context, req rules.Request) (*rules.Outcome, error)
}

// Operations runs the staff bulk operations for one guild at a time. Chat commands
// and the admin HTTP API both go through it.
type Operations struct {
	cfg        config.Bot
	directory  Directory
	reconciler Reconciler
	publisher  RulesPublisher
	locker     lock.Locker
	logger     *slog.Logger
	metrics    *metrics.Metrics
	// base is the process lifetime; only its end interrupts a running operation.
	base context.Context
}

type OperationsOption func(*Operations)

func WithOperationsLogger(logger *slog.Logger) OperationsOption {
	return func(o *Operations) {
		o.logger = logger
	}
}

func WithOperationsMetrics(m *metrics.Metrics) OperationsOption {
	return func(o *Operations) {
		o.metrics = m
	}
}

// WithLifetime ties running operations to ctx instead of to the caller. Without it
// an operation always runs to completion.
func WithLifetime(ctx context.Context) OperationsOption {
	return func(o *Operations) {
		o.base = ctx
	}
}

func NewOperations(cfg config.Bot, directory Directory, reconciler Reconciler, publisher RulesPublisher, locker lock.Locker, opts ...OperationsOption) (*Operations, error) {
	if directory == nil || reconciler == nil || publisher == nil || locker == nil {
		return nil, errors.New("directory, reconciler, publisher and locker are required")
	}
	o := &Operations{
		cfg:        cfg,
		directory:  directory,
		reconciler: reconciler,
		publisher:  publisher,
		locker:     locker,
		logger:     slog.New(slog.DiscardHandler),
		base:       context.Background(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o, nil
}

// ImportAttendees grants the onsite role to everyone listed at documentURL. Once
// started, the pass is not cut short by the caller's deadline or disconnect.
func (o *Operations) ImportAttendees(ctx context.Context, guildID, documentURL string) (*reconcile.Report, error) {
	ctx, cancel := o.detach(requestcontext.WithGuildID(ctx, guildID))
	defer cancel()
	release, err := o.acquire(ctx, guildID)
	if err != nil {
		return nil, err
	}
	defer release()

	role, err := o.role(ctx, guildID, o.cfg.OnsiteRole)
	if err != nil {
		return nil, err
	}
	members, err := o.directory.Members(ctx, guildID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load the member list")
	}
	return o.reconciler.Reconcile(ctx, documentURL, members, role)
}

// PublishRules publishes the configured rules document in mode. Like ImportAttendees
// it runs to completion regardless of the caller.
func (o *Operations) PublishRules(ctx context.Context, guildID string, mode rules.Mode) (*rules.Outcome, error) {
	ctx, cancel := o.detach(requestcontext.WithGuildID(ctx, guildID))
	defer cancel()
	release, err := o.acquire(ctx, guildID)
	if err != nil {
		return nil, err
	}
	defer release()

	req := rules.Request{
		DocumentURL:    o.cfg.RulesDocumentURL,
		Mode:           mode,
		MaxChunkLength: o.cfg.MaxChunkLength,
	}

	// a missing member role leaves the placeholder visible rather than failing
	if memberRole, err := o.role(ctx, guildID, o.cfg.MemberRole); err == nil {
		req.MentionRoleID = memberRole.ID
	} else if !dErrors.HasCode(err, dErrors.CodeNotFound) {
		return nil, err
	}

	if mode == rules.ModePush {
		req.Destination, err = o.channel(ctx, guildID, o.cfg.RulesChannel)
	} else {
		req.StatusChannel, err = o.channel(ctx, guildID, o.cfg.StatusChannel)
	}
	if err != nil {
		return nil, err
	}
	return o.publisher.Publish(ctx, req)
}

// detach keeps ctx's values but takes cancellation from the process lifetime only.
func (o *Operations) detach(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	stop := context.AfterFunc(o.base, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

func (o *Operations) acquire(ctx context.Context, guildID string) (func(), error) {
	lease, err := o.locker.TryAcquire(ctx, lock.GuildBulkKey(guildID), o.cfg.BulkLockTTL)
	if err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			if o.metrics != nil {
				o.metrics.IncBulkLockRejected()
			}
			o.logger.WarnContext(ctx, "bulk operation rejected, lock held", "guild_id", guildID)
			return nil, dErrors.Wrap(err, dErrors.CodeConflict, "another bulk operation is already running for this server")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to take the bulk operation lock")
	}
	stopKeepAlive := lock.KeepAlive(ctx, lease, o.cfg.BulkLockTTL, func(err error) {
		o.logger.ErrorContext(ctx, "bulk lock lost while operation running", "guild_id", guildID, "error", err)
	})
	return func() {
		stopKeepAlive()
		if err := lease.Release(context.WithoutCancel(ctx)); err != nil {
			o.logger.ErrorContext(ctx, "failed to release bulk lock", "guild_id", guildID, "error", err)
		}
	}, nil
}

func (o *Operations) role(ctx context.Context, guildID, name string) (guild.Role, error) {
	return lookupRole(ctx, o.directory, guildID, name)
}

func lookupRole(ctx context.Context, directory Directory, guildID, name string) (guild.Role, error) {
	role, err := directory.RoleByName(ctx, guildID, name)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return guild.Role{}, dErrors.Wrap(err, dErrors.CodeNotFound, fmt.Sprintf("the '%s' role does not exist on this server", name))
		}
		return guild.Role{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load server roles")
	}
	return role, nil
}

func (o *Operations) channel(ctx context.Context, guildID, name string) (string, error) {
	id, err := o.directory.ChannelByName(ctx, guildID, name)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return "", dErrors.Wrap(err, dErrors.CodeNotFound, fmt.Sprintf("the '#%s' channel does not exist on this server", name))
		}
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to load server channels")
	}
	return id, nil
}
