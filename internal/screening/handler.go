// Package screening grants the member role once a joining user completes the
// platform's membership screening gate.
package screening

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"warden/internal/guild"
	"warden/internal/platform/metrics"
	dErrors "warden/pkg/domain-errors"
	audit "warden/pkg/platform/audit"
	"warden/pkg/requestcontext"
)

// Reason is the audit-log reason attached to the grant.
const Reason = "Completed member screening."

// Transition is what HandleMemberUpdate did.
type Transition string

const (
	TransitionNone    Transition = "none"
	TransitionGranted Transition = "granted"
	TransitionFailed  Transition = "failed"
)

type RoleMutator interface {
	AddRole(ctx context.Context, member guild.Member, role guild.Role, reason string) error
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Handler reacts to member lifecycle events.
type Handler struct {
	mutator        RoleMutator
	logger         *slog.Logger
	metrics        *metrics.Metrics
	auditPublisher AuditPublisher
}

type Option func(*Handler)

func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		h.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(h *Handler) {
		h.metrics = m
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(h *Handler) {
		h.auditPublisher = publisher
	}
}

func New(mutator RoleMutator, opts ...Option) (*Handler, error) {
	if mutator == nil {
		return nil, errors.New("role mutator is required")
	}
	h := &Handler{mutator: mutator, logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// HandleMemberUpdate grants role when the member's pending flag goes from true to
// false. Any other edge, including an unknown prior state, is TransitionNone.
//
// A failed grant is terminal: it returns TransitionFailed and a coded error whose
// chain still carries the mutator's error, so guild.OutcomeOf classifies it.
func (h *Handler) HandleMemberUpdate(ctx context.Context, before, after *guild.Member, role guild.Role) (Transition, error) {
	if before == nil || after == nil || !before.Pending || after.Pending {
		return TransitionNone, nil
	}

	h.logger.InfoContext(ctx, "member completed screening",
		"guild_id", after.GuildID,
		"user_id", after.ID,
		"user", after.Label(),
		"role", role.Name,
	)

	err := h.mutator.AddRole(ctx, *after, role, Reason)
	outcome := guild.OutcomeOf(err)
	if h.metrics != nil {
		h.metrics.IncRoleMutation("add", string(outcome))
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "screening role grant failed",
			"guild_id", after.GuildID,
			"user_id", after.ID,
			"role", role.Name,
			"outcome", outcome,
			"error", err,
		)
		h.record(ctx, TransitionFailed, audit.EventScreeningFailed, after, role, string(outcome))
		code := dErrors.CodeInternal
		if outcome == guild.OutcomePermissionDenied {
			code = dErrors.CodeForbidden
		}
		return TransitionFailed, dErrors.Wrap(err, code, fmt.Sprintf("could not grant the '%s' role", role.Name))
	}

	h.logger.InfoContext(ctx, "granted screening role",
		"guild_id", after.GuildID,
		"user_id", after.ID,
		"role", role.Name,
	)
	h.record(ctx, TransitionGranted, audit.EventScreeningCompleted, after, role, string(outcome))
	return TransitionGranted, nil
}

// HandleMemberJoin logs the join and returns the announcement for the status channel.
func (h *Handler) HandleMemberJoin(ctx context.Context, member guild.Member) string {
	h.logger.InfoContext(ctx, "member joined",
		"guild_id", member.GuildID,
		"user_id", member.ID,
		"user", member.Label(),
	)
	return JoinAnnouncement(member)
}

// JoinAnnouncement is the public welcome line for member.
func JoinAnnouncement(member guild.Member) string {
	return fmt.Sprintf("Hey! %s just joined the server!", member.Mention())
}

func (h *Handler) record(ctx context.Context, t Transition, action audit.AuditEvent, member *guild.Member, role guild.Role, outcome string) {
	if h.metrics != nil {
		h.metrics.IncScreening(string(t))
	}
	if h.auditPublisher == nil {
		return
	}
	event := audit.NewEvent(action)
	event.GuildID = member.GuildID
	event.UserID = member.ID
	event.RoleID = role.ID
	event.Outcome = outcome
	event.Reason = Reason
	event.RequestID = requestcontext.RequestID(ctx)
	if err := h.auditPublisher.Emit(ctx, event); err != nil {
		h.logger.WarnContext(ctx, "audit emit failed", "action", action, "error", err)
	}
}
