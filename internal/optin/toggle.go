// Package optin flips a self-service notification role on and off.
package optin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"warden/internal/guild"
	"warden/internal/platform/metrics"
	dErrors "warden/pkg/domain-errors"
	audit "warden/pkg/platform/audit"
)

// ButtonID is the component custom ID of the opt-in button.
const ButtonID = "warden:optin:toggle"

// Action is what Toggle did.
type Action string

const (
	ActionAdded   Action = "added"
	ActionRemoved Action = "removed"
)

type RoleMutator interface {
	AddRole(ctx context.Context, member guild.Member, role guild.Role, reason string) error
	RemoveRole(ctx context.Context, member guild.Member, role guild.Role, reason string) error
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

type Service struct {
	mutator        RoleMutator
	logger         *slog.Logger
	metrics        *metrics.Metrics
	auditPublisher AuditPublisher
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func New(mutator RoleMutator, opts ...Option) (*Service, error) {
	if mutator == nil {
		return nil, errors.New("role mutator is required")
	}
	s := &Service{mutator: mutator, logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Toggle removes role if member holds it, otherwise adds it.
func (s *Service) Toggle(ctx context.Context, member guild.Member, role guild.Role) (Action, error) {
	action, op, event, failed := ActionAdded, "add", audit.EventRoleGranted, audit.EventRoleGrantFailed
	if member.HasRole(role.ID) {
		action, op, event, failed = ActionRemoved, "remove", audit.EventRoleRemoved, audit.EventRoleRemoveFailed
	}

	var err error
	reason := "Self-service opt-in toggle."
	if action == ActionRemoved {
		err = s.mutator.RemoveRole(ctx, member, role, reason)
	} else {
		err = s.mutator.AddRole(ctx, member, role, reason)
	}
	outcome := guild.OutcomeOf(err)
	if s.metrics != nil {
		s.metrics.IncRoleMutation(op, string(outcome))
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "opt-in toggle failed",
			"guild_id", member.GuildID,
			"user_id", member.ID,
			"role", role.Name,
			"operation", op,
			"error", err,
		)
		s.emit(ctx, failed, member, role, outcome)
		code := dErrors.CodeInternal
		if outcome == guild.OutcomePermissionDenied {
			code = dErrors.CodeForbidden
		}
		return "", dErrors.Wrap(err, code, fmt.Sprintf("could not update the '%s' role", role.Name))
	}

	s.logger.InfoContext(ctx, "opt-in toggled",
		"guild_id", member.GuildID,
		"user_id", member.ID,
		"role", role.Name,
		"action", action,
	)
	s.emit(ctx, event, member, role, outcome)
	return action, nil
}

// Reply is the ephemeral confirmation shown to the member.
func Reply(action Action, role guild.Role) string {
	if action == ActionRemoved {
		return fmt.Sprintf("You will no longer receive '%s' pings.", role.Name)
	}
	return fmt.Sprintf("You are now subscribed to '%s' pings.", role.Name)
}

func (s *Service) emit(ctx context.Context, action audit.AuditEvent, member guild.Member, role guild.Role, outcome guild.Outcome) {
	if s.auditPublisher == nil {
		return
	}
	event := audit.NewEvent(action)
	event.GuildID = member.GuildID
	event.UserID = member.ID
	event.RoleID = role.ID
	event.ActorID = member.ID
	event.Outcome = string(outcome)
	if err := s.auditPublisher.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "audit emit failed", "action", action, "error", err)
	}
}
