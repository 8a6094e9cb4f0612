// Package reconcile grants a role to every roster member listed in a remote identity
// document and reports the lines it could not resolve.
package reconcile

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"warden/internal/document"
	"warden/internal/guild"
	"warden/internal/identity"
	"warden/internal/platform/metrics"
	"warden/internal/roster"
	dErrors "warden/pkg/domain-errors"
	audit "warden/pkg/platform/audit"
	"warden/pkg/requestcontext"
)

// GrantReason is attached to every role grant issued by a reconciliation pass.
const GrantReason = "Listed in the attendee document."

type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) ([]byte, error)
}

type RoleMutator interface {
	AddRole(ctx context.Context, member guild.Member, role guild.Role, reason string) error
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// GrantFailure records a matched member whose role grant was refused or failed.
type GrantFailure struct {
	Line    string
	Member  guild.Member
	Outcome guild.Outcome
	Err     error
}

// Report summarises one pass. UnmatchedLines keep document order.
type Report struct {
	RunID          uuid.UUID
	TotalLines     int
	MatchedCount   int
	UnmatchedLines []string
	FailedGrants   []GrantFailure
}

// Granted is the number of matched members whose grant succeeded.
func (r *Report) Granted() int {
	return r.MatchedCount - len(r.FailedGrants)
}

// Service runs reconciliation passes.
type Service struct {
	fetcher        Fetcher
	mutator        RoleMutator
	logger         *slog.Logger
	metrics        *metrics.Metrics
	auditPublisher AuditPublisher
	tracer         trace.Tracer
	now            func() time.Time
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

func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tracer
	}
}

// New constructs a Service. Fetcher and mutator are required.
func New(fetcher Fetcher, mutator RoleMutator, opts ...Option) (*Service, error) {
	if fetcher == nil {
		return nil, errors.New("document fetcher is required")
	}
	if mutator == nil {
		return nil, errors.New("role mutator is required")
	}
	s := &Service{
		fetcher: fetcher,
		mutator: mutator,
		logger:  slog.New(slog.DiscardHandler),
		tracer:  otel.Tracer("warden/internal/reconcile"),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Reconcile fetches documentURL, resolves each identity line against members and
// grants role to every match, in document order.
//
// A fetch failure aborts before any mutation and returns a fetch_failed error with
// a nil report. Once the document is in hand the pass always completes: grant
// failures are recorded in the report and do not stop later lines.
func (s *Service) Reconcile(ctx context.Context, documentURL string, members []guild.Member, role guild.Role) (*Report, error) {
	start := s.now()
	report := &Report{RunID: uuid.New(), UnmatchedLines: []string{}}

	ctx, span := s.tracer.Start(ctx, "reconcile.Reconcile", trace.WithAttributes(
		attribute.String("reconcile.run_id", report.RunID.String()),
		attribute.String("guild.role_id", role.ID),
		attribute.Int("guild.roster_size", len(members)),
	))
	defer span.End()

	body, err := s.fetcher.Fetch(ctx, documentURL)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch failed")
		s.logger.ErrorContext(ctx, "attendee document fetch failed",
			"run_id", report.RunID,
			"url", documentURL,
			"error", err,
		)
		s.observe("fetch_failed", 0, 0, start)
		return nil, dErrors.Wrap(err, dErrors.CodeFetchFailed, fetchFailureMessage(err))
	}

	index := roster.NewIndex(members)
	for _, line := range identity.Lines(body) {
		report.TotalLines++
		res := index.Resolve(line.Key, line.Raw)
		if !res.Matched() {
			report.UnmatchedLines = append(report.UnmatchedLines, res.Raw)
			continue
		}
		report.MatchedCount++
		s.grant(ctx, report, line.Raw, *res.Member, role)
	}

	span.SetAttributes(
		attribute.Int("reconcile.total_lines", report.TotalLines),
		attribute.Int("reconcile.matched", report.MatchedCount),
		attribute.Int("reconcile.unmatched", len(report.UnmatchedLines)),
		attribute.Int("reconcile.failed_grants", len(report.FailedGrants)),
	)

	result := "ok"
	if len(report.FailedGrants) > 0 {
		result = "partial"
	}
	s.observe(result, report.MatchedCount, len(report.UnmatchedLines), start)
	s.logger.InfoContext(ctx, "reconciliation finished",
		"run_id", report.RunID,
		"role", role.Name,
		"total_lines", report.TotalLines,
		"matched", report.MatchedCount,
		"unmatched", len(report.UnmatchedLines),
		"failed_grants", len(report.FailedGrants),
	)
	s.emit(ctx, audit.EventBulkImportFinished, report.RunID, "", role.ID, result, strconv.Itoa(report.TotalLines)+" lines")
	return report, nil
}

func (s *Service) grant(ctx context.Context, report *Report, raw string, member guild.Member, role guild.Role) {
	err := s.mutator.AddRole(ctx, member, role, GrantReason)
	outcome := guild.OutcomeOf(err)
	if s.metrics != nil {
		s.metrics.IncRoleMutation("add", string(outcome))
	}
	if err == nil {
		s.emit(ctx, audit.EventRoleGranted, report.RunID, member.ID, role.ID, string(outcome), GrantReason)
		return
	}

	report.FailedGrants = append(report.FailedGrants, GrantFailure{
		Line:    raw,
		Member:  member,
		Outcome: outcome,
		Err:     err,
	})
	s.logger.WarnContext(ctx, "role grant failed, continuing",
		"run_id", report.RunID,
		"user_id", member.ID,
		"user", member.Label(),
		"role", role.Name,
		"outcome", outcome,
		"error", err,
	)
	s.emit(ctx, audit.EventRoleGrantFailed, report.RunID, member.ID, role.ID, string(outcome), err.Error())
}

// emit is fail-open: an audit outage never changes the pass result.
func (s *Service) emit(ctx context.Context, action audit.AuditEvent, runID uuid.UUID, userID, roleID, outcome, reason string) {
	if s.auditPublisher == nil {
		return
	}
	event := audit.NewEvent(action)
	event.GuildID = requestcontext.GuildID(ctx)
	event.UserID = userID
	event.RoleID = roleID
	event.Outcome = outcome
	event.Reason = reason
	event.RunID = runID.String()
	event.RequestID = requestcontext.RequestID(ctx)
	event.ActorID = requestcontext.ActorID(ctx)
	if err := s.auditPublisher.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "audit emit failed", "action", action, "error", err)
	}
}

func (s *Service) observe(result string, matched, unmatched int, start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveReconcile(result, matched, unmatched, s.now().Sub(start))
	}
}

func fetchFailureMessage(err error) string {
	if errors.Is(err, document.ErrTooLarge) {
		return "the attendee document is too large"
	}
	if fe, ok := document.AsFetchError(err); ok && fe.StatusCode != 0 {
		return "attendee document returned HTTP " + strconv.Itoa(fe.StatusCode)
	}
	return "could not download the attendee document"
}
