// Package rules publishes a remotely hosted rules document to a channel, split into
// messages that fit the platform's length limit.
package rules

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"warden/internal/guild"
	"warden/internal/platform/metrics"
	dErrors "warden/pkg/domain-errors"
	audit "warden/pkg/platform/audit"
	"warden/pkg/requestcontext"
)

type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) ([]byte, error)
}

type Messenger interface {
	SendMessage(ctx context.Context, channelID, text string) error
}

type ChannelPurger interface {
	Purge(ctx context.Context, channelID string) error
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Request describes one publication.
type Request struct {
	DocumentURL    string
	Mode           Mode
	MaxChunkLength int
	// Destination receives the chunks in push mode.
	Destination string
	// StatusChannel receives the preview.
	StatusChannel string
	// MentionRoleID replaces MemberRolePlaceholder.
	MentionRoleID string
}

// Outcome describes what was posted. Sent counts messages, markers included.
type Outcome struct {
	Mode    Mode
	Channel string
	Chunks  int
	Total   int
	Sent    int
}

// Publisher fetches, validates and posts rules documents.
type Publisher struct {
	fetcher        Fetcher
	messenger      Messenger
	purger         ChannelPurger
	logger         *slog.Logger
	metrics        *metrics.Metrics
	auditPublisher AuditPublisher
	tracer         trace.Tracer
}

type Option func(*Publisher)

func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Publisher) {
		p.metrics = m
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(p *Publisher) {
		p.auditPublisher = publisher
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(p *Publisher) {
		p.tracer = tracer
	}
}

func New(fetcher Fetcher, messenger Messenger, purger ChannelPurger, opts ...Option) (*Publisher, error) {
	if fetcher == nil {
		return nil, errors.New("document fetcher is required")
	}
	if messenger == nil {
		return nil, errors.New("messenger is required")
	}
	if purger == nil {
		return nil, errors.New("channel purger is required")
	}
	p := &Publisher{
		fetcher:   fetcher,
		messenger: messenger,
		purger:    purger,
		logger:    slog.New(slog.DiscardHandler),
		tracer:    otel.Tracer("warden/internal/rules"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Publish fetches the document and posts it according to req.Mode.
//
// Nothing is posted unless the fetch succeeds and every chunk fits the limit. Once
// posting starts a send failure stops the sequence and returns a
// *PartialPublishError alongside an Outcome recording how far it got.
func (p *Publisher) Publish(ctx context.Context, req Request) (*Outcome, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	ctx, span := p.tracer.Start(ctx, "rules.Publish", trace.WithAttributes(
		attribute.String("rules.mode", string(req.Mode)),
	))
	defer span.End()

	body, err := p.fetcher.Fetch(ctx, req.DocumentURL)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch failed")
		p.logger.ErrorContext(ctx, "rules document fetch failed", "url", req.DocumentURL, "error", err)
		p.count(req.Mode, "fetch_failed")
		return nil, dErrors.Wrap(err, dErrors.CodeFetchFailed, "could not download the rules document")
	}

	doc := Parse(string(body), req.MentionRoleID)
	if len(doc.Chunks) == 0 {
		p.count(req.Mode, "invalid")
		return nil, dErrors.New(dErrors.CodeValidation, "rules document is empty")
	}
	if err := doc.Validate(req.MaxChunkLength); err != nil {
		p.logger.WarnContext(ctx, "rules document rejected", "error", err)
		p.count(req.Mode, "invalid")
		return nil, dErrors.Wrap(err, dErrors.CodeValidation, err.Error())
	}
	span.SetAttributes(attribute.Int("rules.chunks", len(doc.Chunks)))

	var outcome *Outcome
	switch req.Mode {
	case ModePush:
		outcome, err = p.push(ctx, req.Destination, doc)
	default:
		outcome, err = p.preview(ctx, req.StatusChannel, doc)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "publish failed")
		p.logger.ErrorContext(ctx, "rules publication failed",
			"mode", req.Mode,
			"channel", outcome.Channel,
			"sent", outcome.Sent,
			"total", outcome.Total,
			"error", err,
		)
		p.count(req.Mode, "partial")
		return outcome, err
	}

	p.logger.InfoContext(ctx, "rules published",
		"mode", req.Mode,
		"channel", outcome.Channel,
		"chunks", outcome.Chunks,
	)
	p.count(req.Mode, "ok")
	p.emit(ctx, req.Mode, outcome)
	return outcome, nil
}

func (p *Publisher) push(ctx context.Context, channelID string, doc Document) (*Outcome, error) {
	outcome := &Outcome{Mode: ModePush, Channel: channelID, Chunks: len(doc.Chunks), Total: len(doc.Chunks)}
	if err := p.purger.Purge(ctx, channelID); err != nil {
		code := dErrors.CodeInternal
		if guild.OutcomeOf(err) == guild.OutcomePermissionDenied {
			code = dErrors.CodeForbidden
		}
		return outcome, dErrors.Wrap(err, code, "could not clear the rules channel")
	}
	return outcome, p.send(ctx, outcome, doc.Chunks)
}

func (p *Publisher) preview(ctx context.Context, channelID string, doc Document) (*Outcome, error) {
	messages := make([]string, 0, len(doc.Chunks)+2)
	messages = append(messages, PreviewBegin)
	messages = append(messages, doc.Chunks...)
	messages = append(messages, PreviewEnd)

	outcome := &Outcome{Mode: ModePreview, Channel: channelID, Chunks: len(doc.Chunks), Total: len(messages)}
	return outcome, p.send(ctx, outcome, messages)
}

func (p *Publisher) send(ctx context.Context, outcome *Outcome, messages []string) error {
	for _, msg := range messages {
		if err := p.messenger.SendMessage(ctx, outcome.Channel, msg); err != nil {
			return &PartialPublishError{Sent: outcome.Sent, Total: outcome.Total, Err: err}
		}
		outcome.Sent++
	}
	return nil
}

func (p *Publisher) count(mode Mode, result string) {
	if p.metrics != nil {
		p.metrics.IncRulesPublished(string(mode), result)
	}
}

func (p *Publisher) emit(ctx context.Context, mode Mode, outcome *Outcome) {
	if p.auditPublisher == nil {
		return
	}
	action := audit.EventRulesPreviewed
	if mode == ModePush {
		action = audit.EventRulesPublished
	}
	event := audit.NewEvent(action)
	event.GuildID = requestcontext.GuildID(ctx)
	event.ActorID = requestcontext.ActorID(ctx)
	event.RequestID = requestcontext.RequestID(ctx)
	event.Outcome = "ok"
	event.Reason = fmt.Sprintf("%d chunks to %s", outcome.Chunks, outcome.Channel)
	if err := p.auditPublisher.Emit(ctx, event); err != nil {
		p.logger.WarnContext(ctx, "audit emit failed", "action", action, "error", err)
	}
}

func validateRequest(req Request) error {
	if req.DocumentURL == "" {
		return dErrors.New(dErrors.CodeValidation, "no rules document URL is configured")
	}
	if req.MaxChunkLength <= 0 {
		return dErrors.New(dErrors.CodeValidation, "max chunk length must be positive")
	}
	switch req.Mode {
	case ModePush:
		if req.Destination == "" {
			return dErrors.New(dErrors.CodeValidation, "push mode requires a destination channel")
		}
	case ModePreview:
		if req.StatusChannel == "" {
			return dErrors.New(dErrors.CodeValidation, "preview mode requires a status channel")
		}
	default:
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("unknown rules mode %q", req.Mode))
	}
	return nil
}
