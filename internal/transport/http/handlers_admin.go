package httptransport

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"warden/internal/reconcile"
	"warden/internal/rules"
	dErrors "warden/pkg/domain-errors"
	audit "warden/pkg/platform/audit"
	"warden/pkg/platform/httputil"
	"warden/pkg/platform/sentinel"
	"warden/pkg/requestcontext"
)

// BulkOperations is the operator-triggerable work. *bot.Operations implements it.
type BulkOperations interface {
	ImportAttendees(ctx context.Context, guildID, documentURL string) (*reconcile.Report, error)
	PublishRules(ctx context.Context, guildID string, mode rules.Mode) (*rules.Outcome, error)
}

// AuditReader lists recorded audit events. *publisher.Publisher implements it.
type AuditReader interface {
	Recent(ctx context.Context, guildID string, limit int) ([]audit.Event, error)
}

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 500
)

type importAttendeesRequest struct {
	URL string `json:"url"`
}

type grantFailureResponse struct {
	Line     string `json:"line"`
	MemberID string `json:"member_id"`
	Outcome  string `json:"outcome"`
}

type reportResponse struct {
	RunID          string                 `json:"run_id"`
	TotalLines     int                    `json:"total_lines"`
	MatchedCount   int                    `json:"matched_count"`
	Granted        int                    `json:"granted"`
	UnmatchedLines []string               `json:"unmatched_lines"`
	FailedGrants   []grantFailureResponse `json:"failed_grants"`
}

type publishRulesRequest struct {
	Mode string `json:"mode"`
}

type rulesOutcomeResponse struct {
	Mode    string `json:"mode"`
	Channel string `json:"channel"`
	Chunks  int    `json:"chunks"`
	Total   int    `json:"total"`
	Sent    int    `json:"sent"`
}

type auditEventResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Category  string    `json:"category"`
	Action    string    `json:"action"`
	UserID    string    `json:"user_id,omitempty"`
	RoleID    string    `json:"role_id,omitempty"`
	Outcome   string    `json:"outcome,omitempty"`
	Reason    string    `json:"reason,omitempty"`
	RunID     string    `json:"run_id,omitempty"`
	ActorID   string    `json:"actor_id,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
}

type auditListResponse struct {
	GuildID string               `json:"guild_id"`
	Events  []auditEventResponse `json:"events"`
}

// AdminHandler serves the bulk operations and the audit trail over HTTP.
type AdminHandler struct {
	ops    BulkOperations
	audit  AuditReader
	logger *slog.Logger
}

func NewAdminHandler(ops BulkOperations, auditReader AuditReader, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{ops: ops, audit: auditReader, logger: logger}
}

// Register mounts the admin routes on r.
func (h *AdminHandler) Register(r chi.Router) {
	r.Post("/guilds/{guildID}/onsite", h.handleImportAttendees)
	r.Post("/guilds/{guildID}/rules", h.handlePublishRules)
	r.Get("/guilds/{guildID}/audit", h.handleListAudit)
}

func (h *AdminHandler) handleImportAttendees(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	guildID := chi.URLParam(r, "guildID")

	req, err := httputil.DecodeJSON[importAttendeesRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if req.URL == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "url is required"))
		return
	}

	ctx = requestcontext.WithActorID(ctx, "admin-api")
	report, err := h.ops.ImportAttendees(ctx, guildID, req.URL)
	if err != nil {
		h.logger.ErrorContext(ctx, "attendee import failed",
			"request_id", requestcontext.RequestID(ctx),
			"guild_id", guildID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toReportResponse(report))
}

func (h *AdminHandler) handlePublishRules(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	guildID := chi.URLParam(r, "guildID")

	req, err := httputil.DecodeJSON[publishRulesRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	mode, err := rules.ParseMode(req.Mode)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	ctx = requestcontext.WithActorID(ctx, "admin-api")
	outcome, err := h.ops.PublishRules(ctx, guildID, mode)
	if err != nil {
		h.logger.ErrorContext(ctx, "rules publication failed",
			"request_id", requestcontext.RequestID(ctx),
			"guild_id", guildID,
			"error", err,
		)
		if outcome != nil {
			httputil.WriteJSON(w, http.StatusBadGateway, map[string]any{
				"error":   "partial_publish",
				"outcome": toRulesOutcomeResponse(outcome),
			})
			return
		}
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toRulesOutcomeResponse(outcome))
}

func (h *AdminHandler) handleListAudit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	guildID := chi.URLParam(r, "guildID")

	limit := defaultAuditLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxAuditLimit {
			httputil.WriteError(w, dErrors.New(dErrors.CodeValidation,
				"limit must be between 1 and "+strconv.Itoa(maxAuditLimit)))
			return
		}
		limit = n
	}

	events, err := h.audit.Recent(ctx, guildID, limit)
	if err != nil {
		if errors.Is(err, sentinel.ErrUnavailable) {
			httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeUnavailable, "audit events are not readable from the configured store"))
			return
		}
		h.logger.ErrorContext(ctx, "listing audit events failed",
			"request_id", requestcontext.RequestID(ctx),
			"guild_id", guildID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	resp := auditListResponse{GuildID: guildID, Events: make([]auditEventResponse, 0, len(events))}
	for _, e := range events {
		resp.Events = append(resp.Events, auditEventResponse{
			Timestamp: e.Timestamp,
			Category:  string(e.Category),
			Action:    e.Action,
			UserID:    e.UserID,
			RoleID:    e.RoleID,
			Outcome:   e.Outcome,
			Reason:    e.Reason,
			RunID:     e.RunID,
			ActorID:   e.ActorID,
			RequestID: e.RequestID,
		})
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func toReportResponse(report *reconcile.Report) reportResponse {
	resp := reportResponse{
		RunID:          report.RunID.String(),
		TotalLines:     report.TotalLines,
		MatchedCount:   report.MatchedCount,
		Granted:        report.Granted(),
		UnmatchedLines: report.UnmatchedLines,
		FailedGrants:   make([]grantFailureResponse, 0, len(report.FailedGrants)),
	}
	if resp.UnmatchedLines == nil {
		resp.UnmatchedLines = []string{}
	}
	for _, f := range report.FailedGrants {
		resp.FailedGrants = append(resp.FailedGrants, grantFailureResponse{
			Line:     f.Line,
			MemberID: f.Member.ID,
			Outcome:  string(f.Outcome),
		})
	}
	return resp
}

func toRulesOutcomeResponse(o *rules.Outcome) rulesOutcomeResponse {
	return rulesOutcomeResponse{
		Mode:    string(o.Mode),
		Channel: o.Channel,
		Chunks:  o.Chunks,
		Total:   o.Total,
		Sent:    o.Sent,
	}
}
