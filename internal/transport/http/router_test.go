package httptransport

//go:generate mockgen -source=handlers_admin.go -destination=mocks/admin-mocks.go -package=mocks BulkOperations,AuditReader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"warden/internal/guild"
	"warden/internal/platform/metrics"
	"warden/internal/platform/middleware"
	"warden/internal/reconcile"
	"warden/internal/rules"
	"warden/internal/transport/http/mocks"
	dErrors "warden/pkg/domain-errors"
	audit "warden/pkg/platform/audit"
	"warden/pkg/platform/sentinel"
	"warden/pkg/testutil"
)

const adminToken = "s3cret"

type healthFunc func(context.Context) error

func (f healthFunc) Health(ctx context.Context) error { return f(ctx) }

func newTestRouter(t *testing.T, checks map[string]HealthChecker) (http.Handler, *mocks.MockBulkOperations, *mocks.MockAuditReader) {
	ctrl := gomock.NewController(t)
	ops := mocks.NewMockBulkOperations(ctrl)
	auditReader := mocks.NewMockAuditReader(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	reg := prometheus.NewRegistry()
	metrics.New(reg).IncCommand("ping", "ok")

	return NewRouter(RouterConfig{
		Admin:      NewAdminHandler(ops, auditReader, logger),
		AdminToken: adminToken,
		Gatherer:   reg,
		Checks:     checks,
		Logger:     logger,
	}), ops, auditReader
}

func do(t *testing.T, h http.Handler, method, path, body string, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := testutil.NewRequestWithBody(t, method, path, body)
	if token != "" {
		req.Header.Set(middleware.AdminTokenHeader, token)
	}
	return testutil.DoRequest(h, req)
}

func TestHealthz(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		h, _, _ := newTestRouter(t, map[string]HealthChecker{"redis": healthFunc(func(context.Context) error { return nil })})
		rec := do(t, h, http.MethodGet, "/healthz", "", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"ok","redis":"ok"}`, rec.Body.String())
		assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
	})

	t.Run("degraded", func(t *testing.T) {
		h, _, _ := newTestRouter(t, map[string]HealthChecker{"redis": healthFunc(func(context.Context) error { return errors.New("down") })})
		rec := do(t, h, http.MethodGet, "/healthz", "", "")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.JSONEq(t, `{"status":"degraded","redis":"unavailable"}`, rec.Body.String())
	})
}

func TestMetricsEndpoint(t *testing.T) {
	h, _, _ := newTestRouter(t, nil)
	rec := do(t, h, http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `warden_commands_handled_total{command="ping",result="ok"} 1`)
}

func TestAdminRequiresToken(t *testing.T) {
	h, _, _ := newTestRouter(t, nil)
	assert.Equal(t, http.StatusUnauthorized, do(t, h, http.MethodPost, "/admin/guilds/555/onsite", `{"url":"u"}`, "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(t, h, http.MethodPost, "/admin/guilds/555/onsite", `{"url":"u"}`, "wrong").Code)
}

func TestImportAttendees(t *testing.T) {
	t.Run("returns the report", func(t *testing.T) {
		h, ops, _ := newTestRouter(t, nil)
		runID := uuid.New()
		ops.EXPECT().ImportAttendees(gomock.Any(), "555", "https://x/doc").Return(&reconcile.Report{
			RunID:          runID,
			TotalLines:     3,
			MatchedCount:   2,
			UnmatchedLines: []string{"ghost"},
			FailedGrants: []reconcile.GrantFailure{
				{Line: "bob", Member: guild.Member{ID: "9"}, Outcome: guild.OutcomePermissionDenied},
			},
		}, nil)

		rec := do(t, h, http.MethodPost, "/admin/guilds/555/onsite", `{"url":"https://x/doc"}`, adminToken)
		require.Equal(t, http.StatusOK, rec.Code)

		body := testutil.UnmarshalResponse[reportResponse](t, rec)
		assert.Equal(t, runID.String(), body.RunID)
		assert.Equal(t, 1, body.Granted)
		assert.Equal(t, []string{"ghost"}, body.UnmatchedLines)
		assert.Equal(t, []grantFailureResponse{{Line: "bob", MemberID: "9", Outcome: "permission_denied"}}, body.FailedGrants)
	})

	t.Run("validation", func(t *testing.T) {
		h, _, _ := newTestRouter(t, nil)
		assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/admin/guilds/555/onsite", `{}`, adminToken).Code)
		assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/admin/guilds/555/onsite", `{"url":"u","x":1}`, adminToken).Code)
		assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/admin/guilds/555/onsite", ``, adminToken).Code)
	})

	t.Run("domain errors map to status", func(t *testing.T) {
		h, ops, _ := newTestRouter(t, nil)
		ops.EXPECT().ImportAttendees(gomock.Any(), "555", "u").
			Return(nil, dErrors.New(dErrors.CodeConflict, "another bulk operation is already running for this server"))

		rec := do(t, h, http.MethodPost, "/admin/guilds/555/onsite", `{"url":"u"}`, adminToken)
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.JSONEq(t, `{"error":"conflict","error_description":"another bulk operation is already running for this server"}`, rec.Body.String())
	})
}

func TestPublishRules(t *testing.T) {
	t.Run("preview", func(t *testing.T) {
		h, ops, _ := newTestRouter(t, nil)
		ops.EXPECT().PublishRules(gomock.Any(), "555", rules.ModePreview).
			Return(&rules.Outcome{Mode: rules.ModePreview, Channel: "s", Chunks: 2, Total: 4, Sent: 4}, nil)

		rec := do(t, h, http.MethodPost, "/admin/guilds/555/rules", `{"mode":"test"}`, adminToken)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"mode":"test","channel":"s","chunks":2,"total":4,"sent":4}`, rec.Body.String())
	})

	t.Run("unknown mode", func(t *testing.T) {
		h, _, _ := newTestRouter(t, nil)
		rec := do(t, h, http.MethodPost, "/admin/guilds/555/rules", `{"mode":"publish"}`, adminToken)
		testutil.AssertStatusAndError(t, rec, http.StatusBadRequest, "validation_error")
	})

	t.Run("partial publish reports progress", func(t *testing.T) {
		h, ops, _ := newTestRouter(t, nil)
		ops.EXPECT().PublishRules(gomock.Any(), "555", rules.ModePush).
			Return(&rules.Outcome{Mode: rules.ModePush, Channel: "r", Chunks: 3, Total: 3, Sent: 1},
				&rules.PartialPublishError{Sent: 1, Total: 3, Err: errors.New("x")})

		rec := do(t, h, http.MethodPost, "/admin/guilds/555/rules", `{"mode":"push"}`, adminToken)
		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.Contains(t, rec.Body.String(), `"sent":1`)
	})
}

func TestListAudit(t *testing.T) {
	t.Run("returns the guild's recent events", func(t *testing.T) {
		h, _, auditReader := newTestRouter(t, nil)
		ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		auditReader.EXPECT().Recent(gomock.Any(), "555", 50).Return([]audit.Event{
			{Category: audit.CategoryModeration, Timestamp: ts, GuildID: "555", UserID: "9", RoleID: "30",
				Action: string(audit.EventRoleGranted), Outcome: "granted", RunID: "run-1", ActorID: "7"},
		}, nil)

		rec := do(t, h, http.MethodGet, "/admin/guilds/555/audit", "", adminToken)
		require.Equal(t, http.StatusOK, rec.Code)

		body := testutil.UnmarshalResponse[auditListResponse](t, rec)
		assert.Equal(t, "555", body.GuildID)
		require.Len(t, body.Events, 1)
		assert.Equal(t, auditEventResponse{
			Timestamp: ts, Category: "moderation", Action: string(audit.EventRoleGranted),
			UserID: "9", RoleID: "30", Outcome: "granted", RunID: "run-1", ActorID: "7",
		}, body.Events[0])
	})

	t.Run("empty trail renders an empty list", func(t *testing.T) {
		h, _, auditReader := newTestRouter(t, nil)
		auditReader.EXPECT().Recent(gomock.Any(), "555", 5).Return(nil, nil)

		rec := do(t, h, http.MethodGet, "/admin/guilds/555/audit?limit=5", "", adminToken)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"guild_id":"555","events":[]}`, rec.Body.String())
	})

	t.Run("limit is validated", func(t *testing.T) {
		h, _, _ := newTestRouter(t, nil)
		for _, q := range []string{"0", "-1", "501", "many"} {
			rec := do(t, h, http.MethodGet, "/admin/guilds/555/audit?limit="+q, "", adminToken)
			assert.Equal(t, http.StatusBadRequest, rec.Code, q)
		}
	})

	t.Run("write-only store is unavailable", func(t *testing.T) {
		h, _, auditReader := newTestRouter(t, nil)
		auditReader.EXPECT().Recent(gomock.Any(), "555", 50).
			Return(nil, fmt.Errorf("kafka audit store is write-only: %w", sentinel.ErrUnavailable))

		rec := do(t, h, http.MethodGet, "/admin/guilds/555/audit", "", adminToken)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("requires the admin token", func(t *testing.T) {
		h, _, _ := newTestRouter(t, nil)
		assert.Equal(t, http.StatusUnauthorized, do(t, h, http.MethodGet, "/admin/guilds/555/audit", "", "").Code)
	})
}
