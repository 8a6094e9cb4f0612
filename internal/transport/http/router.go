// Package httptransport exposes the operator HTTP surface: health, metrics and
// token-protected admin routes.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"warden/internal/platform/middleware"
	"warden/pkg/platform/httputil"
)

// HealthChecker reports whether a dependency is reachable.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// RouterConfig collects the router's collaborators.
type RouterConfig struct {
	Admin      *AdminHandler
	AdminToken string
	Gatherer   prometheus.Gatherer
	// Checks are named dependency probes for /healthz. Nil entries are skipped.
	Checks map[string]HealthChecker
	Logger *slog.Logger
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", healthHandler(cfg.Checks))
	if cfg.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}

	if cfg.Admin != nil {
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAdminToken(cfg.AdminToken, cfg.Logger))
			cfg.Admin.Register(r)
		})
	}
	return r
}

func healthHandler(checks map[string]HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := http.StatusOK
		body := map[string]string{"status": "ok"}
		for name, check := range checks {
			if check == nil {
				continue
			}
			if err := check.Health(r.Context()); err != nil {
				status = http.StatusServiceUnavailable
				body["status"] = "degraded"
				body[name] = "unavailable"
				continue
			}
			body[name] = "ok"
		}
		httputil.WriteJSON(w, status, body)
	}
}
