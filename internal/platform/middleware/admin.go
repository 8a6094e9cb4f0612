package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"warden/pkg/requestcontext"
)

// AdminTokenHeader carries the shared operator secret.
const AdminTokenHeader = "X-Admin-Token"

// RequireAdminToken rejects requests whose X-Admin-Token does not match expectedToken.
// An empty expectedToken disables the admin surface entirely.
func RequireAdminToken(expectedToken string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if expectedToken == "" {
				logger.WarnContext(ctx, "admin request rejected - admin token not configured",
					"request_id", requestcontext.RequestID(ctx),
				)
				writeUnauthorized(w, "admin surface disabled")
				return
			}

			token := r.Header.Get(AdminTokenHeader)
			if subtle.ConstantTimeCompare([]byte(token), []byte(expectedToken)) != 1 {
				logger.WarnContext(ctx, "admin token mismatch",
					"request_id", requestcontext.RequestID(ctx),
				)
				writeUnauthorized(w, "admin token required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func writeUnauthorized(w http.ResponseWriter, description string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"unauthorized","error_description":"` + description + `"}`))
}
