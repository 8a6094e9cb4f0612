package middleware

import (
	"net/http"
	"time"

	"warden/pkg/requestcontext"
)

// RequestTime pins "now" for the request so every audit event it produces shares
// one timestamp.
func RequestTime(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithTime(r.Context(), time.Now())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
