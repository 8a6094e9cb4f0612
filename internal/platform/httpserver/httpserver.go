package httpserver

import (
	"net/http"
	"time"
)

// New builds the ops HTTP server with defaults suited to a small admin surface.
// WriteTimeout is generous because a bulk role import runs inside the request.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      20 * time.Minute,
		IdleTimeout:       60 * time.Second,
	}
}
