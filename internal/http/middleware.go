package http

import (
	"context"
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
)

// Middleware defines the standard signature for an HTTP middleware.
type Middleware func(http.Handler) http.Handler

// Chain combines multiple middlewares into a single handler.
// The middlewares are applied in the order they are passed.
func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

// contextKey is a custom type to avoid key collisions in context.
type contextKey string

const (
	dryRunKey contextKey = "dryRun"
)

const adminSecretHeader = "X-Admin-Secret"

// paramsMiddleware handles common query parameters like 'verbose' and 'dry_run'.
// A request-scoped logger is stored in the context; 'verbose' lowers only
// that logger to debug.
func paramsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.Default().With("method", r.Method, "path", r.URL.Path)
		if r.URL.Query().Get("verbose") == "true" {
			logger.SetLevel(log.DebugLevel)
		}
		logger.Info("incoming request", "url", r.URL.String())

		// Handle 'dry_run' and add it to the request context.
		isDryRun := r.URL.Query().Get("dry_run") == "true"
		ctx := context.WithValue(r.Context(), dryRunKey, isDryRun)
		ctx = log.WithContext(ctx, logger)

		// Call the next handler with the modified context.
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requestLogger returns the logger paramsMiddleware attached to r, or the
// default logger.
func requestLogger(r *http.Request) *log.Logger {
	return log.FromContext(r.Context())
}

// isDryRunFromContext is a helper to safely retrieve the dry_run flag from the request context.
func isDryRunFromContext(r *http.Request) bool {
	dryRun, ok := r.Context().Value(dryRunKey).(bool)
	return ok && dryRun
}

// adminMiddleware only lets requests through that carry the configured admin
// secret. With no secret configured admin routes are disabled.
func (s *Server) adminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.Cfg.AdminSecret == "" {
			log.Warn("Admin route called but no admin secret is configured", "path", r.URL.Path)
			writeJSON(w, http.StatusForbidden, errorResponse{Error: "admin actions are disabled"})
			return
		}
		given := r.Header.Get(adminSecretHeader)
		if subtle.ConstantTimeCompare([]byte(given), []byte(s.Cfg.AdminSecret)) != 1 {
			log.Warn("Rejected admin request", "path", r.URL.Path, "remote", r.RemoteAddr)
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid admin secret"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// timed observes the handler duration under route.
func (s *Server) timed(route string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			s.Metrics.ObserveRequestDuration(route, time.Since(start).Seconds())
		})
	}
}
