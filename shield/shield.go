// Package shield provides the HTTP middleware stack for the anthology
// service: security headers, body size limits, request tracing, rate
// limiting, and HEAD method handling.
//
// Usage:
//
//	r := chi.NewRouter()
//	for _, mw := range shield.Stack(shield.Defaults()) {
//	    r.Use(mw)
//	}
package shield

import (
	"context"
	"log/slog"
	"net/http"
)

type contextKey string

// LoggerKey is the context key for the per-request structured logger.
const LoggerKey contextKey = "shield_logger"

// Config tunes the default middleware stack.
type Config struct {
	// MaxBodyBytes caps request body size. Default 64 MB, sized for
	// document uploads.
	MaxBodyBytes int64

	// UploadLimit rate-limits document ingestion per client IP.
	// Zero disables it.
	UploadLimit Limit
}

// Defaults returns the standard configuration.
func Defaults() Config {
	return Config{
		MaxBodyBytes: 64 << 20,
		UploadLimit:  Limit{MaxRequests: 30, Window: 60},
	}
}

// Stack returns the default middleware stack, outermost first:
// HeadToGet, SecurityHeaders, MaxBody, TraceID, then the upload rate
// limiter on POST /api/v1/documents.
func Stack(cfg Config) []func(http.Handler) http.Handler {
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 64 << 20
	}
	rl := NewRateLimiter(map[string]Limit{
		"POST /api/v1/documents": cfg.UploadLimit,
	})
	return []func(http.Handler) http.Handler{
		HeadToGet,
		SecurityHeaders(DefaultHeaders()),
		MaxBody(cfg.MaxBodyBytes),
		TraceID,
		rl.Middleware,
	}
}

// GetLogger retrieves the per-request logger from the context.
// Returns slog.Default() if no logger was set.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(LoggerKey).(*slog.Logger); ok {
		return l
	}
	return slog.Default()
}
