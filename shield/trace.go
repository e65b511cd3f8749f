package shield

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/hazyhaar/strophe/idgen"
	"github.com/hazyhaar/strophe/kit"
)

var traceIDs = idgen.NanoID(8)

// TraceID assigns a random trace ID to each request and injects it
// into the context, the X-Trace-ID response header, and a per-request
// structured logger. The trace ID is stored under kit.TraceIDKey and
// the logger under LoggerKey.
func TraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := traceIDs()

		ctx := kit.WithTraceID(r.Context(), traceID)
		w.Header().Set("X-Trace-ID", traceID)

		logger := slog.Default().With(
			"trace_id", traceID,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
		)
		ctx = context.WithValue(ctx, LoggerKey, logger)
		logger.Info("request")

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
