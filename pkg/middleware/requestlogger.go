package middleware

import (
	"log/slog"
	"net/http"

	"github.com/stitchwear/storefront/pkg/logger"
)

// RequestLogger places a context-enriched logger in the request context so
// handlers and httputil.WriteError log with correlation_id, user_id, and
// trace ids attached. Mount it after RequestLogging and Tracing; those set
// the fields it picks up.
func RequestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			// The gateway forwards the authenticated user as X-User-ID.
			if userID := r.Header.Get("X-User-ID"); userID != "" {
				ctx = logger.WithUserID(ctx, userID)
			}

			ctx = logger.NewContext(ctx, logger.WithContext(ctx, base))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
