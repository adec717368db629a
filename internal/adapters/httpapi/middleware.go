package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/example/demonlist/internal/ctxutil"
	"github.com/example/demonlist/internal/logging"
)

// Request headers carrying caller identity.
const (
	HeaderRequestID = "X-Request-ID"
	HeaderActor     = "X-Actor"
)

// requestContext puts a request ID and the caller's actor into the request
// context and logs every request once it completes.
func requestContext(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := ctxutil.WithRequestID(r.Context(), r.Header.Get(HeaderRequestID))
			if actor := r.Header.Get(HeaderActor); actor != "" {
				ctx = ctxutil.WithActorID(ctx, actor)
			}
			w.Header().Set(HeaderRequestID, ctxutil.RequestIDFromContext(ctx))

			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			logging.FromContext(ctx, logger).Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}
