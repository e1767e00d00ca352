package logging

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// RequestLogger logs one record per request once the response is written.
// The level follows the status: 5xx error, 4xx warn, otherwise info.
// It must run after chi's RequestID middleware to pick up the id.
func RequestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	logger = WithComponent(logger, ComponentHTTP)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				status := ww.Status()
				if status == 0 {
					status = http.StatusOK
				}

				level := slog.LevelInfo
				switch {
				case status >= 500:
					level = slog.LevelError
				case status >= 400:
					level = slog.LevelWarn
				}

				logger.LogAttrs(r.Context(), level, "request completed",
					slog.String(FieldRequestID, middleware.GetReqID(r.Context())),
					slog.String(FieldMethod, r.Method),
					slog.String(FieldPath, r.URL.Path),
					slog.Int(FieldStatusCode, status),
					slog.Int(FieldBytes, ww.BytesWritten()),
					slog.Int64(FieldDuration, time.Since(start).Milliseconds()),
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
