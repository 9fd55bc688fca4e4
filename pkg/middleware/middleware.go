package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/towfit/towbar-filter-service/pkg/logger"
	"go.uber.org/zap"
)

// RequestID tags every request with an X-Request-ID, generating one when the
// client did not send it.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get("X-Request-ID")
		if reqID == "" {
			reqID = uuid.New().String()
		}
		w.Header().Set("X-Request-ID", reqID)
		r.Header.Set("X-Request-ID", reqID)
		next.ServeHTTP(w, r)
	})
}

// AccessLog writes one structured line per request.
func AccessLog(log logger.ZapLogger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", r.Header.Get("X-Request-ID")),
			zap.Duration("duration", time.Since(start)),
		)
	})
}
