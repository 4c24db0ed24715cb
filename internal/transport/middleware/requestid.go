package middleware

import (
	"net/http"

	"github.com/gatherhub/community/pkg/logger"

	"github.com/google/uuid"
)

// RequestID tags each request with a trace ID, honoring an inbound
// X-Trace-ID header so the ID survives proxy hops. The ID rides on the
// context logger and is echoed back in the response.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get("X-Trace-ID")
		if traceID == "" {
			traceID = uuid.NewString()
		}

		ctx := logger.With(r.Context(), "traceID", traceID)
		w.Header().Set("X-Trace-ID", traceID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
