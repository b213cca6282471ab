package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"birdcam-gallery/internal/logging"
)

// RequestIDHeader carries the per-request identifier on responses.
const RequestIDHeader = "X-Request-ID"

// RequestLogger assigns each request an identifier and logs method, path,
// status, size, and latency at debug level once the handler returns. Health
// check endpoints are skipped to keep probe noise out of the logs.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if healthCheckPaths[r.URL.Path] {
			next.ServeHTTP(w, r)
			return
		}

		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)

		rw := newResponseWriter(w)
		start := time.Now()

		next.ServeHTTP(rw, r)

		logging.Debug("%s %s %s -> %d (%d bytes, %s) [%s]",
			r.RemoteAddr, r.Method, r.URL.RequestURI(),
			rw.statusCode, rw.bytesWritten, time.Since(start), id)
	})
}
