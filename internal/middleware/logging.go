// Package middleware provides HTTP middleware for the marketdash API server.
package middleware

import (
	"log/slog"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// SlowRequest is the duration above which a successful request is logged
// at warn level. Generation calls routinely take several seconds.
var SlowRequest = 30 * time.Second

// Logger records method, path, status, size, duration and request id for
// every HTTP request.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			// Nothing was written; net/http sends an empty 200.
			status = http.StatusOK
		}
		elapsed := time.Since(start)

		slog.Log(r.Context(), logLevel(status, elapsed), "http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration", elapsed.String(),
			"request_id", chimw.GetReqID(r.Context()),
			"remote", r.RemoteAddr,
		)
	})
}

func logLevel(status int, elapsed time.Duration) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case elapsed > SlowRequest:
		return slog.LevelWarn
	}
	return slog.LevelInfo
}
