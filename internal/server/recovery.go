package server

import (
	"log/slog"
	"net/http"
	"runtime/debug"
)

// recoveryMiddleware is the outer boundary for unexpected handler failures: a
// panic is logged with its stack and answered with a generic 500. The stack
// never reaches the caller and a single bad request never takes the process
// down.
func recoveryMiddleware(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if recovered := recover(); recovered != nil {
				if logger != nil {
					logger.Error("panic while handling request",
						"panic", recovered,
						"path", r.URL.Path,
						"stack", string(debug.Stack()),
					)
				}
				writeMiddlewareError(w, http.StatusInternalServerError, "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
