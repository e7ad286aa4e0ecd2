package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"
)

// Recover turns a panicking handler into a 500 response.
func Recover(lg *slog.Logger) func(http.Handler) http.Handler {
	if lg == nil {
		lg = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if v := recover(); v != nil {
					if v == http.ErrAbortHandler {
						panic(v)
					}
					lg.ErrorContext(r.Context(), "panic serving request",
						"path", r.URL.Path, "panic", v, "stack", string(debug.Stack()))
					writeError(w, http.StatusInternalServerError, "Something broke!")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
