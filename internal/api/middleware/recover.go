package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/geezit/geezit-server/internal/utils"
)

// Recover turns a panicking handler into a 500 {"error": "Server error"}.
func Recover(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if p := recover(); p != nil {
					if p == http.ErrAbortHandler {
						panic(p)
					}
					log.ErrorContext(r.Context(), "panic serving request",
						"path", r.URL.Path,
						"panic", p,
						"stack", string(debug.Stack()),
						"request_id", RequestIDFromContext(r.Context()),
					)
					utils.ErrorResponse(w, http.StatusInternalServerError, "Server error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
