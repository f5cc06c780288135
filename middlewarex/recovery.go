package middlewarex

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"descrow/logx"
)

func Recovery(log *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					log.Error(
						"panic in handler",
						slog.Any(logx.FieldError, rec),
						slog.String(logx.FieldStack, string(debug.Stack())),
					)

					w.WriteHeader(http.StatusInternalServerError)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
