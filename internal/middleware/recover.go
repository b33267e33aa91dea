package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"souveno-backend/internal/transport"
)

// Recover turns panics into a JSON 500. The panic value is logged with the
// request id; it reaches the response body only in development mode.
func Recover(log *slog.Logger, dev bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					log.Error("panic recovered",
						slog.String("request_id", RequestIDFromContext(r.Context())),
						slog.String("method", r.Method),
						slog.String("path", r.URL.Path),
						slog.String("panic", fmt.Sprint(rec)),
					)
					transport.WriteInternalError(w, "Something went wrong!", fmt.Sprint(rec), dev)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
