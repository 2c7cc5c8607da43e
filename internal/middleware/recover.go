package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/rs/zerolog/log"

	"github.com/stayhub/stayhub-api/internal/pkg/response"
)

// Recover catches panics and returns a 500 response
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error().
					Interface("panic", rec).
					Str("path", r.URL.Path).
					Str("request_id", GetRequestID(r.Context())).
					Bytes("stack", debug.Stack()).
					Msg("panic recovered")

				response.InternalError(w, "Internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
