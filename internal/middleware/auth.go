package middleware

import (
	"crypto/subtle"
	"net/http"

	"go.uber.org/zap"
)

// APIKeyHeader is the request header carrying the shared secret
const APIKeyHeader = "X-API-Key"

// APIKeyAuth gates mutating routes behind a single shared secret. The
// header value must equal the configured key; anything else short-circuits
// with 401 and the downstream handler never runs. Read-only routes are
// registered outside this middleware and bypass it entirely.
func APIKeyAuth(apiKey string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provided := r.Header.Get(APIKeyHeader)
			if provided == "" {
				logger.Debug("Missing API key header",
					zap.String("path", r.URL.Path),
					zap.String("method", r.Method),
				)
				RespondWithError(w, http.StatusUnauthorized, "missing API key")
				return
			}

			if subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) != 1 {
				logger.Debug("Invalid API key",
					zap.String("path", r.URL.Path),
					zap.String("method", r.Method),
				)
				RespondWithError(w, http.StatusUnauthorized, "invalid API key")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
