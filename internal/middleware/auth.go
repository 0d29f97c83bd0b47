package middleware

import (
	"crypto/subtle"
	"net/http"

	"catalog-service/pkg/logger"
	"catalog-service/prometheus"

	"github.com/labstack/echo/v4"
)

// HeaderAPIKey is the request header carrying the client key.
const HeaderAPIKey = "x-api-key"

// KeyVerifier checks a client-presented credential. The pipeline only depends
// on this capability, so per-client keys can replace the static secret without
// touching the middleware.
type KeyVerifier interface {
	Verify(presented string) bool
}

// StaticKey verifies against a single process-configured secret.
type StaticKey string

// Verify compares the presented key byte-for-byte against the secret. An
// empty configured secret rejects everything.
func (k StaticKey) Verify(presented string) bool {
	if len(k) == 0 {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(k), []byte(presented)) == 1
}

// APIKeyAuth gates every route behind the shared API key. A missing or
// mismatching key short-circuits the request before any other processing.
func APIKeyAuth(verifier KeyVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			prometheus.AuthAttemptsCounter.Inc()

			apiKey := c.Request().Header.Get(HeaderAPIKey)
			if apiKey == "" || !verifier.Verify(apiKey) {
				log := logger.FromContext(c)
				log.Warn("Rejected request with missing or invalid API key")
				prometheus.AuthErrorsCounter.Inc()
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"message": "Unauthorized",
				})
			}

			prometheus.AuthSuccessCounter.Inc()
			return next(c)
		}
	}
}
