// Package auth implements the gateway-trust boundary. Requests arrive
// either through the API marketplace proxy (which stamps a gateway
// identity header) or directly with a shared secret; the business
// logic behind this middleware never inspects credentials itself.
package auth

import (
	"crypto/subtle"
	"net/http"

	"github.com/google/uuid"

	"ledgerapi/internal/config"
	apphttp "ledgerapi/internal/http"
)

// Header names checked by the gateway-trust middleware
const (
	GatewaySecretHeader = "X-Gateway-Secret"
	SharedSecretHeader  = "X-API-Key"
	RequestIDHeader     = "X-Request-Id"
)

// Middleware returns a pass/fail check over request headers. Every
// request gets a request id; unauthorized requests get a 401 and never
// reach the handlers.
func Middleware(cfg *config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get(RequestIDHeader) == "" {
				r.Header.Set(RequestIDHeader, uuid.New().String())
			}
			w.Header().Set(RequestIDHeader, r.Header.Get(RequestIDHeader))

			if !Allowed(cfg, r.Header) {
				apphttp.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// Allowed is the injected trust predicate: anonymous bypass, gateway
// identity header, or shared secret. Secret comparisons are
// constant-time.
func Allowed(cfg *config.Config, headers http.Header) bool {
	if cfg.AllowAnonymous {
		return true
	}
	if secretMatches(headers.Get(GatewaySecretHeader), cfg.GatewaySecret) {
		return true
	}
	return secretMatches(headers.Get(SharedSecretHeader), cfg.SharedSecret)
}

func secretMatches(got, want string) bool {
	if want == "" || got == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}
