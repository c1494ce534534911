package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/rs/zerolog/log"
)

// BasicAuth gates the dashboard behind one shared password. Any username is
// accepted; only the password is checked.
type BasicAuth struct {
	password string
}

// NewBasicAuth creates the Basic Auth middleware.
func NewBasicAuth(password string) *BasicAuth {
	if password == "" {
		log.Warn().Msg("No dashboard password configured - dashboard routes will be inaccessible")
	}
	return &BasicAuth{password: password}
}

// Protect wraps an HTTP handler with the password gate.
func (a *BasicAuth) Protect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.password == "" {
			log.Warn().Str("path", r.URL.Path).Msg("Dashboard route accessed but no password configured")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"error":"Dashboard authentication not configured"}`))
			return
		}

		_, password, ok := r.BasicAuth()
		if !ok || subtle.ConstantTimeCompare([]byte(password), []byte(a.password)) != 1 {
			log.Warn().
				Str("path", r.URL.Path).
				Str("ip", r.RemoteAddr).
				Msg("Dashboard route accessed with missing or invalid password")
			w.Header().Set("WWW-Authenticate", `Basic realm="analytics dashboard"`)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"Unauthorized"}`))
			return
		}

		next.ServeHTTP(w, r)
	})
}
