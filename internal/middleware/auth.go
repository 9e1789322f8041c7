// Package middleware provides HTTP middleware for the gateway transports.
package middleware

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Auth verifies each request carries either the configured API key (raw or
// Bearer in Authorization, or X-API-Key) or a valid HS256 JWT. When neither
// an API key nor a JWT secret is configured, auth is disabled and every
// request passes — matching a dev deployment with no credentials set up.
func Auth(apiKey string, jwtSecret []byte) func(http.Handler) http.Handler {
	enabled := apiKey != "" || len(jwtSecret) > 0

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !enabled {
				next.ServeHTTP(w, r)
				return
			}

			token := bearerToken(r)

			// Shared API key: Authorization (raw or Bearer) or X-API-Key.
			if apiKey != "" {
				candidate := token
				if candidate == "" {
					candidate = r.Header.Get("X-API-Key")
				}
				if candidate != "" && subtle.ConstantTimeCompare([]byte(candidate), []byte(apiKey)) == 1 {
					next.ServeHTTP(w, r)
					return
				}
			}

			// HS256 JWT bearer token.
			if len(jwtSecret) > 0 && token != "" {
				parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
					return jwtSecret, nil
				}, jwt.WithValidMethods([]string{"HS256"}))
				if err == nil && parsed.Valid {
					next.ServeHTTP(w, r)
					return
				}
			}

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"success": false,
				"error":   "Invalid or missing API key",
			})
		})
	}
}

// bearerToken extracts the Authorization header value, stripping an optional
// "Bearer " prefix. Both forms are accepted for compatibility with callers
// that send the raw key.
func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	return strings.TrimPrefix(auth, "Bearer ")
}
