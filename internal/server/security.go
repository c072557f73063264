package server

import (
	"net/http"
	"strings"

	"github.com/goessl/sumofradicals/internal/config"
)

// SecurityConfig controls the security middleware: response hardening
// headers, CORS policy and input size limits.
type SecurityConfig struct {
	// EnableCORS toggles CORS header emission.
	EnableCORS bool
	// AllowedOrigins lists origins allowed by CORS. "*" allows any.
	AllowedOrigins []string
	// AllowedMethods lists methods advertised in CORS responses.
	AllowedMethods []string
	// MaxExpressionLength caps the accepted expression size in bytes.
	MaxExpressionLength int
	// MaxBodyBytes caps the accepted request body size in bytes.
	MaxBodyBytes int64
}

// DefaultSecurityConfig returns the default security configuration.
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		EnableCORS:          true,
		AllowedOrigins:      []string{"*"},
		AllowedMethods:      []string{"POST", "OPTIONS"},
		MaxExpressionLength: config.MaxExpressionLength,
		MaxBodyBytes:        config.MaxRequestBodyBytes,
	}
}

// SecurityMiddleware wraps a handler with security headers, CORS handling
// and OPTIONS preflight support.
func SecurityMiddleware(cfg SecurityConfig, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-XSS-Protection", "1; mode=block")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")

		if cfg.EnableCORS {
			if origin := corsOrigin(cfg, r.Header.Get("Origin")); origin != "" {
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Allow-Methods", strings.Join(cfg.AllowedMethods, ", "))
				h.Set("Access-Control-Allow-Headers", "Content-Type")
				h.Set("Access-Control-Max-Age", "86400")
			}
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next(w, r)
	}
}

// corsOrigin returns the Access-Control-Allow-Origin value for the request
// origin, or "" when CORS headers must not be emitted.
func corsOrigin(cfg SecurityConfig, origin string) string {
	for _, allowed := range cfg.AllowedOrigins {
		if allowed == "*" {
			return "*"
		}
		if allowed == origin && origin != "" {
			return origin
		}
	}
	return ""
}
