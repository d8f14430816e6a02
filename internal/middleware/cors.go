package middleware

import (
	"net/http"
	"strings"

	"github.com/rs/cors"
)

// DefaultFrontendOrigin is always allowed so a local dev server works out of the box
const DefaultFrontendOrigin = "http://localhost:3000"

// CORS creates CORS middleware that handles CORS headers and OPTIONS preflight requests
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "Content-Disposition", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           86400,
	})
	return c.Handler
}

// ParseOrigins splits a comma-separated FRONTEND_URL value, always including
// DefaultFrontendOrigin and dropping duplicates
func ParseOrigins(frontendURL string) []string {
	origins := []string{DefaultFrontendOrigin}
	seen := map[string]bool{DefaultFrontendOrigin: true}
	for _, origin := range strings.Split(frontendURL, ",") {
		trimmed := strings.TrimSpace(origin)
		if trimmed == "" || seen[trimmed] {
			continue
		}
		seen[trimmed] = true
		origins = append(origins, trimmed)
	}
	return origins
}

// CORSFromEnv creates CORS middleware from a FRONTEND_URL value
func CORSFromEnv(frontendURL string) func(http.Handler) http.Handler {
	return CORS(ParseOrigins(frontendURL))
}
