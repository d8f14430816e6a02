package middleware

import (
	"net/http"
	"strings"
)

const (
	// DefaultMaxRequestSize is the default maximum request body size (1MB)
	DefaultMaxRequestSize int64 = 1 << 20
	// DefaultMaxUploadSize applies to multipart spreadsheet uploads and JSON imports (10MB)
	DefaultMaxUploadSize int64 = 10 << 20
)

// MaxRequestSize limits the size of request bodies. Multipart uploads get uploadBytes.
func MaxRequestSize(maxBytes, uploadBytes int64) func(http.Handler) http.Handler {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxRequestSize
	}
	if uploadBytes < maxBytes {
		uploadBytes = maxBytes
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			limit := maxBytes
			if strings.HasPrefix(strings.ToLower(r.Header.Get("Content-Type")), "multipart/form-data") ||
				strings.HasSuffix(r.URL.Path, "/import") {
				limit = uploadBytes
			}
			if r.ContentLength > limit {
				http.Error(w, "Request Entity Too Large", http.StatusRequestEntityTooLarge)
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}
