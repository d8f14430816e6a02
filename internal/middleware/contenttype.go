package middleware

import (
	"net/http"
	"strings"
)

// ContentType rejects request bodies that are neither JSON nor a multipart upload.
// Bodyless POSTs such as /tasks/{id}/complete pass through.
func ContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hasBody(r) {
			contentType := strings.ToLower(r.Header.Get("Content-Type"))
			switch {
			case contentType == "":
				http.Error(w, "Content-Type header is required", http.StatusBadRequest)
				return
			case strings.HasPrefix(contentType, "application/json"),
				strings.HasPrefix(contentType, "multipart/form-data"):
			default:
				http.Error(w, "Content-Type must be application/json or multipart/form-data", http.StatusUnsupportedMediaType)
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}

func hasBody(r *http.Request) bool {
	switch r.Method {
	case http.MethodPost, http.MethodPatch, http.MethodPut:
		return r.ContentLength != 0 && r.Body != nil && r.Body != http.NoBody
	default:
		return false
	}
}
