package middleware

import (
	"net/http"
)

// defaultMaxBodyBytes caps request bodies at 1 MiB. Schedule and task
// payloads are small JSON; the generate endpoints take no body at all.
const defaultMaxBodyBytes = 1 << 20

// MaxBytes wraps request bodies with http.MaxBytesReader so an oversized
// payload fails the handler's decode instead of being buffered. maxBytes <= 0
// selects the default cap.
func MaxBytes(maxBytes int64) func(http.Handler) http.Handler {
	if maxBytes <= 0 {
		maxBytes = defaultMaxBodyBytes
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}
