package http

import (
	"mime"
	"net/http"

	"newsroom/internal/handler/http/respond"
)

const (
	maxCookieHeader = 8 << 10
	maxPathLength   = 2 << 10
	maxBodyBytes    = 1 << 20
)

// InputValidation rejects oversized cookie headers and paths, requires a
// JSON content type on POST and PUT requests that carry a body, and caps
// bodies at 1 MiB.
func InputValidation() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(r.Header.Get("Cookie")) > maxCookieHeader {
				respond.Error(w, http.StatusRequestHeaderFieldsTooLarge, "cookie header too large")
				return
			}
			if len(r.URL.Path) > maxPathLength {
				respond.Error(w, http.StatusRequestURITooLong, "URI too long")
				return
			}
			if (r.Method == http.MethodPost || r.Method == http.MethodPut) && r.ContentLength != 0 {
				mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
				if err != nil || mt != "application/json" {
					respond.Error(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
					return
				}
			}

			r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
			next.ServeHTTP(w, r)
		})
	}
}
