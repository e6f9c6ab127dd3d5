// Package middleware holds the configurable HTTP middleware of the API
// server: CORS for the browser client, client IP extraction and per-IP
// rate limiting for the sign-in endpoint.
package middleware
