// Package observability groups the logging, metrics and tracing subpackages
// shared by the API server and the worker.
//
// Subpackages:
//   - logging: JSON slog logger with LOG_LEVEL and request-scoped attributes
//   - metrics: Prometheus business, AI and database collectors
//   - tracing: OpenTelemetry tracer provider and HTTP middleware
//
// Example:
//
//	logger := logging.NewLogger()
//	shutdown := tracing.Init("newsroom-api", version)
//	defer shutdown(context.Background())
//	metrics.RecordNewsletterCreated()
package observability
