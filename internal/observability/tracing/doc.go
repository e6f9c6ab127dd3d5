// Package tracing wires OpenTelemetry into the HTTP server and the use cases.
//
// Init installs the SDK tracer provider at startup; Middleware opens a server
// span per request and StartSpan opens internal spans below it. Log records
// pick up the trace id through the logging package's context handler.
//
//	shutdown := tracing.Init("newsroom-api", version)
//	defer shutdown(context.Background())
package tracing
