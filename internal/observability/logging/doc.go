// Package logging configures the process-wide slog logger.
//
// NewLogger emits JSON at the LOG_LEVEL level. Its ContextHandler adds
// request_id and trace_id to every record logged with a request context, so
// use cases only need slog.InfoContext(ctx, ...) to be correlated.
//
//	slog.SetDefault(logging.NewLogger())
package logging
