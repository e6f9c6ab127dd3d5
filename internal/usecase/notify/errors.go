package notify

import "errors"

var (
	// ErrCircuitBreakerOpen is reported for a channel skipped because its
	// breaker is open.
	ErrCircuitBreakerOpen = errors.New("circuit breaker is open for this channel")

	// ErrInvalidNewspaper is returned for a nil newspaper or one without items.
	ErrInvalidNewspaper = errors.New("invalid newspaper")
)
