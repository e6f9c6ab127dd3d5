// Package notify announces a generated daily newspaper on every configured
// chat channel (Discord, Slack). Each channel sits behind its own circuit
// breaker so a dead webhook stops costing retries after a few failures.
package notify

import (
	"context"

	"newsroom/internal/domain/entity"
)

// Channel is one announcement destination.
//
// Implementations handle their own rate limiting and retries, must be safe
// for concurrent use and must keep webhook secrets out of returned errors.
type Channel interface {
	// Name is the lowercase identifier used in logs, metrics and health output.
	Name() string

	// Send posts an announcement for paper. It respects ctx cancellation.
	Send(ctx context.Context, paper *entity.DailyNewspaper) error
}
