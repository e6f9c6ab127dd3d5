package http

import (
	"context"
	"log/slog"
	"time"
)

// ExpiringLimiter is a rate limiter that holds per-client state.
type ExpiringLimiter interface {
	CleanupExpired() int
}

// StartRateLimitCleanup evicts idle clients from limiter every interval
// until ctx is cancelled. It blocks; run it in a goroutine.
func StartRateLimitCleanup(ctx context.Context, limiter ExpiringLimiter, interval time.Duration, name string) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	slog.Info("rate limit cleanup started",
		slog.String("limiter", name),
		slog.Duration("interval", interval))

	for {
		select {
		case <-ctx.Done():
			slog.Info("rate limit cleanup stopped", slog.String("limiter", name))
			return
		case <-ticker.C:
			removed := limiter.CleanupExpired()
			if removed > 0 {
				slog.Debug("rate limit cleanup completed",
					slog.String("limiter", name),
					slog.Int("removed", removed))
			}
		}
	}
}
