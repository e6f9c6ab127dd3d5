package http

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

type countingLimiter struct{ calls atomic.Int32 }

func (c *countingLimiter) CleanupExpired() int {
	c.calls.Add(1)
	return 1
}

func TestStartRateLimitCleanup_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	lim := &countingLimiter{}
	done := make(chan struct{})

	go func() {
		StartRateLimitCleanup(ctx, lim, 5*time.Millisecond, "test")
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for lim.calls.Load() < 2 {
		select {
		case <-deadline:
			t.Fatal("cleanup never ran")
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("cleanup goroutine did not stop")
	}
}
