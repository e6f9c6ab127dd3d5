package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"newsroom/internal/domain/entity"
	"newsroom/internal/resilience/circuitbreaker"
)

const defaultChannelTimeout = 60 * time.Second

// Service announces newspapers on all configured channels.
type Service interface {
	// AnnounceNewspaper sends paper to every channel concurrently and waits
	// for all of them. A failing channel does not stop the others; the
	// returned error joins every channel failure and is nil when all
	// channels succeeded (or none are configured).
	AnnounceNewspaper(ctx context.Context, paper *entity.DailyNewspaper) error

	// GetChannelHealth reports the breaker state of each channel.
	GetChannelHealth() []ChannelHealthStatus
}

// ChannelHealthStatus is one channel's entry in /health/channels.
type ChannelHealthStatus struct {
	Name               string `json:"name"`
	CircuitBreakerOpen bool   `json:"circuit_breaker_open"`
	State              string `json:"state"`
}

// Options tunes the fan-out. Zero values fall back to defaults.
type Options struct {
	// MaxConcurrent caps simultaneous sends. Default: one per channel.
	MaxConcurrent int
	// ChannelTimeout bounds a single channel's Send, retries included.
	ChannelTimeout time.Duration
}

type guardedChannel struct {
	Channel
	breaker *circuitbreaker.CircuitBreaker
}

type service struct {
	channels []guardedChannel
	opts     Options
}

// NewService wraps each channel in a webhook circuit breaker.
func NewService(channels []Channel, opts Options) Service {
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = max(len(channels), 1)
	}
	if opts.ChannelTimeout <= 0 {
		opts.ChannelTimeout = defaultChannelTimeout
	}

	guarded := make([]guardedChannel, 0, len(channels))
	for _, ch := range channels {
		guarded = append(guarded, guardedChannel{
			Channel: ch,
			breaker: circuitbreaker.New(circuitbreaker.WebhookConfig("notify-" + ch.Name())),
		})
	}
	SetChannelsEnabled(float64(len(guarded)))

	return &service{channels: guarded, opts: opts}
}

// AnnounceNewspaper implements Service.
func (s *service) AnnounceNewspaper(ctx context.Context, paper *entity.DailyNewspaper) error {
	if paper == nil || len(paper.Items) == 0 {
		return ErrInvalidNewspaper
	}
	if len(s.channels) == 0 {
		slog.DebugContext(ctx, "no announcement channels configured",
			slog.String("newspaper_id", paper.ID))
		return nil
	}

	slog.InfoContext(ctx, "announcing newspaper",
		slog.String("newspaper_id", paper.ID),
		slog.String("title", paper.Title),
		slog.Int("channels", len(s.channels)))

	var (
		mu   sync.Mutex
		errs []error
	)
	// errgroup.Group without WithContext: one channel failing must not
	// cancel its siblings.
	var g errgroup.Group
	g.SetLimit(s.opts.MaxConcurrent)
	for _, ch := range s.channels {
		g.Go(func() error {
			if err := s.send(ctx, ch, paper); err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", ch.Name(), err))
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	return errors.Join(errs...)
}

func (s *service) send(ctx context.Context, ch guardedChannel, paper *entity.DailyNewspaper) (err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.ErrorContext(ctx, "panic in announcement channel",
				slog.String("channel", ch.Name()),
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())))
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	if ch.breaker.IsOpen() {
		slog.WarnContext(ctx, "channel skipped: circuit breaker open",
			slog.String("channel", ch.Name()))
		RecordDropped(ch.Name(), "circuit_open")
		return ErrCircuitBreakerOpen
	}

	sendCtx, cancel := context.WithTimeout(ctx, s.opts.ChannelTimeout)
	defer cancel()

	start := time.Now()
	_, err = ch.breaker.Execute(func() (interface{}, error) {
		return nil, ch.Send(sendCtx, paper)
	})
	duration := time.Since(start)

	if errors.Is(err, circuitbreaker.ErrOpenState) {
		RecordDropped(ch.Name(), "circuit_open")
		return ErrCircuitBreakerOpen
	}
	if err != nil {
		RecordFailure(ch.Name(), duration)
		slog.WarnContext(ctx, "announcement failed",
			slog.String("channel", ch.Name()),
			slog.String("newspaper_id", paper.ID),
			slog.Duration("send_duration", duration),
			slog.Any("error", err))
		return err
	}

	RecordSuccess(ch.Name(), duration)
	slog.InfoContext(ctx, "announcement sent",
		slog.String("channel", ch.Name()),
		slog.String("newspaper_id", paper.ID),
		slog.Duration("send_duration", duration))
	return nil
}

// GetChannelHealth implements Service.
func (s *service) GetChannelHealth() []ChannelHealthStatus {
	statuses := make([]ChannelHealthStatus, 0, len(s.channels))
	for _, ch := range s.channels {
		statuses = append(statuses, ChannelHealthStatus{
			Name:               ch.Name(),
			CircuitBreakerOpen: ch.breaker.IsOpen(),
			State:              ch.breaker.State().String(),
		})
	}
	return statuses
}
