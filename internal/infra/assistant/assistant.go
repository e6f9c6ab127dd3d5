// Package assistant provides the LLM completion providers behind the AI
// assist gateway: OpenAI (default), Anthropic Claude and a deterministic
// noop provider. Remote providers run every call through a circuit breaker
// and bounded retry, and record Prometheus metrics.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"newsroom/internal/config"
	"newsroom/internal/resilience/circuitbreaker"
	"newsroom/internal/resilience/retry"
	"newsroom/internal/usecase/ai"
	"newsroom/internal/utils/text"
)

// ErrCircuitOpen is returned while a provider's circuit breaker is open.
var ErrCircuitOpen = errors.New("ai provider unavailable: circuit breaker open")

// New builds the provider selected by cfg.Provider.
func New(cfg *config.AIConfig) (ai.Completer, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		return NewOpenAI(cfg.OpenAI, cfg.Timeout), nil
	case config.ProviderClaude:
		return NewClaude(cfg.Claude, cfg.Timeout), nil
	case config.ProviderNoop:
		return NewNoop(), nil
	default:
		return nil, fmt.Errorf("unknown AI provider %q", cfg.Provider)
	}
}

// Status describes a provider for health reporting.
type Status interface {
	Name() string
	CircuitOpen() bool
}

// guard wraps a single provider call with timeout, retry, circuit breaker,
// logging and metrics.
type guard struct {
	provider       string
	timeout        time.Duration
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
	metrics        MetricsRecorder
}

func (g *guard) run(ctx context.Context, req ai.CompletionRequest, call func(context.Context) (string, error)) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	var result string
	retryErr := retry.WithBackoff(ctx, g.retryConfig, func() error {
		cbResult, err := g.circuitBreaker.Execute(func() (interface{}, error) {
			start := time.Now()
			out, err := call(ctx)
			duration := time.Since(start)
			g.metrics.RecordRequest(g.provider, string(req.Operation), err == nil, duration)

			if err != nil {
				slog.ErrorContext(ctx, "ai completion failed",
					slog.String("provider", g.provider),
					slog.String("operation", string(req.Operation)),
					slog.Duration("duration", duration),
					slog.Any("error", err))
				return nil, err
			}
			slog.DebugContext(ctx, "ai completion finished",
				slog.String("provider", g.provider),
				slog.String("operation", string(req.Operation)),
				slog.Int("input_length", text.CountRunes(req.Input)),
				slog.Int("output_length", text.CountRunes(out)),
				slog.Duration("duration", duration))
			return out, nil
		})
		if err != nil {
			if errors.Is(err, circuitbreaker.ErrOpenState) {
				slog.WarnContext(ctx, "ai circuit breaker open, request rejected",
					slog.String("service", g.circuitBreaker.Name()),
					slog.String("state", g.circuitBreaker.State().String()))
				return ErrCircuitOpen
			}
			return err
		}
		result = cbResult.(string)
		return nil
	})
	if retryErr != nil {
		return "", fmt.Errorf("%s completion failed: %w", g.provider, retryErr)
	}
	return result, nil
}

func (g *guard) circuitOpen() bool { return g.circuitBreaker.IsOpen() }
