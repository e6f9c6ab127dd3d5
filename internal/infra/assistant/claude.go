package assistant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"newsroom/internal/config"
	"newsroom/internal/resilience/circuitbreaker"
	"newsroom/internal/resilience/retry"
	"newsroom/internal/usecase/ai"
)

// Claude implements ai.Completer with the Anthropic Messages API.
type Claude struct {
	client anthropic.Client
	model  string
	guard  guard
}

// NewClaude creates the Claude provider. SDK-level retries are disabled;
// the guard owns retry policy.
func NewClaude(cfg config.ClaudeConfig, timeout time.Duration, opts ...option.RequestOption) *Claude {
	clientOpts := append([]option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}, opts...)

	slog.Info("initialized Claude assistant", slog.String("model", cfg.Model))

	return &Claude{
		client: anthropic.NewClient(clientOpts...),
		model:  cfg.Model,
		guard: guard{
			provider:       "claude",
			timeout:        timeout,
			circuitBreaker: circuitbreaker.New(circuitbreaker.ClaudeAPIConfig()),
			retryConfig:    retry.AIAPIConfig(),
			metrics:        PrometheusMetrics{},
		},
	}
}

// Name implements ai.Completer.
func (c *Claude) Name() string { return "claude" }

// CircuitOpen reports whether calls are currently being rejected.
func (c *Claude) CircuitOpen() bool { return c.guard.circuitOpen() }

// Complete implements ai.Completer.
func (c *Claude) Complete(ctx context.Context, req ai.CompletionRequest) (string, error) {
	return c.guard.run(ctx, req, func(ctx context.Context) (string, error) {
		return c.doComplete(ctx, req)
	})
}

func (c *Claude) doComplete(ctx context.Context, req ai.CompletionRequest) (string, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: int64(req.MaxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}

	message, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("claude api error: %w", classifyClaudeError(err))
	}
	if len(message.Content) == 0 {
		return "", errors.New("claude api returned empty response")
	}
	textBlock, ok := message.Content[0].AsAny().(anthropic.TextBlock)
	if !ok {
		return "", errors.New("claude api returned unexpected response type")
	}
	return textBlock.Text, nil
}

func classifyClaudeError(err error) error {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) && apiErr.StatusCode != 0 {
		return &retry.HTTPError{StatusCode: apiErr.StatusCode, Message: http.StatusText(apiErr.StatusCode), Err: err}
	}
	return err
}
