package assistant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"newsroom/internal/config"
	"newsroom/internal/resilience/circuitbreaker"
	"newsroom/internal/resilience/retry"
	"newsroom/internal/usecase/ai"
)

// OpenAI implements ai.Completer with the OpenAI chat completions API.
type OpenAI struct {
	client *openai.Client
	model  string
	guard  guard
}

// OpenAIOption customizes the OpenAI provider.
type OpenAIOption func(*openai.ClientConfig)

// WithOpenAIBaseURL points the client at a different API root.
func WithOpenAIBaseURL(url string) OpenAIOption {
	return func(c *openai.ClientConfig) { c.BaseURL = url }
}

// NewOpenAI creates the OpenAI provider.
func NewOpenAI(cfg config.OpenAIConfig, timeout time.Duration, opts ...OpenAIOption) *OpenAI {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	for _, opt := range opts {
		opt(&clientConfig)
	}

	slog.Info("initialized OpenAI assistant", slog.String("model", cfg.Model))

	return &OpenAI{
		client: openai.NewClientWithConfig(clientConfig),
		model:  cfg.Model,
		guard: guard{
			provider:       "openai",
			timeout:        timeout,
			circuitBreaker: circuitbreaker.New(circuitbreaker.OpenAIAPIConfig()),
			retryConfig:    retry.AIAPIConfig(),
			metrics:        PrometheusMetrics{},
		},
	}
}

// Name implements ai.Completer.
func (o *OpenAI) Name() string { return "openai" }

// CircuitOpen reports whether calls are currently being rejected.
func (o *OpenAI) CircuitOpen() bool { return o.guard.circuitOpen() }

// Complete implements ai.Completer.
func (o *OpenAI) Complete(ctx context.Context, req ai.CompletionRequest) (string, error) {
	return o.guard.run(ctx, req, func(ctx context.Context) (string, error) {
		return o.doComplete(ctx, req)
	})
}

func (o *OpenAI) doComplete(ctx context.Context, req ai.CompletionRequest) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Prompt,
	})

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     o.model,
		Messages:  messages,
		MaxTokens: req.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("openai api error: %w", classifyOpenAIError(err))
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai api returned empty response")
	}
	return resp.Choices[0].Message.Content, nil
}

// classifyOpenAIError exposes the HTTP status so retry can tell transient
// failures from permanent ones.
func classifyOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode != 0 {
		return &retry.HTTPError{StatusCode: apiErr.HTTPStatusCode, Message: apiErr.Message, Err: err}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode != 0 {
		return &retry.HTTPError{StatusCode: reqErr.HTTPStatusCode, Message: reqErr.HTTPStatus, Err: err}
	}
	return err
}
