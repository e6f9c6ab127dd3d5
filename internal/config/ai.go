package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	envconfig "newsroom/pkg/config"
)

// AI provider names accepted by AI_PROVIDER.
const (
	ProviderOpenAI = "openai"
	ProviderClaude = "claude"
	ProviderNoop   = "noop"
)

// AIConfig selects and configures the LLM completion provider.
type AIConfig struct {
	// Provider is one of openai, claude or noop. Default: openai
	Provider string

	// Timeout bounds a single completion call, retries included. Default: 30s
	Timeout time.Duration

	OpenAI OpenAIConfig
	Claude ClaudeConfig
}

// OpenAIConfig holds OpenAI chat completion settings.
type OpenAIConfig struct {
	APIKey string
	// Model default: gpt-4o
	Model string
}

// ClaudeConfig holds Anthropic Messages API settings.
type ClaudeConfig struct {
	APIKey string
	// Model default: claude-sonnet-4-5-20250929
	Model string
}

// LoadAIConfig loads AI configuration from environment variables.
// A provider without an API key is downgraded to noop so the assistant
// keeps serving its fallbacks.
func LoadAIConfig() (*AIConfig, error) {
	cfg := &AIConfig{
		Provider: strings.ToLower(strings.TrimSpace(envconfig.GetEnvString("AI_PROVIDER", ProviderOpenAI))),
		Timeout:  envconfig.GetEnvDuration("AI_TIMEOUT", 30*time.Second),
		OpenAI: OpenAIConfig{
			APIKey: envconfig.GetEnvString("OPENAI_API_KEY", ""),
			Model:  envconfig.GetEnvString("OPENAI_MODEL", "gpt-4o"),
		},
		Claude: ClaudeConfig{
			APIKey: envconfig.GetEnvString("ANTHROPIC_API_KEY", ""),
			Model:  envconfig.GetEnvString("CLAUDE_MODEL", "claude-sonnet-4-5-20250929"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	switch {
	case cfg.Provider == ProviderOpenAI && cfg.OpenAI.APIKey == "":
		slog.Warn("OPENAI_API_KEY not set, AI assistant will use fallbacks only")
		cfg.Provider = ProviderNoop
	case cfg.Provider == ProviderClaude && cfg.Claude.APIKey == "":
		slog.Warn("ANTHROPIC_API_KEY not set, AI assistant will use fallbacks only")
		cfg.Provider = ProviderNoop
	}

	return cfg, nil
}

// Validate checks configuration correctness.
func (c *AIConfig) Validate() error {
	switch c.Provider {
	case ProviderOpenAI, ProviderClaude, ProviderNoop:
	default:
		return fmt.Errorf("AI_PROVIDER must be one of openai, claude, noop: got %q", c.Provider)
	}

	if err := envconfig.ValidatePositiveDuration(c.Timeout); err != nil {
		return fmt.Errorf("AI_TIMEOUT: %w", err)
	}

	if c.Provider == ProviderOpenAI && c.OpenAI.Model == "" {
		return fmt.Errorf("OPENAI_MODEL cannot be empty")
	}
	if c.Provider == ProviderClaude && c.Claude.Model == "" {
		return fmt.Errorf("CLAUDE_MODEL cannot be empty")
	}

	return nil
}
