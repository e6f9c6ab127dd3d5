package ai

import (
	"context"
)

// Operation names an assist operation. It labels prompts, logs and metrics.
type Operation string

const (
	OpSuggestTitles   Operation = "suggest_titles"
	OpImproveText     Operation = "improve_text"
	OpCategorize      Operation = "categorize"
	OpSummarizeDigest Operation = "summarize_digest"
	OpDraft           Operation = "draft"
)

// CompletionRequest is a single prompt sent to an LLM.
type CompletionRequest struct {
	Operation Operation
	// System is an optional system instruction.
	System string
	Prompt string
	// Input is the raw user text the prompt was built from.
	Input     string
	MaxTokens int
}

// Completer abstracts an LLM text completion backend (OpenAI, Claude, noop)
// so the assist operations do not depend on a vendor SDK.
type Completer interface {
	// Complete returns the raw completion text for req.
	Complete(ctx context.Context, req CompletionRequest) (string, error)

	// Name identifies the provider in logs and metrics.
	Name() string
}

// FallbackRecorder is notified whenever an operation serves its fallback.
type FallbackRecorder interface {
	RecordFallback(op Operation)
}

type noopFallbackRecorder struct{}

func (noopFallbackRecorder) RecordFallback(Operation) {}
