package assistant

import (
	"context"
	"fmt"
	"strings"

	"newsroom/internal/usecase/ai"
	"newsroom/internal/utils/text"
)

// Noop is a deterministic provider for development and tests. It never
// calls out and derives its answer from the request input.
type Noop struct{}

// NewNoop creates a Noop provider.
func NewNoop() *Noop {
	return &Noop{}
}

// Name implements ai.Completer.
func (Noop) Name() string { return "noop" }

// CircuitOpen is always false.
func (Noop) CircuitOpen() bool { return false }

// Complete implements ai.Completer.
func (Noop) Complete(_ context.Context, req ai.CompletionRequest) (string, error) {
	input := strings.TrimSpace(req.Input)
	switch req.Operation {
	case ai.OpSuggestTitles:
		first := text.Truncate(firstLine(input), 60, "...")
		return fmt.Sprintf("%s\nAbout: %s\nThis week: %s", first, first, first), nil
	case ai.OpCategorize:
		return "Other", nil
	case ai.OpSummarizeDigest:
		return "Today's digest brings together newsletters from " + input + ".", nil
	default:
		return input, nil
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}
