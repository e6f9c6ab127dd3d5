// Package ai implements the AI assist gateway: title suggestions, text
// improvement, categorization, digest summaries and draft generation on top
// of a pluggable Completer. Every operation except SummarizeDigest recovers
// from provider failures with a deterministic fallback.
package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"newsroom/internal/domain/entity"
	"newsroom/internal/utils/text"
)

const (
	// maxInputRunes caps user text embedded in a prompt.
	maxInputRunes = 10000
	// MaxSuggestedTitles is the most titles SuggestTitles returns.
	MaxSuggestedTitles = 3

	titlesMaxTokens     = 100
	improveMaxTokens    = 1000
	categorizeMaxTokens = 20
	digestMaxTokens     = 200
	draftMaxTokens      = 1000
)

// FallbackMessage accompanies a draft produced without the provider.
const FallbackMessage = "Using fallback content due to API limitations. Please edit the content manually."

// DraftKind selects the draft generation mode.
type DraftKind string

const (
	DraftTitle   DraftKind = "title"
	DraftContent DraftKind = "content"
	DraftImprove DraftKind = "improve"
)

// Draft is the result of draft generation.
type Draft struct {
	Content    string
	IsFallback bool
	Message    string
}

// Service is the AI assist gateway.
type Service struct {
	completer Completer
	fallbacks FallbackRecorder
}

// NewService creates a gateway over completer. A nil recorder disables
// fallback accounting.
func NewService(completer Completer, recorder FallbackRecorder) *Service {
	if recorder == nil {
		recorder = noopFallbackRecorder{}
	}
	return &Service{completer: completer, fallbacks: recorder}
}

// SuggestTitles returns up to three title suggestions for content.
// Provider failures yield an empty, non-nil slice.
func (s *Service) SuggestTitles(ctx context.Context, content string) []string {
	input := promptInput(content)
	out, err := s.complete(ctx, CompletionRequest{
		Operation: OpSuggestTitles,
		Prompt: fmt.Sprintf("Generate 3 engaging title suggestions for a newsletter with the following content:\n\n%s\n\n"+
			"Return only the titles, separated by newlines.", input),
		Input:     input,
		MaxTokens: titlesMaxTokens,
	})
	if err != nil {
		s.fallback(ctx, OpSuggestTitles, err)
		return []string{}
	}
	return splitTitles(out)
}

// ImproveText returns a polished version of input, or input itself when
// the provider fails or answers with nothing.
func (s *Service) ImproveText(ctx context.Context, input string) string {
	trimmed := text.Truncate(input, maxInputRunes, "")
	out, err := s.complete(ctx, CompletionRequest{
		Operation: OpImproveText,
		Prompt: "Improve the following text by correcting grammar, enhancing clarity, and making it more engaging:\n\n" +
			trimmed,
		Input:     trimmed,
		MaxTokens: improveMaxTokens,
	})
	if err == nil && strings.TrimSpace(out) == "" {
		err = errors.New("empty completion")
	}
	if err != nil {
		s.fallback(ctx, OpImproveText, err)
		return input
	}
	return out
}

// Categorize classifies content into the closed category set.
// Unknown labels and provider failures map to CategoryOther.
func (s *Service) Categorize(ctx context.Context, content string) entity.Category {
	input := promptInput(content)
	labels := make([]string, len(entity.Categories))
	for i, c := range entity.Categories {
		labels[i] = c.String()
	}
	out, err := s.complete(ctx, CompletionRequest{
		Operation: OpCategorize,
		Prompt: fmt.Sprintf("Categorize the following newsletter content into one of these categories: %s.\n\n%s\n\n"+
			"Return only the category name.", strings.Join(labels, ", "), input),
		Input:     input,
		MaxTokens: categorizeMaxTokens,
	})
	if err != nil {
		s.fallback(ctx, OpCategorize, err)
		return entity.CategoryOther
	}

	category, ok := entity.ParseCategory(out)
	if !ok {
		slog.WarnContext(ctx, "unrecognized category label from provider",
			slog.String("provider", s.completer.Name()),
			slog.String("label", text.Truncate(out, 50, "...")))
		s.fallbacks.RecordFallback(OpCategorize)
		return entity.CategoryOther
	}
	return category
}

// SummarizeDigest writes a one-paragraph summary for a breakdown such as
// "Technology: 2, Science: 1". Unlike the other operations it reports
// provider failures to the caller.
func (s *Service) SummarizeDigest(ctx context.Context, breakdown string) (string, error) {
	out, err := s.complete(ctx, CompletionRequest{
		Operation: OpSummarizeDigest,
		Prompt:    "Generate a summary for today's newsletter digest with the following categories and counts: " + breakdown,
		Input:     breakdown,
		MaxTokens: digestMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("summarize digest: %w", err)
	}
	summary := strings.TrimSpace(out)
	if summary == "" {
		return "", errors.New("summarize digest: empty completion")
	}
	return summary, nil
}

// Draft generates a title, content, or improved content from prompt.
// Invalid input returns a ValidationError; provider failures return a
// fallback template with IsFallback set.
func (s *Service) Draft(ctx context.Context, kind DraftKind, prompt string) (*Draft, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, &entity.ValidationError{Field: "prompt", Message: "Prompt is required"}
	}

	var system, user string
	switch kind {
	case DraftTitle:
		system = "You are a newsletter title generator. Generate an engaging and descriptive title for a newsletter based on the given content or topic."
		user = "Generate a newsletter title for: " + prompt
	case DraftContent:
		system = "You are a newsletter content writer. Generate engaging and informative newsletter content based on the given title or topic."
		user = "Generate newsletter content for: " + prompt
	case DraftImprove:
		system = "You are a newsletter content editor. Improve the given newsletter content by enhancing its clarity, engagement, and overall quality while maintaining its core message."
		user = "Improve this newsletter content: " + prompt
	default:
		return nil, &entity.ValidationError{Field: "type", Message: "Invalid type"}
	}

	out, err := s.complete(ctx, CompletionRequest{
		Operation: OpDraft,
		System:    system,
		Prompt:    text.Truncate(user, maxInputRunes, ""),
		Input:     prompt,
		MaxTokens: draftMaxTokens,
	})
	if err == nil && strings.TrimSpace(out) == "" {
		err = errors.New("empty completion")
	}
	if err != nil {
		s.fallback(ctx, OpDraft, err)
		return &Draft{
			Content:    fallbackDraft(kind, prompt),
			IsFallback: true,
			Message:    FallbackMessage,
		}, nil
	}
	return &Draft{Content: out}, nil
}

func (s *Service) complete(ctx context.Context, req CompletionRequest) (string, error) {
	if s.completer == nil {
		return "", errors.New("no completion provider configured")
	}
	return s.completer.Complete(ctx, req)
}

func (s *Service) fallback(ctx context.Context, op Operation, err error) {
	provider := "none"
	if s.completer != nil {
		provider = s.completer.Name()
	}
	slog.WarnContext(ctx, "ai assist failed, serving fallback",
		slog.String("operation", string(op)),
		slog.String("provider", provider),
		slog.Any("error", err))
	s.fallbacks.RecordFallback(op)
}

func fallbackDraft(kind DraftKind, prompt string) string {
	switch kind {
	case DraftTitle:
		return "Newsletter: " + prompt
	case DraftContent:
		return "# " + prompt + "\n\nThis is a placeholder content. Please edit it with your own content."
	default:
		return prompt
	}
}

// splitTitles turns a newline separated completion into at most
// MaxSuggestedTitles non-empty lines.
func splitTitles(out string) []string {
	titles := make([]string, 0, MaxSuggestedTitles)
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		titles = append(titles, line)
		if len(titles) == MaxSuggestedTitles {
			break
		}
	}
	return titles
}

func promptInput(content string) string {
	return text.Truncate(text.PlainText(content), maxInputRunes, "...")
}
