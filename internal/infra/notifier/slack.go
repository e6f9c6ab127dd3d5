package notifier

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"newsroom/internal/domain/entity"
	"newsroom/internal/resilience/retry"
)

// Slack Block Kit limits
const (
	maxSectionTextLength = 3000
	maxContextTextLength = 2000
	maxFallbackLength    = 150
)

// SlackNotifier announces newspapers through a Slack incoming webhook.
type SlackNotifier struct {
	config SlackConfig
	hook   *webhook
}

// NewSlackNotifier creates a notifier limited to 1 req/s (Slack's incoming
// webhook limit).
func NewSlackNotifier(config SlackConfig) *SlackNotifier {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &SlackNotifier{
		config: config,
		hook: &webhook{
			service: "Slack",
			url:     config.WebhookURL,
			client:  &http.Client{Timeout: timeout},
			limiter: NewRateLimiter(1.0, 1),
			retry:   retry.WebhookConfig(),
		},
	}
}

// SlackWebhookPayload is the JSON body of a Slack incoming webhook.
type SlackWebhookPayload struct {
	Text   string       `json:"text"` // notification fallback
	Blocks []SlackBlock `json:"blocks"`
}

// SlackBlock is a Block Kit block: "section", "context" or "divider".
type SlackBlock struct {
	Type     string            `json:"type"`
	Text     *SlackTextObject  `json:"text,omitempty"`
	Elements []SlackTextObject `json:"elements,omitempty"`
}

// SlackTextObject is a Block Kit text object ("mrkdwn" or "plain_text").
type SlackTextObject struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Name implements notify.Channel.
func (s *SlackNotifier) Name() string { return "slack" }

// Send implements notify.Channel.
func (s *SlackNotifier) Send(ctx context.Context, paper *entity.DailyNewspaper) error {
	slog.InfoContext(ctx, "sending Slack announcement",
		slog.String("newspaper_id", paper.ID),
		slog.Int("items", len(paper.Items)))
	return s.hook.deliver(ctx, s.buildBlockKitPayload(paper))
}

func (s *SlackNotifier) buildBlockKitPayload(paper *entity.DailyNewspaper) SlackWebhookPayload {
	title := "*" + paper.Title + "*"
	if s.config.LinkURL != "" {
		title = fmt.Sprintf("*<%s|%s>*", s.config.LinkURL, paper.Title)
	}

	blocks := []SlackBlock{
		section(truncate(title+"\n\n"+paper.Summary, maxSectionTextLength, truncationSuffix)),
	}

	if hl := highlights(paper); len(hl) > 0 {
		var b strings.Builder
		for _, item := range hl {
			fmt.Fprintf(&b, "• *%s* %s\n", itemHeading(item), item.Summary)
		}
		blocks = append(blocks,
			SlackBlock{Type: "divider"},
			section(truncate(strings.TrimSuffix(b.String(), "\n"), maxSectionTextLength, truncationSuffix)))
	}

	blocks = append(blocks, SlackBlock{
		Type: "context",
		Elements: []SlackTextObject{{
			Type: "mrkdwn",
			Text: truncate(fmt.Sprintf("%s • %s", itemCountText(len(paper.Items)), paper.Date.Format("2006-01-02")),
				maxContextTextLength, truncationSuffix),
		}},
	})

	return SlackWebhookPayload{
		Text:   truncate(paper.Title, maxFallbackLength, truncationSuffix),
		Blocks: blocks,
	}
}

func section(text string) SlackBlock {
	return SlackBlock{Type: "section", Text: &SlackTextObject{Type: "mrkdwn", Text: text}}
}
