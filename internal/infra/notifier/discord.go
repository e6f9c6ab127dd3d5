package notifier

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"newsroom/internal/domain/entity"
	"newsroom/internal/resilience/retry"
)

// Discord limits
const (
	maxTitleLength       = 256
	maxDescriptionLength = 4096
	maxFieldValueLength  = 1024
	maxEmbedFields       = 10
	truncationSuffix     = "..."

	// #5865F2
	discordBlueColor = 5793266
)

// DiscordNotifier announces newspapers through a Discord webhook.
type DiscordNotifier struct {
	config DiscordConfig
	hook   *webhook
}

// NewDiscordNotifier creates a notifier limited to 0.5 req/s with a burst of 3
// (Discord allows 30 webhook requests per minute).
func NewDiscordNotifier(config DiscordConfig) *DiscordNotifier {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &DiscordNotifier{
		config: config,
		hook: &webhook{
			service: "Discord",
			url:     config.WebhookURL,
			client:  &http.Client{Timeout: timeout},
			limiter: NewRateLimiter(0.5, 3),
			retry:   retry.WebhookConfig(),
		},
	}
}

// DiscordWebhookPayload is the JSON body of a Discord webhook execution.
type DiscordWebhookPayload struct {
	Embeds []DiscordEmbed `json:"embeds"`
}

// DiscordEmbed is a Discord rich embed.
type DiscordEmbed struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	URL         string              `json:"url,omitempty"`
	Color       int                 `json:"color"`
	Fields      []DiscordEmbedField `json:"fields,omitempty"`
	Footer      DiscordEmbedFooter  `json:"footer"`
	Timestamp   string              `json:"timestamp"`
}

// DiscordEmbedField is one name/value row inside an embed.
type DiscordEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

// DiscordEmbedFooter represents the footer of a Discord embed.
type DiscordEmbedFooter struct {
	Text string `json:"text"`
}

// Name implements notify.Channel.
func (d *DiscordNotifier) Name() string { return "discord" }

// Send implements notify.Channel.
func (d *DiscordNotifier) Send(ctx context.Context, paper *entity.DailyNewspaper) error {
	slog.InfoContext(ctx, "sending Discord announcement",
		slog.String("newspaper_id", paper.ID),
		slog.Int("items", len(paper.Items)))
	return d.hook.deliver(ctx, d.buildEmbedPayload(paper))
}

// buildEmbedPayload renders paper as a single embed: the digest summary as
// description and one field per highlighted item.
func (d *DiscordNotifier) buildEmbedPayload(paper *entity.DailyNewspaper) DiscordWebhookPayload {
	embed := DiscordEmbed{
		Title:       truncate(paper.Title, maxTitleLength, ""),
		Description: truncate(paper.Summary, maxDescriptionLength, truncationSuffix),
		URL:         d.config.LinkURL,
		Color:       discordBlueColor,
		Footer:      DiscordEmbedFooter{Text: itemCountText(len(paper.Items))},
		Timestamp:   paper.CreatedAt.Format(time.RFC3339),
	}
	for _, item := range highlights(paper) {
		if len(embed.Fields) == maxEmbedFields {
			break
		}
		embed.Fields = append(embed.Fields, DiscordEmbedField{
			Name:  truncate(itemHeading(item), maxTitleLength, truncationSuffix),
			Value: truncate(item.Summary, maxFieldValueLength, truncationSuffix),
		})
	}
	return DiscordWebhookPayload{Embeds: []DiscordEmbed{embed}}
}

// highlights returns the highlighted items of paper in order.
func highlights(paper *entity.DailyNewspaper) []*entity.DailyNewspaperItem {
	var out []*entity.DailyNewspaperItem
	for _, item := range paper.Items {
		if item.Highlight {
			out = append(out, item)
		}
	}
	return out
}

// itemHeading is "<Category>: <newsletter title>", or just the category when
// the newsletter was not loaded.
func itemHeading(item *entity.DailyNewspaperItem) string {
	if item.Newsletter != nil && item.Newsletter.Title != "" {
		return fmt.Sprintf("%s: %s", item.Category, item.Newsletter.Title)
	}
	return item.Category.String()
}

func itemCountText(n int) string {
	if n == 1 {
		return "1 newsletter"
	}
	return fmt.Sprintf("%d newsletters", n)
}
