// Package notifier delivers daily newspaper announcements to chat webhooks.
//
// Discord and Slack are supported. Each notifier owns its HTTP client, a
// token bucket sized to the service's webhook limits and a bounded retry for
// 5xx, 408, 429 and transient network failures. Circuit breaking across
// announcements is the caller's job (see usecase/notify).
package notifier

import (
	"log/slog"
	"net/url"
	"strings"
	"time"

	envconfig "newsroom/pkg/config"
)

const defaultTimeout = 30 * time.Second

// DiscordConfig contains configuration for Discord webhook notifications.
type DiscordConfig struct {
	Enabled bool

	// WebhookURL includes the webhook token and must never be logged.
	WebhookURL string

	// LinkURL is where the announcement title points. Optional.
	LinkURL string

	Timeout time.Duration
}

// SlackConfig contains configuration for Slack incoming webhooks.
type SlackConfig struct {
	Enabled bool

	// WebhookURL includes the webhook secret and must never be logged.
	WebhookURL string

	// LinkURL is where the announcement title points. Optional.
	LinkURL string

	Timeout time.Duration
}

// LoadDiscordConfig reads DISCORD_ENABLED and DISCORD_WEBHOOK_URL. A webhook
// URL that is not https://discord.com/api/webhooks/... disables the channel
// with a warning instead of failing startup.
func LoadDiscordConfig(logger *slog.Logger) DiscordConfig {
	if !envconfig.GetEnvBool("DISCORD_ENABLED", false) {
		return DiscordConfig{}
	}
	webhookURL := envconfig.GetEnvString("DISCORD_WEBHOOK_URL", "")
	if reason := checkWebhookURL(webhookURL, "discord.com", "/api/webhooks/"); reason != "" {
		logger.Warn("Discord webhook URL rejected, disabling notifications", slog.String("reason", reason))
		return DiscordConfig{}
	}
	return DiscordConfig{
		Enabled:    true,
		WebhookURL: webhookURL,
		LinkURL:    envconfig.GetEnvString("NEWSPAPER_URL", ""),
		Timeout:    envconfig.GetEnvDuration("NOTIFY_TIMEOUT", defaultTimeout),
	}
}

// LoadSlackConfig reads SLACK_ENABLED and SLACK_WEBHOOK_URL. The URL must be
// https://hooks.slack.com/services/...
func LoadSlackConfig(logger *slog.Logger) SlackConfig {
	if !envconfig.GetEnvBool("SLACK_ENABLED", false) {
		return SlackConfig{}
	}
	webhookURL := envconfig.GetEnvString("SLACK_WEBHOOK_URL", "")
	if reason := checkWebhookURL(webhookURL, "hooks.slack.com", "/services/"); reason != "" {
		logger.Warn("Slack webhook URL rejected, disabling notifications", slog.String("reason", reason))
		return SlackConfig{}
	}
	return SlackConfig{
		Enabled:    true,
		WebhookURL: webhookURL,
		LinkURL:    envconfig.GetEnvString("NEWSPAPER_URL", ""),
		Timeout:    envconfig.GetEnvDuration("NOTIFY_TIMEOUT", defaultTimeout),
	}
}

// checkWebhookURL returns why raw is unacceptable, or "" when it is fine.
func checkWebhookURL(raw, host, pathPrefix string) string {
	if raw == "" {
		return "empty"
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "malformed"
	}
	switch {
	case u.Scheme != "https":
		return "scheme must be https"
	case u.Host != host:
		return "unexpected host " + u.Host
	case !strings.HasPrefix(u.Path, pathPrefix):
		return "unexpected path"
	}
	return ""
}

// truncate shortens s to at most max runes, ending with suffix when cut.
func truncate(s string, max int, suffix string) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	keep := max - len([]rune(suffix))
	if keep < 0 {
		keep = 0
	}
	return string(r[:keep]) + suffix
}
