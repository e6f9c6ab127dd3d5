package respond

import (
	"regexp"
)

var (
	// anthropicKeyPattern must run before openaiKeyPattern.
	anthropicKeyPattern = regexp.MustCompile(`sk-ant-[a-zA-Z0-9-_]+`)
	openaiKeyPattern    = regexp.MustCompile(`sk-[a-zA-Z0-9]{10,}`)

	// signed session tokens
	jwtPattern = regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`)

	// password inside a DSN
	dbPasswordPattern = regexp.MustCompile(`://([^:/]+):([^@]+)@`)

	// chat webhook secrets live in the URL path
	discordWebhookPattern = regexp.MustCompile(`(discord(?:app)?\.com/api/webhooks/)[^\s"']+`)
	slackWebhookPattern   = regexp.MustCompile(`(hooks\.slack\.com/services/)[^\s"']+`)
)

// SanitizeError returns the error text with secrets masked: AI API keys,
// session tokens, DSN passwords and Discord/Slack webhook paths. The worker
// uses it too, before logging generation and announcement failures.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	msg = anthropicKeyPattern.ReplaceAllString(msg, "sk-ant-****")
	msg = openaiKeyPattern.ReplaceAllString(msg, "sk-****")
	msg = jwtPattern.ReplaceAllString(msg, "eyJ****")
	msg = dbPasswordPattern.ReplaceAllString(msg, "://$1:****@")
	msg = discordWebhookPattern.ReplaceAllString(msg, "$1****")
	msg = slackWebhookPattern.ReplaceAllString(msg, "$1****")
	return msg
}
