package entity

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"
)

// maxURLLength defines the maximum allowed length for URLs to prevent DoS attacks.
const maxURLLength = 2048

// MinNameLength is the shortest display name accepted on profile updates.
const MinNameLength = 2

var customLinkPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,32}$`)

// ValidateImageURL validates the format of a user-supplied image URL.
// The URL is stored and rendered by clients, never fetched by the server.
func ValidateImageURL(rawURL string) error {
	if strings.TrimSpace(rawURL) == "" {
		return &ValidationError{Field: "imageUrl", Message: "Image URL is required"}
	}

	// DoS protection: enforce maximum URL length
	if len(rawURL) > maxURLLength {
		return &ValidationError{
			Field:   "imageUrl",
			Message: fmt.Sprintf("Image URL must not exceed %d characters", maxURLLength),
		}
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return &ValidationError{Field: "imageUrl", Message: "Image URL is malformed"}
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return &ValidationError{Field: "imageUrl", Message: "Image URL must use http or https scheme"}
	}
	if parsedURL.Host == "" {
		return &ValidationError{Field: "imageUrl", Message: "Image URL must have a valid host"}
	}
	return nil
}

// ValidateName checks a display name after trimming surrounding whitespace.
func ValidateName(name string) error {
	if utf8.RuneCountInString(strings.TrimSpace(name)) < MinNameLength {
		return &ValidationError{
			Field:   "name",
			Message: fmt.Sprintf("Name must be at least %d characters", MinNameLength),
		}
	}
	return nil
}

// ValidateCustomLink checks the vanity profile slug. Empty means "unset".
func ValidateCustomLink(link string) error {
	if link == "" {
		return nil
	}
	if !customLinkPattern.MatchString(link) {
		return &ValidationError{
			Field:   "customLink",
			Message: "Custom link must be 3-32 letters, digits, '-' or '_'",
		}
	}
	return nil
}
