package entity

import (
	"fmt"
	"time"
)

// HighlightProbability is the chance that a newspaper item is marked as highlighted.
const HighlightProbability = 0.3

// DailyNewspaper is the digest generated once per calendar day.
type DailyNewspaper struct {
	ID        string
	Date      time.Time
	Title     string
	Summary   string
	Image     string
	CreatedAt time.Time
	Items     []*DailyNewspaperItem
}

// DailyNewspaperItem references one newsletter included in a digest.
type DailyNewspaperItem struct {
	ID           string
	NewspaperID  string
	Category     Category
	Highlight    bool
	Summary      string
	NewsletterID string // empty once the newsletter is deleted

	// Newsletter is populated when the item is read together with its newsletter.
	Newsletter *Newsletter
}

// NewspaperTitle formats the digest title for the given day.
func NewspaperTitle(day time.Time) string {
	return fmt.Sprintf("Daily Digest - %d/%d/%d", int(day.Month()), day.Day(), day.Year())
}

// StartOfDay truncates t to local midnight in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
