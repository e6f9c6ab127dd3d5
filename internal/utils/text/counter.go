// Package text provides helpers for the text that flows into newsletters
// and AI prompts: rune counting, truncation, HTML sanitizing and
// plain-text extraction.
package text

// CountRunes counts the number of Unicode characters (runes) in the given text.
//
//	CountRunes("hello")     // 5
//	CountRunes("こんにちは") // 5
//	CountRunes("")          // 0
func CountRunes(text string) int {
	return len([]rune(text))
}

// Truncate cuts text to at most limit runes and appends suffix when it cuts.
// A limit <= 0 returns text unchanged.
func Truncate(text string, limit int, suffix string) string {
	if limit <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + suffix
}
