package text

import (
	"html"
	"regexp"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
)

var markupPattern = regexp.MustCompile(`<(?:!--|/?[a-zA-Z][a-zA-Z0-9-]*(?:\s[^<>]*)?/?>)`)

var (
	ugcPolicy     *bluemonday.Policy
	ugcPolicyOnce sync.Once
)

func policy() *bluemonday.Policy {
	ugcPolicyOnce.Do(func() {
		p := bluemonday.UGCPolicy()
		p.AllowElements("article", "section", "div", "p", "span", "br",
			"h1", "h2", "h3", "h4", "h5", "h6", "ul", "ol", "li",
			"blockquote", "pre", "code", "b", "strong", "i", "em", "u", "a", "img")
		p.AllowAttrs("href").OnElements("a")
		p.AllowAttrs("src", "alt", "title").OnElements("img")
		p.RequireNoFollowOnLinks(true)
		ugcPolicy = p
	})
	return ugcPolicy
}

// HasMarkup reports whether raw contains at least one HTML tag.
// A bare "<" or "&" in prose does not count.
func HasMarkup(raw string) bool {
	return markupPattern.MatchString(raw)
}

// SanitizeHTML strips scripts, event handlers and other unsafe markup from
// user-supplied newsletter content while keeping structural HTML.
// Input without any tags is returned byte for byte.
func SanitizeHTML(raw string) string {
	if !HasMarkup(raw) {
		return raw
	}
	return policy().Sanitize(raw)
}

// PlainText returns the visible text of an HTML fragment with whitespace
// collapsed and entities decoded.
func PlainText(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	if !HasMarkup(trimmed) {
		return normalizeWhitespace(html.UnescapeString(trimmed))
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(trimmed))
	if err != nil {
		return normalizeWhitespace(trimmed)
	}
	doc.Find("script, style, noscript").Remove()

	var parts []string
	collectText(doc.Find("body"), &parts)
	return normalizeWhitespace(strings.Join(parts, " "))
}

func collectText(s *goquery.Selection, parts *[]string) {
	s.Contents().Each(func(_ int, c *goquery.Selection) {
		if goquery.NodeName(c) == "#text" {
			if t := strings.TrimSpace(c.Text()); t != "" {
				*parts = append(*parts, t)
			}
			return
		}
		collectText(c, parts)
	})
}

func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
