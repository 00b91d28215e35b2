package sanitize

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	richOnce   sync.Once
	richPolicy *bluemonday.Policy

	textOnce   sync.Once
	textPolicy *bluemonday.Policy
)

// HTML keeps user formatting (paragraphs, emphasis, lists, safe links) and
// strips scripts, event handlers and javascript: URLs.
func HTML(s string) string {
	if s == "" {
		return ""
	}
	richOnce.Do(func() {
		richPolicy = bluemonday.UGCPolicy()
	})
	return strings.TrimSpace(richPolicy.Sanitize(s))
}

// Text removes every tag and returns plain text.
func Text(s string) string {
	if s == "" {
		return ""
	}
	textOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return strings.TrimSpace(html.UnescapeString(textPolicy.Sanitize(s)))
}
