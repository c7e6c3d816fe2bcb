// internal/app/system/htmlsanitize/htmlsanitize.go

// Package htmlsanitize strips unsafe markup from instructor-entered rich
// text (mission and contest descriptions) before it is stored or rendered.
// Legacy documents hold a mix of plain text and HTML, so display paths go
// through PrepareForDisplay, which handles both.
package htmlsanitize

import (
	"html"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var policy = buildPolicy()

func buildPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	// Rich-text editors emit class-styled tables; everything else about the
	// class attribute stays disallowed.
	p.AllowAttrs("class").OnElements("table", "thead", "tbody", "tfoot", "tr", "th", "td")
	return p
}

// Sanitize removes scripts, event handlers, javascript: URLs, and other
// unsafe markup while keeping common formatting, links, images, and tables.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return policy.Sanitize(s)
}

// SanitizeToHTML sanitizes and returns template.HTML for direct rendering.
func SanitizeToHTML(s string) template.HTML {
	return template.HTML(Sanitize(s))
}

// IsPlainText reports whether s contains no HTML tags. A lone '<' or '>'
// (e.g. "5 < 10") still counts as plain text.
func IsPlainText(s string) bool {
	idx := strings.Index(s, "<")
	if idx == -1 {
		return true
	}
	return !strings.Contains(s[idx:], ">")
}

// PlainTextToHTML escapes s and converts newlines to <br>, wrapped in a
// paragraph. Empty input stays empty.
func PlainTextToHTML(s string) string {
	if s == "" {
		return ""
	}
	escaped := html.EscapeString(s)
	escaped = strings.ReplaceAll(escaped, "\r\n", "\n")
	escaped = strings.ReplaceAll(escaped, "\n", "<br>")
	return "<p>" + escaped + "</p>"
}

// PrepareForDisplay converts stored content to safe HTML: plain text is
// escaped and paragraph-wrapped, HTML is sanitized.
func PrepareForDisplay(s string) template.HTML {
	if s == "" {
		return ""
	}
	if IsPlainText(s) {
		return template.HTML(PlainTextToHTML(s))
	}
	return SanitizeToHTML(s)
}
