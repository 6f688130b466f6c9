package sanitizer

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy *bluemonday.Policy
	safePolicy   *bluemonday.Policy
	initOnce     sync.Once
)

var headingElements = []string{"h1", "h2", "h3", "h4", "h5", "h6"}

func initPolicies() {
	initOnce.Do(func() {
		// Strict strips every tag. Stripped tags leave a space behind so
		// adjacent blocks do not glue their words together.
		strictPolicy = bluemonday.StrictPolicy()
		strictPolicy.AddSpaceWhenStrippingTag(true)

		safePolicy = MarkdownPolicy()
	})
}

// MarkdownPolicy returns a new policy for rendered Markdown: basic
// formatting, lists, code, links and headings with their id attribute.
// Callers may extend the returned policy before use.
func MarkdownPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowStandardURLs()
	p.AllowElements(
		"p", "br",
		"strong", "b", "em", "i",
		"ul", "ol", "li",
		"code", "pre", "blockquote",
	)
	p.AllowElements(headingElements...)
	p.AllowAttrs("id").OnElements(headingElements...)
	p.AllowAttrs("href").OnElements("a")
	p.RequireNoFollowOnLinks(true)
	return p
}

// StripHTML removes all markup and returns the plain text with entities
// decoded and whitespace runs reduced to single spaces. Script and style
// content is dropped.
func StripHTML(s string) string {
	if s == "" {
		return ""
	}
	initPolicies()
	text := html.UnescapeString(strictPolicy.Sanitize(s))
	return strings.Join(strings.Fields(text), " ")
}

// SanitizeHTML allows safe formatting tags (p, a, strong, em, lists, code)
// and headings with their id attribute.
// Strips all dangerous elements and attributes including scripts, event
// handlers and javascript: URLs.
func SanitizeHTML(s string) string {
	initPolicies()
	return safePolicy.Sanitize(s)
}

// SanitizeWith sanitizes s with policy. A nil policy leaves s unchanged.
func SanitizeWith(s string, policy *bluemonday.Policy) string {
	if policy == nil || s == "" {
		return s
	}
	return policy.Sanitize(s)
}
