// Package sanitizer cleans HTML before it is slugged or served.
//
// StripHTML turns markup into plain text, which keeps tag names and
// attribute values out of slugs built from rich text titles:
//
//	sanitizer.StripHTML("<h1>Fish &amp; <em>Chips</em></h1>")
//	// Output: "Fish & Chips"
//
// SanitizeHTML keeps a safe formatting subset, including heading ids, and is
// meant for HTML rendered from Markdown. MarkdownPolicy returns that policy
// for callers that extend it and apply it with SanitizeWith.
package sanitizer
