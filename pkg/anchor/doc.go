// Package anchor generates heading ids for Markdown documents from slugs.
//
// IDs plugs into goldmark's auto heading id support, so every heading gets
// an id built by the slug engine, unique within the document:
//
//	var buf bytes.Buffer
//	err := anchor.Render(&buf, []byte("# Café\n\n# Café\n"))
//	// <h1 id="cafe">Café</h1>
//	// <h1 id="cafe-1">Café</h1>
//
// WithPolicy sanitizes the rendered HTML with a bluemonday policy.
//
// Headings extracts a table of contents with the same ids.
package anchor
