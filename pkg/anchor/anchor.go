package anchor

import (
	"bytes"
	"io"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/dmitrymomot/slug/pkg/sanitizer"
	"github.com/dmitrymomot/slug/pkg/slug"
)

// Fallback ids for text that slugs to nothing.
const (
	fallbackHeadingID = "heading"
	fallbackID        = "id"
)

// Heading is a table of contents entry.
type Heading struct {
	Text  string `json:"text"`
	ID    string `json:"id"`
	Level int    `json:"level"`
}

// IDs generates unique element ids from slugs. It implements goldmark's
// parser.IDs and is scoped to a single document; it is not safe for
// concurrent use.
type IDs struct {
	store *slug.Store
	seen  map[string]struct{}
	opts  []slug.Option
}

var _ parser.IDs = (*IDs)(nil)

// NewIDs creates an id generator for one document.
func NewIDs(opts ...Option) *IDs {
	o := newOptions(opts...)
	return &IDs{
		store: o.store,
		opts:  o.slugOpts,
		seen:  make(map[string]struct{}),
	}
}

// Generate slugs value and makes the result unique within the document by
// appending -1, -2, ... to repeated ids.
func (ids *IDs) Generate(value []byte, kind ast.NodeKind) []byte {
	base, err := ids.store.Make(string(bytes.TrimSpace(value)), ids.opts...)
	if err != nil || base == "" {
		base = fallbackID
		if kind == ast.KindHeading {
			base = fallbackHeadingID
		}
	}

	id := base
	for i := 1; ids.taken(id); i++ {
		id = base + "-" + strconv.Itoa(i)
	}
	ids.seen[id] = struct{}{}
	return []byte(id)
}

// Put reserves an id that was set explicitly in the document.
func (ids *IDs) Put(value []byte) {
	ids.seen[string(value)] = struct{}{}
}

func (ids *IDs) taken(id string) bool {
	_, ok := ids.seen[id]
	return ok
}

func newMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
			parser.WithAttribute(),
		),
	)
}

// validate fails early on slug options the store cannot resolve, which
// Generate would otherwise hide behind fallback ids.
func validate(o *options) error {
	_, err := o.store.Resolve(o.slugOpts...)
	return err
}

// Render converts Markdown to HTML with slug-based heading ids. With
// WithPolicy the output is sanitized before it is written.
func Render(w io.Writer, src []byte, opts ...Option) error {
	o := newOptions(opts...)
	if err := validate(o); err != nil {
		return err
	}

	ctx := parser.NewContext(parser.WithIDs(NewIDs(opts...)))
	if o.policy == nil {
		return newMarkdown().Convert(src, w, parser.WithContext(ctx))
	}

	var buf bytes.Buffer
	if err := newMarkdown().Convert(src, &buf, parser.WithContext(ctx)); err != nil {
		return err
	}
	_, err := io.WriteString(w, sanitizer.SanitizeWith(buf.String(), o.policy))
	return err
}

// Headings parses Markdown and returns its headings in document order.
func Headings(src []byte, opts ...Option) ([]Heading, error) {
	o := newOptions(opts...)
	if err := validate(o); err != nil {
		return nil, err
	}

	ctx := parser.NewContext(parser.WithIDs(NewIDs(opts...)))
	doc := newMarkdown().Parser().Parse(text.NewReader(src), parser.WithContext(ctx))

	var headings []Heading
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}

		entry := Heading{Level: h.Level, Text: nodeText(h, src)}
		if id, ok := h.AttributeString("id"); ok {
			if b, ok := id.([]byte); ok {
				entry.ID = string(b)
			}
		}
		headings = append(headings, entry)
		return ast.WalkSkipChildren, nil
	})
	if err != nil {
		return nil, err
	}
	return headings, nil
}

// nodeText concatenates the literal text below n.
func nodeText(n ast.Node, src []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}
