package anchor_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark/ast"

	"github.com/dmitrymomot/slug/pkg/anchor"
	"github.com/dmitrymomot/slug/pkg/sanitizer"
	"github.com/dmitrymomot/slug/pkg/slug"
)

func TestIDs_Generate(t *testing.T) {
	t.Parallel()

	t.Run("slugs and deduplicates", func(t *testing.T) {
		t.Parallel()

		ids := anchor.NewIDs(anchor.WithStore(slug.NewStore()))
		assert.Equal(t, "getting-started", string(ids.Generate([]byte("Getting Started"), ast.KindHeading)))
		assert.Equal(t, "getting-started-1", string(ids.Generate([]byte("Getting started!"), ast.KindHeading)))
		assert.Equal(t, "getting-started-2", string(ids.Generate([]byte("  getting started  "), ast.KindHeading)))
	})

	t.Run("respects reserved ids", func(t *testing.T) {
		t.Parallel()

		ids := anchor.NewIDs(anchor.WithStore(slug.NewStore()))
		ids.Put([]byte("setup"))
		assert.Equal(t, "setup-1", string(ids.Generate([]byte("Setup"), ast.KindHeading)))
	})

	t.Run("fallback for empty text", func(t *testing.T) {
		t.Parallel()

		ids := anchor.NewIDs(anchor.WithStore(slug.NewStore()))
		assert.Equal(t, "heading", string(ids.Generate(nil, ast.KindHeading)))
		assert.Equal(t, "heading-1", string(ids.Generate([]byte("   "), ast.KindHeading)))
		assert.Equal(t, "id", string(ids.Generate(nil, ast.KindParagraph)))
	})

	t.Run("slug options apply", func(t *testing.T) {
		t.Parallel()

		ids := anchor.NewIDs(
			anchor.WithStore(slug.NewStore()),
			anchor.WithSlugOptions(slug.Replacement("_"), slug.WithMode(slug.ModeRFC3986)),
		)
		assert.Equal(t, "v1.2_release", string(ids.Generate([]byte("v1.2 Release"), ast.KindHeading)))
	})

	t.Run("store extensions apply", func(t *testing.T) {
		t.Parallel()

		store := slug.NewStore()
		store.Extend(map[string]string{"&": "and"})
		ids := anchor.NewIDs(anchor.WithStore(store))
		assert.Equal(t, "fish-and-chips", string(ids.Generate([]byte("Fish & Chips"), ast.KindHeading)))
	})
}

func TestHeadings(t *testing.T) {
	t.Parallel()

	src := []byte("# Hello World\n\nIntro text.\n\n## Hello World\n\n### Café *au* lait\n\nSetext\n------\n")

	headings, err := anchor.Headings(src, anchor.WithStore(slug.NewStore()))
	require.NoError(t, err)
	assert.Equal(t, []anchor.Heading{
		{Level: 1, Text: "Hello World", ID: "hello-world"},
		{Level: 2, Text: "Hello World", ID: "hello-world-1"},
		{Level: 3, Text: "Café au lait", ID: "cafe-au-lait"},
		{Level: 2, Text: "Setext", ID: "setext"},
	}, headings)
}

func TestHeadings_NoHeadings(t *testing.T) {
	t.Parallel()

	headings, err := anchor.Headings([]byte("just a paragraph\n"))
	require.NoError(t, err)
	assert.Empty(t, headings)
}

func TestRender(t *testing.T) {
	t.Parallel()

	t.Run("adds heading ids", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		err := anchor.Render(&buf, []byte("# Café\n\n# Café\n"), anchor.WithStore(slug.NewStore()))
		require.NoError(t, err)
		assert.Equal(t, "<h1 id=\"cafe\">Café</h1>\n<h1 id=\"cafe-1\">Café</h1>\n", buf.String())
	})

	t.Run("sanitizes with policy", func(t *testing.T) {
		t.Parallel()

		src := []byte("# Title\n\n<script>alert(1)</script>\n\n**bold** and `code`\n")

		var plain bytes.Buffer
		require.NoError(t, anchor.Render(&plain, src, anchor.WithStore(slug.NewStore())))
		require.Contains(t, plain.String(), "<!--")

		var buf bytes.Buffer
		err := anchor.Render(&buf, src,
			anchor.WithStore(slug.NewStore()),
			anchor.WithPolicy(sanitizer.MarkdownPolicy()),
		)
		require.NoError(t, err)

		out := buf.String()
		assert.Contains(t, out, `<h1 id="title">Title</h1>`)
		assert.Contains(t, out, "<strong>bold</strong>")
		assert.Contains(t, out, "<code>code</code>")
		assert.NotContains(t, out, "<!--")
		assert.NotContains(t, out, "script")
	})

	t.Run("unknown mode fails before rendering", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		err := anchor.Render(&buf, []byte("# Title\n"), anchor.WithSlugOptions(slug.WithMode("nope")))
		require.ErrorIs(t, err, slug.ErrUnknownMode)
		assert.Empty(t, buf.String())
	})

	t.Run("headings fail on unknown mode", func(t *testing.T) {
		t.Parallel()

		_, err := anchor.Headings([]byte("# Title\n"), anchor.WithSlugOptions(slug.WithMode("nope")))
		require.ErrorIs(t, err, slug.ErrUnknownMode)
	})
}
