package anchor

import (
	"github.com/microcosm-cc/bluemonday"

	"github.com/dmitrymomot/slug/pkg/slug"
)

// Option configures id generation.
type Option func(*options)

type options struct {
	store    *slug.Store
	policy   *bluemonday.Policy
	slugOpts []slug.Option
}

func newOptions(opts ...Option) *options {
	o := &options{store: slug.Std()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithStore sets the store whose tables produce the ids.
// Default: slug.Std().
func WithStore(s *slug.Store) Option {
	return func(o *options) {
		if s != nil {
			o.store = s
		}
	}
}

// WithSlugOptions sets the slug options applied to every id.
func WithSlugOptions(opts ...slug.Option) Option {
	return func(o *options) {
		o.slugOpts = append(o.slugOpts, opts...)
	}
}

// WithPolicy sanitizes the HTML produced by Render with policy, for example
// sanitizer.MarkdownPolicy(). Headings ignores it.
func WithPolicy(p *bluemonday.Policy) Option {
	return func(o *options) {
		o.policy = p
	}
}
