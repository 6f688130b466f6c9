package slug

import (
	"log/slog"
	"regexp"

	"github.com/dmitrymomot/slug/pkg/logger"
)

// Option overrides a preset value for a single call.
type Option func(*overrides)

// overrides records which preset values the caller replaced. A nil pointer
// means "use the preset", so zero values such as Lowercase(false) still win.
type overrides struct {
	replacement  *string
	remove       **regexp.Regexp
	lower        *bool
	trim         *bool
	charMap      CharMap
	multiCharMap MultiCharMap
	mode         Mode
	hasCharMap   bool
	hasMultiMap  bool
}

func newOverrides(opts ...Option) *overrides {
	o := &overrides{}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

// WithMode selects the preset used for the call.
// Default: the store's default mode (pretty).
func WithMode(m Mode) Option {
	return func(o *overrides) {
		o.mode = m
	}
}

// Replacement sets the string that whitespace runs collapse into.
// An empty replacement joins words together.
// Default: "-".
func Replacement(s string) Option {
	return func(o *overrides) {
		o.replacement = &s
	}
}

// Lowercase controls lower-casing of the final slug.
// Default: true.
func Lowercase(enabled bool) Option {
	return func(o *overrides) {
		o.lower = &enabled
	}
}

// Trim controls stripping of leading and trailing whitespace before
// whitespace is collapsed. With Trim(false) the slug keeps a leading or
// trailing replacement.
// Default: true.
func Trim(enabled bool) Option {
	return func(o *overrides) {
		o.trim = &enabled
	}
}

// Remove deletes every match of re from the transliterated text before
// trimming and collapsing. Remove(nil) disables a preset pattern.
// Default: nil.
func Remove(re *regexp.Regexp) Option {
	return func(o *overrides) {
		o.remove = &re
	}
}

// WithCharMap replaces the single code point table for the call.
// The store's table is not consulted at all.
func WithCharMap(m CharMap) Option {
	return func(o *overrides) {
		o.charMap = m
		o.hasCharMap = true
	}
}

// WithMultiCharMap replaces the multi code point table for the call.
// The store's table is not consulted at all.
func WithMultiCharMap(m MultiCharMap) Option {
	return func(o *overrides) {
		o.multiCharMap = m
		o.hasMultiMap = true
	}
}

// StoreOption configures a Store.
type StoreOption func(*storeOptions)

type storeOptions struct {
	logger      *slog.Logger
	defaultMode Mode
}

func defaultStoreOptions() *storeOptions {
	return &storeOptions{
		logger:      logger.NewNope(),
		defaultMode: ModePretty,
	}
}

// WithLogger sets the logger used for table mutations.
// Default: discards all output.
func WithLogger(l *slog.Logger) StoreOption {
	return func(o *storeOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithDefaultMode sets the mode used when a call does not pick one.
// Default: ModePretty.
func WithDefaultMode(m Mode) StoreOption {
	return func(o *storeOptions) {
		if m != "" {
			o.defaultMode = m
		}
	}
}
