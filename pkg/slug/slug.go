package slug

import "io"

// std backs the package-level functions. It is process-wide shared state:
// Extend and Reset on it affect every caller in the process.
var std = NewStore()

// Std returns the process-wide default store.
func Std() *Store { return std }

// Make converts text into a slug using the default store.
// It never fails: options that cannot be resolved, such as an unknown mode,
// yield an empty string. Use Slugify to observe the error.
func Make(text string, opts ...Option) string {
	out, err := std.Make(text, opts...)
	if err != nil {
		return ""
	}
	return out
}

// Slugify is Make with the resolution error exposed.
func Slugify(text string, opts ...Option) (string, error) {
	return std.Make(text, opts...)
}

// MakeUTF16 converts UTF-16 code units using the default store.
func MakeUTF16(units []uint16, opts ...Option) (string, error) {
	return std.MakeUTF16(units, opts...)
}

// MakeValue converts a textual value using the default store.
func MakeValue(v any, opts ...Option) (string, error) {
	return std.MakeValue(v, opts...)
}

// Extend merges custom into the default store's tables.
func Extend(custom map[string]string) { std.Extend(custom) }

// ExtendYAML merges a YAML table into the default store's tables.
func ExtendYAML(r io.Reader) error { return std.ExtendYAML(r) }

// Reset restores the default store's tables to the built-in ones.
func Reset() { std.Reset() }

// CurrentCharMap returns the default store's live single code point table.
func CurrentCharMap() CharMap { return std.CharMap() }

// CurrentMultiCharMap returns the default store's live multi code point table.
func CurrentMultiCharMap() MultiCharMap { return std.MultiCharMap() }
