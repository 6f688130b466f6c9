// Package slug converts arbitrary text into URL-safe or display-safe slugs.
//
// Text is transliterated code point by code point through two substitution
// tables, characters the mode does not allow are dropped, whitespace runs are
// collapsed into a replacement string and the result is lower-cased.
//
// Basic usage:
//
//	import "github.com/dmitrymomot/slug/pkg/slug"
//
//	s := slug.Make("foo bar baz")
//	// Output: "foo-bar-baz"
//
//	s = slug.Make("Café")
//	// Output: "cafe"
//
//	s = slug.Make(" foo bar baz ", slug.Trim(false))
//	// Output: "-foo-bar-baz-"
//
// # Modes
//
// Two presets ship with every store. ModePretty (the default) keeps ASCII
// letters and digits. ModeRFC3986 also keeps the unreserved URI characters
// "_", ".", "~" and "-":
//
//	slug.Make("It's Your Journey.", slug.WithMode(slug.ModeRFC3986))
//	// Output: "its-your-journey."
//
// # Options
//
// Replacement sets the separator, Lowercase and Trim toggle casing and
// trimming, Remove deletes regular expression matches after transliteration:
//
//	slug.Make("foo bar baz", slug.Replacement("_"))
//	// Output: "foo_bar_baz"
//
//	slug.Make("one 1 two 2", slug.Remove(regexp.MustCompile(`[0-9]`)))
//	// Output: "one-two"
//
// WithCharMap and WithMultiCharMap replace the substitution tables for a
// single call. The store tables are not consulted for that call.
//
// # Substitution tables
//
// The CharMap holds single code point keys (the built-in one strips Latin
// diacritics). The MultiCharMap holds longer sequences such as Hebrew letters
// with niqqud and Devanagari nukta forms; at every position the longest
// matching key wins. Extend adds entries to the live tables, routing each key
// by its length in code points:
//
//	slug.Extend(map[string]string{"♥": "love", "☢": "radioactive"})
//	slug.Make("foo ♥ is ☢")
//	// Output: "foo-love-is-radioactive"
//
// Tables can also be read from YAML with LoadTable or ExtendYAML.
//
// # Shared state
//
// The package-level functions use a process-wide Store. Its tables are shared
// by reference between the store, both presets and Defaults, so changing one
// changes all of them. Reset installs fresh copies of the built-in tables
// instead of clearing the old ones. Tests and services that need isolation
// should create their own store with NewStore.
//
// # Fallback
//
// When every character of a non-empty input is dropped, the input is encoded
// as base64 (unpaired UTF-16 surrogates replaced by spaces first) and slugged
// again, so non-empty input never produces an empty slug:
//
//	slug.Make("鳄梨")
//	// Output: "6boe5qko"
package slug
