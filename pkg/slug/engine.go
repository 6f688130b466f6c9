package slug

import (
	"encoding/base64"
	"slices"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// makeString runs the transformation and, when it strips everything from a
// non-empty input, retries once on the base64 form of the repaired input.
func makeString(text string, eff *EffectiveOptions) string {
	if text == "" {
		return ""
	}
	if out := transform(text, eff); out != "" {
		return out
	}
	return transform(encodeBase64(repairString(text)), eff)
}

func makeUTF16(units []uint16, eff *EffectiveOptions) string {
	if len(units) == 0 {
		return ""
	}
	if out := transform(string(utf16.Decode(units)), eff); out != "" {
		return out
	}
	return transform(encodeBase64(repairUTF16(units)), eff)
}

func encodeBase64(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

// transform transliterates text code point by code point and applies the
// post-processing pipeline: remove, trim, collapse, lower.
func transform(text string, eff *EffectiveOptions) string {
	src := []rune(text)
	lengths := keyLengths(eff.MultiCharMap)
	allowed := allowedFunc(eff.Mode)

	var b strings.Builder
	b.Grow(len(text))

	for i := 0; i < len(src); i++ {
		if repl, n, ok := matchMulti(src, i, lengths, eff.MultiCharMap); ok {
			b.WriteString(repl)
			i += n - 1
			continue
		}

		r := src[i]
		ch := string(r)
		if repl, ok := eff.CharMap[ch]; ok {
			// A replacement inside a mapped value must survive the collapse
			// step as a separator instead of being filtered out.
			if eff.Replacement != "" {
				repl = strings.ReplaceAll(repl, eff.Replacement, " ")
			}
			b.WriteString(repl)
			continue
		}
		if eff.Replacement != "" && ch == eff.Replacement {
			b.WriteByte(' ')
			continue
		}
		if allowed(r) {
			b.WriteRune(r)
		}
	}

	out := b.String()
	if eff.Remove != nil {
		out = eff.Remove.ReplaceAllString(out, "")
	}
	if eff.Trim {
		out = strings.TrimFunc(out, isSpace)
	}
	out = collapseSpace(out, eff.Replacement)
	if eff.Lower {
		out = cases.Lower(language.Und).String(out)
	}
	return out
}

// keyLengths returns the distinct key lengths of m in code points, longest first.
func keyLengths(m MultiCharMap) []int {
	if len(m) == 0 {
		return nil
	}
	lengths := make([]int, 0, 4)
	for key := range m {
		n := utf8.RuneCountInString(key)
		if n > 0 && !slices.Contains(lengths, n) {
			lengths = append(lengths, n)
		}
	}
	slices.Sort(lengths)
	slices.Reverse(lengths)
	return lengths
}

// matchMulti reports the longest key of m starting at src[i].
func matchMulti(src []rune, i int, lengths []int, m MultiCharMap) (string, int, bool) {
	for _, n := range lengths {
		if i+n > len(src) {
			continue
		}
		if repl, ok := m[string(src[i:i+n])]; ok {
			return repl, n, true
		}
	}
	return "", 0, false
}

// allowedFunc returns the predicate for characters that pass through
// unchanged in the given mode.
func allowedFunc(mode Mode) func(rune) bool {
	if mode == ModeRFC3986 {
		return isUnreserved
	}
	return isPretty
}

func isASCIIAlnum(r rune) bool {
	return ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || ('0' <= r && r <= '9')
}

func isPretty(r rune) bool {
	return isASCIIAlnum(r) || isSpace(r)
}

func isUnreserved(r rune) bool {
	switch r {
	case '_', '-', '.', '~':
		return true
	}
	return isASCIIAlnum(r) || isSpace(r)
}

// isSpace matches the ECMAScript white space and line terminator set.
// Unlike unicode.IsSpace it excludes U+0085 and includes U+FEFF.
func isSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ',
		'\u00a0', '\u1680', '\u2028', '\u2029', '\u202f', '\u205f', '\u3000', '\ufeff':
		return true
	}
	return '\u2000' <= r && r <= '\u200a'
}

// collapseSpace replaces every run of whitespace with a single sep.
func collapseSpace(s, sep string) string {
	var b strings.Builder
	b.Grow(len(s))

	inSpace := false
	for _, r := range s {
		if isSpace(r) {
			if !inSpace {
				b.WriteString(sep)
				inSpace = true
			}
			continue
		}
		inSpace = false
		b.WriteRune(r)
	}
	return b.String()
}
