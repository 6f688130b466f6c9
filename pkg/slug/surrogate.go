package slug

import (
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

const (
	surrHighMin = 0xD800
	surrLowMin  = 0xDC00
	surrMax     = 0xDFFF
)

func isHighSurrogate(u uint16) bool { return surrHighMin <= u && u < surrLowMin }

func isLowSurrogate(u uint16) bool { return surrLowMin <= u && u <= surrMax }

// repairChar returns the character at units[i] and the index of its last
// code unit. A well-formed surrogate pair is joined and consumes one extra
// unit; an unpaired half becomes a single space.
func repairChar(units []uint16, i int) (string, int) {
	u := units[i]
	switch {
	case isHighSurrogate(u):
		if i+1 < len(units) && isLowSurrogate(units[i+1]) {
			return string(utf16.DecodeRune(rune(u), rune(units[i+1]))), i + 1
		}
		return " ", i
	case isLowSurrogate(u):
		// A low half preceded by a high half was consumed with it, so any
		// low half seen here is unpaired.
		return " ", i
	default:
		return string(rune(u)), i
	}
}

// repairUTF16 decodes units, replacing every unpaired surrogate with a space.
func repairUTF16(units []uint16) string {
	var b strings.Builder
	b.Grow(len(units))
	for i := 0; i < len(units); i++ {
		var ch string
		ch, i = repairChar(units, i)
		b.WriteString(ch)
	}
	return b.String()
}

// repairString is repairUTF16 for Go strings carrying surrogate halves in
// their generalized UTF-8 form (ED A0..BF xx). A high half directly followed
// by a low half is joined into the code point they encode. Any other
// ill-formed byte becomes a space.
func repairString(s string) string {
	if utf8.ValidString(s) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r != utf8.RuneError || size > 1 {
			b.WriteString(s[i : i+size])
			i += size
			continue
		}

		hi, ok := surrogateAt(s, i)
		if !ok {
			b.WriteByte(' ')
			i++
			continue
		}
		if lo, ok := surrogateAt(s, i+3); ok && isHighSurrogate(hi) && isLowSurrogate(lo) {
			b.WriteRune(utf16.DecodeRune(rune(hi), rune(lo)))
			i += 6
			continue
		}
		b.WriteByte(' ')
		i += 3
	}
	return b.String()
}

// surrogateAt decodes a three byte surrogate half starting at s[i].
func surrogateAt(s string, i int) (uint16, bool) {
	if i+3 > len(s) {
		return 0, false
	}
	b0, b1, b2 := s[i], s[i+1], s[i+2]
	if b0 != 0xED || b1 < 0xA0 || b1 > 0xBF || b2&0xC0 != 0x80 {
		return 0, false
	}
	return 0xD000 | uint16(b1&0x3F)<<6 | uint16(b2&0x3F), true
}
