// Package sanitize strips characters that are invisible to a reader but still
// reach the model, such as BiDi controls and Unicode tags.
package sanitize

import (
	"strings"
	"unicode"
)

// invisible lists the code points removed by FilterInvisibleCharacters.
var invisible = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x00AD, Hi: 0x00AD, Stride: 1}, // soft hyphen
		{Lo: 0x180E, Hi: 0x180E, Stride: 1}, // mongolian vowel separator
		{Lo: 0x200B, Hi: 0x200C, Stride: 1}, // zero width space, non-joiner
		{Lo: 0x200E, Hi: 0x200F, Stride: 1}, // LTR / RTL marks
		{Lo: 0x202A, Hi: 0x202E, Stride: 1}, // BiDi embeddings and overrides
		{Lo: 0x2060, Hi: 0x2064, Stride: 1}, // word joiner and invisible operators
		{Lo: 0x2066, Hi: 0x2069, Stride: 1}, // BiDi isolates
		{Lo: 0xFEFF, Hi: 0xFEFF, Stride: 1}, // zero width no-break space
	},
	R32: []unicode.Range32{
		{Lo: 0xE0001, Hi: 0xE0001, Stride: 1}, // language tag
		{Lo: 0xE0020, Hi: 0xE007F, Stride: 1}, // tag characters
	},
}

// FilterInvisibleCharacters removes invisible or control characters that should
// not appear in text handed back to a client.
func FilterInvisibleCharacters(input string) string {
	if input == "" {
		return input
	}
	return strings.Map(func(r rune) rune {
		if unicode.Is(invisible, r) {
			return -1
		}
		return r
	}, input)
}
