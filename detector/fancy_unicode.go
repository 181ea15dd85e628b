// Package detector holds the spam heuristics applied to harvested comments.
package detector

import "unicode"

// fancyUnicode covers the stylized and look-alike ranges commonly used to
// obfuscate gambling brand names past plain-text keyword filters:
// Cyrillic used as Latin look-alikes, letterlike symbols, enclosed
// alphanumerics (both blocks), and mathematical alphanumeric symbols.
var fancyUnicode = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x0400, Hi: 0x04FF, Stride: 1}, // Cyrillic
		{Lo: 0x2100, Hi: 0x214F, Stride: 1}, // Letterlike Symbols
		{Lo: 0x2460, Hi: 0x24FF, Stride: 1}, // Enclosed Alphanumerics
	},
	R32: []unicode.Range32{
		{Lo: 0x1D400, Hi: 0x1D7FF, Stride: 1}, // Mathematical Alphanumeric Symbols
		{Lo: 0x1F110, Hi: 0x1F12F, Stride: 1}, // Enclosed Alphanumeric Supplement
	},
}

// ContainsFancyUnicode reports whether text contains at least one code point
// from the stylized ranges above. A true result marks the comment as a
// moderation candidate.
func ContainsFancyUnicode(text string) bool {
	for _, r := range text {
		if unicode.Is(fancyUnicode, r) {
			return true
		}
	}
	return false
}
