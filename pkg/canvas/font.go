package canvas

// The built-in font is 4 pixels wide and 5 tall with 1px-thick strokes.
// Each glyph is 5 rows; in each row, bit N is column N (bit 0 = leftmost).
// Lowercase letters are folded to uppercase; unmapped runes have no glyph.

// GlyphWidth and GlyphHeight are the native dimensions of one font glyph.
const (
	GlyphWidth  = 4
	GlyphHeight = 5
)

// GlyphAdvance is the cursor advance per character at scale 1: the 4px
// glyph plus a 1px gap.
const GlyphAdvance = 5

var tinyFont = map[rune][GlyphHeight]uint8{
	'0': {0b0110, 0b1001, 0b1001, 0b1001, 0b0110},
	'1': {0b0010, 0b0011, 0b0010, 0b0010, 0b0111},
	'2': {0b0110, 0b1000, 0b0100, 0b0010, 0b1111},
	'3': {0b0110, 0b1000, 0b0110, 0b1000, 0b0110},
	'4': {0b1001, 0b1001, 0b1111, 0b1000, 0b1000},
	'5': {0b1111, 0b0001, 0b0111, 0b1000, 0b0111},
	'6': {0b0110, 0b0001, 0b0111, 0b1001, 0b0110},
	'7': {0b1111, 0b1000, 0b0100, 0b0010, 0b0010},
	'8': {0b0110, 0b1001, 0b0110, 0b1001, 0b0110},
	'9': {0b0110, 0b1001, 0b1110, 0b1000, 0b0110},
	'A': {0b0110, 0b1001, 0b1111, 0b1001, 0b1001},
	'B': {0b0111, 0b1001, 0b0111, 0b1001, 0b0111},
	'C': {0b0110, 0b0001, 0b0001, 0b0001, 0b0110},
	'D': {0b0111, 0b1001, 0b1001, 0b1001, 0b0111},
	'E': {0b1111, 0b0001, 0b0111, 0b0001, 0b1111},
	'F': {0b1111, 0b0001, 0b0111, 0b0001, 0b0001},
	'G': {0b0110, 0b0001, 0b1101, 0b1001, 0b0110},
	'H': {0b1001, 0b1001, 0b1111, 0b1001, 0b1001},
	'I': {0b0111, 0b0010, 0b0010, 0b0010, 0b0111},
	'J': {0b1100, 0b1000, 0b1000, 0b1001, 0b0110},
	'K': {0b1001, 0b0101, 0b0011, 0b0101, 0b1001},
	'L': {0b0001, 0b0001, 0b0001, 0b0001, 0b1111},
	'M': {0b1001, 0b1111, 0b0101, 0b1001, 0b1001},
	'N': {0b1001, 0b1011, 0b1101, 0b1001, 0b1001},
	'O': {0b0110, 0b1001, 0b1001, 0b1001, 0b0110},
	'P': {0b0111, 0b1001, 0b0111, 0b0001, 0b0001},
	'Q': {0b0110, 0b1001, 0b1001, 0b0101, 0b1110},
	'R': {0b0111, 0b1001, 0b0111, 0b0101, 0b1001},
	'S': {0b0110, 0b0001, 0b0110, 0b1000, 0b0110},
	'T': {0b1111, 0b0010, 0b0010, 0b0010, 0b0010},
	'U': {0b1001, 0b1001, 0b1001, 0b1001, 0b0110},
	'V': {0b1001, 0b1001, 0b1001, 0b0110, 0b0110},
	'W': {0b1001, 0b1001, 0b0101, 0b1111, 0b1001},
	'X': {0b1001, 0b1001, 0b0110, 0b1001, 0b1001},
	'Y': {0b1001, 0b1001, 0b0110, 0b0010, 0b0010},
	'Z': {0b1111, 0b1000, 0b0100, 0b0010, 0b1111},
	'.': {0b0000, 0b0000, 0b0000, 0b0000, 0b0010},
	'/': {0b1000, 0b0100, 0b0110, 0b0010, 0b0001},
	':': {0b0000, 0b0010, 0b0000, 0b0010, 0b0000},
	'-': {0b0000, 0b0000, 0b1111, 0b0000, 0b0000},
	'%': {0b1001, 0b0100, 0b0110, 0b0010, 0b1001},
	' ': {0b0000, 0b0000, 0b0000, 0b0000, 0b0000},
}

// glyphFor returns the bitmap for a rune, case-folding letters. The second
// return is false for unmapped runes, which callers skip while still
// advancing the cursor.
func glyphFor(r rune) ([GlyphHeight]uint8, bool) {
	if r >= 'a' && r <= 'z' {
		r -= 'a' - 'A'
	}
	g, ok := tinyFont[r]
	return g, ok
}
