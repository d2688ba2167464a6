package canvas

// Rect is an integer clip rectangle in pixel space.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// DrawText draws text with the built-in 4×5 font at the given integer scale.
// At scale 1 glyphs are 4×5 with a 5px advance; at scale 2 they are 8×10
// with a 10px advance. Unmapped runes advance the cursor without drawing.
func (c *Canvas) DrawText(x, y int, text string, scale int) {
	c.blitText(x, y, text, scale, false, nil)
}

// DrawTextInvert draws text like DrawText but inverts pixels instead of
// setting them, which keeps glyphs visible over both fill polarities.
func (c *Canvas) DrawTextInvert(x, y int, text string, scale int) {
	c.blitText(x, y, text, scale, true, nil)
}

// DrawTextClipped draws text like DrawText but discards pixels outside the
// clip rectangle. In-place slide animations use this to truncate glyphs at
// their widget boundary.
func (c *Canvas) DrawTextClipped(x, y int, text string, scale int, clip Rect) {
	c.blitText(x, y, text, scale, false, &clip)
}

// DrawTextInvertClipped combines DrawTextInvert and DrawTextClipped.
func (c *Canvas) DrawTextInvertClipped(x, y int, text string, scale int, clip Rect) {
	c.blitText(x, y, text, scale, true, &clip)
}

// blitText is the single glyph-blitting routine behind every text variant.
// A nil clip means unbounded.
func (c *Canvas) blitText(x, y int, text string, scale int, invert bool, clip *Rect) {
	s := scale
	if s < 1 {
		s = 1
	}
	advance := GlyphAdvance * s
	cursorX := x

	for _, r := range text {
		glyph, ok := glyphFor(r)
		if !ok {
			cursorX += advance
			continue
		}
		for row := 0; row < GlyphHeight; row++ {
			bits := glyph[row]
			for col := 0; col < GlyphWidth; col++ {
				if (bits>>col)&1 == 0 {
					continue
				}
				for dy := 0; dy < s; dy++ {
					for dx := 0; dx < s; dx++ {
						px := cursorX + col*s + dx
						py := y + row*s + dy
						if clip != nil && !clip.Contains(px, py) {
							continue
						}
						if invert {
							c.Invert(px, py)
						} else {
							c.Set(px, py, true)
						}
					}
				}
			}
		}
		cursorX += advance
	}
}

// TextWidth returns the pixel width of text at the given scale, counting the
// trailing glyph gap the same way the cursor advance does.
func TextWidth(text string, scale int) int {
	if scale < 1 {
		scale = 1
	}
	n := 0
	for range text {
		n++
	}
	return n * GlyphAdvance * scale
}
