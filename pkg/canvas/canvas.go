// Package canvas implements a 1-bit software framebuffer with shape
// primitives and a built-in tiny bitmap font. It is the sole render target
// of the dashboard: widgets mutate the canvas, and the packed byte form is
// what gets streamed to the display hardware.
//
// All coordinate-taking operations silently drop out-of-bounds pixels, so
// shape-drawing code never needs edge branches and widgets may be positioned
// partially (or entirely) off screen without error.
package canvas

// Canvas is a width×height grid of 1-bit pixels, stored one byte per pixel
// for cheap random access. Use Packed to serialize it for the wire.
type Canvas struct {
	width  int
	height int
	pixels []byte
}

// New creates a canvas of the given dimensions with all pixels off.
func New(width, height int) *Canvas {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Canvas{
		width:  width,
		height: height,
		pixels: make([]byte, width*height),
	}
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int { return c.width }

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int { return c.height }

// Clear sets every pixel to on or off.
func (c *Canvas) Clear(on bool) {
	var v byte
	if on {
		v = 1
	}
	for i := range c.pixels {
		c.pixels[i] = v
	}
}

// Set writes a single pixel. Out-of-bounds coordinates are ignored.
func (c *Canvas) Set(x, y int, on bool) {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return
	}
	var v byte
	if on {
		v = 1
	}
	c.pixels[y*c.width+x] = v
}

// Get reports whether the pixel at (x, y) is on. Out-of-bounds reads
// return false.
func (c *Canvas) Get(x, y int) bool {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return false
	}
	return c.pixels[y*c.width+x] != 0
}

// Invert flips a single pixel. Out-of-bounds coordinates are ignored.
func (c *Canvas) Invert(x, y int) {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return
	}
	c.pixels[y*c.width+x] ^= 1
}

// RectFill fills a w×h rectangle anchored at (x, y).
func (c *Canvas) RectFill(x, y, w, h int, on bool) {
	for py := y; py < y+h; py++ {
		for px := x; px < x+w; px++ {
			c.Set(px, py, on)
		}
	}
}

// RectFillInvert inverts every pixel in a w×h rectangle anchored at (x, y).
func (c *Canvas) RectFillInvert(x, y, w, h int) {
	for py := y; py < y+h; py++ {
		for px := x; px < x+w; px++ {
			c.Invert(px, py)
		}
	}
}

// RectBorder draws only the four 1px edges of a w×h rectangle.
func (c *Canvas) RectBorder(x, y, w, h int, on bool) {
	for px := x; px < x+w; px++ {
		c.Set(px, y, on)
		c.Set(px, y+h-1, on)
	}
	for py := y; py < y+h; py++ {
		c.Set(x, py, on)
		c.Set(x+w-1, py, on)
	}
}

// Line draws a straight line from (x0, y0) to (x1, y1) using integer
// Bresenham stepping. Both endpoints are plotted.
func (c *Canvas) Line(x0, y0, x1, y1 int, on bool) {
	c.eachLinePixel(x0, y0, x1, y1, func(x, y int) {
		c.Set(x, y, on)
	})
}

// LineInvert draws the same line as Line but inverts pixels instead of
// setting them.
func (c *Canvas) LineInvert(x0, y0, x1, y1 int) {
	c.eachLinePixel(x0, y0, x1, y1, func(x, y int) {
		c.Invert(x, y)
	})
}

func (c *Canvas) eachLinePixel(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := abs(x1 - x0)
	sx := 1
	if x0 >= x1 {
		sx = -1
	}
	dy := -abs(y1 - y0)
	sy := 1
	if y0 >= y1 {
		sy = -1
	}
	err := dx + dy

	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// Packed serializes the canvas row-major, most-significant-bit first,
// 8 pixels per byte. The final partial byte, if any, is zero-padded, so the
// output length is always ceil(width·height/8).
func (c *Canvas) Packed() []byte {
	out := make([]byte, (c.width*c.height+7)/8)

	byteIndex := 0
	bitIndex := 0
	var current byte

	for _, px := range c.pixels {
		if px != 0 {
			current |= 1 << (7 - bitIndex)
		}
		bitIndex++
		if bitIndex == 8 {
			out[byteIndex] = current
			byteIndex++
			bitIndex = 0
			current = 0
		}
	}
	if bitIndex > 0 {
		out[byteIndex] = current
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
