// Package preview renders packed dashboard frames into a terminal, two
// pixel rows per text line using half-block glyphs. It is the development
// sink: the same frames the keyboard would receive, visible without
// hardware.
package preview

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Half-block glyphs indexed by (top<<1 | bottom).
var blocks = [4]rune{' ', '▄', '▀', '█'}

// Terminal writes frames to a terminal or pipe. On a real terminal it
// redraws in place by moving the cursor back up; on a pipe each frame is
// printed once, separated by a blank line.
type Terminal struct {
	w      io.Writer
	out    *termenv.Output
	width  int
	height int
	tty    bool
	frames int
}

// New creates a preview sink for width×height frames written to w.
func New(w io.Writer, width, height int) *Terminal {
	tty := false
	if f, ok := w.(*os.File); ok {
		tty = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	t := &Terminal{
		w:      w,
		out:    termenv.NewOutput(w),
		width:  width,
		height: height,
		tty:    tty,
	}
	if tty {
		t.out.HideCursor()
	}
	return t
}

// SendFrame renders one packed frame.
func (t *Terminal) SendFrame(frame []byte) error {
	if want := (t.width*t.height + 7) / 8; len(frame) != want {
		return fmt.Errorf("preview: frame size %d, expected %d", len(frame), want)
	}

	if t.tty && t.frames > 0 {
		t.out.CursorUp(t.Lines())
	}

	var b strings.Builder
	for row := 0; row < t.height; row += 2 {
		for x := 0; x < t.width; x++ {
			idx := 0
			if t.bit(frame, x, row) {
				idx |= 2
			}
			if row+1 < t.height && t.bit(frame, x, row+1) {
				idx |= 1
			}
			b.WriteRune(blocks[idx])
		}
		b.WriteByte('\n')
	}
	if !t.tty {
		b.WriteByte('\n')
	}

	t.frames++
	_, err := io.WriteString(t.w, b.String())
	return err
}

// Close restores the cursor.
func (t *Terminal) Close() error {
	if t.tty {
		t.out.ShowCursor()
	}
	return nil
}

// Lines returns how many text lines one frame occupies.
func (t *Terminal) Lines() int {
	return (t.height + 1) / 2
}

func (t *Terminal) bit(frame []byte, x, y int) bool {
	i := y*t.width + x
	return frame[i/8]>>(7-i%8)&1 == 1
}
