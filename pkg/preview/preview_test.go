package preview

import (
	"bytes"
	"strings"
	"testing"
)

func packFrame(width, height int, on func(x, y int) bool) []byte {
	out := make([]byte, (width*height+7)/8)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if on(x, y) {
				i := y*width + x
				out[i/8] |= 1 << (7 - i%8)
			}
		}
	}
	return out
}

func TestSendFrameGeometry(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, 8, 4)

	if err := p.SendFrame(packFrame(8, 4, func(x, y int) bool { return false })); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != p.Lines() {
		t.Fatalf("frame rendered as %d lines, want %d", len(lines), p.Lines())
	}
	for i, line := range lines {
		if got := len([]rune(line)); got != 8 {
			t.Errorf("line %d has %d columns, want 8", i, got)
		}
	}
}

func TestSendFrameHalfBlocks(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, 4, 2)

	// Column 0: both rows on. Column 1: top only. Column 2: bottom only.
	frame := packFrame(4, 2, func(x, y int) bool {
		switch x {
		case 0:
			return true
		case 1:
			return y == 0
		case 2:
			return y == 1
		}
		return false
	})
	if err := p.SendFrame(frame); err != nil {
		t.Fatal(err)
	}

	got := strings.TrimRight(buf.String(), "\n")
	if got != "█▀▄ " {
		t.Errorf("rendered %q, want %q", got, "█▀▄ ")
	}
}

func TestSendFrameOddHeight(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, 4, 5)

	// Last line covers a single pixel row.
	frame := packFrame(4, 5, func(x, y int) bool { return y == 4 })
	if err := p.SendFrame(frame); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	if lines[2] != "▀▀▀▀" {
		t.Errorf("last line %q, want upper half blocks", lines[2])
	}
}

func TestSendFrameRejectsWrongSize(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, 128, 40)
	if err := p.SendFrame(make([]byte, 10)); err == nil {
		t.Error("wrong-size frame accepted")
	}
}
