package dashboard

import (
	"bytes"
	"testing"
	"time"

	"gitlab.com/tinyland/lab/apex-pulse/pkg/config"
	"gitlab.com/tinyland/lab/apex-pulse/pkg/metrics"
)

// newTestRenderer returns a renderer whose clock is frozen just past the
// boot sequence, so Render goes straight to widgets.
func newTestRenderer(w, h int) *Renderer {
	r := New(w, h)
	frozen := r.started.Add(BootDuration)
	r.now = func() time.Time { return frozen }
	return r
}

func (r *Renderer) countPixels() int {
	n := 0
	for y := 0; y < r.canvas.Height(); y++ {
		for x := 0; x < r.canvas.Width(); x++ {
			if r.canvas.Get(x, y) {
				n++
			}
		}
	}
	return n
}

func enabledWidget(kind string, x, y, w, h int) config.Widget {
	return config.Widget{Kind: kind, Position: config.Position{X: x, Y: y, W: w, H: h}}
}

func TestBootThenWidgetsCutover(t *testing.T) {
	r := New(128, 40)
	clock := r.started
	r.now = func() time.Time { return clock }

	cfg := &config.Config{Display: config.Display{Width: 128, Height: 40}}

	clock = r.started.Add(BootDuration / 2)
	r.Render(cfg, metrics.Sample{})
	if r.countPixels() == 0 {
		t.Error("boot frame is blank halfway through the sequence")
	}

	// No widgets configured: after the boot window the frame must be empty.
	clock = r.started.Add(BootDuration)
	r.Render(cfg, metrics.Sample{})
	if n := r.countPixels(); n != 0 {
		t.Errorf("post-boot frame with no widgets has %d pixels, want 0", n)
	}
}

func TestBootFramesAreDeterministic(t *testing.T) {
	r := New(128, 40)
	clock := r.started.Add(9 * BootDuration / 10) // inside the dissolve window
	r.now = func() time.Time { return clock }

	cfg := &config.Config{Display: config.Display{Width: 128, Height: 40}}
	a := append([]byte(nil), r.Render(cfg, metrics.Sample{})...)
	b := r.Render(cfg, metrics.Sample{})
	if !bytes.Equal(a, b) {
		t.Error("same elapsed time rendered two different boot frames")
	}
}

func TestBarFillEndpointsAndMonotonicity(t *testing.T) {
	pos := config.Position{X: 0, Y: 0, W: 10, H: 20}

	r := newTestRenderer(32, 32)
	r.drawBar(pos, 0, "vertical", false)
	if n := r.countPixels(); n != 0 {
		t.Errorf("0%% bar has %d pixels, want 0", n)
	}

	r = newTestRenderer(32, 32)
	r.drawBar(pos, 100, "vertical", false)
	if n := r.countPixels(); n != 10*20 {
		t.Errorf("100%% bar has %d pixels, want %d", n, 10*20)
	}

	prev := 0
	for p := 0; p <= 100; p += 5 {
		r = newTestRenderer(32, 32)
		r.drawBar(pos, float64(p), "horizontal", true)
		n := r.countPixels()
		if n < prev {
			t.Errorf("fill at %d%% (%d pixels) below fill at %d%%", p, n, p-5)
		}
		prev = n
	}
}

func TestBarClampsOutOfRangePercent(t *testing.T) {
	pos := config.Position{X: 0, Y: 0, W: 8, H: 8}

	r := newTestRenderer(16, 16)
	r.drawBar(pos, -40, "vertical", false)
	if n := r.countPixels(); n != 0 {
		t.Errorf("negative percent drew %d pixels", n)
	}

	r = newTestRenderer(16, 16)
	r.drawBar(pos, 250, "vertical", false)
	if n := r.countPixels(); n != 64 {
		t.Errorf("overdriven percent drew %d pixels, want full 64", n)
	}
}

func TestMemoryHistoryBound(t *testing.T) {
	r := newTestRenderer(64, 32)
	w := enabledWidget("memory", 0, 0, 32, 16)
	w.Graph = &config.GraphConfig{History: 4}
	st := r.state(0)

	for i := 1; i <= 10; i++ {
		r.drawMemory(st, &w, metrics.Sample{MemPercent: float64(i)})
	}

	if len(st.history) != 4 {
		t.Fatalf("history length = %d, want 4", len(st.history))
	}
	for i, want := range []float64{7, 8, 9, 10} {
		if st.history[i] != want {
			t.Errorf("history[%d] = %v, want %v", i, st.history[i], want)
		}
	}
}

func TestMemoryHistoryMinimumCapacity(t *testing.T) {
	r := newTestRenderer(64, 32)
	w := enabledWidget("memory", 0, 0, 32, 16)
	w.Graph = &config.GraphConfig{History: 1} // below the floor of 2
	st := r.state(0)

	for i := 0; i < 5; i++ {
		r.drawMemory(st, &w, metrics.Sample{MemPercent: 50})
	}
	if len(st.history) != 2 {
		t.Errorf("history length = %d, want clamped minimum 2", len(st.history))
	}
}

func TestUnknownAndDegenerateWidgetsSkipped(t *testing.T) {
	r := newTestRenderer(64, 32)
	disabled := false
	cfg := &config.Config{
		Display: config.Display{Width: 64, Height: 32},
		Widgets: []config.Widget{
			enabledWidget("bogus", 0, 0, 32, 32),
			enabledWidget("cpu", 0, 0, 0, 32),  // zero width
			enabledWidget("cpu", 0, 0, 32, -4), // negative height
			{Kind: "cpu", Enabled: &disabled, Position: config.Position{X: 0, Y: 0, W: 32, H: 32}},
		},
	}

	r.Render(cfg, metrics.Sample{CPUPercent: 100})
	if n := r.countPixels(); n != 0 {
		t.Errorf("skipped widgets still drew %d pixels", n)
	}
}

func TestKeyboardSettlesToStaticBitmaps(t *testing.T) {
	r := newTestRenderer(128, 40)
	cfg := &config.Config{
		Display: config.Display{Width: 128, Height: 40},
		Widgets: []config.Widget{enabledWidget("keyboard", 66, 0, 62, 12)},
	}
	sample := metrics.Sample{CapsLock: true, NumLock: true, ScrollLock: false}

	// More than enough frames for every toggle to settle.
	for i := 0; i < 10; i++ {
		r.Render(cfg, sample)
	}

	startX := 128 - (lockIconW*3 + lockIconGap*2) - 1
	checkIcon := func(name string, x int, bitmap [lockIconH]uint16) {
		for row := 0; row < lockIconH; row++ {
			for col := 0; col < lockIconW; col++ {
				want := bitmap[row]>>col&1 == 1
				if got := r.canvas.Get(x+col, 1+row); got != want {
					t.Errorf("%s icon pixel (%d,%d) = %v, want %v", name, col, row, got, want)
				}
			}
		}
	}
	checkIcon("caps", startX, chevronUpOn)
	checkIcon("scroll", startX+(lockIconW+lockIconGap)*2, chevronDownOff)
}

func TestKeyboardToggleAnimatesBeforeSettling(t *testing.T) {
	r := newTestRenderer(128, 40)
	cfg := &config.Config{
		Display: config.Display{Width: 128, Height: 40},
		Widgets: []config.Widget{enabledWidget("keyboard", 66, 0, 62, 12)},
	}

	for i := 0; i < 10; i++ {
		r.Render(cfg, metrics.Sample{})
	}
	settled := append([]byte(nil), r.Render(cfg, metrics.Sample{})...)

	// Flip caps lock: the very next frame must differ from both the old
	// settled frame and the final settled frame.
	first := append([]byte(nil), r.Render(cfg, metrics.Sample{CapsLock: true})...)
	for i := 0; i < 10; i++ {
		r.Render(cfg, metrics.Sample{CapsLock: true})
	}
	final := r.Render(cfg, metrics.Sample{CapsLock: true})

	if bytes.Equal(first, settled) {
		t.Error("first frame after toggle identical to old state")
	}
	if bytes.Equal(first, final) {
		t.Error("first frame after toggle jumped straight to the new state")
	}
}

func TestVolumeReadoutTracksTarget(t *testing.T) {
	r := newTestRenderer(128, 40)
	w := enabledWidget("volume", 66, 22, 62, 18)
	w.Bar = &config.BarConfig{Direction: "horizontal", Border: true}
	st := r.state(0)

	// First observation settles instantly; the roll starts from there.
	r.drawVolume(st, &w, metrics.Sample{VolumePercent: 0})

	// Drive the same target until the roll settles.
	for i := 0; i < 400; i++ {
		r.canvas.Clear(false)
		r.drawVolume(st, &w, metrics.Sample{VolumePercent: 73})
		if d := st.volume.Displayed(); d < 0 || d > 100 {
			t.Fatalf("displayed volume %d out of range", d)
		}
		if st.volume.Idle() && st.volume.Displayed() == 73 {
			return
		}
	}
	t.Fatalf("volume roll never settled at 73, displayed %d", st.volume.Displayed())
}

func TestBootPulseSpansDissolveWindow(t *testing.T) {
	// Three full sine periods over [0, dissolve start]: zero at the window
	// end, peak a quarter period in.
	if got := bootPulse(bootDissolveStart); got > 1e-9 {
		t.Errorf("pulse at window end = %v, want 0", got)
	}
	if got := bootPulse(bootDissolveStart / 12); got < 1-1e-9 {
		t.Errorf("pulse at quarter period = %v, want 1", got)
	}
	// Past the window the phase pins rather than keeps oscillating.
	if bootPulse(1) != bootPulse(bootDissolveStart) {
		t.Error("pulse keeps oscillating past the dissolve window")
	}
}

func TestNetworkRowLayout(t *testing.T) {
	r := newTestRenderer(64, 32)
	w := enabledWidget("network", 0, 0, 50, 18)
	r.drawNetwork(&w, metrics.Sample{NetUpBps: 512, NetDownBps: 2048})

	anyPixels := func(y0, y1 int) bool {
		for y := y0; y < y1; y++ {
			for x := 0; x < 50; x++ {
				if r.canvas.Get(x, y) {
					return true
				}
			}
		}
		return false
	}
	if !anyPixels(1, 6) {
		t.Error("upload row missing at y+1")
	}
	if !anyPixels(10, 15) {
		t.Error("download row missing at y+10")
	}
	if anyPixels(6, 10) {
		t.Error("unexpected pixels between the two rows")
	}

	// Unit glyph right-aligned one advance from the widget's right edge.
	unitLit := false
	for y := 1; y < 6; y++ {
		for x := 50 - 5; x < 50; x++ {
			if r.canvas.Get(x, y) {
				unitLit = true
			}
		}
	}
	if !unitLit {
		t.Error("unit glyph missing from the right-aligned column")
	}
}

func TestHumanSpeed(t *testing.T) {
	cases := []struct {
		bps         float64
		value, unit string
	}{
		{0, "0", "B"},
		{512, "512", "B"},
		{1024, "1.0", "K"},
		{1536, "1.5", "K"},
		{1048576, "1.0", "M"},
		{3 * 1024 * 1024 * 1024, "3.0", "G"},
		{-5, "0", "B"},
	}
	for _, tc := range cases {
		value, unit := humanSpeed(tc.bps)
		if value != tc.value || unit != tc.unit {
			t.Errorf("humanSpeed(%v) = (%q, %q), want (%q, %q)", tc.bps, value, unit, tc.value, tc.unit)
		}
	}
}
