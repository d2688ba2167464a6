// Package dashboard turns a metrics sample plus a widget layout into packed
// 1-bit frames. It owns the canvas and all per-widget animation state, and
// is driven synchronously: one Render call per display refresh tick.
//
// Widget dispatch is deliberately forgiving: unknown kinds, disabled
// widgets, and degenerate geometry are skipped without error so a single
// misconfigured widget can never blank the whole display.
package dashboard

import (
	"time"

	"gitlab.com/tinyland/lab/apex-pulse/pkg/anim"
	"gitlab.com/tinyland/lab/apex-pulse/pkg/canvas"
	"gitlab.com/tinyland/lab/apex-pulse/pkg/config"
	"gitlab.com/tinyland/lab/apex-pulse/pkg/metrics"
)

// Renderer renders dashboard frames. It keeps animation state across calls
// and is not safe for concurrent use.
type Renderer struct {
	canvas *canvas.Canvas
	states map[int]*widgetState

	// Boot sequence gate. The clock is a field so tests can step time.
	started time.Time
	now     func() time.Time
}

// widgetState is the per-widget animation state, created lazily on the
// first render of its widget and keyed by the widget's position in the
// configuration. One widget's state never aliases another's.
type widgetState struct {
	history []float64 // memory graph samples, oldest first

	volume     anim.Counter
	volumeInit bool

	caps      anim.Toggle
	num       anim.Toggle
	scroll    anim.Toggle
	locksInit bool
}

// New creates a renderer for a width×height display. The boot sequence
// clock starts immediately.
func New(width, height int) *Renderer {
	r := &Renderer{
		canvas: canvas.New(width, height),
		states: make(map[int]*widgetState),
		now:    time.Now,
	}
	r.started = r.now()
	return r
}

// Render produces one packed frame for the given configuration and sample.
// While the boot sequence is active it draws only the boot animation; from
// the first tick after BootDuration it draws only widgets. The cutover is
// hard, never a blend.
func (r *Renderer) Render(cfg *config.Config, sample metrics.Sample) []byte {
	r.canvas.Clear(cfg.Display.Background > 0)

	if elapsed := r.now().Sub(r.started); elapsed < BootDuration {
		r.renderBoot(elapsed)
		return r.canvas.Packed()
	}

	for i := range cfg.Widgets {
		w := &cfg.Widgets[i]
		if !w.IsEnabled() {
			continue
		}
		if w.Position.W <= 0 || w.Position.H <= 0 {
			continue
		}

		switch w.Kind {
		case "cpu":
			r.drawCPU(w, sample)
		case "volume":
			r.drawVolume(r.state(i), w, sample)
		case "memory":
			r.drawMemory(r.state(i), w, sample)
		case "network":
			r.drawNetwork(w, sample)
		case "keyboard":
			r.drawKeyboard(r.state(i), sample)
		}
	}

	return r.canvas.Packed()
}

// SkipBoot ends the boot sequence immediately. Single-frame renders use
// this so the output shows widgets instead of a boot frame.
func (r *Renderer) SkipBoot() {
	r.started = r.now().Add(-BootDuration)
}

// state returns the animation state for widget index i, creating it on
// first use.
func (r *Renderer) state(i int) *widgetState {
	st, ok := r.states[i]
	if !ok {
		st = &widgetState{}
		r.states[i] = st
	}
	return st
}
