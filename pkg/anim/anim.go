// Package anim implements small frame-stepped transition state machines used
// by the dashboard widgets: a boolean toggle transition, a stepped integer
// counter, and scalar interpolation helpers.
//
// Every transition has the same two-state shape: Settled, and
// Transitioning(step) for step in [0, length). A signal change while settled
// seeds a fresh transition; each render tick advances it by one step until it
// settles again. What differs per type is the interruption policy: toggles
// restart from scratch when the signal flips mid-flight, while the counter
// only retargets and lets the current unit step finish (see Counter).
package anim

// DefaultLength is the number of frames a transition takes unless configured
// otherwise. Six frames at the default 33ms refresh is roughly 200ms of
// motion.
const DefaultLength = 6

// Lerp linearly interpolates between a and b. t outside [0,1] is clamped.
func Lerp(a, b, t float64) float64 {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return a + (b-a)*t
}

// Toggle animates a boolean signal change over a fixed number of frames.
// The zero value is unusable; construct with NewToggle.
type Toggle struct {
	from   bool
	to     bool
	step   uint8
	length uint8
	seen   bool
}

// NewToggle creates a toggle transition taking length frames per change.
// A length of zero falls back to DefaultLength.
func NewToggle(length uint8) Toggle {
	if length == 0 {
		length = DefaultLength
	}
	return Toggle{length: length}
}

// Observe feeds the current boolean signal. The first observation settles
// immediately at that value; later changes start (or restart) a transition
// from the previously observed value. Call once per render tick, before
// reading Progress.
func (t *Toggle) Observe(v bool) {
	if !t.seen {
		t.seen = true
		t.from = v
		t.to = v
		t.step = t.length
		return
	}
	if v != t.to {
		t.from = t.to
		t.to = v
		t.step = 0
	}
}

// Tick advances the transition by one frame. Call once per render tick,
// after drawing.
func (t *Toggle) Tick() {
	if t.step < t.length {
		t.step++
	}
}

// Settled reports whether the transition has finished.
func (t *Toggle) Settled() bool {
	return t.step >= t.length || t.from == t.to
}

// From returns the boolean value the transition started from.
func (t *Toggle) From() bool { return t.from }

// To returns the boolean value the transition is heading to. While settled
// this is the displayed value.
func (t *Toggle) To() bool { return t.to }

// Progress returns the blend position of the frame about to be drawn, in
// (0, 1]. It runs one step ahead of the raw step counter: the first
// transitioning frame reports 1/length rather than 0, so renderers show
// motion immediately instead of repeating the settled state for a frame.
// Settled toggles report 1.
func (t *Toggle) Progress() float64 {
	if t.Settled() {
		return 1
	}
	return float64(t.step+1) / float64(t.length)
}
