package anim

// Phase identifies where a Counter's unit sub-animation currently is.
type Phase int

// Sub-animation phases. Leave covers the first half of the frames (the old
// digit slides out), Handoff is the single middle frame where nothing is
// drawn, and Enter covers the rest (the new digit slides in from the
// opposite edge).
const (
	PhaseSettled Phase = iota
	PhaseLeave
	PhaseHandoff
	PhaseEnter
)

// Counter is a stepped integer transition: instead of jumping to a new
// target it advances one unit step at a time, each step animated over a
// fixed number of frames. A target change mid-step only retargets; the
// in-flight unit step always completes, which keeps digit motion smooth
// when values change rapidly.
//
// Large distances catch up faster: the unit size per step grows with the
// remaining distance to the target (see unitSize), capped so digits are
// never seen teleporting.
type Counter struct {
	displayed int // last fully settled value
	next      int // value the current unit step is heading to
	target    int // latest observed target
	step      uint8
	length    uint8
	seen      bool
}

// Distance thresholds for the unit-size bonus. Empirically tuned in the
// original motion design; the only load-bearing property is that unit size
// is monotonic in distance and capped.
const (
	counterNearDistance = 2 // within this distance: 1 unit per step
	counterMidDistance  = 8 // within this distance: 2 units per step
	counterMaxUnit      = 3
)

// NewCounter creates a counter whose unit steps animate over length frames.
// A length of zero falls back to DefaultLength.
func NewCounter(length uint8) Counter {
	if length == 0 {
		length = DefaultLength
	}
	return Counter{length: length}
}

// Observe feeds the latest target value. The first observation settles
// immediately; later changes only update the target. Call once per render
// tick, before reading the display state.
func (c *Counter) Observe(target int) {
	if !c.seen {
		c.seen = true
		c.displayed = target
		c.next = target
		c.target = target
		c.step = c.length
		return
	}
	c.target = target
	if c.Idle() && c.displayed != c.target {
		c.beginUnit()
	}
}

// Tick advances the sub-animation by one frame. Call once per render tick,
// after drawing. When a unit step completes and the target has not been
// reached yet, the next unit step begins immediately.
func (c *Counter) Tick() {
	if c.Idle() {
		if c.displayed != c.target {
			c.beginUnit()
		}
		return
	}
	c.step++
	if c.step >= c.length {
		c.displayed = c.next
		if c.displayed != c.target {
			c.beginUnit()
		}
	}
}

func (c *Counter) beginUnit() {
	dist := c.target - c.displayed
	size := unitSize(dist)
	if dist > 0 {
		if size > dist {
			size = dist
		}
		c.next = c.displayed + size
	} else {
		if size > -dist {
			size = -dist
		}
		c.next = c.displayed - size
	}
	c.step = 0
}

// unitSize returns how many units one animated step covers for the given
// signed remaining distance.
func unitSize(dist int) int {
	if dist < 0 {
		dist = -dist
	}
	switch {
	case dist <= counterNearDistance:
		return 1
	case dist <= counterMidDistance:
		return 2
	default:
		return counterMaxUnit
	}
}

// Idle reports whether no unit step is in flight. The counter may still be
// away from its target (the next Tick will start another step).
func (c *Counter) Idle() bool {
	return c.step >= c.length || c.displayed == c.next
}

// Settled reports whether the counter has fully reached its target.
func (c *Counter) Settled() bool {
	return c.Idle() && c.displayed == c.target
}

// Displayed returns the last fully settled value (the "from" of the current
// unit step while one is in flight).
func (c *Counter) Displayed() int { return c.displayed }

// Next returns the value the current unit step is heading to. While idle it
// equals Displayed.
func (c *Counter) Next() int { return c.next }

// Increasing reports whether the current unit step moves upward.
func (c *Counter) Increasing() bool { return c.next > c.displayed }

// CurrentPhase returns the phase of the in-flight unit step.
func (c *Counter) CurrentPhase() Phase {
	if c.Idle() {
		return PhaseSettled
	}
	half := c.length / 2
	switch {
	case c.step < half:
		return PhaseLeave
	case c.step == half:
		return PhaseHandoff
	default:
		return PhaseEnter
	}
}

// PhaseProgress returns progress within the current phase in [0, 1].
// The handoff frame and the settled state report 1.
func (c *Counter) PhaseProgress() float64 {
	half := c.length / 2
	switch c.CurrentPhase() {
	case PhaseLeave:
		if half == 0 {
			return 1
		}
		return float64(c.step) / float64(half)
	case PhaseEnter:
		span := c.length - half - 1
		if span == 0 {
			return 1
		}
		return float64(c.step-half-1) / float64(span)
	default:
		return 1
	}
}
