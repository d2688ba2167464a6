package anim

import "testing"

// settle runs ticks with a stable target until the counter settles, guarding
// against runaway loops.
func settle(t *testing.T, c *Counter, target int) {
	t.Helper()
	for i := 0; i < 2000; i++ {
		c.Observe(target)
		if c.Settled() {
			return
		}
		c.Tick()
	}
	t.Fatalf("counter did not settle at %d (displayed %d)", target, c.Displayed())
}

func TestCounterFirstObservationSettles(t *testing.T) {
	c := NewCounter(6)
	c.Observe(42)
	if !c.Settled() {
		t.Error("first observation should settle immediately")
	}
	if c.Displayed() != 42 {
		t.Errorf("displayed = %d, want 42", c.Displayed())
	}
}

func TestCounterConvergence(t *testing.T) {
	c := NewCounter(6)
	for _, target := range []int{0, 47, 47, 3} {
		settle(t, &c, target)
		if c.Displayed() != target {
			t.Errorf("displayed = %d after settling, want %d", c.Displayed(), target)
		}
	}
}

func TestCounterNeverDisplaysOutOfRange(t *testing.T) {
	c := NewCounter(6)
	c.Observe(0)
	for _, target := range []int{100, 0, 73, 1} {
		for i := 0; i < 500; i++ {
			c.Observe(target)
			for _, v := range []int{c.Displayed(), c.Next()} {
				if v < 0 || v > 100 {
					t.Fatalf("counter value %d outside [0,100]", v)
				}
			}
			if c.Settled() {
				break
			}
			c.Tick()
		}
	}
}

func TestCounterRetargetFinishesCurrentStep(t *testing.T) {
	c := NewCounter(6)
	c.Observe(0)
	c.Observe(10)
	firstNext := c.Next()
	c.Tick()

	// Retarget mid-step: the in-flight unit keeps its endpoint.
	c.Observe(2)
	if c.Next() != firstNext {
		t.Errorf("in-flight unit endpoint changed on retarget: %d -> %d", firstNext, c.Next())
	}
	settle(t, &c, 2)
	if c.Displayed() != 2 {
		t.Errorf("displayed = %d, want 2", c.Displayed())
	}
}

func TestCounterUnitSizeGrowsWithDistance(t *testing.T) {
	cases := []struct {
		dist, want int
	}{
		{1, 1}, {2, 1},
		{3, 2}, {8, 2},
		{9, 3}, {50, 3}, {100, 3},
		{-1, 1}, {-9, 3},
	}
	for _, tc := range cases {
		if got := unitSize(tc.dist); got != tc.want {
			t.Errorf("unitSize(%d) = %d, want %d", tc.dist, got, tc.want)
		}
	}
}

func TestCounterLargeJumpIsFasterThanSmall(t *testing.T) {
	ticksToSettle := func(from, to int) int {
		c := NewCounter(6)
		c.Observe(from)
		n := 0
		for i := 0; i < 5000; i++ {
			c.Observe(to)
			if c.Settled() {
				return n
			}
			c.Tick()
			n++
		}
		t.Fatalf("no convergence from %d to %d", from, to)
		return 0
	}

	// 90 units at up to 3 units/step must take fewer than 90 single steps
	// would, but more ticks than a 3-unit jump.
	small := ticksToSettle(0, 3)
	large := ticksToSettle(0, 90)
	if large <= small {
		t.Errorf("large jump (%d ticks) should outlast small jump (%d ticks)", large, small)
	}
	maxTicks := 90 * 6 // what 1 unit/step would cost
	if large >= maxTicks {
		t.Errorf("large jump took %d ticks, expected distance bonus to beat %d", large, maxTicks)
	}
}

func TestCounterPhases(t *testing.T) {
	c := NewCounter(6)
	c.Observe(0)
	c.Observe(1)

	var phases []Phase
	for !c.Settled() {
		c.Observe(1)
		phases = append(phases, c.CurrentPhase())
		c.Tick()
	}

	// With length 6: steps 0-2 leave, step 3 handoff, steps 4-5 enter.
	want := []Phase{PhaseLeave, PhaseLeave, PhaseLeave, PhaseHandoff, PhaseEnter, PhaseEnter}
	if len(phases) != len(want) {
		t.Fatalf("saw %d active frames, want %d (%v)", len(phases), len(want), phases)
	}
	for i := range want {
		if phases[i] != want[i] {
			t.Errorf("frame %d phase = %v, want %v", i, phases[i], want[i])
		}
	}
}

func TestCounterPhaseProgressInRange(t *testing.T) {
	c := NewCounter(6)
	c.Observe(0)
	c.Observe(1)
	for !c.Settled() {
		c.Observe(1)
		if p := c.PhaseProgress(); p < 0 || p > 1 {
			t.Fatalf("phase progress %v out of range", p)
		}
		c.Tick()
	}
}
