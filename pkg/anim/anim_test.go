package anim

import "testing"

func TestToggleFirstObservationSettles(t *testing.T) {
	tg := NewToggle(6)
	tg.Observe(true)
	if !tg.Settled() {
		t.Error("first observation should settle immediately")
	}
	if !tg.To() {
		t.Error("expected To() == true")
	}
	if tg.Progress() != 1 {
		t.Errorf("settled progress = %v, want 1", tg.Progress())
	}
}

func TestToggleTerminatesAfterLengthTicks(t *testing.T) {
	const length = 6
	tg := NewToggle(length)
	tg.Observe(false)
	tg.Observe(true)

	if tg.Settled() {
		t.Fatal("expected transition after signal change")
	}
	for i := 0; i < length; i++ {
		tg.Observe(true)
		tg.Tick()
	}
	if !tg.Settled() {
		t.Error("expected settled after length ticks with a stable signal")
	}
	if !tg.To() {
		t.Error("expected final value true")
	}
}

func TestToggleProgressMonotonic(t *testing.T) {
	tg := NewToggle(6)
	tg.Observe(false)
	tg.Observe(true)

	prev := -1.0
	for !tg.Settled() {
		p := tg.Progress()
		if p < prev {
			t.Fatalf("progress went backwards: %v -> %v", prev, p)
		}
		if p < 0 || p > 1 {
			t.Fatalf("progress %v out of range", p)
		}
		prev = p
		tg.Tick()
	}
}

func TestToggleInterruptRestarts(t *testing.T) {
	tg := NewToggle(6)
	tg.Observe(false)
	tg.Observe(true)
	tg.Tick()
	tg.Tick()

	// Signal flips back mid-flight: restart with swapped endpoints.
	tg.Observe(false)
	if tg.Settled() {
		t.Fatal("expected a fresh transition after interruption")
	}
	if tg.From() != true || tg.To() != false {
		t.Errorf("endpoints = (%v, %v), want (true, false)", tg.From(), tg.To())
	}
	if got := tg.Progress(); got != 1.0/6 {
		t.Errorf("restart progress = %v, want %v", got, 1.0/6)
	}
}

func TestToggleFirstFrameShowsMotion(t *testing.T) {
	tg := NewToggle(6)
	tg.Observe(false)
	tg.Observe(true)

	// The frame rendered right after a flip must not blend at zero, or the
	// display would repeat the old settled state for one frame.
	if got := tg.Progress(); got <= 0 {
		t.Errorf("first transitioning frame progress = %v, want > 0", got)
	}
	if got := tg.Progress(); got != 1.0/6 {
		t.Errorf("first transitioning frame progress = %v, want %v", got, 1.0/6)
	}
}

func TestToggleZeroLengthUsesDefault(t *testing.T) {
	tg := NewToggle(0)
	tg.Observe(false)
	tg.Observe(true)
	n := 0
	for !tg.Settled() {
		tg.Tick()
		n++
	}
	if n != DefaultLength {
		t.Errorf("transition took %d ticks, want %d", n, DefaultLength)
	}
}

func TestLerpClamps(t *testing.T) {
	if got := Lerp(0, 3, -0.5); got != 0 {
		t.Errorf("Lerp(-0.5) = %v, want 0", got)
	}
	if got := Lerp(0, 3, 1.5); got != 3 {
		t.Errorf("Lerp(1.5) = %v, want 3", got)
	}
	if got := Lerp(0, 3, 0.5); got != 1.5 {
		t.Errorf("Lerp(0.5) = %v, want 1.5", got)
	}
}
