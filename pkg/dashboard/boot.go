package dashboard

import (
	"math"
	"time"
)

// BootDuration is how long the boot animation runs before the renderer
// cuts over to normal widget output.
const BootDuration = 3 * time.Second

const (
	// bootFinaleStart is the progress at which the finale overlay begins.
	bootFinaleStart = 0.78

	// bootDissolveStart is the progress past which pixels start dissolving
	// out, one by one, until nothing is left at progress 1.
	bootDissolveStart = 0.84

	bootRingDots  = 12
	bootGearTeeth = 8

	bootRingRadius = 10
	bootGearRadius = 15
	bootToothLen   = 3

	// The ring makes 1.75 revolutions over the whole sequence.
	bootRevolutions = 1.75
)

// Per-element dissolve seeds. Giving each element its own seed keeps the
// dissolve pattern from lining up across overlapping elements.
const (
	seedRing uint32 = iota + 1
	seedGear
	seedStar
	seedFinaleRing
	seedSparks
	seedShine
)

// renderBoot draws one frame of the boot animation for the given elapsed
// wall-clock time: a rotating dotted ring, a gear whose teeth reveal as
// progress advances, a pulsing center star, and a finale burst that
// dissolves everything out pixel by pixel.
func (r *Renderer) renderBoot(elapsed time.Duration) {
	p := elapsed.Seconds() / BootDuration.Seconds()
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}

	cx := r.canvas.Width() / 2
	cy := r.canvas.Height() / 2
	rotation := bootRevolutions * 2 * math.Pi * p

	r.bootRing(cx, cy, rotation, p)
	r.bootGear(cx, cy, rotation, p)
	r.bootStar(cx, cy, p)

	if p >= bootFinaleStart {
		r.bootFinale(cx, cy, p)
	}
}

// bootSet plots one boot pixel, subject to the dissolve gate. Each pixel's
// fate is a pure function of its element seed and coordinates, so a
// dissolving pixel stays gone instead of flickering frame to frame.
func (r *Renderer) bootSet(x, y int, seed uint32, p float64) {
	if p > bootDissolveStart {
		threshold := (p - bootDissolveStart) / (1 - bootDissolveStart)
		if bootHashFrac(seed, x, y) < threshold {
			return
		}
	}
	r.canvas.Set(x, y, true)
}

// bootHashFrac hashes (seed, x, y) to a stable value in [0, 1).
func bootHashFrac(seed uint32, x, y int) float64 {
	h := seed * 2654435761
	h ^= uint32(x) * 0x9E3779B9
	h ^= uint32(y) * 0x85EBCA6B
	h ^= h >> 16
	h *= 0x45D9F3B
	h ^= h >> 16
	return float64(h%1024) / 1024
}

// bootRing draws the inner dotted ring, rotating with progress.
func (r *Renderer) bootRing(cx, cy int, rotation, p float64) {
	for i := 0; i < bootRingDots; i++ {
		a := rotation + 2*math.Pi*float64(i)/bootRingDots
		x := cx + int(math.Round(bootRingRadius*math.Cos(a)))
		y := cy + int(math.Round(bootRingRadius*math.Sin(a)))
		r.bootSet(x, y, seedRing, p)
	}
}

// bootGear draws the outer gear. Teeth reveal one by one as progress
// advances and the whole gear co-rotates with the ring.
func (r *Renderer) bootGear(cx, cy int, rotation, p float64) {
	visible := int(math.Ceil(bootGearTeeth * p))
	if visible > bootGearTeeth {
		visible = bootGearTeeth
	}

	for i := 0; i < visible; i++ {
		a := rotation/2 + 2*math.Pi*float64(i)/bootGearTeeth
		cos, sin := math.Cos(a), math.Sin(a)
		for d := 0; d <= bootToothLen; d++ {
			rad := float64(bootGearRadius + d)
			x := cx + int(math.Round(rad*cos))
			y := cy + int(math.Round(rad*sin))
			r.bootSet(x, y, seedGear, p)
		}
	}
}

// bootPulse returns the star's pulse intensity in [0, 1]: a sine sampled
// over three full periods of the pre-dissolve window.
func bootPulse(p float64) float64 {
	phase := p / bootDissolveStart
	if phase > 1 {
		phase = 1
	}
	return math.Abs(math.Sin(2 * math.Pi * 3 * phase))
}

// bootStar draws the pulsing center star; arm length follows the pulse.
func (r *Renderer) bootStar(cx, cy int, p float64) {
	pulse := bootPulse(p)
	armLen := 2 + int(math.Round(pulse*4))

	for d := 0; d <= armLen; d++ {
		r.bootSet(cx+d, cy, seedStar, p)
		r.bootSet(cx-d, cy, seedStar, p)
		r.bootSet(cx, cy+d, seedStar, p)
		r.bootSet(cx, cy-d, seedStar, p)
	}

	// Diagonal arms at half length, only on strong pulses.
	if pulse > 0.5 {
		for d := 1; d <= armLen/2; d++ {
			r.bootSet(cx+d, cy+d, seedStar, p)
			r.bootSet(cx-d, cy+d, seedStar, p)
			r.bootSet(cx+d, cy-d, seedStar, p)
			r.bootSet(cx-d, cy-d, seedStar, p)
		}
	}
}

// bootFinale overlays the end-of-boot flourish: a ring expanding outward, a
// radial spark burst that expands and retracts, and a horizontal shine
// sweeping across the display.
func (r *Renderer) bootFinale(cx, cy int, p float64) {
	fp := (p - bootFinaleStart) / (1 - bootFinaleStart)

	// Dissipating ring, growing past the gear.
	rad := bootRingRadius + fp*float64(bootGearRadius+bootToothLen-bootRingRadius)
	steps := int(2 * math.Pi * rad)
	for i := 0; i < steps; i += 2 {
		a := float64(i) / rad
		x := cx + int(math.Round(rad*math.Cos(a)))
		y := cy + int(math.Round(rad*math.Sin(a)))
		r.bootSet(x, y, seedFinaleRing, p)
	}

	// Spark burst: out and back.
	burst := math.Sin(fp * math.Pi)
	for i := 0; i < 8; i++ {
		a := 2 * math.Pi * float64(i) / 8
		rad := 6 + burst*10
		for d := 0; d < 2; d++ {
			x := cx + int(math.Round((rad+float64(d))*math.Cos(a)))
			y := cy + int(math.Round((rad+float64(d))*math.Sin(a)))
			r.bootSet(x, y, seedSparks, p)
		}
	}

	// Shine: a short vertical slab sweeping left to right.
	sx := int(fp * float64(r.canvas.Width()))
	for dx := 0; dx < 2; dx++ {
		for dy := -3; dy <= 3; dy++ {
			r.bootSet(sx+dx, cy+dy, seedShine, p)
		}
	}
}
