package dashboard

import (
	"fmt"
	"math"

	"gitlab.com/tinyland/lab/apex-pulse/pkg/anim"
	"gitlab.com/tinyland/lab/apex-pulse/pkg/canvas"
	"gitlab.com/tinyland/lab/apex-pulse/pkg/config"
	"gitlab.com/tinyland/lab/apex-pulse/pkg/metrics"
)

const (
	// volumeTextScale is the font scale of the percent readout.
	volumeTextScale = 2

	// volumeRollLength is the number of frames one digit-roll unit takes.
	volumeRollLength = 6

	// Speaker wave-count thresholds (percent).
	volumeOneWaveMax = 33
	volumeTwoWaveMax = 66
)

func (r *Renderer) drawVolume(st *widgetState, w *config.Widget, sample metrics.Sample) {
	r.drawBar(w.Position, sample.VolumePercent, w.BarDirection("horizontal"), w.BarBorder(true))

	if w.ShowIcon {
		r.drawSpeaker(w.Position, sample.VolumePercent)
	}

	r.drawVolumeReadout(st, w, sample.VolumePercent)
}

// drawSpeaker renders a speaker glyph at the left edge of the widget: a
// rectangular driver, a cone expanding right, and 0–3 sound-wave arcs
// depending on the volume level. Everything is drawn with invert so the
// icon remains visible wherever the bar fill ends up.
func (r *Renderer) drawSpeaker(p config.Position, volume float64) {
	cx := p.X + 2          // left edge of icon
	top := p.Y + 3         // 1px border + 2px gap
	bot := p.Y + p.H - 4   // 2px from border
	cy := p.Y + p.H/2      // vertical center
	half := (bot - top) / 2

	// Driver: rectangle, shorter than the cone.
	const bodyW = 3
	bodyHalf := half * 2 / 3
	r.canvas.RectFillInvert(cx, cy-bodyHalf, bodyW, bodyHalf*2+1)

	// Cone: triangle expanding right from the driver.
	r.canvas.LineInvert(cx+bodyW, cy-bodyHalf, cx+bodyW+3, top)
	r.canvas.LineInvert(cx+bodyW, cy+bodyHalf, cx+bodyW+3, bot)
	r.canvas.LineInvert(cx+bodyW+3, top, cx+bodyW+3, bot)

	// Sound waves: 0 when muted, then one per threshold band.
	waves := 0
	switch {
	case volume <= 0:
		waves = 0
	case volume <= volumeOneWaveMax:
		waves = 1
	case volume <= volumeTwoWaveMax:
		waves = 2
	default:
		waves = 3
	}

	if waves >= 1 {
		h := half / 3
		for dy := -h; dy <= h; dy++ {
			r.canvas.Invert(cx+bodyW+5, cy+dy)
		}
	}
	if waves >= 2 {
		h := half * 2 / 3
		for dy := -h; dy <= h; dy++ {
			r.canvas.Invert(cx+bodyW+7, cy+dy)
		}
	}
	if waves >= 3 {
		for dy := -half; dy <= half; dy++ {
			r.canvas.Invert(cx+bodyW+9, cy+dy)
		}
	}
}

// drawVolumeReadout renders the right-aligned "NNN%" readout with the
// digit-roll animation. Each changed digit column slides its old glyph out
// and the new one in from the opposite edge, separated by a one-frame
// handoff so the glyphs never overlap; unchanged columns (and the percent
// sign) render statically. Slides are clipped to the readout's row band so
// glyphs truncate instead of smearing into neighboring widget content.
func (r *Renderer) drawVolumeReadout(st *widgetState, w *config.Widget, percent float64) {
	if !st.volumeInit {
		st.volume = anim.NewCounter(volumeRollLength)
		st.volumeInit = true
	}
	st.volume.Observe(int(math.Round(clamp100(percent))))
	defer st.volume.Tick()

	p := w.Position
	charW := canvas.GlyphAdvance * volumeTextScale
	glyphH := canvas.GlyphHeight * volumeTextScale

	oldText := fmt.Sprintf("%3d%%", st.volume.Displayed())
	newText := fmt.Sprintf("%3d%%", st.volume.Next())

	// Right-aligned, but never left of the speaker icon.
	leftBound := p.X + 1
	if w.ShowIcon {
		leftBound = p.X + 14
	}
	rightBound := p.X + p.W - 2
	textX := rightBound - len(oldText)*charW + 1
	if textX < leftBound {
		textX = leftBound
	}
	textY := p.Y
	if dy := (p.H - glyphH) / 2; dy > 0 {
		textY += dy
	}

	clip := canvas.Rect{X: p.X, Y: textY, W: p.W, H: glyphH}
	if over := textY + glyphH - (p.Y + p.H); over > 0 {
		clip.H -= over
	}

	for j := 0; j < len(oldText); j++ {
		colX := textX + j*charW
		oc, nc := oldText[j], newText[j]

		if oc == nc {
			r.canvas.DrawTextInvert(colX, textY, string(nc), volumeTextScale)
			continue
		}

		switch st.volume.CurrentPhase() {
		case anim.PhaseLeave:
			// Old digit slides out: up when increasing, down when
			// decreasing.
			off := int(math.Round(st.volume.PhaseProgress() * float64(glyphH)))
			y := textY + off
			if st.volume.Increasing() {
				y = textY - off
			}
			r.canvas.DrawTextInvertClipped(colX, y, string(oc), volumeTextScale, clip)

		case anim.PhaseHandoff:
			// One blank frame between leave and enter.

		case anim.PhaseEnter:
			// New digit slides in from the opposite edge.
			off := int(math.Round((1 - st.volume.PhaseProgress()) * float64(glyphH)))
			y := textY - off
			if st.volume.Increasing() {
				y = textY + off
			}
			r.canvas.DrawTextInvertClipped(colX, y, string(nc), volumeTextScale, clip)
		}
	}
}
