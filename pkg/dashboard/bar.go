package dashboard

import (
	"math"

	"gitlab.com/tinyland/lab/apex-pulse/pkg/config"
)

// drawBar renders a percentage bar into the widget rectangle. Vertical bars
// fill bottom-up, horizontal bars left-to-right. A bordered bar draws a 1px
// frame and insets the fill by one pixel on every side.
func (r *Renderer) drawBar(pos config.Position, percent float64, direction string, border bool) {
	p := clamp100(percent)

	if border {
		r.canvas.RectBorder(pos.X, pos.Y, pos.W, pos.H, true)
	}

	innerX, innerY := pos.X, pos.Y
	innerW, innerH := pos.W, pos.H
	if border {
		innerX++
		innerY++
		innerW -= 2
		innerH -= 2
	}
	if innerW <= 0 || innerH <= 0 {
		return
	}

	if direction == "vertical" {
		fillH := int(math.Round(float64(innerH) * p / 100))
		r.canvas.RectFill(innerX, innerY+innerH-fillH, innerW, fillH, true)
	} else {
		fillW := int(math.Round(float64(innerW) * p / 100))
		r.canvas.RectFill(innerX, innerY, fillW, innerH, true)
	}
}

func clamp100(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
