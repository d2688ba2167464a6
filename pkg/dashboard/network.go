package dashboard

import (
	"fmt"

	"gitlab.com/tinyland/lab/apex-pulse/pkg/canvas"
	"gitlab.com/tinyland/lab/apex-pulse/pkg/config"
	"gitlab.com/tinyland/lab/apex-pulse/pkg/metrics"
)

// drawNetwork renders upload and download throughput as two tiny-font rows,
// "U <value><unit>" and "D <value><unit>". The unit glyph is right-aligned
// at a fixed column so the rows stay visually stable while the value width
// fluctuates.
func (r *Renderer) drawNetwork(w *config.Widget, sample metrics.Sample) {
	p := w.Position

	r.drawNetworkRow(p, p.Y+1, "U", sample.NetUpBps)
	r.drawNetworkRow(p, p.Y+10, "D", sample.NetDownBps)
}

func (r *Renderer) drawNetworkRow(p config.Position, y int, label string, bps float64) {
	value, unit := humanSpeed(bps)

	r.canvas.DrawTextInvert(p.X+1, y, label+" "+value, 1)
	r.canvas.DrawTextInvert(p.X+p.W-canvas.GlyphAdvance, y, unit, 1)
}

// humanSpeed formats a bytes-per-second rate with a 1024 divisor, picking
// the largest unit that keeps the value under 1024. Byte rates print with
// no decimals, everything else with one.
func humanSpeed(bps float64) (value, unit string) {
	if bps < 0 {
		bps = 0
	}

	units := []string{"B", "K", "M", "G"}
	i := 0
	for bps >= 1024 && i < len(units)-1 {
		bps /= 1024
		i++
	}

	if i == 0 {
		return fmt.Sprintf("%.0f", bps), units[i]
	}
	return fmt.Sprintf("%.1f", bps), units[i]
}
