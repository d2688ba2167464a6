package dashboard

import (
	"fmt"
	"math"

	"gitlab.com/tinyland/lab/apex-pulse/pkg/canvas"
	"gitlab.com/tinyland/lab/apex-pulse/pkg/config"
	"gitlab.com/tinyland/lab/apex-pulse/pkg/metrics"
)

// minHistory is the smallest usable history capacity. Interpolation needs
// at least two sample points.
const minHistory = 2

func (r *Renderer) drawMemory(st *widgetState, w *config.Widget, sample metrics.Sample) {
	p := w.Position

	capacity := p.W
	if w.Graph != nil && w.Graph.History > 0 {
		capacity = w.Graph.History
	}
	if capacity < minHistory {
		capacity = minHistory
	}

	st.history = append(st.history, clamp100(sample.MemPercent))
	if len(st.history) > capacity {
		st.history = st.history[len(st.history)-capacity:]
	}

	r.drawMemoryGraph(p, st.history)

	readout := fmt.Sprintf("%d%%", int(math.Round(clamp100(sample.MemPercent))))
	r.canvas.DrawTextInvert(p.X+p.W-canvas.TextWidth(readout, 1)-1, p.Y+1, readout, 1)
}

// drawMemoryGraph draws the history as a dithered area graph. Sample points
// are spread across the widget width and the line height between them is
// linearly interpolated, so the curve stays smooth even when the history is
// shorter than the widget is wide. The area under the line is filled with a
// checkerboard dither and the line itself is solid.
func (r *Renderer) drawMemoryGraph(p config.Position, history []float64) {
	if len(history) < minHistory || p.W < 2 || p.H < 2 {
		return
	}

	bottom := p.Y + p.H - 1
	span := float64(len(history)-1) / float64(p.W-1)

	for col := 0; col < p.W; col++ {
		// Map the column back onto the sample sequence and interpolate
		// between the two surrounding samples.
		fpos := float64(col) * span
		i := int(fpos)
		if i >= len(history)-1 {
			i = len(history) - 2
		}
		frac := fpos - float64(i)
		v := history[i] + (history[i+1]-history[i])*frac

		lineY := bottom - int(math.Round(v/100*float64(p.H-1)))
		x := p.X + col

		for y := lineY + 1; y <= bottom; y++ {
			if (x+y)%2 == 0 {
				r.canvas.Set(x, y, true)
			}
		}
		r.canvas.Set(x, lineY, true)
	}
}
