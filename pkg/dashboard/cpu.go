package dashboard

import (
	"gitlab.com/tinyland/lab/apex-pulse/pkg/config"
	"gitlab.com/tinyland/lab/apex-pulse/pkg/metrics"
)

// cpuChip is an 8×9 chip icon: pins on all four sides around a body with a
// die mark. Drawn with invert so it stays visible over the bar fill.
var cpuChip = [9][8]uint8{
	{0, 0, 1, 0, 0, 1, 0, 0},
	{0, 1, 1, 1, 1, 1, 1, 0},
	{0, 1, 0, 0, 0, 0, 1, 0},
	{1, 1, 0, 0, 0, 0, 1, 1},
	{0, 1, 0, 1, 1, 0, 1, 0},
	{1, 1, 0, 0, 0, 0, 1, 1},
	{0, 1, 0, 0, 0, 0, 1, 0},
	{0, 1, 1, 1, 1, 1, 1, 0},
	{0, 0, 1, 0, 0, 1, 0, 0},
}

func (r *Renderer) drawCPU(w *config.Widget, sample metrics.Sample) {
	r.drawBar(w.Position, sample.CPUPercent, w.BarDirection("vertical"), w.BarBorder(false))
	r.drawCPUIcon(w.Position)
}

// drawCPUIcon blits the chip icon centered horizontally, 2px from the top
// of the widget.
func (r *Renderer) drawCPUIcon(pos config.Position) {
	const iconW = 8
	ox := pos.X + (pos.W-iconW)/2
	oy := pos.Y + 2

	for row := range cpuChip {
		for col, px := range cpuChip[row] {
			if px == 1 {
				r.canvas.Invert(ox+col, oy+row)
			}
		}
	}
}
