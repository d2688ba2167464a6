package dashboard

import (
	"math"

	"gitlab.com/tinyland/lab/apex-pulse/pkg/anim"
	"gitlab.com/tinyland/lab/apex-pulse/pkg/metrics"
)

const (
	lockIconW   = 9
	lockIconH   = 10
	lockIconGap = 1

	// revealRadius and settleOffset shape the toggle animation: rows within
	// round(t*revealRadius) of the icon's vertical center show the target
	// bitmap first, and the already-switched rows carry a vertical offset of
	// round((1-t)*settleOffset) pixels that decays to zero.
	revealRadius = 5
	settleOffset = 3
)

// Chevron arrow bitmaps, 9 wide by 10 tall. Each row is a bitmask with
// bit 0 as the leftmost pixel. Off state is an outline, on state is solid.
var (
	chevronUpOn = [lockIconH]uint16{
		0x010, // ....X....
		0x038, // ...XXX...
		0x07C, // ..XXXXX..
		0x0FE, // .XXXXXXX.
		0x1FF, // XXXXXXXXX
		0x038, // ...XXX...
		0x038, // ...XXX...
		0x038, // ...XXX...
		0x038, // ...XXX...
		0x038, // ...XXX...
	}
	chevronUpOff = [lockIconH]uint16{
		0x010, // ....X....
		0x028, // ...X.X...
		0x044, // ..X...X..
		0x082, // .X.....X.
		0x1EF, // XXXX.XXXX
		0x028, // ...X.X...
		0x028, // ...X.X...
		0x028, // ...X.X...
		0x028, // ...X.X...
		0x038, // ...XXX...
	}
	chevronDownOn = [lockIconH]uint16{
		0x038, // ...XXX...
		0x038, // ...XXX...
		0x038, // ...XXX...
		0x038, // ...XXX...
		0x038, // ...XXX...
		0x1FF, // XXXXXXXXX
		0x0FE, // .XXXXXXX.
		0x07C, // ..XXXXX..
		0x038, // ...XXX...
		0x010, // ....X....
	}
	chevronDownOff = [lockIconH]uint16{
		0x038, // ...XXX...
		0x028, // ...X.X...
		0x028, // ...X.X...
		0x028, // ...X.X...
		0x028, // ...X.X...
		0x1EF, // XXXX.XXXX
		0x082, // .X.....X.
		0x044, // ..X...X..
		0x028, // ...X.X...
		0x010, // ....X....
	}
)

// drawKeyboard renders the three lock-key icons right-aligned at the top of
// the display: caps lock as an up arrow, num lock as a padlock, scroll lock
// as a down arrow. Each icon animates its own toggle independently.
func (r *Renderer) drawKeyboard(st *widgetState, sample metrics.Sample) {
	if !st.locksInit {
		st.caps = anim.NewToggle(anim.DefaultLength)
		st.num = anim.NewToggle(anim.DefaultLength)
		st.scroll = anim.NewToggle(anim.DefaultLength)
		st.locksInit = true
	}
	st.caps.Observe(sample.CapsLock)
	st.num.Observe(sample.NumLock)
	st.scroll.Observe(sample.ScrollLock)
	defer func() {
		st.caps.Tick()
		st.num.Tick()
		st.scroll.Tick()
	}()

	totalW := lockIconW*3 + lockIconGap*2
	startX := r.canvas.Width() - totalW - 1
	if startX < 0 {
		startX = 0
	}
	const y = 1

	r.drawChevron(startX, y, &st.caps, true)
	r.drawPadlock(startX+lockIconW+lockIconGap, y, &st.num)
	r.drawChevron(startX+(lockIconW+lockIconGap)*2, y, &st.scroll, false)
}

// drawChevron renders one arrow icon, blending between the off and on
// bitmaps while its toggle is in flight. The blend reveals target rows
// outward from the icon's vertical center, and rows already showing the
// target are drawn with a decaying vertical offset so the new state settles
// into place instead of cutting over.
func (r *Renderer) drawChevron(x, y int, tog *anim.Toggle, up bool) {
	source := chevronBitmap(up, tog.From())
	target := chevronBitmap(up, tog.To())

	if tog.Settled() {
		r.blitIcon(x, y, target)
		return
	}

	t := tog.Progress()
	reveal := int(math.Round(t * revealRadius))
	offset := int(math.Round((1 - t) * settleOffset))

	// Up arrows bounce upward when switching on, down arrows the opposite.
	dir := 1
	if up == tog.To() {
		dir = -1
	}

	for row := 0; row < lockIconH; row++ {
		// Distance from the vertical center in half-pixel units: the
		// center falls between rows 4 and 5 of a 10-row icon.
		centerDist := 2*row - (lockIconH - 1)
		if centerDist < 0 {
			centerDist = -centerDist
		}

		if centerDist <= 2*reveal {
			r.blitIconRow(x, y+row+dir*offset, target[row])
		} else {
			r.blitIconRow(x, y+row, source[row])
		}
	}
}

func chevronBitmap(up, on bool) [lockIconH]uint16 {
	switch {
	case up && on:
		return chevronUpOn
	case up:
		return chevronUpOff
	case on:
		return chevronDownOn
	default:
		return chevronDownOff
	}
}

func (r *Renderer) blitIcon(x, y int, bitmap [lockIconH]uint16) {
	for row, bits := range bitmap {
		r.blitIconRow(x, y+row, bits)
	}
}

func (r *Renderer) blitIconRow(x, y int, bits uint16) {
	for col := 0; col < lockIconW; col++ {
		if bits>>col&1 == 1 {
			r.canvas.Set(x+col, y, true)
		}
	}
}

// drawPadlock renders the num-lock padlock: a body below a U-shaped
// shackle. On is drawn closed with a filled body and a keyhole dot; off is
// drawn open with an outlined body and the shackle lifted. The shackle
// openness interpolates between the two endpoints while the toggle is in
// flight.
func (r *Renderer) drawPadlock(x, y int, tog *anim.Toggle) {
	openness := int(math.Round(anim.Lerp(
		padlockOpenness(tog.From()),
		padlockOpenness(tog.To()),
		tog.Progress(),
	)))
	on := tog.To()

	const w = lockIconW
	bodyX := x + 1
	bodyY := y + 6
	bodyW := w - 2
	const bodyH = 5

	if on {
		r.canvas.RectFill(bodyX, bodyY, bodyW, bodyH, true)
		r.canvas.Set(x+w/2, bodyY+2, false) // keyhole
	} else {
		r.canvas.RectBorder(bodyX, bodyY, bodyW, bodyH, true)
	}

	shackleTop := y + 2 - openness
	left := x + 2
	right := x + w - 3

	r.canvas.Line(left, bodyY, left, shackleTop+1, true)
	r.canvas.Line(left+1, shackleTop, right-1, shackleTop, true)
	if openness <= 1 {
		r.canvas.Line(right, shackleTop+1, right, bodyY, true)
	} else {
		// Opening: only a stub of the right side remains attached.
		r.canvas.Line(right, shackleTop+openness, right, shackleTop+openness+1, true)
	}
}

// padlockOpenness maps a lock state to shackle lift in pixels.
func padlockOpenness(on bool) float64 {
	if on {
		return 0
	}
	return 3
}
