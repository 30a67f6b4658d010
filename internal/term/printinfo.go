package term

import (
	"github.com/xonecas/quill/internal/cfg"
	"github.com/xonecas/quill/internal/text"
)

// PrintInfo is the scroll state of one view over a text: the first visible
// character (always a wrap boundary), the horizontal shift, and the last
// position the main cursor was scrolled to.
type PrintInfo struct {
	FirstChar int
	XShift    int
	LastMain  text.Point
}

// Update scrolls the view so the main cursor at target keeps the configured
// gap from the label edges. A no-op when the target hasn't moved.
func (pi *PrintInfo) Update(target text.Point, t *text.Text, c cfg.PrintCfg, width, height int) {
	if target == pi.LastMain || width <= 0 || height <= 0 {
		return
	}
	pi.updateVertical(target, t, c, width, height)
	if !c.WrapMethod.Wraps() {
		pi.updateHorizontal(target, t, c, width)
	}
	pi.LastMain = target
}

// rowsAbove collects the char offsets of the visual row starts walking
// upward from the target's own row, most recent first, up to max entries.
func rowsAbove(target text.Point, t *text.Text, c cfg.PrintCfg, width, max int) []int {
	var rows []int
	line := target.Line
	starts := RowStarts(t, line, c, width)
	// Rows of the target line, from the target's row upward.
	i := len(starts) - 1
	for i > 0 && starts[i] > target.Char {
		i--
	}
	for ; i >= 0 && len(rows) < max; i-- {
		rows = append(rows, starts[i])
	}
	for line--; line >= 0 && len(rows) < max; line-- {
		starts = RowStarts(t, line, c, width)
		for i := len(starts) - 1; i >= 0 && len(rows) < max; i-- {
			rows = append(rows, starts[i])
		}
	}
	return rows
}

func (pi *PrintInfo) updateVertical(target text.Point, t *text.Text, c cfg.PrintCfg, width, height int) {
	gap := c.ScrollOff.Y
	if 2*gap >= height {
		gap = (height - 1) / 2
	}

	if target.Char < pi.FirstChar {
		// Scrolling up: leave gap rows above the target.
		rows := rowsAbove(target, t, c, width, gap+1)
		pi.FirstChar = rows[len(rows)-1]
		return
	}

	// Count rows from the current first char down to the target, bailing
	// once it is clearly past the bottom threshold.
	first := t.PointAtChar(pi.FirstChar)
	limit := height - gap
	count := 0
	for line := first.Line; line <= target.Line && count <= limit+1; line++ {
		for _, s := range RowStarts(t, line, c, width) {
			if line == first.Line && s < pi.FirstChar {
				continue
			}
			if line == target.Line && s > target.Char {
				break
			}
			count++
		}
	}
	row := count - 1 // screen row of the target, relative to FirstChar
	if row < gap {
		// Inside the top gap: scroll up just enough. Near the buffer start
		// rowsAbove runs out and the view clamps to the top.
		rows := rowsAbove(target, t, c, width, gap+1)
		pi.FirstChar = rows[len(rows)-1]
		return
	}
	if row >= limit {
		// Below the bottom threshold: put the target gap rows above the
		// bottom edge.
		rows := rowsAbove(target, t, c, width, height-gap)
		pi.FirstChar = rows[len(rows)-1]
	}
}

func (pi *PrintInfo) updateHorizontal(target text.Point, t *text.Text, c cfg.PrintCfg, width int) {
	gap := c.ScrollOff.X
	if 2*gap >= width {
		gap = (width - 1) / 2
	}
	_, col := VisualCol(t, target, c, width)
	if col < pi.XShift+gap {
		pi.XShift = col - gap
		if pi.XShift < 0 {
			pi.XShift = 0
		}
	} else if col > pi.XShift+width-gap-1 {
		pi.XShift = col - width + gap + 1
	}
}
