package term

import (
	"github.com/xonecas/quill/internal/cfg"
	"github.com/xonecas/quill/internal/text"
)

// ConstraintChanger lets an area forward constraint changes to whatever
// layout engine owns its rectangle.
type ConstraintChanger interface {
	ChangeConstraint(index int, c any) error
}

// Area is one rectangular region of the screen a widget prints into.
type Area struct {
	// Index ties the area to its layout rectangle.
	Index  int
	coords Coords

	changer ConstraintChanger
}

// NewArea returns an area at the given coordinates.
func NewArea(index int, coords Coords) *Area {
	return &Area{Index: index, coords: coords}
}

// SetCoords is called after each layout solve.
func (a *Area) SetCoords(c Coords) {
	a.coords = c
}

// Coords returns the area's current rectangle.
func (a *Area) Coords() Coords {
	return a.coords
}

// Width returns the area width in cells.
func (a *Area) Width() int { return a.coords.Width() }

// Height returns the area height in rows.
func (a *Area) Height() int { return a.coords.Height() }

// SetChanger wires the area to its layout.
func (a *Area) SetChanger(ch ConstraintChanger) {
	a.changer = ch
}

// ChangeConstraint swaps the area's layout constraint.
func (a *Area) ChangeConstraint(c any) error {
	if a.changer == nil {
		return nil
	}
	return a.changer.ChangeConstraint(a.Index, c)
}

// Label wraps an area with the per-view state a print needs: activity and
// hardware caret support.
type Label struct {
	Area    *Area
	Active  bool
	HWCaret bool
}

// NewLabel returns a label over the area.
func NewLabel(a *Area) *Label {
	return &Label{Area: a}
}

// Print streams the text's parts into the sink, clipped to the label's
// area, honoring the scroll state and configuration.
func (l *Label) Print(sink Sink, t *text.Text, info *PrintInfo, c cfg.PrintCfg) {
	Print(sink, l.Area.Coords(), l.Active, l.HWCaret, t, info, c)
}
