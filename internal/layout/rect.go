package layout

import (
	"github.com/lithdew/casso"

	"github.com/xonecas/quill/internal/term"
)

// varPoint is a screen point whose coordinates are solver variables.
type varPoint struct {
	x casso.Symbol
	y casso.Symbol
}

func newVarPoint() varPoint {
	return varPoint{x: casso.New(), y: casso.New()}
}

// Rect is one rectangle of the layout tree. Leaves host widget areas;
// parents stack children along an axis.
type Rect struct {
	index int

	tl varPoint
	br varPoint

	// Tags of the edge constraints currently installed for this rect, so
	// they can be swapped atomically.
	edgeTags []casso.Symbol

	parent    *Rect
	children  []*child
	axis      Axis
	clustered bool
}

// child pairs a rect with the handles of its user-defined and sibling-ratio
// constraints.
type child struct {
	rect *Rect

	defined    *Constraint
	definedTag casso.Symbol
	hasDefined bool

	// Ratio against the next sibling, preserving proportions on resize.
	ratioTag casso.Symbol
	hasRatio bool
}

// Index identifies the rect to areas and callers.
func (r *Rect) Index() int { return r.index }

// IsParent reports whether the rect has children.
func (r *Rect) IsParent() bool { return len(r.children) > 0 }

// start returns the rect's leading edge variable on the axis.
func (r *Rect) start(a Axis) casso.Symbol {
	if a == Horizontal {
		return r.tl.x
	}
	return r.tl.y
}

// end returns the rect's trailing edge variable on the axis.
func (r *Rect) end(a Axis) casso.Symbol {
	if a == Horizontal {
		return r.br.x
	}
	return r.br.y
}

// coords reads the solved rectangle.
func (r *Rect) coords(s *casso.Solver) term.Coords {
	return term.Coords{
		TL: term.Coord{X: round(s.Val(r.tl.x)), Y: round(s.Val(r.tl.y))},
		BR: term.Coord{X: round(s.Val(r.br.x)), Y: round(s.Val(r.br.y))},
	}
}

func round(v float64) int {
	if v < 0 {
		return int(v - 0.5)
	}
	return int(v + 0.5)
}

// lenValue reads the solved length along an axis.
func (r *Rect) lenValue(s *casso.Solver, a Axis) int {
	return round(s.Val(r.end(a))) - round(s.Val(r.start(a)))
}
