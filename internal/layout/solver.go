package layout

import (
	"fmt"

	"github.com/lithdew/casso"

	"github.com/xonecas/quill/internal/term"
)

// Layout owns the rectangle tree and the constraint solver behind it.
type Layout struct {
	solver *casso.Solver
	root   *Rect
	rects  map[int]*Rect

	w, h  int
	frame Frame

	rootTags []casso.Symbol
	next     int
}

// New creates a layout with a single root rectangle of the given size.
func New(w, h int, frame Frame) (*Layout, error) {
	l := &Layout{
		solver: casso.NewSolver(),
		rects:  make(map[int]*Rect),
		w:      w,
		h:      h,
		frame:  frame,
	}
	l.root = l.newRect()
	if err := l.pinRoot(); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *Layout) newRect() *Rect {
	r := &Rect{index: l.next, tl: newVarPoint(), br: newVarPoint()}
	l.next++
	l.rects[r.index] = r
	return r
}

// Root returns the root rect's index.
func (l *Layout) Root() int { return l.root.index }

// Coords returns the solved rectangle of an index.
func (l *Layout) Coords(index int) (term.Coords, bool) {
	r, ok := l.rects[index]
	if !ok {
		return term.Coords{}, false
	}
	return r.coords(l.solver), true
}

// Rect returns the rect for an index.
func (l *Layout) Rect(index int) (*Rect, bool) {
	r, ok := l.rects[index]
	return r, ok
}

// ---------------------------------------------------------------------------
// Constraint plumbing
// ---------------------------------------------------------------------------

// add installs a constraint at the given priority and returns its tag.
func (l *Layout) add(p casso.Priority, c casso.Constraint) (casso.Symbol, error) {
	tag, err := l.solver.AddConstraintWithPriority(p, c)
	if err != nil {
		return tag, fmt.Errorf("%w: %v", ErrImpossible, err)
	}
	return tag, nil
}

func (l *Layout) remove(tags ...casso.Symbol) {
	for _, t := range tags {
		_ = l.solver.RemoveConstraint(t)
	}
}

// eqSyms builds a == b (+offset).
func eqSyms(a, b casso.Symbol, offset float64) casso.Constraint {
	return casso.NewConstraint(casso.EQ, offset, a.T(-1), b.T(1))
}

// lenIs builds (end - start) == n.
func lenIs(r *Rect, a Axis, n float64) casso.Constraint {
	return casso.NewConstraint(casso.EQ, -n, r.end(a).T(1), r.start(a).T(-1))
}

// lenCmp builds (end - start) OP n.
func lenCmp(op casso.Op, r *Rect, a Axis, n float64) casso.Constraint {
	return casso.NewConstraint(op, -n, r.end(a).T(1), r.start(a).T(-1))
}

// lenRatio builds lenOf(child) == factor * lenOf(other).
func lenRatio(c *Rect, other *Rect, a Axis, factor float64) casso.Constraint {
	return casso.NewConstraint(casso.EQ, 0,
		c.end(a).T(1), c.start(a).T(-1),
		other.end(a).T(-factor), other.start(a).T(factor),
	)
}

// pinRoot installs the four REQUIRED constraints tying the root to the
// screen.
func (l *Layout) pinRoot() error {
	l.remove(l.rootTags...)
	l.rootTags = l.rootTags[:0]
	pins := []casso.Constraint{
		casso.NewConstraint(casso.EQ, 0, l.root.tl.x.T(1)),
		casso.NewConstraint(casso.EQ, 0, l.root.tl.y.T(1)),
		casso.NewConstraint(casso.EQ, -float64(l.w), l.root.br.x.T(1)),
		casso.NewConstraint(casso.EQ, -float64(l.h), l.root.br.y.T(1)),
	}
	for _, c := range pins {
		tag, err := l.add(casso.Required, c)
		if err != nil {
			return err
		}
		l.rootTags = append(l.rootTags, tag)
	}
	return nil
}

// Resize re-pins the root to a new screen size and re-solves everything.
func (l *Layout) Resize(w, h int) error {
	l.w, l.h = w, h
	return l.pinRoot()
}

// ---------------------------------------------------------------------------
// Edge constraints of a parent's children
// ---------------------------------------------------------------------------

// setChain removes and reinstalls the sibling-chain constraints of parent:
// the first child starts at the parent's start, each next child starts at
// the previous child's end, the last child ends at the parent's end, and
// perpendicular edges match the parent's.
func (l *Layout) setChain(parent *Rect) error {
	a := parent.axis
	perp := a.Perp()
	for _, ch := range parent.children {
		r := ch.rect
		l.remove(r.edgeTags...)
		r.edgeTags = r.edgeTags[:0]

		cons := []casso.Constraint{
			// A rect can never invert.
			casso.NewConstraint(casso.GTE, 0, r.br.x.T(1), r.tl.x.T(-1)),
			casso.NewConstraint(casso.GTE, 0, r.br.y.T(1), r.tl.y.T(-1)),
			eqSyms(r.start(perp), parent.start(perp), 0),
			eqSyms(r.end(perp), parent.end(perp), 0),
		}
		for _, c := range cons {
			tag, err := l.add(casso.Required, c)
			if err != nil {
				return err
			}
			r.edgeTags = append(r.edgeTags, tag)
		}
	}
	for i, ch := range parent.children {
		r := ch.rect
		var c casso.Constraint
		if i == 0 {
			c = eqSyms(r.start(a), parent.start(a), 0)
		} else {
			c = eqSyms(r.start(a), parent.children[i-1].rect.end(a), 0)
		}
		tag, err := l.add(casso.Required, c)
		if err != nil {
			return err
		}
		r.edgeTags = append(r.edgeTags, tag)
		if i == len(parent.children)-1 {
			tag, err := l.add(casso.Required, eqSyms(r.end(a), parent.end(a), 0))
			if err != nil {
				return err
			}
			r.edgeTags = append(r.edgeTags, tag)
		}
	}
	return nil
}

// setDefined installs a child's user constraint.
func (l *Layout) setDefined(parent *Rect, i int, def Constraint) error {
	ch := parent.children[i]
	if ch.hasDefined {
		l.remove(ch.definedTag)
		ch.hasDefined = false
	}
	a := parent.axis
	var (
		tag casso.Symbol
		err error
	)
	switch def.Kind {
	case Length:
		tag, err = l.add(casso.Strong, lenIs(ch.rect, a, float64(def.Num)))
	case Min:
		tag, err = l.add(casso.Medium, lenCmp(casso.GTE, ch.rect, a, float64(def.Num)))
	case Max:
		tag, err = l.add(casso.Medium, lenCmp(casso.LTE, ch.rect, a, float64(def.Num)))
	case Ratio:
		den := def.Den
		if den == 0 {
			den = 1
		}
		tag, err = l.add(casso.Weak*2, lenRatio(ch.rect, parent, a, float64(def.Num)/float64(den)))
	case Percent:
		tag, err = l.add(casso.Weak*2, lenRatio(ch.rect, parent, a, float64(def.Num)/100))
	}
	if err != nil {
		return err
	}
	d := def
	ch.defined = &d
	ch.definedTag = tag
	ch.hasDefined = true
	return nil
}

// setSiblingRatio ties child i's length to child i+1's at WEAK strength,
// using their current proportion, so resizes keep the user's arrangement.
func (l *Layout) setSiblingRatio(parent *Rect, i int) error {
	if i < 0 || i+1 >= len(parent.children) {
		return nil
	}
	ch := parent.children[i]
	next := parent.children[i+1]
	if ch.hasRatio {
		l.remove(ch.ratioTag)
		ch.hasRatio = false
	}
	a := parent.axis
	bl := next.rect.lenValue(l.solver, a)
	al := ch.rect.lenValue(l.solver, a)
	if bl <= 0 || al <= 0 {
		return nil
	}
	tag, err := l.add(casso.Weak, lenRatio(ch.rect, next.rect, a, float64(al)/float64(bl)))
	if err != nil {
		return err
	}
	ch.ratioTag = tag
	ch.hasRatio = true
	return nil
}

// ChangeConstraint swaps the user constraint of the child at the given
// rect index and re-solves.
func (l *Layout) ChangeConstraint(index int, def Constraint) error {
	r, ok := l.rects[index]
	if !ok || r.parent == nil {
		return fmt.Errorf("%w: rect %d has no parent", ErrImpossible, index)
	}
	for i, ch := range r.parent.children {
		if ch.rect == r {
			return l.setDefined(r.parent, i, def)
		}
	}
	return fmt.Errorf("%w: rect %d not among its parent's children", ErrImpossible, index)
}
