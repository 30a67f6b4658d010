// Package layout solves window geometry: a tree of rectangles whose edges
// are variables in a linear constraint system. Splitting an area inserts a
// sibling or bisects it under a new parent; user constraints (length,
// ratio, bounds) are soft, edge equalities are required.
package layout

import (
	"errors"

	"github.com/xonecas/quill/internal/term"
)

// Axis is the direction children of a parent are stacked along.
type Axis int

const (
	Horizontal Axis = iota // children side by side
	Vertical               // children stacked top to bottom
)

// Perp returns the perpendicular axis.
func (a Axis) Perp() Axis {
	if a == Horizontal {
		return Vertical
	}
	return Horizontal
}

// ConstraintKind enumerates the user-defined length constraints.
type ConstraintKind int

const (
	Ratio ConstraintKind = iota
	Percent
	Length
	Min
	Max
)

// Constraint is a user-declared demand on a child's length along the
// parent's axis.
type Constraint struct {
	Kind ConstraintKind
	Num  int
	Den  int // used by Ratio
}

// RatioOf returns a Ratio constraint num/den.
func RatioOf(num, den int) Constraint { return Constraint{Kind: Ratio, Num: num, Den: den} }

// PercentOf returns a Percent constraint.
func PercentOf(p int) Constraint { return Constraint{Kind: Percent, Num: p} }

// LengthOf returns a fixed Length constraint.
func LengthOf(n int) Constraint { return Constraint{Kind: Length, Num: n} }

// MinOf returns a lower-bound constraint.
func MinOf(n int) Constraint { return Constraint{Kind: Min, Num: n} }

// MaxOf returns an upper-bound constraint.
func MaxOf(n int) Constraint { return Constraint{Kind: Max, Num: n} }

// Side is where a new area is pushed relative to an existing one.
type Side int

const (
	Above Side = iota
	Below
	LeftOf
	RightOf
)

// Axis returns the stacking axis a push on this side requires.
func (s Side) Axis() Axis {
	if s == Above || s == Below {
		return Vertical
	}
	return Horizontal
}

// earlier reports whether the new area precedes the existing one.
func (s Side) earlier() bool {
	return s == Above || s == LeftOf
}

// PushSpecs describe a widget's placement demand: a side plus an optional
// length constraint.
type PushSpecs struct {
	Side       Side
	Constraint *Constraint
	Cluster    bool
}

// PushBelow returns specs pushing below the target.
func PushBelow() PushSpecs { return PushSpecs{Side: Below} }

// PushAbove returns specs pushing above the target.
func PushAbove() PushSpecs { return PushSpecs{Side: Above} }

// PushLeft returns specs pushing left of the target.
func PushLeft() PushSpecs { return PushSpecs{Side: LeftOf} }

// PushRight returns specs pushing right of the target.
func PushRight() PushSpecs { return PushSpecs{Side: RightOf} }

// WithLen attaches a fixed length to the specs.
func (p PushSpecs) WithLen(n int) PushSpecs {
	c := LengthOf(n)
	p.Constraint = &c
	return p
}

// WithRatio attaches a ratio constraint to the specs.
func (p PushSpecs) WithRatio(num, den int) PushSpecs {
	c := RatioOf(num, den)
	p.Constraint = &c
	return p
}

// Frame enumerates which interior edges are drawn.
type Frame int

const (
	FrameNone Frame = iota
	FrameSurround
	FrameRegular
	FrameVerOnly
	FrameHorOnly
)

// onAxis reports whether the frame draws separator lines along the axis.
func (f Frame) onAxis(a Axis) bool {
	switch f {
	case FrameRegular, FrameSurround:
		return true
	case FrameVerOnly:
		return a == Vertical
	case FrameHorOnly:
		return a == Horizontal
	}
	return false
}

// Edge is one separator line for the backend to draw.
type Edge struct {
	At    term.Coords
	Axis  Axis
	Frame Frame
}

// ErrImpossible reports a constraint the solver rejected; the caller is
// expected to retry with a fallback.
var ErrImpossible = errors.New("layout: impossible constraint")
