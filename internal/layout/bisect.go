package layout

import (
	"fmt"

	"github.com/lithdew/casso"
)

func childIndex(parent *Rect, r *Rect) int {
	for i, ch := range parent.children {
		if ch.rect == r {
			return i
		}
	}
	return -1
}

// Bisect inserts a new rectangle adjacent to the rect at index, per the
// push specs. Depending on the target's surroundings the new rect becomes a
// sibling, a first/last child, or one half of a freshly created parent that
// replaces the target. Returns the new rect's index.
func (l *Layout) Bisect(index int, specs PushSpecs, clusterNew bool) (int, error) {
	target, ok := l.rects[index]
	if !ok {
		return 0, fmt.Errorf("%w: unknown rect %d", ErrImpossible, index)
	}
	axis := specs.Side.Axis()

	var (
		parent *Rect
		pos    int
	)
	switch {
	case target.parent != nil && target.parent.axis == axis &&
		target.parent.clustered == clusterNew:
		// Same axis and compatible clustering: insert as a sibling.
		parent = target.parent
		pos = childIndex(parent, target)
		if !specs.Side.earlier() {
			pos++
		}
	case target.IsParent() && target.axis == axis:
		// The target already stacks along this axis: new first/last child.
		parent = target
		if !specs.Side.earlier() {
			pos = len(parent.children)
		}
	default:
		var err error
		parent, err = l.makeParentOf(target, axis, clusterNew)
		if err != nil {
			return 0, err
		}
		pos = 0
		if !specs.Side.earlier() {
			pos = 1
		}
	}

	r := l.newRect()
	r.parent = parent
	parent.children = append(parent.children, nil)
	copy(parent.children[pos+1:], parent.children[pos:])
	parent.children[pos] = &child{rect: r}

	// A temporary fair-share pin keeps the initial allocation sane while
	// the permanent constraints go in.
	fair := l.fairLen(parent)
	tempTag, err := l.add(casso.Weak*2, lenIs(r, parent.axis, fair))
	if err != nil {
		return 0, err
	}

	if err := l.setChain(parent); err != nil {
		return 0, err
	}
	if specs.Constraint != nil {
		if err := l.setDefined(parent, pos, *specs.Constraint); err != nil {
			return 0, err
		}
		// The defined constraint replaces the fair share: drop the pin
		// before the sibling ratios read the solved lengths, or they would
		// record the fair share and outweigh the constraint.
		l.remove(tempTag)
	}
	if err := l.setSiblingRatio(parent, pos-1); err != nil {
		return 0, err
	}
	if err := l.setSiblingRatio(parent, pos); err != nil {
		return 0, err
	}
	if specs.Constraint == nil {
		l.remove(tempTag)
	}
	return r.index, nil
}

// makeParentOf replaces target with a new parent holding target as its only
// child, ready to receive a sibling.
func (l *Layout) makeParentOf(target *Rect, axis Axis, clustered bool) (*Rect, error) {
	np := l.newRect()
	np.axis = axis
	np.clustered = clustered
	np.parent = target.parent

	if gp := target.parent; gp != nil {
		i := childIndex(gp, target)
		slot := gp.children[i]
		// The slot's user constraint now governs the new parent.
		var def *Constraint
		if slot.hasDefined {
			l.remove(slot.definedTag)
			def = slot.defined
		}
		if slot.hasRatio {
			l.remove(slot.ratioTag)
		}
		gp.children[i] = &child{rect: np}
		l.remove(target.edgeTags...)
		target.edgeTags = target.edgeTags[:0]
		if err := l.setChain(gp); err != nil {
			return nil, err
		}
		if def != nil {
			if err := l.setDefined(gp, i, *def); err != nil {
				return nil, err
			}
		}
		// Sibling ratios referencing the displaced rect now tie to the new
		// parent instead.
		if err := l.setSiblingRatio(gp, i-1); err != nil {
			return nil, err
		}
		if err := l.setSiblingRatio(gp, i); err != nil {
			return nil, err
		}
	} else {
		l.root = np
		l.remove(target.edgeTags...)
		target.edgeTags = target.edgeTags[:0]
		if err := l.pinRoot(); err != nil {
			return nil, err
		}
	}

	target.parent = np
	np.children = []*child{{rect: target}}
	return np, nil
}

// fairLen is the parent's resizable length divided by its resizable
// children. The incoming child is already in the list when this runs.
func (l *Layout) fairLen(parent *Rect) float64 {
	a := parent.axis
	total := parent.lenValue(l.solver, a)
	resizable := 0
	for _, ch := range parent.children {
		if ch.hasDefined && ch.defined.Kind == Length {
			total -= ch.defined.Num
			continue
		}
		resizable++
	}
	if total < 0 {
		total = 0
	}
	if resizable == 0 {
		resizable = 1
	}
	return float64(total) / float64(resizable)
}
