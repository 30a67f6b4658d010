// Package cursor implements carets with optional selection anchors, the
// ordered multi-cursor set, and the two capability-restricted views used to
// edit and move them: an Editor mutates text but cannot move the selection,
// a Mover moves the selection but cannot mutate text.
package cursor

import (
	"sort"

	"github.com/xonecas/quill/internal/history"
	"github.com/xonecas/quill/internal/text"
)

// Cursor is a caret with an optional anchor and a desired visual column for
// vertical movement.
type Cursor struct {
	caret     text.Point
	anchor    text.Point
	hasAnchor bool

	desiredX int
	// Index into the current moment's changes, for coalescing. -1 when the
	// cursor hasn't edited in this moment.
	assocChange int

	wasMain bool // batch-transient: carries main-ness through a drain
}

// New returns a cursor resting at the given point.
func New(at text.Point) Cursor {
	return Cursor{caret: at, desiredX: at.Col, assocChange: -1}
}

// Caret returns the caret position.
func (c Cursor) Caret() text.Point { return c.caret }

// Anchor returns the selection anchor, if set.
func (c *Cursor) Anchor() (text.Point, bool) { return c.anchor, c.hasAnchor }

// Selection returns the selected range [start, end). Without an anchor both
// bounds equal the caret.
func (c Cursor) Selection() (text.Point, text.Point) {
	if !c.hasAnchor {
		return c.caret, c.caret
	}
	return c.caret.Min(c.anchor), c.caret.Max(c.anchor)
}

// AsCaret converts to the tag-level representation.
func (c *Cursor) AsCaret(main bool) text.Caret {
	return text.Caret{
		Byte:      c.caret.Byte,
		Anchor:    c.anchor.Byte,
		HasAnchor: c.hasAnchor,
		Main:      main,
	}
}

// saved converts to a history snapshot.
func (c *Cursor) saved(main bool) history.SavedCursor {
	return history.SavedCursor{
		Caret:     c.caret.Byte,
		Anchor:    c.anchor.Byte,
		HasAnchor: c.hasAnchor,
		Main:      main,
	}
}

// ---------------------------------------------------------------------------
// Cursors
// ---------------------------------------------------------------------------

// Cursors is an ordered set of cursors keyed by caret byte offset with a
// designated main cursor. After every batch the set is sorted and
// overlapping cursors are merged, so selection ranges stay disjoint.
type Cursors struct {
	list []Cursor
	main int
}

// NewSet returns a set holding one main cursor at the origin.
func NewSet() *Cursors {
	return &Cursors{list: []Cursor{New(text.Point{})}}
}

// Len returns the number of cursors.
func (cs *Cursors) Len() int { return len(cs.list) }

// MainIndex returns the index of the main cursor.
func (cs *Cursors) MainIndex() int { return cs.main }

// Nth returns a copy of the nth cursor in caret order.
func (cs *Cursors) Nth(n int) (Cursor, bool) {
	if n < 0 || n >= len(cs.list) {
		return Cursor{}, false
	}
	return cs.list[n], true
}

// Main returns a copy of the main cursor.
func (cs *Cursors) Main() Cursor {
	return cs.list[cs.main]
}

// Insert adds a cursor keeping caret order, ties after existing entries.
// Returns its index.
func (cs *Cursors) Insert(c Cursor) int {
	i := sort.Search(len(cs.list), func(i int) bool {
		return cs.list[i].caret.Byte > c.caret.Byte
	})
	cs.list = append(cs.list, Cursor{})
	copy(cs.list[i+1:], cs.list[i:])
	cs.list[i] = c
	if i <= cs.main && len(cs.list) > 1 {
		cs.main++
	}
	return i
}

// SetMain designates the nth cursor as main.
func (cs *Cursors) SetMain(n int) {
	if n >= 0 && n < len(cs.list) {
		cs.main = n
	}
}

// RemoveExtras drops every cursor but the main one.
func (cs *Cursors) RemoveExtras() {
	m := cs.list[cs.main]
	cs.list = cs.list[:0]
	cs.list = append(cs.list, m)
	cs.main = 0
}

// Reset replaces the whole set with a single cursor.
func (cs *Cursors) Reset(c Cursor) {
	cs.list = cs.list[:0]
	cs.list = append(cs.list, c)
	cs.main = 0
}

// Carets returns the tag-level view of every cursor.
func (cs *Cursors) Carets() []text.Caret {
	out := make([]text.Caret, len(cs.list))
	for i := range cs.list {
		out[i] = cs.list[i].AsCaret(i == cs.main)
	}
	return out
}

// Saved returns the history snapshot of every cursor.
func (cs *Cursors) Saved() []history.SavedCursor {
	out := make([]history.SavedCursor, len(cs.list))
	for i := range cs.list {
		out[i] = cs.list[i].saved(i == cs.main)
	}
	return out
}

// Restore rebuilds the set from a history snapshot.
func (cs *Cursors) Restore(saved []history.SavedCursor, t *text.Text) {
	if len(saved) == 0 {
		return
	}
	cs.list = cs.list[:0]
	cs.main = 0
	for i, s := range saved {
		c := New(t.PointAtByte(s.Caret))
		if s.HasAnchor {
			c.anchor = t.PointAtByte(s.Anchor)
			c.hasAnchor = true
		}
		cs.list = append(cs.list, c)
		if s.Main {
			cs.main = i
		}
	}
	cs.sortAndMerge()
}

// drain hands the set's cursors out as a work list, tagging the main cursor
// so main-ness survives sorting and merging. The set keeps referring to the
// same cursors until refill, so a batch whose closure panics still leaves
// them in place for the cursor tags to be reinstalled.
func (cs *Cursors) drain() []Cursor {
	out := cs.list
	for i := range out {
		out[i].wasMain = i == cs.main
	}
	return out
}

// refill restores a drained work list, then sorts and merges.
func (cs *Cursors) refill(list []Cursor) {
	cs.list = list
	cs.sortAndMerge()
}

// sortAndMerge sorts cursors by caret byte and merges overlapping ones: the
// merged cursor covers the union of the ranges and is main if any merged
// cursor was.
func (cs *Cursors) sortAndMerge() {
	sort.SliceStable(cs.list, func(i, j int) bool {
		return cs.list[i].caret.Byte < cs.list[j].caret.Byte
	})
	merged := cs.list[:0]
	for _, c := range cs.list {
		if len(merged) == 0 {
			merged = append(merged, c)
			continue
		}
		last := &merged[len(merged)-1]
		ls, le := last.Selection()
		s, e := c.Selection()
		overlap := s.Byte < le.Byte || (s.Byte == ls.Byte && e.Byte == s.Byte && le.Byte == ls.Byte)
		if !overlap {
			merged = append(merged, c)
			continue
		}
		// Union of the two ranges, direction of the earlier cursor.
		start, end := ls.Min(s), le.Max(e)
		forward := !last.hasAnchor || !last.caret.Before(last.anchor)
		if start.Byte == end.Byte {
			last.caret = start
			last.hasAnchor = false
		} else if forward {
			last.anchor, last.caret = start, end
			last.hasAnchor = true
		} else {
			last.anchor, last.caret = end, start
			last.hasAnchor = true
		}
		last.wasMain = last.wasMain || c.wasMain
		last.desiredX = last.caret.Col
	}
	cs.list = merged
	cs.main = 0
	for i := range cs.list {
		if cs.list[i].wasMain {
			cs.main = i
		}
		cs.list[i].wasMain = false
	}
}
