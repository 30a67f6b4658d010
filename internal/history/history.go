// Package history records moments of change for undo and redo. A moment is
// an ordered list of non-overlapping changes; adjacent compatible changes
// are coalesced so typing a word stays one change.
package history

import (
	"strings"
	"unicode/utf8"

	"github.com/xonecas/quill/internal/text"
)

// SavedCursor is the byte-level snapshot of one cursor at a moment boundary.
type SavedCursor struct {
	Caret     int
	Anchor    int
	HasAnchor bool
	Main      bool
}

// Moment is one atomic unit of undo.
type Moment struct {
	Changes []text.Change
	// Cursor snapshots at the moment's boundaries, restored on undo/redo.
	CursorsBefore []SavedCursor
	CursorsAfter  []SavedCursor
}

// History is a finite sequence of moments with an insertion point. cur is
// the index of the moment edits go to; -1 means everything is undone.
type History struct {
	moments []Moment
	cur     int
}

// New returns a history holding a single empty moment.
func New() *History {
	return &History{moments: []Moment{{}}}
}

// Current returns the moment edits currently go to.
func (h *History) Current() *Moment {
	if h.cur < 0 {
		// Everything was undone; edits need a fresh first moment.
		h.moments = append([]Moment{{}}, h.moments...)
		h.cur = 0
	}
	return &h.moments[h.cur]
}

// Len returns the number of moments.
func (h *History) Len() int {
	return len(h.moments)
}

// NewMoment drops any redoable future and opens a fresh moment. A still
// empty current moment is reused instead of stacking blanks.
func (h *History) NewMoment() {
	if h.cur >= 0 && len(h.moments[h.cur].Changes) == 0 {
		h.moments = h.moments[:h.cur+1]
		return
	}
	h.moments = append(h.moments[:h.cur+1], Moment{})
	h.cur++
}

// SnapshotBefore records the cursor state entering the current moment, once.
func (h *History) SnapshotBefore(cs []SavedCursor) {
	m := h.Current()
	if m.CursorsBefore == nil {
		m.CursorsBefore = cs
	}
}

// SnapshotAfter records the cursor state leaving the current moment.
func (h *History) SnapshotAfter(cs []SavedCursor) {
	h.Current().CursorsAfter = cs
}

// AddChange records c in the current moment. assoc is the index of the
// change the calling cursor last touched, or -1. The return value is the
// index the cursor should remember: either assoc (after an in-place merge)
// or the index of the appended change.
func (h *History) AddChange(assoc int, c text.Change) int {
	m := h.Current()
	if assoc >= 0 && assoc < len(m.Changes) {
		if merged, ok := coalesce(m.Changes[assoc], c); ok {
			m.Changes[assoc] = merged
			return assoc
		}
	}
	m.Changes = append(m.Changes, c)
	return len(m.Changes) - 1
}

// coalesce merges b into a when one's range contains the other's, per the
// containment rule: a.added_range containing b.taken_range splices b's
// replacement into a's added text.
func coalesce(a, b text.Change) (text.Change, bool) {
	if a.Start <= b.Start && b.TakenEnd() <= a.AddedEnd() {
		// b edits inside what a added.
		rel := b.Start - a.Start
		var sb strings.Builder
		sb.WriteString(a.Added[:rel])
		sb.WriteString(b.Added)
		sb.WriteString(a.Added[rel+len(b.Taken):])
		a.Added = sb.String()
		return a, true
	}
	if b.Start <= a.Start && a.AddedEnd() <= b.TakenEnd() {
		// b swallows everything a added; fold a's taken text into b's.
		rel := a.Start - b.Start
		var taken strings.Builder
		taken.WriteString(b.Taken[:rel])
		taken.WriteString(a.Taken)
		taken.WriteString(b.Taken[rel+len(a.Added):])
		b.Taken = taken.String()
		return b, true
	}
	return a, false
}

// Undo replays the current moment's changes in reverse on t and steps back.
// An empty freshly opened moment is skipped. Returns the undone moment for
// cursor restoration.
func (h *History) Undo(t *text.Text) (*Moment, bool) {
	if h.cur >= 0 && len(h.moments[h.cur].Changes) == 0 && h.cur > 0 {
		h.cur--
	}
	if h.cur < 0 || len(h.moments[h.cur].Changes) == 0 {
		return nil, false
	}
	m := &h.moments[h.cur]
	for i := len(m.Changes) - 1; i >= 0; i-- {
		t.Undo(m.Changes[i])
	}
	h.cur--
	return m, true
}

// Redo re-applies the next moment's changes and steps forward. Returns the
// redone moment for cursor restoration.
func (h *History) Redo(t *text.Text) (*Moment, bool) {
	next := h.cur + 1
	for next < len(h.moments) && len(h.moments[next].Changes) == 0 {
		next++
	}
	if next >= len(h.moments) {
		return nil, false
	}
	h.cur = next
	m := &h.moments[h.cur]
	for _, c := range m.Changes {
		t.Apply(c)
	}
	return m, true
}

// CharsDiff returns the total scalar-count shift of a moment.
func (m *Moment) CharsDiff() int {
	d := 0
	for _, c := range m.Changes {
		d += utf8.RuneCountInString(c.Added) - utf8.RuneCountInString(c.Taken)
	}
	return d
}
