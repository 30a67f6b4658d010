package cursor

import (
	"github.com/xonecas/quill/internal/cfg"
	"github.com/xonecas/quill/internal/history"
	"github.com/xonecas/quill/internal/text"
)

// Helper is the multi-cursor engine a scheme-input widget edits through.
// Every batch brackets the text's cursor tags: removal on entry, insertion
// on exit, on every exit path including a panicking closure.
type Helper struct {
	t  *text.Text
	cs *Cursors
	h  *history.History

	cfg    cfg.PrintCfg
	width  int
	height int

	// record is false for widgets that opt out of history.
	record bool
}

// NewHelper wires the engine to a widget's text, cursors and history. h may
// be nil for history-less widgets.
func NewHelper(t *text.Text, cs *Cursors, h *history.History) *Helper {
	return &Helper{t: t, cs: cs, h: h, cfg: cfg.Default(), record: h != nil}
}

// SetPrintCfg supplies the label geometry vertical movement depends on.
func (hl *Helper) SetPrintCfg(c cfg.PrintCfg, width, height int) {
	hl.cfg = c
	hl.width = width
	hl.height = height
}

// Cursors exposes the cursor set for read-only callers.
func (hl *Helper) Cursors() *Cursors { return hl.cs }

// Text exposes the text for read-only callers.
func (hl *Helper) Text() *text.Text { return hl.t }

// withCursorTags removes the cursor tags, runs f, and reinstalls the tags
// for the resulting cursors no matter how f exits.
func (hl *Helper) withCursorTags(f func()) {
	carets := hl.cs.Carets()
	hl.t.RemoveCursorTags(carets...)
	defer func() {
		hl.t.AddCursorTags(hl.cs.Carets()...)
	}()
	f()
}

// ---------------------------------------------------------------------------
// Edit entry points
// ---------------------------------------------------------------------------

// EditOnEach runs f with an Editor for every cursor in order. Cursors not
// yet processed are shifted by the bytes earlier edits added or removed, so
// each keeps its character identity.
func (hl *Helper) EditOnEach(f func(*Editor)) {
	hl.withCursorTags(func() {
		hl.snapshotBefore()
		list := hl.cs.drain()
		diff := &Diff{}
		for i := range list {
			list[i].shift(hl.t, diff)
			f(&Editor{c: &list[i], t: hl.t, h: hl.h, diff: diff, record: hl.record})
		}
		hl.cs.refill(list)
		hl.snapshotAfter()
	})
}

// EditOnNth runs f with an Editor for the nth cursor only.
func (hl *Helper) EditOnNth(n int, f func(*Editor)) bool {
	if n < 0 || n >= hl.cs.Len() {
		return false
	}
	hl.withCursorTags(func() {
		hl.snapshotBefore()
		list := hl.cs.drain()
		diff := &Diff{}
		f(&Editor{c: &list[n], t: hl.t, h: hl.h, diff: diff, record: hl.record})
		for i := n + 1; i < len(list); i++ {
			list[i].shift(hl.t, diff)
		}
		hl.cs.refill(list)
		hl.snapshotAfter()
	})
	return true
}

// EditOnMain runs f with an Editor for the main cursor.
func (hl *Helper) EditOnMain(f func(*Editor)) {
	hl.EditOnNth(hl.cs.MainIndex(), f)
}

// ---------------------------------------------------------------------------
// Move entry points
// ---------------------------------------------------------------------------

// MoveEach runs f with a Mover for every cursor in order, then sorts and
// merges overlapping cursors.
func (hl *Helper) MoveEach(f func(*Mover)) {
	hl.withCursorTags(func() {
		list := hl.cs.drain()
		for i := range list {
			f(&Mover{c: &list[i], t: hl.t, cfg: hl.cfg, width: hl.width, height: hl.height})
		}
		hl.cs.refill(list)
	})
}

// MoveNth runs f with a Mover for the nth cursor only.
func (hl *Helper) MoveNth(n int, f func(*Mover)) bool {
	if n < 0 || n >= hl.cs.Len() {
		return false
	}
	hl.withCursorTags(func() {
		list := hl.cs.drain()
		f(&Mover{c: &list[n], t: hl.t, cfg: hl.cfg, width: hl.width, height: hl.height})
		hl.cs.refill(list)
	})
	return true
}

// MoveMain runs f with a Mover for the main cursor.
func (hl *Helper) MoveMain(f func(*Mover)) {
	hl.MoveNth(hl.cs.MainIndex(), f)
}

// ---------------------------------------------------------------------------
// History
// ---------------------------------------------------------------------------

// NewMoment closes the current undo moment. Typically called on mode
// changes by the input scheme.
func (hl *Helper) NewMoment() {
	if hl.h == nil {
		return
	}
	hl.snapshotAfter()
	hl.h.NewMoment()
	for i := range hl.cs.list {
		hl.cs.list[i].assocChange = -1
	}
}

// Undo reverts the current moment and restores its cursors.
func (hl *Helper) Undo() bool {
	if hl.h == nil {
		return false
	}
	ok := false
	hl.withCursorTags(func() {
		var m *history.Moment
		if m, ok = hl.h.Undo(hl.t); ok {
			hl.cs.Restore(m.CursorsBefore, hl.t)
			hl.resetAssoc()
		}
	})
	return ok
}

// Redo re-applies the next moment and restores its cursors.
func (hl *Helper) Redo() bool {
	if hl.h == nil {
		return false
	}
	ok := false
	hl.withCursorTags(func() {
		var m *history.Moment
		if m, ok = hl.h.Redo(hl.t); ok {
			hl.cs.Restore(m.CursorsAfter, hl.t)
			hl.resetAssoc()
		}
	})
	return ok
}

func (hl *Helper) resetAssoc() {
	for i := range hl.cs.list {
		hl.cs.list[i].assocChange = -1
	}
}

func (hl *Helper) snapshotBefore() {
	if hl.h != nil && hl.record {
		hl.h.SnapshotBefore(hl.cs.Saved())
	}
}

func (hl *Helper) snapshotAfter() {
	if hl.h != nil && hl.record {
		hl.h.SnapshotAfter(hl.cs.Saved())
	}
}
