package cursor

import (
	"github.com/xonecas/quill/internal/history"
	"github.com/xonecas/quill/internal/text"
)

// Diff accumulates the byte and change-count shift of an edit batch, so
// cursors processed later in the batch keep their character identity.
type Diff struct {
	Bytes   int
	Changes int
}

// shift moves a cursor's caret and anchor by the accumulated diff.
func (c *Cursor) shift(t *text.Text, d *Diff) {
	if d.Bytes == 0 {
		return
	}
	c.caret = t.PointAtByte(c.caret.Byte + d.Bytes)
	if c.hasAnchor {
		c.anchor = t.PointAtByte(c.anchor.Byte + d.Bytes)
	}
	if c.assocChange >= 0 {
		c.assocChange += d.Changes
	}
}

// Editor mutates the text on behalf of exactly one cursor for the duration
// of one edit closure. It cannot move the selection.
type Editor struct {
	c    *Cursor
	t    *text.Text
	h    *history.History
	diff *Diff
	// record is false for widgets that opt out of history.
	record bool
}

// Replace substitutes the selection with edit. The caret ends just past the
// inserted text; an anchor at the selection end moves to its start, any
// other anchor is cleared.
func (e *Editor) Replace(edit string) {
	start, end := e.c.Selection()
	taken := string(e.t.Buf().MakeContiguousIn(start.Byte, end.Byte))
	anchorWasEnd := e.c.hasAnchor && e.c.anchor.Byte == end.Byte && e.c.anchor.Byte != start.Byte

	e.apply(text.Change{Start: start.Byte, Taken: taken, Added: edit})

	e.c.caret = e.t.PointAtByte(start.Byte + len(edit))
	if anchorWasEnd {
		e.c.anchor = e.t.PointAtByte(start.Byte)
		e.c.hasAnchor = e.c.anchor.Byte != e.c.caret.Byte
	} else {
		e.c.hasAnchor = false
	}
	e.c.desiredX = e.c.caret.Col
}

// Insert adds edit at the caret without consuming the selection. The caret
// ends just past the inserted text; an anchor ahead of the caret shifts
// forward by the insertion.
func (e *Editor) Insert(edit string) {
	at := e.c.caret.Byte
	e.apply(text.Change{Start: at, Added: edit})

	e.c.caret = e.t.PointAtByte(at + len(edit))
	if e.c.hasAnchor && e.c.anchor.Byte > at {
		e.c.anchor = e.t.PointAtByte(e.c.anchor.Byte + len(edit))
	}
	e.c.desiredX = e.c.caret.Col
}

// InsertAtEnd appends edit just past the selection end, leaving caret and
// anchor in place. Used for appending-style edits.
func (e *Editor) InsertAtEnd(edit string) {
	_, end := e.c.Selection()
	e.apply(text.Change{Start: end.Byte, Added: edit})
}

// Selection returns the selected text.
func (e *Editor) Selection() string {
	start, end := e.c.Selection()
	return string(e.t.Buf().MakeContiguousIn(start.Byte, end.Byte))
}

// Caret returns the caret position.
func (e *Editor) Caret() text.Point {
	return e.c.caret
}

func (e *Editor) apply(c text.Change) {
	e.t.Apply(c)
	if e.record && e.h != nil {
		e.c.assocChange = e.h.AddChange(e.c.assocChange, c)
	}
	e.diff.Bytes += len(c.Added) - len(c.Taken)
	e.diff.Changes++
}
