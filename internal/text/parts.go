package text

import (
	"unicode/utf8"

	"github.com/xonecas/quill/internal/forms"
	"github.com/xonecas/quill/internal/gapbuf"
)

// PartKind enumerates the elements of the rendering stream.
type PartKind uint8

const (
	PartChar PartKind = iota
	PartPushForm
	PartPopForm
	PartMainCursor
	PartExtraCursor
	PartAlignLeft
	PartAlignCenter
	PartAlignRight
	PartToggleStart
	PartToggleEnd
	// PartTermination closes a spliced ghost or a concealed range.
	PartTermination
)

// Part is one element of the rendering stream: a character or a tag event.
type Part struct {
	Kind   PartKind
	Rune   rune
	Form   forms.ID
	Toggle ToggleID
}

// IsChar reports whether the part is a character.
func (p Part) IsChar() bool { return p.Kind == PartChar }

// Item is a part paired with the real-buffer position it belongs to. Parts
// coming from a ghost text carry the position of their host tag.
type Item struct {
	Pos   Point
	Ghost bool
	Part  Part
}

// advance moves a point past r.
func advance(p Point, r rune) Point {
	p.Byte += utf8.RuneLen(r)
	p.Char++
	if r == '\n' {
		p.Line++
		p.Col = 0
	} else {
		p.Col++
	}
	return p
}

// partForTag maps a tag event to its stream part, or ok=false for tags that
// produce no part directly (conceal bounds, ghosts).
func partForTag(tag Tag) (Part, bool) {
	switch tag.Kind {
	case TagPushForm:
		return Part{Kind: PartPushForm, Form: tag.Form}, true
	case TagPopForm:
		return Part{Kind: PartPopForm, Form: tag.Form}, true
	case TagMainCursor:
		return Part{Kind: PartMainCursor}, true
	case TagExtraCursor:
		return Part{Kind: PartExtraCursor}, true
	case TagStartAlignLeft, TagEndAlignLeft, TagEndAlignCenter, TagEndAlignRight:
		return Part{Kind: PartAlignLeft}, true
	case TagStartAlignCenter:
		return Part{Kind: PartAlignCenter}, true
	case TagStartAlignRight:
		return Part{Kind: PartAlignRight}, true
	case TagToggleStart:
		return Part{Kind: PartToggleStart, Toggle: tag.Toggle}, true
	case TagToggleEnd:
		return Part{Kind: PartToggleEnd, Toggle: tag.Toggle}, true
	}
	return Part{}, false
}

// ---------------------------------------------------------------------------
// Forward iteration
// ---------------------------------------------------------------------------

// Iter yields the part stream of a text in rendering order: tag events
// pending at a character come out before the character itself, ghost texts
// are spliced in followed by a termination, and concealed characters are
// skipped.
type Iter struct {
	t       *Text
	runes   *gapbuf.RuneIter
	tags    *FwdTags
	pos     Point
	conceal int
	ghost   *Iter
}

// Iter returns a forward part iterator starting at the given point.
func (t *Text) Iter(at Point) *Iter {
	return &Iter{
		t:     t,
		runes: t.buf.RunesFrom(at.Char),
		tags:  t.tags.At(at.Byte),
		pos:   at,
	}
}

// IterFromStart returns a forward part iterator over the whole text.
func (t *Text) IterFromStart() *Iter {
	return t.Iter(Point{})
}

// Pos returns the position of the next character the iterator will yield.
func (it *Iter) Pos() Point {
	return it.pos
}

// Next returns the next item of the stream.
func (it *Iter) Next() (Item, bool) {
	for {
		// Drain an active ghost first.
		if it.ghost != nil {
			item, ok := it.ghost.Next()
			if ok {
				return Item{Pos: it.pos, Ghost: true, Part: item.Part}, true
			}
			it.ghost = nil
			return Item{Pos: it.pos, Ghost: true, Part: Part{Kind: PartTermination}}, true
		}

		// Tag events at or before the current character come first.
		if off, tag, ok := it.tags.Peek(); ok && off <= it.pos.Byte {
			it.tags.Next()
			switch tag.Kind {
			case TagConcealStart:
				it.conceal++
				continue
			case TagConcealEnd:
				if it.conceal > 0 {
					it.conceal--
					if it.conceal == 0 {
						return Item{Pos: it.pos, Part: Part{Kind: PartTermination}}, true
					}
				}
				continue
			case TagGhost:
				if it.conceal == 0 && tag.Ghost != nil {
					it.ghost = tag.Ghost.IterFromStart()
				}
				continue
			}
			part, ok := partForTag(tag)
			if !ok {
				continue
			}
			return Item{Pos: it.pos, Part: part}, true
		}

		r, ok := it.runes.Next()
		if !ok {
			return Item{}, false
		}
		if it.conceal > 0 {
			it.pos = advance(it.pos, r)
			continue
		}
		item := Item{Pos: it.pos, Part: Part{Kind: PartChar, Rune: r}}
		it.pos = advance(it.pos, r)
		return item, true
	}
}

// ---------------------------------------------------------------------------
// Reverse iteration
// ---------------------------------------------------------------------------

// RevIter yields the part stream in reverse order, starting just before a
// point.
type RevIter struct {
	t       *Text
	runes   *gapbuf.RevRuneIter
	tags    *RevTags
	pos     Point
	conceal int
	ghost   *RevIter
}

// RevIter returns a reverse part iterator positioned just before at.
func (t *Text) RevIter(at Point) *RevIter {
	return &RevIter{
		t:     t,
		runes: t.buf.RunesBefore(at.Char),
		tags:  t.tags.Before(at.Byte),
		pos:   at,
	}
}

// Pos returns the position boundary: every yielded item lies before it.
func (it *RevIter) Pos() Point {
	return it.pos
}

// retreat moves the position back over r. Crossing a newline recomputes the
// column from the line contents.
func (it *RevIter) retreat(r rune) {
	it.pos.Byte -= utf8.RuneLen(r)
	it.pos.Char--
	if r == '\n' {
		it.pos.Line--
		it.pos.Col = it.lineLenBefore(it.pos.Char)
	} else {
		it.pos.Col--
	}
}

// lineLenBefore counts the characters between the previous newline and ch.
func (it *RevIter) lineLenBefore(ch int) int {
	n := 0
	back := it.t.buf.RunesBefore(ch)
	for {
		r, ok := back.Next()
		if !ok || r == '\n' {
			return n
		}
		n++
	}
}

// Next returns the previous item of the stream.
func (it *RevIter) Next() (Item, bool) {
	for {
		if it.ghost != nil {
			item, ok := it.ghost.Next()
			if ok {
				return Item{Pos: it.pos, Ghost: true, Part: item.Part}, true
			}
			it.ghost = nil
			return Item{Pos: it.pos, Ghost: true, Part: Part{Kind: PartTermination}}, true
		}

		// In reverse, the tags at the current boundary come out before the
		// character that precedes them.
		if off, tag, ok := it.tags.Peek(); ok && off >= it.pos.Byte {
			it.tags.Next()
			switch tag.Kind {
			case TagConcealEnd:
				it.conceal++
				continue
			case TagConcealStart:
				if it.conceal > 0 {
					it.conceal--
					if it.conceal == 0 {
						return Item{Pos: it.pos, Part: Part{Kind: PartTermination}}, true
					}
				}
				continue
			case TagGhost:
				if it.conceal == 0 && tag.Ghost != nil {
					it.ghost = tag.Ghost.RevIter(tag.Ghost.Len())
				}
				continue
			}
			part, ok := partForTag(tag)
			if !ok {
				continue
			}
			return Item{Pos: it.pos, Part: part}, true
		}

		r, ok := it.runes.Next()
		if !ok {
			return Item{}, false
		}
		it.retreat(r)
		if it.conceal > 0 {
			continue
		}
		return Item{Pos: it.pos, Part: Part{Kind: PartChar, Rune: r}}, true
	}
}
