// Package text implements the editor's text model: a gap-buffered UTF-8
// byte sequence paired with an ordered, interval-addressable tag tree that
// annotates ranges with formatting, cursors, ghost text, alignment and
// concealment.
package text

import (
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"github.com/xonecas/quill/internal/forms"
	"github.com/xonecas/quill/internal/gapbuf"
)

// Text owns one gap buffer and one tag set, plus a marker reserved for the
// cursor tags of its primary editor. It is mutated only through Apply,
// Undo, direct tag insertion and cursor-tag sync.
type Text struct {
	buf    *gapbuf.Buffer
	tags   *Tags
	marker Marker
	seq    int
}

// New returns an empty text.
func New() *Text {
	return FromString("")
}

// FromString returns a text holding s.
func FromString(s string) *Text {
	return &Text{
		buf:    gapbuf.FromString(s),
		tags:   NewTags(),
		marker: NewMarker(),
	}
}

// Buf exposes the underlying buffer for read-only callers.
func (t *Text) Buf() *gapbuf.Buffer {
	return t.buf
}

// Tags exposes the tag set.
func (t *Text) Tags() *Tags {
	return t.tags
}

// Marker returns the marker reserved for this text's cursor tags. It is
// fixed for the life of the text.
func (t *Text) Marker() Marker {
	return t.marker
}

// String returns the full content.
func (t *Text) String() string {
	return t.buf.String()
}

// Len returns the point just past the last character.
func (t *Text) Len() Point {
	return t.PointAtByte(t.buf.Len())
}

// LenBytes returns the content length in bytes.
func (t *Text) LenBytes() int {
	return t.buf.Len()
}

// LenChars returns the content length in scalar values.
func (t *Text) LenChars() int {
	return t.buf.LenChars()
}

// LenLines returns the number of lines, at least 1.
func (t *Text) LenLines() int {
	return t.buf.LenLines()
}

// ---------------------------------------------------------------------------
// Coordinate conversions
// ---------------------------------------------------------------------------

// PointAtChar returns the point of the ch-th scalar. ch is clamped to
// [0, LenChars].
func (t *Text) PointAtChar(ch int) Point {
	if ch < 0 {
		ch = 0
	}
	if max := t.buf.LenChars(); ch > max {
		ch = max
	}
	var p Point
	it := t.buf.RunesFrom(0)
	for p.Char < ch {
		r, ok := it.Next()
		if !ok {
			break
		}
		p.Byte += utf8.RuneLen(r)
		p.Char++
		if r == '\n' {
			p.Line++
			p.Col = 0
		} else {
			p.Col++
		}
	}
	return p
}

// PointAtByte returns the point at the given byte offset, which must lie on
// a UTF-8 boundary. Offsets are clamped to [0, LenBytes].
func (t *Text) PointAtByte(b int) Point {
	if b < 0 {
		b = 0
	}
	if max := t.buf.Len(); b > max {
		b = max
	}
	var p Point
	it := t.buf.RunesFrom(0)
	for p.Byte < b {
		r, ok := it.Next()
		if !ok {
			break
		}
		p.Byte += utf8.RuneLen(r)
		p.Char++
		if r == '\n' {
			p.Line++
			p.Col = 0
		} else {
			p.Col++
		}
	}
	if p.Byte != b {
		log.Fatal().Int("offset", b).Int("reached", p.Byte).
			Msg("byte offset is not on a UTF-8 boundary")
	}
	return p
}

// PointAtLine returns the point of the first character of the given line,
// clamped to the last line.
func (t *Text) PointAtLine(line int) Point {
	if line < 0 {
		line = 0
	}
	return t.PointAtChar(t.buf.CharAtLine(line))
}

// PointAtCoords returns the point at (line, col), clamping col to the line
// length and line to the buffer.
func (t *Text) PointAtCoords(line, col int) Point {
	p := t.PointAtLine(line)
	it := t.buf.RunesFrom(p.Char)
	for p.Col < col {
		r, ok := it.Next()
		if !ok || r == '\n' {
			break
		}
		p.Byte += utf8.RuneLen(r)
		p.Char++
		p.Col++
	}
	return p
}

// CharsInLine returns the number of characters in the given line, excluding
// its newline.
func (t *Text) CharsInLine(line int) int {
	p := t.PointAtLine(line)
	n := 0
	it := t.buf.RunesFrom(p.Char)
	for {
		r, ok := it.Next()
		if !ok || r == '\n' {
			return n
		}
		n++
	}
}

// ---------------------------------------------------------------------------
// Changes
// ---------------------------------------------------------------------------

// Change is one replacement of a byte range: applying it replaces
// [Start, TakenEnd) with Added; undoing replaces [Start, AddedEnd) with
// Taken.
type Change struct {
	Start int
	Taken string
	Added string
}

// TakenEnd returns the byte just past the taken range.
func (c Change) TakenEnd() int { return c.Start + len(c.Taken) }

// AddedEnd returns the byte just past the added range.
func (c Change) AddedEnd() int { return c.Start + len(c.Added) }

// CharsDiff returns the scalar-count difference the change introduces.
func (c Change) CharsDiff() int {
	return utf8.RuneCountInString(c.Added) - utf8.RuneCountInString(c.Taken)
}

// Apply performs the change on the buffer and shifts the tags.
func (t *Text) Apply(c Change) {
	t.replace(c.Start, c.TakenEnd(), c.Added)
}

// Undo reverts a previously applied change.
func (t *Text) Undo(c Change) {
	t.replace(c.Start, c.AddedEnd(), c.Taken)
}

func (t *Text) replace(start, end int, added string) {
	if end > t.buf.Len() {
		log.Fatal().Int("end", end).Int("len", t.buf.Len()).
			Msg("change range past buffer end")
	}
	t.buf.Splice(start, end, []byte(added))
	t.tags.Transform(start, end, start+len(added))
	t.seq++
}

// Seq is a counter bumped on every buffer mutation, for cheap change
// detection.
func (t *Text) Seq() int {
	return t.seq
}

// InsertTag attaches a tag at the given byte offset under the marker.
func (t *Text) InsertTag(b int, tag Tag, m Marker) {
	if b > t.buf.Len() {
		log.Fatal().Int("offset", b).Int("len", t.buf.Len()).
			Msg("tag offset past buffer end")
	}
	t.tags.Insert(b, tag, m)
}

// RemoveTagsOn removes all tags at the offset owned by the given markers.
func (t *Text) RemoveTagsOn(b int, markers ...Marker) {
	t.tags.RemoveOn(b, markers...)
}

// ---------------------------------------------------------------------------
// Cursor tags
// ---------------------------------------------------------------------------

// Caret is the tag-level description of one cursor: its caret byte, an
// optional selection anchor, and whether it is the main cursor.
type Caret struct {
	Byte      int
	Anchor    int
	HasAnchor bool
	Main      bool
}

func (c Caret) selRange() (int, int) {
	if c.Byte <= c.Anchor {
		return c.Byte, c.Anchor
	}
	return c.Anchor, c.Byte
}

// AddCursorTags installs the caret and selection tags for each cursor under
// the text's own marker. RemoveCursorTags with the same carets is its exact
// inverse.
func (t *Text) AddCursorTags(cs ...Caret) {
	for _, c := range cs {
		caretTag := Tag{Kind: TagExtraCursor}
		selForm := forms.IDOf("ExtraSelection")
		if c.Main {
			caretTag = Tag{Kind: TagMainCursor}
			selForm = forms.IDOf("MainSelection")
		}
		if c.HasAnchor && c.Anchor != c.Byte {
			start, end := c.selRange()
			t.tags.Insert(start, PushForm(selForm), t.marker)
			t.tags.Insert(end, PopForm(selForm), t.marker)
		}
		t.tags.Insert(c.Byte, caretTag, t.marker)
	}
}

// RemoveCursorTags uninstalls the tags AddCursorTags added for the carets.
func (t *Text) RemoveCursorTags(cs ...Caret) {
	for _, c := range cs {
		t.tags.RemoveOn(c.Byte, t.marker)
		if c.HasAnchor && c.Anchor != c.Byte {
			start, end := c.selRange()
			t.tags.RemoveOn(start, t.marker)
			t.tags.RemoveOn(end, t.marker)
		}
	}
}
