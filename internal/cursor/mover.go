package cursor

import (
	"github.com/xonecas/quill/internal/cfg"
	"github.com/xonecas/quill/internal/term"
	"github.com/xonecas/quill/internal/text"
)

// Mover moves the selection of exactly one cursor for the duration of one
// closure. It cannot mutate the text.
type Mover struct {
	c      *Cursor
	t      *text.Text
	cfg    cfg.PrintCfg
	width  int
	height int
}

// Caret returns the caret position.
func (m *Mover) Caret() text.Point { return m.c.caret }

// Anchor returns the anchor, if set.
func (m *Mover) Anchor() (text.Point, bool) { return m.c.Anchor() }

// Selection returns the selected range.
func (m *Mover) Selection() (text.Point, text.Point) { return m.c.Selection() }

// MoveHor moves the caret n characters, wrapping across line boundaries.
// Horizontal movement updates the desired column.
func (m *Mover) MoveHor(n int) {
	ch := m.c.caret.Char + n
	if ch < 0 {
		ch = 0
	}
	if max := m.t.LenChars(); ch > max {
		ch = max
	}
	m.c.caret = m.t.PointAtChar(ch)
	m.c.desiredX = m.visualCol(m.c.caret)
}

// MoveVer moves the caret n lines, keeping the desired visual column.
func (m *Mover) MoveVer(n int) {
	line := m.c.caret.Line + n
	if line < 0 {
		line = 0
	}
	if last := m.t.LenLines() - 1; line > last {
		line = last
	}
	m.c.caret = m.t.PointAtChar(m.charAtCol(line, m.c.desiredX))
}

// MoveVerWrapped moves the caret n visual rows, keeping the desired column
// within each row.
func (m *Mover) MoveVerWrapped(n int) {
	line := m.c.caret.Line
	row, _ := term.VisualCol(m.t, m.c.caret, m.cfg, m.width)
	for n > 0 {
		if row+1 <= term.WrapCount(m.t, line, m.cfg, m.width) {
			row++
		} else if line+1 < m.t.LenLines() {
			line++
			row = 0
		} else {
			break
		}
		n--
	}
	for n < 0 {
		if row > 0 {
			row--
		} else if line > 0 {
			line--
			row = term.WrapCount(m.t, line, m.cfg, m.width)
		} else {
			break
		}
		n++
	}
	ch := term.CharAtVisual(m.t, line, row, m.c.desiredX, m.cfg, m.width)
	m.c.caret = m.t.PointAtChar(ch)
}

// MovePage moves the caret n screens, keeping the desired column.
func (m *Mover) MovePage(n int) {
	page := m.height
	if page <= 0 {
		page = 1
	}
	m.MoveVer(n * page)
}

// MoveTo places the caret at the given point, clamped to the buffer, and
// resets the desired column.
func (m *Mover) MoveTo(p text.Point) {
	m.c.caret = m.t.PointAtChar(p.Char)
	m.c.desiredX = m.visualCol(m.c.caret)
}

// MoveToCoords places the caret at (line, col), clamped to valid range.
func (m *Mover) MoveToCoords(line, col int) {
	if line < 0 {
		line = 0
	}
	if last := m.t.LenLines() - 1; line > last {
		line = last
	}
	m.c.caret = m.t.PointAtCoords(line, col)
	m.c.desiredX = m.visualCol(m.c.caret)
}

// SetAnchor starts a selection at the caret.
func (m *Mover) SetAnchor() {
	m.c.anchor = m.c.caret
	m.c.hasAnchor = true
}

// UnsetAnchor drops the selection.
func (m *Mover) UnsetAnchor() {
	m.c.hasAnchor = false
}

// SwapEnds exchanges caret and anchor.
func (m *Mover) SwapEnds() {
	if m.c.hasAnchor {
		m.c.caret, m.c.anchor = m.c.anchor, m.c.caret
		m.c.desiredX = m.visualCol(m.c.caret)
	}
}

// CaretToStart puts the caret on the selection start.
func (m *Mover) CaretToStart() {
	if m.c.hasAnchor && m.c.anchor.Before(m.c.caret) {
		m.SwapEnds()
	}
}

// CaretToEnd puts the caret on the selection end.
func (m *Mover) CaretToEnd() {
	if m.c.hasAnchor && m.c.caret.Before(m.c.anchor) {
		m.SwapEnds()
	}
}

// MoveWordFwd advances to the start of the next word, per the configured
// word characters.
func (m *Mover) MoveWordFwd() {
	it := m.t.Buf().RunesFrom(m.c.caret.Char)
	ch := m.c.caret.Char
	inWord := false
	if r, ok := it.Next(); ok {
		inWord = m.cfg.WordChars.Contains(r)
		ch++
	} else {
		return
	}
	for {
		r, ok := it.Next()
		if !ok {
			break
		}
		if m.cfg.WordChars.Contains(r) && !inWord {
			break
		}
		inWord = m.cfg.WordChars.Contains(r)
		ch++
	}
	m.c.caret = m.t.PointAtChar(ch)
	m.c.desiredX = m.visualCol(m.c.caret)
}

// MoveWordBack retreats to the start of the previous word.
func (m *Mover) MoveWordBack() {
	it := m.t.Buf().RunesBefore(m.c.caret.Char)
	ch := m.c.caret.Char
	// Skip separators, then the word itself.
	seenWord := false
	for {
		r, ok := it.Next()
		if !ok {
			break
		}
		isWord := m.cfg.WordChars.Contains(r)
		if seenWord && !isWord {
			break
		}
		seenWord = seenWord || isWord
		ch--
	}
	m.c.caret = m.t.PointAtChar(ch)
	m.c.desiredX = m.visualCol(m.c.caret)
}

// Search streams matches from the caret forward.
func (m *Mover) Search(p text.Pattern) (*text.MatchIter, error) {
	return m.t.SearchFwd(p, m.c.caret)
}

// SearchRev streams matches from the caret backward.
func (m *Mover) SearchRev(p text.Pattern) (*text.MatchIter, error) {
	return m.t.SearchRev(p, m.c.caret)
}

// visualCol measures the caret's display column from its line start.
func (m *Mover) visualCol(p text.Point) int {
	start := m.t.PointAtLine(p.Line)
	it := m.t.Buf().RunesFrom(start.Char)
	x := 0
	for ch := start.Char; ch < p.Char; ch++ {
		r, ok := it.Next()
		if !ok || r == '\n' {
			break
		}
		x += term.WidthOf(r, x, m.cfg.TabStops)
	}
	return x
}

// charAtCol finds the char in line whose cell covers visual column col,
// treating the line as a single unwrapped row.
func (m *Mover) charAtCol(line, col int) int {
	start := m.t.PointAtLine(line)
	it := m.t.Buf().RunesFrom(start.Char)
	x := 0
	ch := start.Char
	for {
		r, ok := it.Next()
		if !ok || r == '\n' {
			return ch
		}
		w := term.WidthOf(r, x, m.cfg.TabStops)
		if x+w > col {
			return ch
		}
		x += w
		ch++
	}
}
