package term

import (
	"github.com/mattn/go-runewidth"

	"github.com/xonecas/quill/internal/cfg"
	"github.com/xonecas/quill/internal/text"
)

// WidthOf returns the cell width of r when drawn at visual column x: tabs
// expand to the next stop, newlines take one cell for their glyph, and
// everything else uses its Unicode width.
func WidthOf(r rune, x int, tabs cfg.TabStops) int {
	switch r {
	case '\t':
		return tabs.SpacesAt(x)
	case '\n':
		return 1
	default:
		return runewidth.RuneWidth(r)
	}
}

// wrapper is the wrap decision state machine shared by the print pipeline,
// the scroll math and wrapped vertical movement. Feed it the characters of
// one line in order; it reports, for each, whether a new visual row starts
// before it.
type wrapper struct {
	c     cfg.PrintCfg
	width int

	x        int
	indent   int
	inPrefix bool // still scanning the line's leading whitespace

	// Word mode: the pending word and its total width.
	word      []pending
	wordWidth int
}

type pending struct {
	r     rune
	w     int
	wraps bool
}

func newWrapper(c cfg.PrintCfg, width int) *wrapper {
	return &wrapper{c: c, width: c.WrapMethod.Width(width), inPrefix: true}
}

// rowIndent returns the column continuation rows start at.
func (w *wrapper) rowIndent() int {
	if !w.c.IndentWrap || w.indent >= w.width {
		return 0
	}
	return w.indent
}

// feed processes one character and returns it (and any buffered word
// characters that became decidable) with wrap decisions attached. A nil
// slice means the character was buffered.
func (w *wrapper) feed(r rune) []pending {
	if r == '\n' {
		out := append(w.flushWord(), pending{r: r, w: 1})
		w.x = 0
		w.indent = 0
		w.inPrefix = true
		return out
	}
	if w.c.WrapMethod.Wraps() && w.c.WrapMethod.Kind == cfg.WrapWord &&
		w.c.WordChars.Contains(r) {
		// Word chars can't be tabs, so their width is column-independent
		// and the word can be measured before it is placed.
		w.inPrefix = false
		width := WidthOf(r, 0, w.c.TabStops)
		w.word = append(w.word, pending{r: r, w: width})
		w.wordWidth += width
		if w.wordWidth > w.width-w.rowIndent() {
			// The word alone can't fit a row; give up on keeping it whole.
			return w.flushWord()
		}
		return nil
	}
	out := w.flushWord()
	width := WidthOf(r, w.x, w.c.TabStops)
	if w.inPrefix {
		if r == ' ' || r == '\t' {
			w.indent += width
		} else {
			w.inPrefix = false
		}
	}
	if !w.c.WrapMethod.Wraps() {
		w.x += width
		return append(out, pending{r: r, w: width})
	}
	return append(out, w.place(r, width))
}

// place commits one character at the running column, wrapping if needed.
func (w *wrapper) place(r rune, width int) pending {
	if w.x+width > w.width && w.x > w.rowIndent() {
		w.x = w.rowIndent() + width
		return pending{r: r, w: width, wraps: true}
	}
	w.x += width
	return pending{r: r, w: width}
}

// flushWord decides the pending word: wrap before it when it doesn't fit
// the rest of the current row but would fit a fresh one. Words wider than
// a full row fall back to per-character placement.
func (w *wrapper) flushWord() []pending {
	if len(w.word) == 0 {
		return nil
	}
	out := w.word
	w.word = nil
	ww := w.wordWidth
	w.wordWidth = 0
	if w.x+ww > w.width && ww <= w.width-w.rowIndent() && w.x > w.rowIndent() {
		out[0].wraps = true
		w.x = w.rowIndent() + out[0].w
		for i := 1; i < len(out); i++ {
			out[i] = w.place(out[i].r, out[i].w)
		}
		return out
	}
	for i := range out {
		out[i] = w.place(out[i].r, out[i].w)
	}
	return out
}

// finish flushes any pending word at end of input.
func (w *wrapper) finish() []pending {
	return w.flushWord()
}

// ---------------------------------------------------------------------------
// Line measurements
// ---------------------------------------------------------------------------

// RowStarts returns the absolute char offsets at which the visual rows of
// the given line start. The first element is the line's first char. Ghost
// characters occupy width but never start a row of their own; concealed
// characters are skipped.
func RowStarts(t *text.Text, line int, c cfg.PrintCfg, width int) []int {
	start := t.PointAtLine(line)
	starts := []int{start.Char}
	if !c.WrapMethod.Wraps() || width <= 0 {
		return starts
	}
	w := newWrapper(c, width)
	it := t.Iter(start)

	// Positions of fed chars, parallel to the wrapper's output order.
	var fed []int
	flush := func(out []pending) {
		for _, p := range out {
			pos := fed[0]
			fed = fed[1:]
			if p.wraps && pos >= 0 {
				starts = append(starts, pos)
			}
		}
	}
	for item, ok := it.Next(); ok; item, ok = it.Next() {
		if !item.Part.IsChar() {
			continue
		}
		if !item.Ghost && item.Part.Rune == '\n' {
			break
		}
		pos := item.Pos.Char
		if item.Ghost {
			pos = -1
		}
		fed = append(fed, pos)
		flush(w.feed(item.Part.Rune))
	}
	flush(w.finish())
	return starts
}

// WrapCount returns how many times the line wraps (visual rows minus one).
func WrapCount(t *text.Text, line int, c cfg.PrintCfg, width int) int {
	return len(RowStarts(t, line, c, width)) - 1
}

// VisualCol returns the visual column of p measured from the start of its
// visual row, plus the index of that row within the line.
func VisualCol(t *text.Text, p text.Point, c cfg.PrintCfg, width int) (row, col int) {
	starts := RowStarts(t, p.Line, c, width)
	row = 0
	for i, s := range starts {
		if s > p.Char {
			break
		}
		row = i
	}
	col = 0
	it := t.Buf().RunesFrom(starts[row])
	x := rowStartCol(t, p.Line, starts[row], c, width)
	for ch := starts[row]; ch < p.Char; ch++ {
		r, ok := it.Next()
		if !ok || r == '\n' {
			break
		}
		w := WidthOf(r, x, c.TabStops)
		col += w
		x += w
	}
	return row, col
}

// rowStartCol returns the visual column a row begins at: 0 for the first
// row of a line, the wrap indent for continuations.
func rowStartCol(t *text.Text, line, rowStart int, c cfg.PrintCfg, width int) int {
	lineStart := t.PointAtLine(line)
	if rowStart == lineStart.Char || !c.IndentWrap {
		return 0
	}
	return lineIndent(t, line, c, width)
}

// lineIndent measures the visual width of a line's leading whitespace.
func lineIndent(t *text.Text, line int, c cfg.PrintCfg, width int) int {
	it := t.Buf().RunesFrom(t.PointAtLine(line).Char)
	indent := 0
	for {
		r, ok := it.Next()
		if !ok || (r != ' ' && r != '\t') {
			break
		}
		indent += WidthOf(r, indent, c.TabStops)
	}
	if indent >= width {
		return 0
	}
	return indent
}

// CharAtVisual returns the absolute char offset of the character occupying
// visual column col of the given row of a line. Past the end of a wrapped
// row it clamps to the row's last character; past the end of the line's
// final row it returns the line end.
func CharAtVisual(t *text.Text, line, row, col int, c cfg.PrintCfg, width int) int {
	starts := RowStarts(t, line, c, width)
	if row >= len(starts) {
		row = len(starts) - 1
	}
	if row < 0 {
		row = 0
	}
	ch := starts[row]
	end := t.PointAtLine(line).Char + t.CharsInLine(line)
	if row+1 < len(starts) {
		end = starts[row+1]
	}
	x := rowStartCol(t, line, starts[row], c, width)
	it := t.Buf().RunesFrom(ch)
	acc := 0
	for ch < end {
		r, ok := it.Next()
		if !ok || r == '\n' {
			break
		}
		w := WidthOf(r, x, c.TabStops)
		if acc+w > col {
			break
		}
		acc += w
		x += w
		ch++
	}
	// On wrapped rows the caret must not spill onto the next row's first
	// character; on the final row it may rest at the line end.
	if row+1 < len(starts) && ch >= end {
		ch = end - 1
	}
	return ch
}
