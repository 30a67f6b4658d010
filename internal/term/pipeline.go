package term

import (
	"github.com/xonecas/quill/internal/cfg"
	"github.com/xonecas/quill/internal/forms"
	"github.com/xonecas/quill/internal/text"
)

// caretKind marks a rendered cell that carries a cursor.
type caretKind uint8

const (
	noCaret caretKind = iota
	mainCaret
	extraCaret
)

// rcell is one cell of a visual row being assembled. Wide runes occupy a
// leading cell followed by zero-rune continuations.
type rcell struct {
	r     rune
	f     forms.Form
	caret caretKind
}

// printer renders the part stream of one label print. It pairs the wrap
// state machine with form composition, alignment, cursor rendering and
// horizontal clipping.
type printer struct {
	sink   Sink
	coords Coords
	active bool
	hw     bool

	c      cfg.PrintCfg
	xShift int

	former *forms.Former
	wrap   *wrapper

	// Metadata for characters the wrapper is still buffering, FIFO.
	meta []charMeta

	row      []rcell
	rowAlign text.PartKind // alignment used when the current row flushes
	curAlign text.PartKind // alignment carried into following rows
	y        int

	caretNext caretKind
	prevChar  rune
	done      bool
}

type charMeta struct {
	f     forms.Form
	caret caretKind
}

// Print renders t into the sink within coords. info's FirstChar decides the
// first visible character; active selects hardware caret rendering when the
// label supports one.
func Print(sink Sink, coords Coords, active, hwCaret bool, t *text.Text, info *PrintInfo, c cfg.PrintCfg) {
	w, h := coords.Width(), coords.Height()
	if w <= 0 || h <= 0 {
		return
	}
	start := t.PointAtChar(info.FirstChar)

	p := &printer{
		sink:     sink,
		coords:   coords,
		active:   active,
		hw:       hwCaret,
		c:        c,
		xShift:   info.XShift,
		former:   forms.NewFormer(),
		wrap:     newWrapper(c, w),
		rowAlign: text.PartAlignLeft,
		curAlign: text.PartAlignLeft,
		prevChar: '\n',
	}
	// Starting mid-line: seed the wrapper with the line's indent and open
	// the first row at the wrap indent.
	p.wrap.inPrefix = start.Col == 0
	if start.Col > 0 {
		p.wrap.indent = lineIndent(t, start.Line, c, w)
		p.wrap.x = rowStartCol(t, start.Line, start.Char, c, w)
		p.openRow(p.wrap.x)
	}

	it := t.Iter(start)
	for !p.done {
		item, ok := it.Next()
		if !ok {
			break
		}
		p.part(item)
	}
	if !p.done {
		p.decided(p.wrap.finish())
		p.flushCaretAtEnd()
		p.flushRow()
		for !p.done {
			p.flushRow()
		}
	}
	p.former.Reset()
}

// part consumes one stream item.
func (p *printer) part(item text.Item) {
	switch item.Part.Kind {
	case text.PartChar:
		p.meta = append(p.meta, charMeta{f: p.composed(), caret: p.caretNext})
		p.caretNext = noCaret
		p.decided(p.wrap.feed(item.Part.Rune))
	case text.PartPushForm:
		p.former.Apply(item.Part.Form)
	case text.PartPopForm:
		p.former.Remove(item.Part.Form)
	case text.PartMainCursor:
		p.caretNext = mainCaret
	case text.PartExtraCursor:
		if p.caretNext == noCaret {
			p.caretNext = extraCaret
		}
	case text.PartAlignLeft, text.PartAlignCenter, text.PartAlignRight:
		// An align start takes effect on the current row; the end of a
		// range only resets rows that follow.
		p.curAlign = item.Part.Kind
		if item.Part.Kind != text.PartAlignLeft {
			p.rowAlign = item.Part.Kind
		}
	case text.PartToggleStart, text.PartToggleEnd, text.PartTermination:
		// No visual effect of their own.
	}
}

// composed is the current style, one lookup per character.
func (p *printer) composed() forms.Form {
	return p.former.Form()
}

// decided consumes wrap decisions, pairing them with the buffered metadata.
func (p *printer) decided(out []pending) {
	for _, d := range out {
		m := p.meta[0]
		p.meta = p.meta[1:]
		if d.wraps {
			p.flushRow()
			p.openRow(p.wrap.rowIndent())
		}
		if d.r == '\n' {
			p.newLineCell(m)
			p.flushRow()
			continue
		}
		p.cells(d.r, d.w, m)
	}
}

// openRow pre-fills the indent of a wrapped continuation row.
func (p *printer) openRow(indent int) {
	f := forms.Get(forms.DefaultID)
	for i := 0; i < indent; i++ {
		p.row = append(p.row, rcell{r: ' ', f: f})
	}
}

// cells appends the cells of one character.
func (p *printer) cells(r rune, width int, m charMeta) {
	f := p.caretForm(m)
	switch {
	case r == '\t':
		for i := 0; i < width; i++ {
			c := rcell{r: ' ', f: f}
			if i == 0 {
				c.caret = m.caret
			}
			p.row = append(p.row, c)
		}
	case width <= 0:
		// Zero-width (combining) runes attach to the previous cell; a cell
		// of their own would shift the row.
		if n := len(p.row); n > 0 {
			p.row[n-1].r = r // keep the mark visible in cell dumps
		}
	default:
		p.row = append(p.row, rcell{r: r, f: f, caret: m.caret})
		for i := 1; i < width; i++ {
			p.row = append(p.row, rcell{f: f})
		}
	}
	p.prevChar = r
}

// newLineCell renders the '\n' glyph per policy.
func (p *printer) newLineCell(m charMeta) {
	glyph := p.c.NewLine.Char(p.prevChar)
	f := p.caretForm(m)
	if glyph != ' ' {
		f = f.Over(forms.Get(forms.IDOf("NewLine")))
	}
	p.row = append(p.row, rcell{r: glyph, f: f, caret: m.caret})
	p.prevChar = '\n'
}

// caretForm overlays the caret palette form for software-rendered cursors.
func (p *printer) caretForm(m charMeta) forms.Form {
	switch m.caret {
	case mainCaret:
		if !p.active || !p.hw {
			return m.f.Over(forms.Get(forms.IDOf("MainCursor")))
		}
	case extraCaret:
		return m.f.Over(forms.Get(forms.IDOf("ExtraCursor")))
	}
	return m.f
}

// flushCaretAtEnd gives a caret resting at end of text a cell to live on.
func (p *printer) flushCaretAtEnd() {
	if p.caretNext == noCaret {
		return
	}
	m := charMeta{f: p.composed(), caret: p.caretNext}
	p.caretNext = noCaret
	p.row = append(p.row, rcell{r: ' ', f: p.caretForm(m), caret: m.caret})
}

// flushRow writes the assembled row to the sink, applying alignment,
// horizontal shift and trailing clear.
func (p *printer) flushRow() {
	w := p.coords.Width()
	if p.y >= p.coords.Height() {
		p.done = true
		p.row = p.row[:0]
		return
	}
	row := p.row
	pad := 0
	if used := len(row); used < w {
		switch p.rowAlign {
		case text.PartAlignCenter:
			pad = (w - used) / 2
		case text.PartAlignRight:
			pad = w - used
		}
	}

	screenY := p.coords.TL.Y + p.y
	p.sink.MoveTo(p.coords.TL.X, screenY)
	blank := forms.Get(forms.DefaultID)
	x := 0
	emit := func(c rcell) {
		if x >= w {
			return
		}
		p.sink.SetStyle(c.f)
		if c.caret == mainCaret && p.active && p.hw {
			p.sink.ShowCursor(p.coords.TL.X+x, screenY)
		}
		if c.r == 0 {
			// Continuation of a wide rune, which already covers this cell.
			if s, ok := p.sink.(*Screen); ok {
				s.Skip()
			} else {
				p.sink.Print(' ')
			}
		} else {
			p.sink.Print(c.r)
		}
		x++
	}
	for i := 0; i < pad; i++ {
		emit(rcell{r: ' ', f: blank})
	}
	// Horizontal scroll: drop the first XShift cells of content.
	start := p.xShift
	if start > len(row) {
		start = len(row)
	}
	if start > 0 && start < len(row) && row[start].r == 0 {
		// Cut through a wide rune: show a space for its visible half.
		row[start].r = ' '
	}
	for _, c := range row[start:] {
		emit(c)
	}
	for x < w {
		emit(rcell{r: ' ', f: blank})
	}

	p.row = p.row[:0]
	p.rowAlign = p.curAlign
	p.y++
	if p.y >= p.coords.Height() {
		p.done = true
	}
}
