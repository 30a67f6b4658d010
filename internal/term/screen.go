package term

import (
	"strings"

	"github.com/xonecas/quill/internal/forms"
)

// Sink receives the terminal command stream of a print: cursor movement,
// style changes and characters. The screen below implements it; tests can
// substitute recorders.
type Sink interface {
	MoveTo(x, y int)
	SetStyle(f forms.Form)
	ResetColor()
	Print(r rune)
	// ShowCursor requests the hardware caret at the given cell.
	ShowCursor(x, y int)
}

// cell is one terminal cell. Wide runes occupy their leading cell; the
// following cell holds a zero rune and is skipped when flushing.
type cell struct {
	r rune
	f forms.Form
}

// Screen is a grid of styled cells built up by one or more label prints and
// serialized once per frame.
type Screen struct {
	w, h  int
	cells []cell

	cur      Coord
	style    forms.Form
	caret    Coord
	hasCaret bool
}

// NewScreen returns a screen of the given size with every cell blank.
func NewScreen(w, h int) *Screen {
	s := &Screen{}
	s.Resize(w, h)
	return s
}

// Resize clears the screen to the new size.
func (s *Screen) Resize(w, h int) {
	s.w, s.h = w, h
	s.cells = make([]cell, w*h)
	s.Clear()
}

// Clear blanks every cell with the default form.
func (s *Screen) Clear() {
	blank := cell{r: ' ', f: forms.Get(forms.DefaultID)}
	for i := range s.cells {
		s.cells[i] = blank
	}
	s.hasCaret = false
}

// Size returns the screen dimensions.
func (s *Screen) Size() (int, int) {
	return s.w, s.h
}

// MoveTo implements Sink.
func (s *Screen) MoveTo(x, y int) {
	s.cur = Coord{X: x, Y: y}
}

// SetStyle implements Sink.
func (s *Screen) SetStyle(f forms.Form) {
	s.style = f
}

// ResetColor implements Sink.
func (s *Screen) ResetColor() {
	s.style = forms.Get(forms.DefaultID)
}

// Print implements Sink: writes r at the current position and advances.
func (s *Screen) Print(r rune) {
	if s.cur.Y >= 0 && s.cur.Y < s.h && s.cur.X >= 0 && s.cur.X < s.w {
		s.cells[s.cur.Y*s.w+s.cur.X] = cell{r: r, f: s.style}
	}
	s.cur.X++
}

// Skip marks the current cell as the continuation of a wide rune: it holds
// a zero rune, which Frame leaves out, and the position advances.
func (s *Screen) Skip() {
	if s.cur.Y >= 0 && s.cur.Y < s.h && s.cur.X >= 0 && s.cur.X < s.w {
		s.cells[s.cur.Y*s.w+s.cur.X] = cell{r: 0, f: s.style}
	}
	s.cur.X++
}

// ShowCursor implements Sink.
func (s *Screen) ShowCursor(x, y int) {
	s.caret = Coord{X: x, Y: y}
	s.hasCaret = true
}

// Caret returns the hardware caret position, if any print requested one.
func (s *Screen) Caret() (Coord, bool) {
	return s.caret, s.hasCaret
}

// Frame serializes the screen as styled lines joined by newlines. Runs of
// equally styled cells are rendered together to keep the output compact.
func (s *Screen) Frame() string {
	var b strings.Builder
	for y := 0; y < s.h; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		row := s.cells[y*s.w : (y+1)*s.w]
		x := 0
		for x < len(row) {
			f := row[x].f
			var run strings.Builder
			for x < len(row) && row[x].f == f {
				if row[x].r != 0 {
					run.WriteRune(row[x].r)
				}
				x++
			}
			b.WriteString(f.Style().Render(run.String()))
		}
	}
	return b.String()
}
