package widget

import (
	"github.com/rs/zerolog/log"

	"github.com/xonecas/quill/internal/cfg"
	"github.com/xonecas/quill/internal/forms"
	"github.com/xonecas/quill/internal/layout"
	"github.com/xonecas/quill/internal/term"
	"github.com/xonecas/quill/internal/text"
)

// Numbering selects how line numbers are shown.
type Numbering int

const (
	// Absolute shows the 1-based line number.
	Absolute Numbering = iota
	// Relative shows the distance to the main cursor's line.
	Relative
	// Hybrid shows the absolute number on the main line, distances
	// elsewhere.
	Hybrid
)

// LineNumbers is a read-only companion of a file, rendering one number per
// visible line.
type LineNumbers struct {
	file *File

	numbering Numbering
	cfg       cfg.PrintCfg
	text      *text.Text
}

// NewLineNumbers returns a gutter for the file.
func NewLineNumbers(f *File, numbering Numbering) *LineNumbers {
	Once("linenumbers", func() {
		forms.IDOf("LineNumbers")
		forms.IDOf("MainLineNumber")
	})
	c := cfg.Default()
	c.WrapMethod = cfg.WrapMethod{Kind: cfg.NoWrap}
	c.ScrollOff = cfg.ScrollOff{}
	return &LineNumbers{file: f, numbering: numbering, cfg: c}
}

// digits returns the gutter width the file currently needs.
func (ln *LineNumbers) digits() int {
	n := ln.file.Text().LenLines()
	d := 1
	for n >= 10 {
		n /= 10
		d++
	}
	return d
}

// PushSpecs places the gutter left of its file, one cell wider than the
// widest number.
func (ln *LineNumbers) PushSpecs() layout.PushSpecs {
	return layout.PushLeft().WithLen(ln.digits() + 1)
}

// Update implements Widget: rebuilds the numbers for the visible lines.
func (ln *LineNumbers) Update(a *term.Area) {
	f := ln.file
	firstLine := f.Text().PointAtChar(f.PrintInfo().FirstChar).Line
	mainLine := f.Cursors().Main().Caret().Line
	lastLine := f.Text().LenLines() - 1
	width := ln.digits()

	numForm := forms.IDOf("LineNumbers")
	mainForm := forms.IDOf("MainLineNumber")

	b := text.NewBuilder()
	for line := firstLine; line <= lastLine && line-firstLine < a.Height(); line++ {
		n := line + 1
		form := numForm
		switch ln.numbering {
		case Relative:
			if line != mainLine {
				n = abs(line - mainLine)
			} else {
				n = 0
			}
		case Hybrid:
			if line != mainLine {
				n = abs(line - mainLine)
			}
		}
		if line == mainLine {
			form = mainForm
		}
		b.Push(form).Textf("%*d", width, n).Pop().Text("\n")
	}
	ln.text = b.Finish()

	if got := width + 1; got != a.Width() {
		if err := a.ChangeConstraint(layout.LengthOf(got)); err != nil {
			// Keep printing at the stale width; the next solve catches up.
			log.Warn().Err(err).Msg("line number gutter resize rejected")
		}
	}
}

// Text implements Widget.
func (ln *LineNumbers) Text() *text.Text {
	if ln.text == nil {
		return text.New()
	}
	return ln.text
}

// PrintCfg implements Widget.
func (ln *LineNumbers) PrintCfg() cfg.PrintCfg { return ln.cfg }

// Kind implements Widget.
func (ln *LineNumbers) Kind() Kind { return NoInput }

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
