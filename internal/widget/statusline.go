package widget

import (
	"github.com/xonecas/quill/internal/cfg"
	"github.com/xonecas/quill/internal/forms"
	"github.com/xonecas/quill/internal/layout"
	"github.com/xonecas/quill/internal/term"
	"github.com/xonecas/quill/internal/text"
)

// StatusLine is a one-row summary of the active file: name, main cursor
// coordinates and the cursor count.
type StatusLine struct {
	file *File
	cfg  cfg.PrintCfg
	text *text.Text
}

// NewStatusLine returns a status line bound to the file.
func NewStatusLine(f *File) *StatusLine {
	Once("statusline", func() {
		forms.IDOf("StatusLine")
		forms.IDOf("FileName")
		forms.IDOf("Coords")
	})
	c := cfg.Default()
	c.WrapMethod = cfg.WrapMethod{Kind: cfg.NoWrap}
	c.ScrollOff = cfg.ScrollOff{}
	return &StatusLine{file: f, cfg: c}
}

// SetFile retargets the status line, e.g. when the user switches buffers.
func (s *StatusLine) SetFile(f *File) { s.file = f }

// PushSpecs places the status line across the window bottom.
func (s *StatusLine) PushSpecs() layout.PushSpecs {
	return layout.PushBelow().WithLen(1)
}

// Update implements Widget.
func (s *StatusLine) Update(a *term.Area) {
	f := s.file
	caret := f.Cursors().Main().Caret()

	b := text.NewBuilder().Push(forms.IDOf("StatusLine"))
	b.Push(forms.IDOf("FileName")).Text(f.Name()).Pop()
	if f.Unsaved() {
		b.Text(" [+]")
	}
	b.AlignRight()
	if n := f.Cursors().Len(); n > 1 {
		b.Textf("%d sel  ", n)
	}
	b.Push(forms.IDOf("Coords")).
		Textf("%d:%d/%d", caret.Col+1, caret.Line+1, f.Text().LenLines()).
		Pop()
	s.text = b.Finish()
}

// Text implements Widget.
func (s *StatusLine) Text() *text.Text {
	if s.text == nil {
		return text.New()
	}
	return s.text
}

// PrintCfg implements Widget.
func (s *StatusLine) PrintCfg() cfg.PrintCfg { return s.cfg }

// Kind implements Widget.
func (s *StatusLine) Kind() Kind { return NoInput }
