// Package forms holds the process-wide style palette and the per-print
// style stack. A Form names a terminal style; widgets refer to forms by
// name once and by ID afterwards.
package forms

import (
	"image/color"
	"sync"

	"charm.land/lipgloss/v2"
)

// ID identifies a registered form. IDs are stable for the process lifetime.
type ID uint16

// Form is a terminal style: colors and text attributes; it carries no caret
// shape. Unset fields are transparent: composition lets lower entries of
// the stack show through.
type Form struct {
	Fg        color.Color
	Bg        color.Color
	Bold      bool
	Italic    bool
	Underline bool
	Reverse   bool

	// Which of the boolean attributes are actually set by this form.
	// Colors use nil as "unset".
	HasBold      bool
	HasItalic    bool
	HasUnderline bool
	HasReverse   bool
}

// WithFg returns a copy of the form with the foreground set.
func (f Form) WithFg(c color.Color) Form { f.Fg = c; return f }

// WithBg returns a copy of the form with the background set.
func (f Form) WithBg(c color.Color) Form { f.Bg = c; return f }

// WithBold returns a copy of the form with bold set.
func (f Form) WithBold() Form { f.Bold = true; f.HasBold = true; return f }

// WithReverse returns a copy of the form with reverse video set.
func (f Form) WithReverse() Form { f.Reverse = true; f.HasReverse = true; return f }

// WithUnderline returns a copy of the form with underline set.
func (f Form) WithUnderline() Form { f.Underline = true; f.HasUnderline = true; return f }

// Style converts the form to a lipgloss style.
func (f Form) Style() lipgloss.Style {
	s := lipgloss.NewStyle()
	if f.Fg != nil {
		s = s.Foreground(f.Fg)
	}
	if f.Bg != nil {
		s = s.Background(f.Bg)
	}
	if f.HasBold {
		s = s.Bold(f.Bold)
	}
	if f.HasItalic {
		s = s.Italic(f.Italic)
	}
	if f.HasUnderline {
		s = s.Underline(f.Underline)
	}
	if f.HasReverse {
		s = s.Reverse(f.Reverse)
	}
	return s
}

// Over layers g on top of f: set fields of g win.
func (f Form) Over(g Form) Form {
	if g.Fg != nil {
		f.Fg = g.Fg
	}
	if g.Bg != nil {
		f.Bg = g.Bg
	}
	if g.HasBold {
		f.Bold, f.HasBold = g.Bold, true
	}
	if g.HasItalic {
		f.Italic, f.HasItalic = g.Italic, true
	}
	if g.HasUnderline {
		f.Underline, f.HasUnderline = g.Underline, true
	}
	if g.HasReverse {
		f.Reverse, f.HasReverse = g.Reverse, true
	}
	return f
}

// ---------------------------------------------------------------------------
// Palette
// ---------------------------------------------------------------------------

// The palette maps names to forms. Reads are frequent (every print), writes
// happen at startup and in widget one-shot initialization.
var palette = struct {
	sync.RWMutex
	byName map[string]ID
	forms  []Form
}{
	byName: make(map[string]ID),
}

// Grayscale ramp with a single accent, plus semantic entries.
var (
	colorFg       = lipgloss.Color("#c8c8c8")
	colorMuted    = lipgloss.Color("#6e6e6e")
	colorDim      = lipgloss.Color("#3f3f3f")
	colorBg       = lipgloss.Color("#000000")
	colorAccent   = lipgloss.Color("#00E5CC")
	colorSurface  = lipgloss.Color("#1c1c1c")
	colorError    = lipgloss.Color("#932e2e")
	colorSelected = lipgloss.Color("#264f78")
)

func init() {
	// "Default" must be ID 0.
	Set("Default", Form{Fg: colorFg, Bg: colorBg})
	Set("Accent", Form{Fg: colorAccent})
	Set("MainCursor", Form{Fg: colorBg, Bg: colorAccent})
	Set("ExtraCursor", Form{Fg: colorBg, Bg: colorMuted})
	Set("MainSelection", Form{Bg: colorSelected})
	Set("ExtraSelection", Form{Bg: colorSurface})
	Set("LineNumbers", Form{Fg: colorDim})
	Set("MainLineNumber", Form{Fg: colorFg})
	Set("WrappedLineNumber", Form{Fg: colorSurface})
	Set("StatusLine", Form{Fg: colorMuted, Bg: colorSurface})
	Set("FileName", Form{Fg: colorFg})
	Set("Coords", Form{Fg: colorMuted})
	Set("Notifications", Form{Fg: colorFg})
	Set("Error", Form{Fg: colorError})
	Set("Ghost", Form{Fg: colorDim})
	Set("NewLine", Form{Fg: colorSurface})
}

// Set registers or replaces the form under the given name and returns its ID.
func Set(name string, f Form) ID {
	palette.Lock()
	defer palette.Unlock()
	if id, ok := palette.byName[name]; ok {
		palette.forms[id] = f
		return id
	}
	id := ID(len(palette.forms))
	palette.byName[name] = id
	palette.forms = append(palette.forms, f)
	return id
}

// IDOf returns the ID for a name, registering an empty form on first use.
// Lookups are lazy so widgets can name forms before anything defines them.
func IDOf(name string) ID {
	palette.RLock()
	id, ok := palette.byName[name]
	palette.RUnlock()
	if ok {
		return id
	}
	return Set(name, Form{})
}

// Get returns the form for an ID. Unknown IDs return the default form.
func Get(id ID) Form {
	palette.RLock()
	defer palette.RUnlock()
	if int(id) < len(palette.forms) {
		return palette.forms[id]
	}
	return palette.forms[0]
}

// DefaultID is the ID of the "Default" form.
const DefaultID ID = 0

// ---------------------------------------------------------------------------
// FormFormer
// ---------------------------------------------------------------------------

// Former composes styles during a single print. Apply pushes a form,
// Remove pops the most recent occurrence of an ID, and Form layers the
// stack bottom to top over the default form.
type Former struct {
	stack []ID
}

// NewFormer returns an empty former.
func NewFormer() *Former {
	return &Former{}
}

// Apply pushes the given form on the stack.
func (ff *Former) Apply(id ID) {
	ff.stack = append(ff.stack, id)
}

// Remove pops the most recent occurrence of id. Unmatched pops are ignored;
// the Builder never emits one, since its Pop does nothing without an open
// push.
func (ff *Former) Remove(id ID) {
	for i := len(ff.stack) - 1; i >= 0; i-- {
		if ff.stack[i] == id {
			ff.stack = append(ff.stack[:i], ff.stack[i+1:]...)
			return
		}
	}
}

// Form returns the composed form.
func (ff *Former) Form() Form {
	f := Get(DefaultID)
	for _, id := range ff.stack {
		f = f.Over(Get(id))
	}
	return f
}

// Style returns the composed lipgloss style.
func (ff *Former) Style() lipgloss.Style {
	return ff.Form().Style()
}

// Reset clears the stack for reuse across prints.
func (ff *Former) Reset() {
	ff.stack = ff.stack[:0]
}
