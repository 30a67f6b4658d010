// Package widget holds the polymorphic units the editor composes windows
// from: the file view, its derived read-only companions, and the
// notifications sink.
package widget

import (
	"sync"

	"github.com/xonecas/quill/internal/cfg"
	"github.com/xonecas/quill/internal/layout"
	"github.com/xonecas/quill/internal/term"
	"github.com/xonecas/quill/internal/text"
)

// Kind tags what a widget does with input.
type Kind int

const (
	// NoInput widgets are read-only derived views.
	NoInput Kind = iota
	// SchemeInput widgets own cursors and take keys through a mode.
	SchemeInput
	// DirectInput widgets handle keys themselves.
	DirectInput
)

// Widget is one printable unit of a window.
type Widget interface {
	// Update recomputes internal state for the area the widget occupies;
	// it may change the area's constraints.
	Update(a *term.Area)
	// Text is the rendered content.
	Text() *text.Text
	// PrintCfg is the wrap, tab and scrolloff configuration of the widget.
	PrintCfg() cfg.PrintCfg
	// Kind tags the input behavior.
	Kind() Kind
}

// Pusher is implemented by widgets that demand a placement when opened.
type Pusher interface {
	PushSpecs() layout.PushSpecs
}

// Scroller is implemented by widgets that keep per-view scroll state.
type Scroller interface {
	PrintInfo() *term.PrintInfo
}

// once tracks per-type one-shot initialization, keyed by a type tag.
var once = struct {
	sync.Mutex
	done map[string]bool
}{done: make(map[string]bool)}

// Once runs f the first time the tag is seen. Widget constructors use it to
// register forms and commands exactly once per type.
func Once(tag string, f func()) {
	once.Lock()
	defer once.Unlock()
	if once.done[tag] {
		return
	}
	once.done[tag] = true
	f()
}
