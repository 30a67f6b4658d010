// Package mode implements the per-widget input schemes: a normal mode that
// moves and operates on selections, and an insert mode that types. Keys
// arrive as keystroke strings plus the text they carry, the form the
// terminal backend reports; mutations go through the multi-cursor engine.
package mode

import (
	"github.com/xonecas/quill/internal/cursor"
)

// Event is one key event as the backend reports it: the canonical
// keystroke ("ctrl+s", "esc", "h") and, for plain runes, the text.
type Event struct {
	Key  string
	Text string
}

// Mode is an input scheme for one scheme-input widget. SendKey consumes an
// event and returns the mode to use for the next one.
type Mode interface {
	Name() string
	SendKey(ev Event, h *cursor.Helper) Mode
}
