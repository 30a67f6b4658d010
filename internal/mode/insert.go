package mode

import (
	"github.com/xonecas/quill/internal/cursor"
)

// Insert is the typing mode. Every printable key inserts at each cursor;
// escape returns to normal mode and seals the undo moment.
type Insert struct{}

// Name implements Mode.
func (Insert) Name() string { return "insert" }

// SendKey implements Mode.
func (i Insert) SendKey(ev Event, h *cursor.Helper) Mode {
	switch ev.Key {
	case "esc":
		h.NewMoment()
		return Normal{}

	case "enter":
		h.EditOnEach(func(e *cursor.Editor) { e.Insert("\n") })
	case "tab":
		h.EditOnEach(func(e *cursor.Editor) { e.Insert("\t") })
	case "backspace":
		h.MoveEach(func(m *cursor.Mover) {
			if _, has := m.Anchor(); !has {
				if p := m.Caret(); p.Char > 0 {
					m.SetAnchor()
					m.MoveHor(-1)
				}
			}
		})
		h.EditOnEach(func(e *cursor.Editor) { e.Replace("") })
	case "delete":
		h.MoveEach(func(m *cursor.Mover) {
			if _, has := m.Anchor(); !has {
				m.SetAnchor()
				m.MoveHor(1)
			}
		})
		h.EditOnEach(func(e *cursor.Editor) { e.Replace("") })

	case "left":
		h.MoveEach(func(m *cursor.Mover) { m.UnsetAnchor(); m.MoveHor(-1) })
	case "right":
		h.MoveEach(func(m *cursor.Mover) { m.UnsetAnchor(); m.MoveHor(1) })
	case "up":
		h.MoveEach(func(m *cursor.Mover) { m.UnsetAnchor(); m.MoveVer(-1) })
	case "down":
		h.MoveEach(func(m *cursor.Mover) { m.UnsetAnchor(); m.MoveVer(1) })

	default:
		if ev.Text != "" {
			h.EditOnEach(func(e *cursor.Editor) { e.Insert(ev.Text) })
		}
	}
	return i
}
