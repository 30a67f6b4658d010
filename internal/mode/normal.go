package mode

import (
	"github.com/xonecas/quill/internal/cursor"
)

// Normal is the modal scheme's resting mode: movement, selection and
// operators. Entering insert mode closes the current undo moment, so each
// stay in insert undoes as one unit.
type Normal struct{}

// Name implements Mode.
func (Normal) Name() string { return "normal" }

// SendKey implements Mode.
func (n Normal) SendKey(ev Event, h *cursor.Helper) Mode {
	switch ev.Key {
	case "h", "left":
		h.MoveEach(func(m *cursor.Mover) { m.UnsetAnchor(); m.MoveHor(-1) })
	case "l", "right":
		h.MoveEach(func(m *cursor.Mover) { m.UnsetAnchor(); m.MoveHor(1) })
	case "j", "down":
		h.MoveEach(func(m *cursor.Mover) { m.UnsetAnchor(); m.MoveVer(1) })
	case "k", "up":
		h.MoveEach(func(m *cursor.Mover) { m.UnsetAnchor(); m.MoveVer(-1) })

	case "shift+h", "shift+left":
		h.MoveEach(func(m *cursor.Mover) { ensureAnchor(m); m.MoveHor(-1) })
	case "shift+l", "shift+right":
		h.MoveEach(func(m *cursor.Mover) { ensureAnchor(m); m.MoveHor(1) })
	case "shift+j", "shift+down":
		h.MoveEach(func(m *cursor.Mover) { ensureAnchor(m); m.MoveVer(1) })
	case "shift+k", "shift+up":
		h.MoveEach(func(m *cursor.Mover) { ensureAnchor(m); m.MoveVer(-1) })

	case "w":
		h.MoveEach(func(m *cursor.Mover) { m.UnsetAnchor(); m.MoveWordFwd() })
	case "b":
		h.MoveEach(func(m *cursor.Mover) { m.UnsetAnchor(); m.MoveWordBack() })

	case "0", "home":
		h.MoveEach(func(m *cursor.Mover) { m.UnsetAnchor(); m.MoveToCoords(m.Caret().Line, 0) })
	case "$", "end":
		h.MoveEach(func(m *cursor.Mover) {
			m.UnsetAnchor()
			m.MoveToCoords(m.Caret().Line, 1<<30)
		})

	case "pgup":
		h.MoveEach(func(m *cursor.Mover) { m.UnsetAnchor(); m.MovePage(-1) })
	case "pgdown":
		h.MoveEach(func(m *cursor.Mover) { m.UnsetAnchor(); m.MovePage(1) })
	case "g":
		h.MoveMain(func(m *cursor.Mover) { m.MoveToCoords(0, 0) })
	case "shift+g":
		h.MoveMain(func(m *cursor.Mover) { m.MoveToCoords(1<<30, 0) })

	case "v":
		h.MoveEach(func(m *cursor.Mover) {
			if _, has := m.Anchor(); has {
				m.UnsetAnchor()
			} else {
				m.SetAnchor()
			}
		})
	case "alt+;":
		h.MoveEach(func(m *cursor.Mover) { m.SwapEnds() })

	case "shift+c":
		// Spawn an extra cursor one line below the last one.
		spawnCursorBelow(h)
	case "esc":
		h.Cursors().RemoveExtras()
		h.MoveEach(func(m *cursor.Mover) { m.UnsetAnchor() })

	case "i":
		h.NewMoment()
		h.MoveEach(func(m *cursor.Mover) { m.CaretToStart() })
		return Insert{}
	case "a":
		h.NewMoment()
		h.MoveEach(func(m *cursor.Mover) {
			m.CaretToEnd()
			m.MoveHor(1)
		})
		return Insert{}
	case "o":
		h.NewMoment()
		h.MoveEach(func(m *cursor.Mover) {
			m.UnsetAnchor()
			m.MoveToCoords(m.Caret().Line, 1<<30)
		})
		h.EditOnEach(func(e *cursor.Editor) { e.Insert("\n") })
		return Insert{}
	case "shift+o":
		h.NewMoment()
		h.MoveEach(func(m *cursor.Mover) {
			m.UnsetAnchor()
			m.MoveToCoords(m.Caret().Line, 0)
		})
		h.EditOnEach(func(e *cursor.Editor) { e.Insert("\n") })
		h.MoveEach(func(m *cursor.Mover) { m.MoveVer(-1) })
		return Insert{}

	case "d":
		h.NewMoment()
		h.EditOnEach(func(e *cursor.Editor) { e.Replace("") })
	case "c":
		h.NewMoment()
		h.EditOnEach(func(e *cursor.Editor) { e.Replace("") })
		return Insert{}
	case "x":
		h.NewMoment()
		h.MoveEach(func(m *cursor.Mover) {
			if _, has := m.Anchor(); !has {
				m.SetAnchor()
				m.MoveHor(1)
			}
		})
		h.EditOnEach(func(e *cursor.Editor) { e.Replace("") })

	case "u":
		h.Undo()
	case "shift+u", "ctrl+r":
		h.Redo()
	}
	return n
}

func ensureAnchor(m *cursor.Mover) {
	if _, has := m.Anchor(); !has {
		m.SetAnchor()
	}
}

// spawnCursorBelow duplicates the last cursor one line down.
func spawnCursorBelow(h *cursor.Helper) {
	cs := h.Cursors()
	last, ok := cs.Nth(cs.Len() - 1)
	if !ok {
		return
	}
	caret := last.Caret()
	t := h.Text()
	if caret.Line+1 >= t.LenLines() {
		return
	}
	p := t.PointAtCoords(caret.Line+1, caret.Col)
	main := cs.MainIndex()
	cs.Insert(cursor.New(p))
	cs.SetMain(main)
	// Re-sync the caret tags with the enlarged set.
	h.MoveEach(func(m *cursor.Mover) {})
}
