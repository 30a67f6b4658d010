package mode

import (
	"testing"

	"github.com/xonecas/quill/internal/cursor"
	"github.com/xonecas/quill/internal/history"
	"github.com/xonecas/quill/internal/text"
)

func scheme(s string) (*cursor.Helper, *text.Text) {
	txt := text.FromString(s)
	return cursor.NewHelper(txt, cursor.NewSet(), history.New()), txt
}

func key(k string) Event { return Event{Key: k} }

func typed(s string) Event { return Event{Key: s, Text: s} }

func TestInsertTyping(t *testing.T) {
	h, txt := scheme("")
	var m Mode = Insert{}
	for _, r := range "hi there" {
		m = m.SendKey(typed(string(r)), h)
	}
	if txt.String() != "hi there" {
		t.Fatalf("buffer = %q", txt.String())
	}
	if got := h.Cursors().Main().Caret().Char; got != 8 {
		t.Fatalf("caret at %d", got)
	}
}

func TestInsertEscReturnsToNormal(t *testing.T) {
	h, _ := scheme("")
	var m Mode = Insert{}
	m = m.SendKey(typed("x"), h)
	m = m.SendKey(key("esc"), h)
	if m.Name() != "normal" {
		t.Fatalf("mode = %q", m.Name())
	}
}

func TestInsertBackspace(t *testing.T) {
	h, txt := scheme("")
	var m Mode = Insert{}
	m = m.SendKey(typed("a"), h)
	m = m.SendKey(typed("b"), h)
	m = m.SendKey(key("backspace"), h)
	if txt.String() != "a" {
		t.Fatalf("buffer = %q", txt.String())
	}
	_ = m
}

func TestNormalMovement(t *testing.T) {
	h, _ := scheme("abc\ndef")
	var m Mode = Normal{}
	m = m.SendKey(key("j"), h)
	m = m.SendKey(key("l"), h)
	c := h.Cursors().Main().Caret()
	if c.Line != 1 || c.Col != 1 {
		t.Fatalf("caret = %+v", c)
	}
	m = m.SendKey(key("k"), h)
	c = h.Cursors().Main().Caret()
	if c.Line != 0 || c.Col != 1 {
		t.Fatalf("caret after k = %+v", c)
	}
	_ = m
}

func TestNormalWordMovement(t *testing.T) {
	h, _ := scheme("one two three")
	var m Mode = Normal{}
	m = m.SendKey(key("w"), h)
	if got := h.Cursors().Main().Caret().Char; got != 4 {
		t.Fatalf("after w: char %d, want 4", got)
	}
	m = m.SendKey(key("w"), h)
	if got := h.Cursors().Main().Caret().Char; got != 8 {
		t.Fatalf("after second w: char %d, want 8", got)
	}
	m = m.SendKey(key("b"), h)
	if got := h.Cursors().Main().Caret().Char; got != 4 {
		t.Fatalf("after b: char %d, want 4", got)
	}
	_ = m
}

func TestNormalSelectionDelete(t *testing.T) {
	h, txt := scheme("hello world")
	var m Mode = Normal{}
	// Select "hello" and delete it.
	m = m.SendKey(key("v"), h)
	for i := 0; i < 5; i++ {
		m = m.SendKey(key("shift+l"), h)
	}
	m = m.SendKey(key("d"), h)
	if txt.String() != " world" {
		t.Fatalf("buffer = %q", txt.String())
	}
	_ = m
}

func TestNormalUndoRedoKeys(t *testing.T) {
	h, txt := scheme("")
	var m Mode = Normal{}
	m = m.SendKey(key("i"), h)
	m = m.SendKey(typed("x"), h)
	m = m.SendKey(key("esc"), h)
	m = m.SendKey(key("u"), h)
	if txt.String() != "" {
		t.Fatalf("after undo: %q", txt.String())
	}
	m = m.SendKey(key("ctrl+r"), h)
	if txt.String() != "x" {
		t.Fatalf("after redo: %q", txt.String())
	}
	_ = m
}

func TestInsertModeIsOneMoment(t *testing.T) {
	h, txt := scheme("")
	var m Mode = Normal{}
	m = m.SendKey(key("i"), h)
	for _, r := range "abc" {
		m = m.SendKey(typed(string(r)), h)
	}
	m = m.SendKey(key("esc"), h)
	// One undo reverts the whole insert-mode stay.
	m = m.SendKey(key("u"), h)
	if txt.String() != "" {
		t.Fatalf("after undo: %q", txt.String())
	}
	_ = m
}

func TestSpawnCursorAndEdit(t *testing.T) {
	h, txt := scheme("aa\nbb\ncc")
	var m Mode = Normal{}
	m = m.SendKey(key("shift+c"), h)
	m = m.SendKey(key("shift+c"), h)
	if got := h.Cursors().Len(); got != 3 {
		t.Fatalf("cursors = %d, want 3", got)
	}
	m = m.SendKey(key("i"), h)
	m = m.SendKey(typed("X"), h)
	if txt.String() != "Xaa\nXbb\nXcc" {
		t.Fatalf("buffer = %q", txt.String())
	}
	_ = m
}

func TestEscCollapsesCursors(t *testing.T) {
	h, _ := scheme("aa\nbb")
	var m Mode = Normal{}
	m = m.SendKey(key("shift+c"), h)
	m = m.SendKey(key("esc"), h)
	if got := h.Cursors().Len(); got != 1 {
		t.Fatalf("cursors = %d, want 1", got)
	}
	_ = m
}
