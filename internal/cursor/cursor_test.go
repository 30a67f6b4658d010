package cursor

import (
	"strings"
	"testing"

	cfgpkg "github.com/xonecas/quill/internal/cfg"
	"github.com/xonecas/quill/internal/history"
	"github.com/xonecas/quill/internal/text"
)

// cfgDefaultNarrow wraps at the label width with no wrap indent.
func cfgDefaultNarrow() cfgpkg.PrintCfg {
	c := cfgpkg.Default()
	c.IndentWrap = false
	return c
}

func helperFor(s string) (*Helper, *text.Text) {
	txt := text.FromString(s)
	cs := NewSet()
	h := history.New()
	return NewHelper(txt, cs, h), txt
}

func TestMultiCursorInsertShift(t *testing.T) {
	hl, txt := helperFor("aaa\nbbb\nccc")
	cs := hl.Cursors()
	cs.Reset(New(txt.PointAtChar(1)))
	cs.Insert(New(txt.PointAtChar(5)))
	cs.Insert(New(txt.PointAtChar(9)))

	hl.EditOnEach(func(e *Editor) {
		e.Insert("X")
	})

	if got := txt.String(); got != "aXaa\nbXbb\ncXcc" {
		t.Fatalf("buffer = %q", got)
	}
	want := []int{2, 7, 12}
	if cs.Len() != 3 {
		t.Fatalf("cursors = %d, want 3", cs.Len())
	}
	for i, w := range want {
		c, _ := cs.Nth(i)
		if c.Caret().Char != w {
			t.Errorf("cursor %d at char %d, want %d", i, c.Caret().Char, w)
		}
	}
}

func TestEditOnMainCaretMoves(t *testing.T) {
	hl, txt := helperFor("")
	hl.EditOnMain(func(e *Editor) { e.Insert("hello") })
	if got := hl.Cursors().Main().Caret().Char; got != 5 {
		t.Fatalf("caret at %d, want 5", got)
	}
	hl.NewMoment()
	hl.EditOnMain(func(e *Editor) { e.Insert(" world") })
	if got := hl.Cursors().Main().Caret().Char; got != 11 {
		t.Fatalf("caret at %d, want 11", got)
	}
	if txt.String() != "hello world" {
		t.Fatalf("buffer = %q", txt.String())
	}
}

func TestUndoRestoresCursors(t *testing.T) {
	hl, txt := helperFor("")
	hl.EditOnMain(func(e *Editor) { e.Insert("hello") })
	hl.NewMoment()
	hl.EditOnMain(func(e *Editor) { e.Insert(" world") })

	if !hl.Undo() {
		t.Fatal("undo failed")
	}
	if txt.String() != "hello" {
		t.Fatalf("buffer = %q", txt.String())
	}
	if got := hl.Cursors().Main().Caret().Char; got != 5 {
		t.Fatalf("caret at %d, want 5", got)
	}

	if !hl.Undo() {
		t.Fatal("second undo failed")
	}
	if txt.String() != "" {
		t.Fatalf("buffer = %q", txt.String())
	}
	if got := hl.Cursors().Main().Caret().Char; got != 0 {
		t.Fatalf("caret at %d, want 0", got)
	}

	hl.Redo()
	hl.Redo()
	if txt.String() != "hello world" {
		t.Fatalf("after redo: %q", txt.String())
	}
	if got := hl.Cursors().Main().Caret().Char; got != 11 {
		t.Fatalf("caret at %d, want 11", got)
	}
}

func TestReplaceConsumesSelection(t *testing.T) {
	hl, txt := helperFor("hello world")
	hl.MoveMain(func(m *Mover) {
		m.MoveTo(txt.PointAtChar(6))
		m.SetAnchor()
		m.MoveHor(5)
	})
	hl.EditOnMain(func(e *Editor) {
		if got := e.Selection(); got != "world" {
			t.Fatalf("selection = %q", got)
		}
		e.Replace("there")
	})
	if txt.String() != "hello there" {
		t.Fatalf("buffer = %q", txt.String())
	}
	c := hl.Cursors().Main()
	if c.Caret().Char != 11 {
		t.Errorf("caret at %d, want 11", c.Caret().Char)
	}
	if _, has := c.Anchor(); has {
		t.Error("anchor should be cleared when it sat at the selection start")
	}
}

func TestReplaceKeepsAnchorAtStart(t *testing.T) {
	hl, txt := helperFor("hello world")
	// Anchor at the selection end: caret at start, anchor after.
	hl.MoveMain(func(m *Mover) {
		m.MoveTo(txt.PointAtChar(11))
		m.SetAnchor()
		m.MoveHor(-5)
	})
	hl.EditOnMain(func(e *Editor) { e.Replace("x") })
	c := hl.Cursors().Main()
	a, has := c.Anchor()
	if !has {
		t.Fatal("anchor should move to the selection start")
	}
	if a.Char != 6 {
		t.Errorf("anchor at %d, want 6", a.Char)
	}
}

func TestMoveEachMergesOverlapping(t *testing.T) {
	hl, txt := helperFor("abcdefgh")
	cs := hl.Cursors()
	cs.Reset(New(txt.PointAtChar(0)))
	cs.Insert(New(txt.PointAtChar(4)))

	// Both select 5 chars rightward: [0,5) and [4,8+] overlap and merge.
	hl.MoveEach(func(m *Mover) {
		m.SetAnchor()
		m.MoveHor(5)
	})
	if cs.Len() != 1 {
		t.Fatalf("cursors = %d, want merged into 1", cs.Len())
	}
	s, e := cs.Main().Selection()
	if s.Char != 0 || e.Char != 8 {
		t.Fatalf("merged selection = [%d, %d), want [0, 8)", s.Char, e.Char)
	}
}

func TestMergeKeepsMain(t *testing.T) {
	hl, txt := helperFor("abcdefgh")
	cs := hl.Cursors()
	cs.Reset(New(txt.PointAtChar(0)))
	cs.Insert(New(txt.PointAtChar(3)))
	cs.SetMain(1)

	// Collapse everything onto char 2: duplicates merge, main survives.
	hl.MoveEach(func(m *Mover) {
		m.MoveTo(txt.PointAtChar(2))
	})
	if cs.Len() != 1 {
		t.Fatalf("cursors = %d, want 1", cs.Len())
	}
	if cs.MainIndex() != 0 {
		t.Fatalf("main index = %d", cs.MainIndex())
	}
}

func TestCursorTagDiscipline(t *testing.T) {
	hl, txt := helperFor("abc")
	if txt.Tags().Len() != 0 {
		t.Fatal("fresh text should carry no tags")
	}
	hl.MoveMain(func(m *Mover) { m.MoveHor(1) })
	// After a batch the caret tag must be present.
	if txt.Tags().Len() != 1 {
		t.Fatalf("tags after batch = %d, want 1 caret tag", txt.Tags().Len())
	}
	// And a second batch must not duplicate it.
	hl.MoveMain(func(m *Mover) { m.MoveHor(1) })
	if txt.Tags().Len() != 1 {
		t.Fatalf("tags after second batch = %d, want 1", txt.Tags().Len())
	}
}

func TestCursorTagsSurvivePanic(t *testing.T) {
	hl, txt := helperFor("abc")
	hl.MoveMain(func(m *Mover) { m.MoveHor(1) })

	func() {
		defer func() { recover() }()
		hl.MoveMain(func(m *Mover) {
			panic("closure blew up")
		})
	}()
	if txt.Tags().Len() != 1 {
		t.Fatalf("tags after panicking batch = %d, want 1", txt.Tags().Len())
	}
}

func TestSelectionsStayDisjoint(t *testing.T) {
	hl, txt := helperFor("aaaa bbbb cccc dddd")
	cs := hl.Cursors()
	cs.Reset(New(txt.PointAtChar(0)))
	cs.Insert(New(txt.PointAtChar(5)))
	cs.Insert(New(txt.PointAtChar(10)))
	hl.MoveEach(func(m *Mover) {
		m.SetAnchor()
		m.MoveHor(4)
	})
	for i := 0; i < cs.Len()-1; i++ {
		a, _ := cs.Nth(i)
		b, _ := cs.Nth(i + 1)
		_, ae := a.Selection()
		bs, _ := b.Selection()
		if bs.Byte < ae.Byte {
			t.Fatalf("selections %d and %d overlap", i, i+1)
		}
	}
}

func TestMoverDesiredColumn(t *testing.T) {
	hl, txt := helperFor("a long line here\nhi\nanother long line")
	hl.MoveMain(func(m *Mover) {
		m.MoveTo(txt.PointAtChar(10))
		m.MoveVer(1) // line "hi": clamps to col 2
		if m.Caret().Line != 1 || m.Caret().Col != 2 {
			t.Fatalf("after down: %+v", m.Caret())
		}
		m.MoveVer(1) // long line again: desired column restores to 10
		if m.Caret().Line != 2 || m.Caret().Col != 10 {
			t.Fatalf("after second down: %+v", m.Caret())
		}
	})
}

func TestMoveVerWrapped(t *testing.T) {
	// One 10-char line wrapping at width 4: rows start at chars 0, 4, 8.
	hl, txt := helperFor("0123456789\nshort")
	hl.SetPrintCfg(cfgDefaultNarrow(), 4, 10)
	hl.MoveMain(func(m *Mover) {
		m.MoveTo(txt.PointAtChar(1)) // row 0, col 1
		m.MoveVerWrapped(1)
		if got := m.Caret().Char; got != 5 {
			t.Fatalf("after wrapped down: char %d, want 5", got)
		}
		m.MoveVerWrapped(1)
		if got := m.Caret().Char; got != 9 {
			t.Fatalf("after second wrapped down: char %d, want 9", got)
		}
		m.MoveVerWrapped(-2)
		if got := m.Caret().Char; got != 1 {
			t.Fatalf("after wrapped up: char %d, want 1", got)
		}
	})
}

func TestMovePage(t *testing.T) {
	hl, _ := helperFor(strings.Repeat("x\n", 100))
	hl.SetPrintCfg(cfgpkg.Default(), 80, 10)
	hl.MoveMain(func(m *Mover) {
		m.MovePage(1)
		if got := m.Caret().Line; got != 10 {
			t.Fatalf("after page down: line %d, want 10", got)
		}
	})
}

func TestMoveHorAcrossLines(t *testing.T) {
	hl, txt := helperFor("ab\ncd")
	hl.MoveMain(func(m *Mover) {
		m.MoveTo(txt.PointAtChar(2)) // on the newline
		m.MoveHor(1)
		if m.Caret().Line != 1 || m.Caret().Col != 0 {
			t.Fatalf("caret = %+v, want start of line 1", m.Caret())
		}
		m.MoveHor(-1)
		if m.Caret().Line != 0 || m.Caret().Col != 2 {
			t.Fatalf("caret = %+v, want end of line 0", m.Caret())
		}
	})
}
