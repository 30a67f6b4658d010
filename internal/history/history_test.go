package history

import (
	"fmt"
	"testing"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"

	"github.com/xonecas/quill/internal/text"
)

// requireContent fails with a unified diff when the buffer doesn't hold want.
func requireContent(t *testing.T, txt *text.Text, want string) {
	t.Helper()
	got := txt.String()
	if got == want {
		return
	}
	edits := myers.ComputeEdits(span.URIFromPath("buffer"), want, got)
	diff := fmt.Sprint(gotextdiff.ToUnified("want", "got", want, edits))
	t.Fatalf("buffer mismatch:\n%s", diff)
}

// insertAt applies an insertion through the history like an editor would.
func insertAt(h *History, txt *text.Text, at int, s string) {
	c := text.Change{Start: at, Added: s}
	txt.Apply(c)
	h.AddChange(-1, c)
}

func TestInsertUndoRedo(t *testing.T) {
	txt := text.New()
	h := New()

	insertAt(h, txt, 0, "hello")
	h.NewMoment()
	insertAt(h, txt, 5, " world")
	requireContent(t, txt, "hello world")

	if _, ok := h.Undo(txt); !ok {
		t.Fatal("first undo failed")
	}
	requireContent(t, txt, "hello")

	if _, ok := h.Undo(txt); !ok {
		t.Fatal("second undo failed")
	}
	requireContent(t, txt, "")

	if _, ok := h.Undo(txt); ok {
		t.Fatal("undo past the beginning should fail")
	}

	if _, ok := h.Redo(txt); !ok {
		t.Fatal("first redo failed")
	}
	requireContent(t, txt, "hello")
	if _, ok := h.Redo(txt); !ok {
		t.Fatal("second redo failed")
	}
	requireContent(t, txt, "hello world")
	if _, ok := h.Redo(txt); ok {
		t.Fatal("redo past the end should fail")
	}
}

func TestUndoRedoInvolution(t *testing.T) {
	// apply(M); undo(); redo() must equal apply(M), and undo() must restore
	// the original, for a moment of several changes.
	txt := text.FromString("the quick brown fox")
	h := New()

	apply := func(c text.Change) {
		txt.Apply(c)
		h.AddChange(-1, c)
	}
	apply(text.Change{Start: 4, Taken: "quick", Added: "slow"})
	apply(text.Change{Start: 9, Taken: "brown", Added: "red"})
	after := txt.String()
	if after != "the slow red fox" {
		t.Fatalf("applied = %q", after)
	}

	h.Undo(txt)
	requireContent(t, txt, "the quick brown fox")
	h.Redo(txt)
	requireContent(t, txt, after)
}

func TestNewMomentTruncatesFuture(t *testing.T) {
	txt := text.New()
	h := New()
	insertAt(h, txt, 0, "aaa")
	h.NewMoment()
	insertAt(h, txt, 3, "bbb")
	h.Undo(txt)
	requireContent(t, txt, "aaa")

	// A new edit after undo, bracketed by NewMoment, kills the redo future.
	h.NewMoment()
	insertAt(h, txt, 3, "ccc")
	requireContent(t, txt, "aaaccc")
	if _, ok := h.Redo(txt); ok {
		t.Fatal("redo should find no future after NewMoment")
	}
	h.Undo(txt)
	requireContent(t, txt, "aaa")
}

func TestNewMomentReusesEmpty(t *testing.T) {
	h := New()
	h.NewMoment()
	h.NewMoment()
	if h.Len() != 1 {
		t.Fatalf("len = %d, want 1 (empty moments must not stack)", h.Len())
	}
}

func TestCoalesceInsertionRun(t *testing.T) {
	// Typing "abc" one rune at a time coalesces into one change when each
	// insertion is associated with the previous one.
	txt := text.New()
	h := New()
	assoc := -1
	for i, r := range "abc" {
		c := text.Change{Start: i, Added: string(r)}
		txt.Apply(c)
		assoc = h.AddChange(assoc, c)
	}
	if n := len(h.Current().Changes); n != 1 {
		t.Fatalf("changes = %d, want 1", n)
	}
	got := h.Current().Changes[0]
	if got.Start != 0 || got.Added != "abc" || got.Taken != "" {
		t.Fatalf("coalesced change = %+v", got)
	}
	// One undo reverts the whole run.
	h.Undo(txt)
	requireContent(t, txt, "")
}

func TestCoalescePreservesSemantics(t *testing.T) {
	// Applying the coalesced change must equal applying A then B.
	initial := "0123456789"

	seq := []text.Change{
		{Start: 2, Taken: "23", Added: "xyz"}, // A
		{Start: 3, Taken: "y", Added: "Y"},    // B inside A's added range
	}

	// Sequential application.
	seqTxt := text.FromString(initial)
	for _, c := range seq {
		seqTxt.Apply(c)
	}

	// Coalesced application.
	merged := text.FromString(initial)
	h := New()
	assoc := -1
	for _, c := range seq {
		assoc = h.AddChange(assoc, c)
	}
	if n := len(h.Current().Changes); n != 1 {
		t.Fatalf("changes = %d, want coalesced into 1", n)
	}
	merged.Apply(h.Current().Changes[0])
	requireContent(t, merged, seqTxt.String())
}

func TestCoalesceDisjointAppends(t *testing.T) {
	h := New()
	assoc := h.AddChange(-1, text.Change{Start: 0, Added: "a"})
	next := h.AddChange(assoc, text.Change{Start: 50, Added: "b"})
	if next == assoc {
		t.Fatal("disjoint changes must not merge")
	}
	if n := len(h.Current().Changes); n != 2 {
		t.Fatalf("changes = %d, want 2", n)
	}
}

func TestCoalesceDeletionSwallowsInsertion(t *testing.T) {
	// A inserts "xx" at 2; B deletes [0, 6) which contains A's added range.
	initial := "abcdef"
	a := text.Change{Start: 2, Added: "xx"}
	seqTxt := text.FromString(initial)
	seqTxt.Apply(a)
	b := text.Change{Start: 0, Taken: "abxxcd", Added: "Z"}
	seqTxt.Apply(b)

	h := New()
	assoc := h.AddChange(-1, a)
	h.AddChange(assoc, b)
	if n := len(h.Current().Changes); n != 1 {
		t.Fatalf("changes = %d, want 1", n)
	}
	merged := text.FromString(initial)
	merged.Apply(h.Current().Changes[0])
	requireContent(t, merged, seqTxt.String())

	// Undo restores the original.
	h.Undo(merged)
	requireContent(t, merged, initial)
}

func TestCursorSnapshots(t *testing.T) {
	h := New()
	h.SnapshotBefore([]SavedCursor{{Caret: 0, Main: true}})
	h.AddChange(-1, text.Change{Start: 0, Added: "hi"})
	h.SnapshotAfter([]SavedCursor{{Caret: 2, Main: true}})

	txt := text.FromString("hi")
	m, ok := h.Undo(txt)
	if !ok {
		t.Fatal("undo failed")
	}
	if len(m.CursorsBefore) != 1 || m.CursorsBefore[0].Caret != 0 {
		t.Fatalf("CursorsBefore = %+v", m.CursorsBefore)
	}
	if len(m.CursorsAfter) != 1 || m.CursorsAfter[0].Caret != 2 {
		t.Fatalf("CursorsAfter = %+v", m.CursorsAfter)
	}
}
