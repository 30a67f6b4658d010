package text

import (
	"testing"

	"github.com/xonecas/quill/internal/forms"
)

func collectOffsets(ts *Tags) []int {
	var offs []int
	it := ts.At(0)
	for off, _, ok := it.Next(); ok; off, _, ok = it.Next() {
		offs = append(offs, off)
	}
	return offs
}

func TestInsertKeepsOrder(t *testing.T) {
	ts := NewTags()
	m := NewMarker()
	f := forms.IDOf("Default")
	ts.Insert(5, PushForm(f), m)
	ts.Insert(2, PushForm(f), m)
	ts.Insert(5, PopForm(f), m)
	ts.Insert(0, PushForm(f), m)

	want := []int{0, 2, 5, 5}
	got := collectOffsets(ts)
	if len(got) != len(want) {
		t.Fatalf("offsets = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("offsets = %v, want %v", got, want)
		}
	}

	// The two events at offset 5 must come out in insertion order.
	it := ts.At(5)
	_, first, _ := it.Next()
	_, second, _ := it.Next()
	if first.Kind != TagPushForm || second.Kind != TagPopForm {
		t.Errorf("events at 5 out of insertion order: %v then %v", first.Kind, second.Kind)
	}
}

func TestRemoveOnFiltersByMarker(t *testing.T) {
	ts := NewTags()
	mine := NewMarker()
	theirs := NewMarker()
	f := forms.IDOf("Default")
	ts.Insert(3, PushForm(f), mine)
	ts.Insert(3, Tag{Kind: TagMainCursor}, theirs)
	ts.Insert(3, PopForm(f), mine)
	ts.Insert(7, PushForm(f), mine)

	ts.RemoveOn(3, mine)
	if ts.Len() != 2 {
		t.Fatalf("len = %d, want 2", ts.Len())
	}
	it := ts.At(3)
	off, tag, _ := it.Next()
	if off != 3 || tag.Kind != TagMainCursor {
		t.Errorf("survivor at 3 = %v", tag.Kind)
	}
	off, _, _ = it.Next()
	if off != 7 {
		t.Errorf("tag at 7 should be untouched, got offset %d", off)
	}
}

func TestTransformShiftsAndDrops(t *testing.T) {
	ts := NewTags()
	m := NewMarker()
	f := forms.IDOf("Default")
	for _, off := range []int{0, 4, 5, 6, 8, 10} {
		ts.Insert(off, PushForm(f), m)
	}

	// Replace [4, 8) with 2 bytes: new end 6, delta -2.
	// Tags strictly inside (4, 8) — at 5, 6 — are dropped; 8 and 10 shift.
	ts.Transform(4, 8, 6)
	want := []int{0, 4, 6, 8}
	got := collectOffsets(ts)
	if len(got) != len(want) {
		t.Fatalf("offsets = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("offsets = %v, want %v", got, want)
		}
	}
}

func TestTransformPureInsertShiftsBoundary(t *testing.T) {
	ts := NewTags()
	m := NewMarker()
	ts.Insert(4, Tag{Kind: TagMainCursor}, m)
	// Insert 3 bytes at offset 4: the point tag sticks to the edit boundary.
	ts.Transform(4, 4, 7)
	got := collectOffsets(ts)
	if len(got) != 1 || got[0] != 7 {
		t.Fatalf("offsets = %v, want [7]", got)
	}
}

func TestRevTagsOrder(t *testing.T) {
	ts := NewTags()
	m := NewMarker()
	f := forms.IDOf("Default")
	ts.Insert(2, PushForm(f), m)
	ts.Insert(2, PopForm(f), m)
	ts.Insert(9, PushForm(f), m)

	it := ts.Before(9)
	off, tag, ok := it.Next()
	if !ok || off != 9 {
		t.Fatalf("first reverse event at %d", off)
	}
	off, tag, ok = it.Next()
	if !ok || off != 2 || tag.Kind != TagPopForm {
		t.Fatalf("second reverse event: off=%d kind=%v", off, tag.Kind)
	}
	off, tag, ok = it.Next()
	if !ok || off != 2 || tag.Kind != TagPushForm {
		t.Fatalf("third reverse event: off=%d kind=%v", off, tag.Kind)
	}
	if _, _, ok := it.Next(); ok {
		t.Fatal("iterator should be exhausted")
	}
}
