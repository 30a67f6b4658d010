package text

import (
	"testing"
	"unicode/utf8"
)

func TestPointConversions(t *testing.T) {
	txt := FromString("aé\nbc\n")
	cases := []struct {
		ch   int
		want Point
	}{
		{0, Point{0, 0, 0, 0}},
		{1, Point{1, 1, 0, 1}},
		{2, Point{3, 2, 0, 2}},
		{3, Point{4, 3, 1, 0}},
		{5, Point{6, 5, 1, 2}},
		{6, Point{7, 6, 2, 0}},
	}
	for _, tc := range cases {
		if got := txt.PointAtChar(tc.ch); got != tc.want {
			t.Errorf("PointAtChar(%d) = %+v, want %+v", tc.ch, got, tc.want)
		}
		if got := txt.PointAtByte(tc.want.Byte); got != tc.want {
			t.Errorf("PointAtByte(%d) = %+v, want %+v", tc.want.Byte, got, tc.want)
		}
	}
	if got := txt.PointAtLine(1); (got != Point{4, 3, 1, 0}) {
		t.Errorf("PointAtLine(1) = %+v", got)
	}
	if got := txt.PointAtCoords(1, 99); (got != Point{6, 5, 1, 2}) {
		t.Errorf("PointAtCoords(1, 99) = %+v, want clamp to line end", got)
	}
	if got := txt.CharsInLine(0); got != 2 {
		t.Errorf("CharsInLine(0) = %d, want 2", got)
	}
}

func TestApplyUndoChange(t *testing.T) {
	txt := FromString("hello world")
	c := Change{Start: 6, Taken: "world", Added: "there, friend"}
	txt.Apply(c)
	if got := txt.String(); got != "hello there, friend" {
		t.Fatalf("after apply: %q", got)
	}
	txt.Undo(c)
	if got := txt.String(); got != "hello world" {
		t.Fatalf("after undo: %q", got)
	}
	if !utf8.ValidString(txt.String()) {
		t.Fatal("content not valid UTF-8")
	}
}

func TestApplyShiftsTags(t *testing.T) {
	txt := FromString("hello world")
	m := NewMarker()
	txt.InsertTag(6, Tag{Kind: TagMainCursor}, m)
	txt.Apply(Change{Start: 0, Taken: "", Added: "say: "})
	it := txt.Tags().At(0)
	off, _, ok := it.Next()
	if !ok || off != 11 {
		t.Fatalf("tag at %d, want 11", off)
	}
}

func TestCursorTagsRoundTrip(t *testing.T) {
	txt := FromString("abcdef")
	carets := []Caret{
		{Byte: 1, Main: true},
		{Byte: 3, Anchor: 5, HasAnchor: true},
	}
	txt.AddCursorTags(carets...)
	if txt.Tags().Len() != 4 {
		t.Fatalf("tag count = %d, want 4 (2 carets + selection pair)", txt.Tags().Len())
	}
	txt.RemoveCursorTags(carets...)
	if txt.Tags().Len() != 0 {
		t.Fatalf("tag count after removal = %d, want 0", txt.Tags().Len())
	}
}

func TestSearchFwd(t *testing.T) {
	txt := FromString("one two one two")
	it, err := txt.SearchFwd(Lit("one"), Point{})
	if err != nil {
		t.Fatal(err)
	}
	var starts []int
	for m, ok := it.Next(); ok; m, ok = it.Next() {
		starts = append(starts, m.Start.Byte)
		if m.End.Byte-m.Start.Byte != 3 {
			t.Errorf("match width = %d", m.End.Byte-m.Start.Byte)
		}
	}
	if len(starts) != 2 || starts[0] != 0 || starts[1] != 8 {
		t.Fatalf("starts = %v", starts)
	}
}

func TestSearchRev(t *testing.T) {
	txt := FromString("one two one two")
	it, err := txt.SearchRev(Lit("two"), txt.Len())
	if err != nil {
		t.Fatal(err)
	}
	var starts []int
	for m, ok := it.Next(); ok; m, ok = it.Next() {
		starts = append(starts, m.Start.Byte)
	}
	if len(starts) != 2 || starts[0] != 12 || starts[1] != 4 {
		t.Fatalf("starts = %v", starts)
	}
}

func TestSearchSetReportsIndex(t *testing.T) {
	txt := FromString("cat dog cat")
	it, err := txt.SearchFwd(Set{"dog", "cat"}, Point{})
	if err != nil {
		t.Fatal(err)
	}
	var idx []int
	for m, ok := it.Next(); ok; m, ok = it.Next() {
		idx = append(idx, m.Index)
	}
	if len(idx) != 3 || idx[0] != 1 || idx[1] != 0 || idx[2] != 1 {
		t.Fatalf("indices = %v", idx)
	}
}

func TestSearchEmptyAdvance(t *testing.T) {
	// An empty literal matches at every position; the iterator must advance
	// one scalar value at a time, even across multi-byte runes.
	txt := FromString("aé")
	it, err := txt.SearchFwd(Lit(""), Point{})
	if err != nil {
		t.Fatal(err)
	}
	var starts []int
	for m, ok := it.Next(); ok; m, ok = it.Next() {
		starts = append(starts, m.Start.Byte)
		if len(starts) > 10 {
			t.Fatal("empty search did not terminate")
		}
	}
	want := []int{0, 1, 3}
	if len(starts) != len(want) {
		t.Fatalf("starts = %v, want %v", starts, want)
	}
	for i := range want {
		if starts[i] != want[i] {
			t.Fatalf("starts = %v, want %v", starts, want)
		}
	}
}

func TestSearchChar(t *testing.T) {
	txt := FromString("go go go")
	it, err := txt.SearchFwd(Ch('g'), Point{})
	if err != nil {
		t.Fatal(err)
	}
	n := 0
	for _, ok := it.Next(); ok; _, ok = it.Next() {
		n++
	}
	if n != 3 {
		t.Fatalf("matches = %d, want 3", n)
	}
}
