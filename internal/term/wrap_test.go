package term

import (
	"testing"

	"github.com/xonecas/quill/internal/cfg"
	"github.com/xonecas/quill/internal/text"
)

func widthCfg() cfg.PrintCfg {
	c := cfg.Default()
	c.WrapMethod = cfg.WrapMethod{Kind: cfg.WrapWidth}
	c.IndentWrap = false
	return c
}

func TestWrapCountByWidth(t *testing.T) {
	txt := text.FromString("0123456789ABCDEF")
	c := widthCfg()
	if got := WrapCount(txt, 0, c, 5); got != 3 {
		t.Fatalf("WrapCount = %d, want 3", got)
	}
	starts := RowStarts(txt, 0, c, 5)
	want := []int{0, 5, 10, 15}
	if len(starts) != len(want) {
		t.Fatalf("starts = %v, want %v", starts, want)
	}
	for i := range want {
		if starts[i] != want[i] {
			t.Fatalf("starts = %v, want %v", starts, want)
		}
	}
}

func TestWordWrapPrefersBoundary(t *testing.T) {
	txt := text.FromString("foo barbaz")
	c := cfg.Default()
	c.WrapMethod = cfg.WrapMethod{Kind: cfg.WrapWord}
	c.IndentWrap = false
	c.WordChars = cfg.WordChars{{Lo: 'a', Hi: 'z'}}

	starts := RowStarts(txt, 0, c, 6)
	if len(starts) != 2 {
		t.Fatalf("starts = %v, want 2 rows", starts)
	}
	if starts[1] != 4 {
		t.Fatalf("wrap 1 at char %d, want 4 (the 'b')", starts[1])
	}
}

func TestWordWrapGiantWordHardBreaks(t *testing.T) {
	txt := text.FromString("abcdefghij")
	c := cfg.Default()
	c.WrapMethod = cfg.WrapMethod{Kind: cfg.WrapWord}
	c.IndentWrap = false
	c.WordChars = cfg.DefaultWordChars()

	starts := RowStarts(txt, 0, c, 4)
	if len(starts) < 3 {
		t.Fatalf("starts = %v, want hard breaks inside the giant word", starts)
	}
	if starts[0] != 0 || starts[1] != 4 {
		t.Fatalf("starts = %v", starts)
	}
}

func TestNoWrapNeverWraps(t *testing.T) {
	txt := text.FromString("0123456789")
	c := widthCfg()
	c.WrapMethod = cfg.WrapMethod{Kind: cfg.NoWrap}
	if got := WrapCount(txt, 0, c, 3); got != 0 {
		t.Fatalf("WrapCount = %d, want 0", got)
	}
}

func TestCappedWrap(t *testing.T) {
	txt := text.FromString("0123456789")
	c := widthCfg()
	c.WrapMethod = cfg.WrapMethod{Kind: cfg.WrapCapped, Cap: 4}
	// The cap, not the label width, decides the wrap column.
	starts := RowStarts(txt, 0, c, 100)
	if len(starts) != 3 || starts[1] != 4 || starts[2] != 8 {
		t.Fatalf("starts = %v", starts)
	}
}

func TestIndentWrap(t *testing.T) {
	txt := text.FromString("  abcdefgh")
	c := widthCfg()
	c.IndentWrap = true
	// Width 6: row 0 holds "  abcd"; continuation rows start at col 2 and
	// hold 4 chars each.
	starts := RowStarts(txt, 0, c, 6)
	if len(starts) != 2 || starts[1] != 6 {
		t.Fatalf("starts = %v", starts)
	}
}

func TestTabWidths(t *testing.T) {
	c := cfg.Default()
	if got := WidthOf('\t', 0, c.TabStops); got != 4 {
		t.Errorf("tab at 0 = %d", got)
	}
	if got := WidthOf('\t', 3, c.TabStops); got != 1 {
		t.Errorf("tab at 3 = %d", got)
	}
	if got := WidthOf('\n', 0, c.TabStops); got != 1 {
		t.Errorf("newline = %d", got)
	}
	if got := WidthOf('世', 0, c.TabStops); got != 2 {
		t.Errorf("wide rune = %d", got)
	}
}

func TestVisualColAndBack(t *testing.T) {
	txt := text.FromString("0123456789ABCDEF")
	c := widthCfg()
	p := txt.PointAtChar(12)
	row, col := VisualCol(txt, p, c, 5)
	if row != 2 || col != 2 {
		t.Fatalf("row=%d col=%d, want 2,2", row, col)
	}
	if got := CharAtVisual(txt, 0, row, col, c, 5); got != 12 {
		t.Fatalf("CharAtVisual round trip = %d, want 12", got)
	}
}

func TestCharAtVisualClampsToRow(t *testing.T) {
	txt := text.FromString("01234\nx")
	c := widthCfg()
	// Column far past the line end rests at the line end.
	if got := CharAtVisual(txt, 0, 0, 99, c, 80); got != 5 {
		t.Fatalf("clamp = %d, want 5 (line end)", got)
	}
}

func TestWrapWithGhostText(t *testing.T) {
	// Ghost chars occupy visual space and push real chars to later rows.
	txt := text.FromString("abcdef")
	ghost := text.FromString("GGG")
	txt.Tags().Insert(0, text.GhostText(ghost), text.NewMarker())
	c := widthCfg()
	starts := RowStarts(txt, 0, c, 4)
	// Row 0: GGGa, row 1: bcde, row 2: f
	if len(starts) != 3 || starts[1] != 1 || starts[2] != 5 {
		t.Fatalf("starts = %v", starts)
	}
}

func TestWrapSkipsConcealed(t *testing.T) {
	txt := text.FromString("abcdefgh")
	m := text.NewMarker()
	txt.Tags().Insert(1, text.Tag{Kind: text.TagConcealStart}, m)
	txt.Tags().Insert(7, text.Tag{Kind: text.TagConcealEnd}, m)
	c := widthCfg()
	// Visible: "ah" — fits one row of 4.
	if got := WrapCount(txt, 0, c, 4); got != 0 {
		t.Fatalf("WrapCount = %d, want 0", got)
	}
}
