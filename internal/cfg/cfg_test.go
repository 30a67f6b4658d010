package cfg

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestTabStopsRegular(t *testing.T) {
	ts := TabStops{Step: 4}
	cases := []struct{ x, want int }{
		{0, 4}, {1, 3}, {3, 1}, {4, 4}, {7, 1}, {8, 4},
	}
	for _, tc := range cases {
		if got := ts.SpacesAt(tc.x); got != tc.want {
			t.Errorf("SpacesAt(%d) = %d, want %d", tc.x, got, tc.want)
		}
	}
}

func TestTabStopsVaried(t *testing.T) {
	ts := TabStops{Step: 8, Stops: []int{4, 6, 12}}
	cases := []struct{ x, want int }{
		{0, 4}, {4, 2}, {5, 1}, {6, 6}, {12, 4}, // past last stop: step 8 from col 12
	}
	for _, tc := range cases {
		if got := ts.SpacesAt(tc.x); got != tc.want {
			t.Errorf("SpacesAt(%d) = %d, want %d", tc.x, got, tc.want)
		}
	}
}

func TestNewLinePolicy(t *testing.T) {
	blank := NewLine{Kind: NewLineBlank}
	always := NewLine{Kind: NewLineAlwaysAs, Glyph: '¬'}
	after := NewLine{Kind: NewLineAfterSpaceAs, Glyph: '·'}

	if got := blank.Char('x'); got != ' ' {
		t.Errorf("blank: got %q", got)
	}
	if got := always.Char('x'); got != '¬' {
		t.Errorf("always: got %q", got)
	}
	if got := after.Char('x'); got != ' ' {
		t.Errorf("after space, prev=x: got %q", got)
	}
	if got := after.Char(' '); got != '·' {
		t.Errorf("after space, prev=space: got %q", got)
	}
}

func TestWordChars(t *testing.T) {
	wc := DefaultWordChars()
	for _, r := range "azAZ09_" {
		if !wc.Contains(r) {
			t.Errorf("Contains(%q) = false", r)
		}
	}
	for _, r := range " \t\n-." {
		if wc.Contains(r) {
			t.Errorf("Contains(%q) = true", r)
		}
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "quill.toml")
	content := `
wrap = "capped"
wrap_cap = 80
tab_size = 8
new_line = "¬"
scrolloff_x = 5
scrolloff_y = 2
word_chars = ["a-z", "A-Z", "0-9", "_", "-"]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.WrapMethod.Kind != WrapCapped || cfg.WrapMethod.Cap != 80 {
		t.Errorf("wrap = %+v", cfg.WrapMethod)
	}
	if cfg.TabStops.Step != 8 {
		t.Errorf("tab step = %d", cfg.TabStops.Step)
	}
	if cfg.NewLine.Kind != NewLineAlwaysAs || cfg.NewLine.Glyph != '¬' {
		t.Errorf("new line = %+v", cfg.NewLine)
	}
	if cfg.ScrollOff.X != 5 || cfg.ScrollOff.Y != 2 {
		t.Errorf("scrolloff = %+v", cfg.ScrollOff)
	}
	if !cfg.WordChars.Contains('-') {
		t.Error("word_chars should include '-'")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.WrapMethod.Kind != WrapWidth || !cfg.IndentWrap {
		t.Errorf("not defaults: %+v", cfg)
	}
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name string
		file File
		want string
	}{
		{"bad wrap", File{Wrap: "diagonal"}, "wrap="},
		{"capped without cap", File{Wrap: "capped"}, "wrap_cap"},
		{"multichar glyph", File{NewLine: "ab"}, "new_line"},
		{"whitespace word chars", File{WordChars: []string{" "}}, "whitespace"},
		{"descending stops", File{TabStops: []int{4, 2}}, "tab_stops"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.file.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}
