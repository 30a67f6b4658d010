package cfg

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// File is the on-disk shape of quill.toml.
type File struct {
	Wrap              string   `toml:"wrap"`        // "width" | "capped" | "word" | "none"
	WrapCap           int      `toml:"wrap_cap"`    // column for wrap = "capped"
	IndentWrap        *bool    `toml:"indent_wrap"` // default true
	TabSize           int      `toml:"tab_size"`
	TabStops          []int    `toml:"tab_stops"` // varied stops; overrides tab_size
	NewLine           string   `toml:"new_line"`  // "" (blank) or a single glyph
	NewLineAfterSpace bool     `toml:"new_line_after_space"`
	ScrollOffX        int      `toml:"scrolloff_x"`
	ScrollOffY        int      `toml:"scrolloff_y"`
	WordChars         []string `toml:"word_chars"` // "a-z" style inclusive ranges
}

// Load reads configuration from a TOML file. A missing path returns the
// defaults; a malformed file is an error.
func Load(path string) (PrintCfg, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); err != nil {
		return cfg, nil
	}
	var f File
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := f.Validate(); err != nil {
		return cfg, err
	}
	return f.apply(cfg), nil
}

// DefaultPath returns the first config path that exists, searching the
// working directory and then the user config directory.
func DefaultPath() string {
	if _, err := os.Stat("quill.toml"); err == nil {
		return "quill.toml"
	}
	if dir, err := os.UserConfigDir(); err == nil {
		p := filepath.Join(dir, "quill", "quill.toml")
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// Validate returns an error if the file's values are invalid.
func (f File) Validate() error {
	var errs []error
	switch f.Wrap {
	case "", "width", "capped", "word", "none":
	default:
		errs = append(errs, fmt.Errorf("wrap=%q must be one of width, capped, word, none", f.Wrap))
	}
	if f.Wrap == "capped" && f.WrapCap <= 0 {
		errs = append(errs, errors.New("wrap_cap must be positive when wrap = \"capped\""))
	}
	if f.TabSize < 0 {
		errs = append(errs, fmt.Errorf("tab_size=%d must not be negative", f.TabSize))
	}
	for i, s := range f.TabStops {
		if s <= 0 || (i > 0 && s <= f.TabStops[i-1]) {
			errs = append(errs, fmt.Errorf("tab_stops must be positive and increasing, got %v", f.TabStops))
			break
		}
	}
	if n := len([]rune(f.NewLine)); n > 1 {
		errs = append(errs, fmt.Errorf("new_line=%q must be a single character", f.NewLine))
	}
	if f.ScrollOffX < 0 || f.ScrollOffY < 0 {
		errs = append(errs, errors.New("scrolloff values must not be negative"))
	}
	for _, w := range f.WordChars {
		if _, err := parseRuneRange(w); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

func (f File) apply(cfg PrintCfg) PrintCfg {
	switch f.Wrap {
	case "width":
		cfg.WrapMethod = WrapMethod{Kind: WrapWidth}
	case "capped":
		cfg.WrapMethod = WrapMethod{Kind: WrapCapped, Cap: f.WrapCap}
	case "word":
		cfg.WrapMethod = WrapMethod{Kind: WrapWord}
	case "none":
		cfg.WrapMethod = WrapMethod{Kind: NoWrap}
	}
	if f.IndentWrap != nil {
		cfg.IndentWrap = *f.IndentWrap
	}
	if f.TabSize > 0 {
		cfg.TabStops = TabStops{Step: f.TabSize}
	}
	if len(f.TabStops) > 0 {
		cfg.TabStops.Stops = f.TabStops
	}
	if f.NewLine != "" {
		glyph := []rune(f.NewLine)[0]
		kind := NewLineAlwaysAs
		if f.NewLineAfterSpace {
			kind = NewLineAfterSpaceAs
		}
		cfg.NewLine = NewLine{Kind: kind, Glyph: glyph}
	}
	if f.ScrollOffX > 0 {
		cfg.ScrollOff.X = f.ScrollOffX
	}
	if f.ScrollOffY > 0 {
		cfg.ScrollOff.Y = f.ScrollOffY
	}
	if len(f.WordChars) > 0 {
		var wc WordChars
		for _, w := range f.WordChars {
			rr, err := parseRuneRange(w)
			if err != nil {
				continue // Validate already rejected these
			}
			wc = append(wc, rr)
		}
		cfg.WordChars = wc
	}
	return cfg
}

// parseRuneRange parses "a-z" or a single rune "x" as an inclusive range.
// Space, tab and newline can never be word chars.
func parseRuneRange(s string) (RuneRange, error) {
	runes := []rune(s)
	var rr RuneRange
	switch len(runes) {
	case 1:
		rr = RuneRange{runes[0], runes[0]}
	case 3:
		if runes[1] != '-' || runes[0] > runes[2] {
			return RuneRange{}, fmt.Errorf("word_chars entry %q is not a range", s)
		}
		rr = RuneRange{runes[0], runes[2]}
	default:
		return RuneRange{}, fmt.Errorf("word_chars entry %q is not a range", s)
	}
	for _, bad := range []rune{' ', '\t', '\n'} {
		if bad >= rr.Lo && bad <= rr.Hi {
			return RuneRange{}, fmt.Errorf("word_chars entry %q includes whitespace", s)
		}
	}
	return rr, nil
}
