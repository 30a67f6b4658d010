// Package cfg holds the per-view print configuration and its TOML loading.
package cfg

// WrapKind selects the soft-wrap strategy of a view.
type WrapKind int

const (
	// WrapWidth wraps at the label width.
	WrapWidth WrapKind = iota
	// WrapCapped wraps at a fixed column, clipped to the label width.
	WrapCapped
	// WrapWord wraps at the label width, greedily keeping words whole.
	WrapWord
	// NoWrap never wraps; long lines are clipped and scrolled horizontally.
	NoWrap
)

// WrapMethod is a wrap kind plus the cap column for WrapCapped.
type WrapMethod struct {
	Kind WrapKind
	Cap  int
}

// Width returns the effective wrap column for a label of the given width,
// or width itself when not wrapping.
func (w WrapMethod) Width(labelWidth int) int {
	if w.Kind == WrapCapped && w.Cap < labelWidth {
		return w.Cap
	}
	return labelWidth
}

// Wraps reports whether this method ever emits wrap events.
func (w WrapMethod) Wraps() bool {
	return w.Kind != NoWrap
}

// TabStops describes tab expansion: a regular step or explicit stops.
type TabStops struct {
	Step  int
	Stops []int // used when non-empty; columns of successive stops
}

// SpacesAt returns how many cells a tab at visual column x occupies.
func (t TabStops) SpacesAt(x int) int {
	if len(t.Stops) > 0 {
		for _, stop := range t.Stops {
			if stop > x {
				return stop - x
			}
		}
		// Past the last varied stop, fall back to the step.
	}
	step := t.Step
	if step <= 0 {
		step = 4
	}
	return step - x%step
}

// NewLineKind selects how '\n' is drawn.
type NewLineKind int

const (
	// NewLineBlank draws a plain space.
	NewLineBlank NewLineKind = iota
	// NewLineAlwaysAs draws the configured glyph.
	NewLineAlwaysAs
	// NewLineAfterSpaceAs draws the glyph only after trailing whitespace.
	NewLineAfterSpaceAs
)

// NewLine is the new-line glyph policy.
type NewLine struct {
	Kind  NewLineKind
	Glyph rune
}

// Char returns the rune to draw for a '\n' given the previously rendered
// character.
func (n NewLine) Char(prev rune) rune {
	switch n.Kind {
	case NewLineAlwaysAs:
		return n.Glyph
	case NewLineAfterSpaceAs:
		if prev == ' ' || prev == '\t' {
			return n.Glyph
		}
	}
	return ' '
}

// ScrollOff is the minimum distance kept between the main cursor and the
// edges of its label.
type ScrollOff struct {
	X int
	Y int
}

// RuneRange is an inclusive range of word-forming runes.
type RuneRange struct {
	Lo, Hi rune
}

// WordChars is the set of runes considered part of a word.
type WordChars []RuneRange

// Contains reports whether r is a word-forming rune.
func (w WordChars) Contains(r rune) bool {
	for _, rr := range w {
		if r >= rr.Lo && r <= rr.Hi {
			return true
		}
	}
	return false
}

// DefaultWordChars covers alphanumerics and underscore.
func DefaultWordChars() WordChars {
	return WordChars{{'a', 'z'}, {'A', 'Z'}, {'0', '9'}, {'_', '_'}}
}

// PrintCfg is the complete per-view rendering configuration.
type PrintCfg struct {
	WrapMethod WrapMethod
	IndentWrap bool
	TabStops   TabStops
	NewLine    NewLine
	ScrollOff  ScrollOff
	WordChars  WordChars
}

// Default returns the configuration used when no file overrides it.
func Default() PrintCfg {
	return PrintCfg{
		WrapMethod: WrapMethod{Kind: WrapWidth},
		IndentWrap: true,
		TabStops:   TabStops{Step: 4},
		NewLine:    NewLine{Kind: NewLineBlank},
		ScrollOff:  ScrollOff{X: 3, Y: 3},
		WordChars:  DefaultWordChars(),
	}
}
