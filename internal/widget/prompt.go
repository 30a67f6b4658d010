package widget

import (
	tea "charm.land/bubbletea/v2"

	"github.com/xonecas/quill/internal/cfg"
	"github.com/xonecas/quill/internal/forms"
	"github.com/xonecas/quill/internal/layout"
	"github.com/xonecas/quill/internal/term"
	"github.com/xonecas/quill/internal/text"
)

// Prompt is a direct-input one-line widget: it handles its own keys
// without the multi-cursor engine, collecting a line of input for a
// callback. It backs the command line.
type Prompt struct {
	prefix string
	buf    []rune
	at     int // rune offset of the prompt caret

	cfg  cfg.PrintCfg
	text *text.Text
}

// PromptResult reports what a key did to the prompt.
type PromptResult int

const (
	PromptPending PromptResult = iota
	PromptSubmitted
	PromptCancelled
)

// NewPrompt returns a prompt with the given prefix glyph.
func NewPrompt(prefix string) *Prompt {
	Once("prompt", func() {
		forms.IDOf("Accent")
	})
	c := cfg.Default()
	c.WrapMethod = cfg.WrapMethod{Kind: cfg.NoWrap}
	c.ScrollOff = cfg.ScrollOff{X: 3}
	return &Prompt{prefix: prefix, cfg: c}
}

// HandleKey processes one key event. On submission the collected line is
// returned alongside the result.
func (p *Prompt) HandleKey(msg tea.KeyPressMsg) (PromptResult, string) {
	switch msg.Keystroke() {
	case "enter":
		line := string(p.buf)
		p.reset()
		return PromptSubmitted, line
	case "esc":
		p.reset()
		return PromptCancelled, ""
	case "backspace":
		if p.at > 0 {
			p.buf = append(p.buf[:p.at-1], p.buf[p.at:]...)
			p.at--
		}
	case "delete":
		if p.at < len(p.buf) {
			p.buf = append(p.buf[:p.at], p.buf[p.at+1:]...)
		}
	case "left":
		if p.at > 0 {
			p.at--
		}
	case "right":
		if p.at < len(p.buf) {
			p.at++
		}
	case "home", "ctrl+a":
		p.at = 0
	case "end", "ctrl+e":
		p.at = len(p.buf)
	default:
		if msg.Text != "" {
			for _, r := range msg.Text {
				p.buf = append(p.buf[:p.at], append([]rune{r}, p.buf[p.at:]...)...)
				p.at++
			}
		}
	}
	return PromptPending, ""
}

func (p *Prompt) reset() {
	p.buf = nil
	p.at = 0
}

// PushSpecs places the prompt across the window bottom.
func (p *Prompt) PushSpecs() layout.PushSpecs {
	return layout.PushBelow().WithLen(1)
}

// Update implements Widget: rebuilds the styled line with a caret tag.
func (p *Prompt) Update(a *term.Area) {
	b := text.NewBuilder().
		Push(forms.IDOf("Accent")).Text(p.prefix).Pop().
		Text(string(p.buf))
	p.text = b.Finish()
	caret := text.Caret{
		Byte: len(p.prefix) + len(string(p.buf[:p.at])),
		Main: true,
	}
	p.text.AddCursorTags(caret)
}

// Text implements Widget.
func (p *Prompt) Text() *text.Text {
	if p.text == nil {
		return text.New()
	}
	return p.text
}

// PrintCfg implements Widget.
func (p *Prompt) PrintCfg() cfg.PrintCfg { return p.cfg }

// Kind implements Widget.
func (p *Prompt) Kind() Kind { return DirectInput }
