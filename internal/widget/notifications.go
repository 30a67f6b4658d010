package widget

import (
	"errors"

	"github.com/xonecas/quill/internal/cfg"
	"github.com/xonecas/quill/internal/forms"
	"github.com/xonecas/quill/internal/layout"
	"github.com/xonecas/quill/internal/term"
	"github.com/xonecas/quill/internal/text"
)

// Notifications is the single-line styled message sink for command results
// and user-visible errors.
type Notifications struct {
	cfg  cfg.PrintCfg
	text *text.Text
}

// NewNotifications returns an empty sink.
func NewNotifications() *Notifications {
	Once("notifications", func() {
		forms.IDOf("Notifications")
		forms.IDOf("Error")
	})
	c := cfg.Default()
	c.WrapMethod = cfg.WrapMethod{Kind: cfg.NoWrap}
	c.ScrollOff = cfg.ScrollOff{}
	return &Notifications{cfg: c, text: text.New()}
}

// PushSpecs places the notifications row across the window bottom, below
// the status line.
func (n *Notifications) PushSpecs() layout.PushSpecs {
	return layout.PushBelow().WithLen(1)
}

// Notify shows a styled message.
func (n *Notifications) Notify(t *text.Text) {
	n.text = t
}

// NotifyError routes an error: styled errors keep their text, plain ones
// are wrapped in the Error form.
func (n *Notifications) NotifyError(err error) {
	var styled *text.Error
	if errors.As(err, &styled) {
		n.text = styled.Text()
		return
	}
	n.text = text.Styled(forms.IDOf("Error"), err.Error())
}

// Clear empties the message line.
func (n *Notifications) Clear() {
	n.text = text.New()
}

// Update implements Widget.
func (n *Notifications) Update(a *term.Area) {}

// Text implements Widget.
func (n *Notifications) Text() *text.Text { return n.text }

// PrintCfg implements Widget.
func (n *Notifications) PrintCfg() cfg.PrintCfg { return n.cfg }

// Kind implements Widget.
func (n *Notifications) Kind() Kind { return NoInput }
