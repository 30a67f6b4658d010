package text

import (
	"fmt"

	"github.com/xonecas/quill/internal/forms"
)

// Builder produces a Text by appending parts in order, balancing form and
// alignment tags: a push schedules its pop for the current end of text, and
// alignment starts schedule their end markers the same way.
type Builder struct {
	t      *Text
	marker Marker
	forms  []forms.ID
	aligns []TagKind // pending end-align kinds, LIFO
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{t: New(), marker: NewMarker()}
}

// Text appends a string.
func (b *Builder) Text(s string) *Builder {
	end := b.t.buf.Len()
	b.t.buf.Splice(end, end, []byte(s))
	return b
}

// Textf appends a formatted string.
func (b *Builder) Textf(format string, args ...any) *Builder {
	return b.Text(fmt.Sprintf(format, args...))
}

// Push applies a form from here until its pop, or until Finish.
func (b *Builder) Push(id forms.ID) *Builder {
	b.t.tags.Insert(b.t.buf.Len(), PushForm(id), b.marker)
	b.forms = append(b.forms, id)
	return b
}

// Pop closes the most recent open form push.
func (b *Builder) Pop() *Builder {
	if n := len(b.forms); n > 0 {
		id := b.forms[n-1]
		b.forms = b.forms[:n-1]
		b.t.tags.Insert(b.t.buf.Len(), PopForm(id), b.marker)
	}
	return b
}

// AlignCenter starts centered alignment until EndAlign or Finish.
func (b *Builder) AlignCenter() *Builder {
	return b.startAlign(TagStartAlignCenter, TagEndAlignCenter)
}

// AlignRight starts right alignment until EndAlign or Finish.
func (b *Builder) AlignRight() *Builder {
	return b.startAlign(TagStartAlignRight, TagEndAlignRight)
}

func (b *Builder) startAlign(start, end TagKind) *Builder {
	b.t.tags.Insert(b.t.buf.Len(), Tag{Kind: start}, b.marker)
	b.aligns = append(b.aligns, end)
	return b
}

// EndAlign closes the most recent alignment range.
func (b *Builder) EndAlign() *Builder {
	if n := len(b.aligns); n > 0 {
		kind := b.aligns[n-1]
		b.aligns = b.aligns[:n-1]
		b.t.tags.Insert(b.t.buf.Len(), Tag{Kind: kind}, b.marker)
	}
	return b
}

// Ghost splices a nested text at the current end.
func (b *Builder) Ghost(t *Text) *Builder {
	b.t.tags.Insert(b.t.buf.Len(), GhostText(t), b.marker)
	return b
}

// Finish closes every open form and alignment and returns the text. The
// builder must not be reused afterwards.
func (b *Builder) Finish() *Text {
	for len(b.forms) > 0 {
		b.Pop()
	}
	for len(b.aligns) > 0 {
		b.EndAlign()
	}
	t := b.t
	b.t = nil
	return t
}

// Styled is shorthand for a one-form text: push, text, finish.
func Styled(id forms.ID, s string) *Text {
	return NewBuilder().Push(id).Text(s).Finish()
}
