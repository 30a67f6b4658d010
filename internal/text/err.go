package text

import (
	"fmt"

	"github.com/xonecas/quill/internal/forms"
)

// Error is an error carrying a styled text for the notifications area.
type Error struct {
	text *Text
	wrap error
}

// Err wraps a styled text as an error.
func Err(t *Text) *Error {
	return &Error{text: t}
}

// Errorf builds a styled error message in the Error form.
func Errorf(format string, args ...any) *Error {
	msg := fmt.Sprintf(format, args...)
	return &Error{text: Styled(forms.IDOf("Error"), msg)}
}

// WrapErr attaches a cause to a styled error message.
func WrapErr(err error, format string, args ...any) *Error {
	e := Errorf(format+": %v", append(args, err)...)
	e.wrap = err
	return e
}

// Error returns the plain-text message.
func (e *Error) Error() string {
	return e.text.String()
}

// Text returns the styled message for display.
func (e *Error) Text() *Text {
	return e.text
}

// Unwrap returns the cause, if any.
func (e *Error) Unwrap() error {
	return e.wrap
}
