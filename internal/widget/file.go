package widget

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/xonecas/quill/internal/cfg"
	"github.com/xonecas/quill/internal/cursor"
	"github.com/xonecas/quill/internal/forms"
	"github.com/xonecas/quill/internal/history"
	"github.com/xonecas/quill/internal/term"
	"github.com/xonecas/quill/internal/text"
)

// File is the canonical scheme-input widget: a text with cursors, history
// and per-view scroll state, loaded from and written back to one path.
type File struct {
	path string
	name string

	text    *text.Text
	cursors *cursor.Cursors
	history *history.History
	helper  *cursor.Helper

	cfg  cfg.PrintCfg
	info term.PrintInfo

	unsaved bool
	// Line endings are normalized on load and restored on save.
	crlf           bool
	noFinalNewline bool
}

// Open reads the file at path. A missing file opens empty and unmodified,
// with no error; an unreadable one opens empty with the unsaved marker set,
// and the error is returned for notification.
func Open(path string, c cfg.PrintCfg) (*File, error) {
	Once("file", func() {
		forms.IDOf("FileName")
		forms.IDOf("MainSelection")
		forms.IDOf("ExtraSelection")
	})

	f := &File{
		path: path,
		name: filepath.Base(path),
		cfg:  c,
	}
	var loadErr error
	raw, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			loadErr = text.WrapErr(err, "could not read %s", path)
			log.Warn().Err(err).Str("path", path).Msg("open failed")
		}
		f.unsaved = !os.IsNotExist(err)
		raw = nil
	}
	content := string(raw)
	if strings.Contains(content, "\r\n") {
		f.crlf = true
		content = strings.ReplaceAll(content, "\r\n", "\n")
	}
	f.noFinalNewline = len(content) > 0 && !strings.HasSuffix(content, "\n")

	f.text = text.FromString(content)
	f.cursors = cursor.NewSet()
	f.history = history.New()
	f.helper = cursor.NewHelper(f.text, f.cursors, f.history)
	f.text.AddCursorTags(f.cursors.Carets()...)
	return f, loadErr
}

// Scratch returns an unnamed, empty file.
func Scratch(c cfg.PrintCfg) *File {
	f, _ := Open("", c)
	f.name = "*scratch*"
	return f
}

// Save writes the content back, restoring the original line endings and
// final-newline state.
func (f *File) Save() error {
	if f.path == "" {
		return text.Errorf("no file to write")
	}
	content := f.text.String()
	if f.noFinalNewline {
		content = strings.TrimSuffix(content, "\n")
	}
	if f.crlf {
		content = strings.ReplaceAll(content, "\n", "\r\n")
	}
	if err := os.WriteFile(f.path, []byte(content), 0o644); err != nil {
		return text.WrapErr(err, "could not write %s", f.path)
	}
	f.unsaved = false
	return nil
}

// Update implements Widget: scrolls the view to the main caret.
func (f *File) Update(a *term.Area) {
	f.helper.SetPrintCfg(f.cfg, a.Width(), a.Height())
	f.info.Update(f.cursors.Main().Caret(), f.text, f.cfg, a.Width(), a.Height())
}

// Text implements Widget.
func (f *File) Text() *text.Text { return f.text }

// PrintCfg implements Widget.
func (f *File) PrintCfg() cfg.PrintCfg { return f.cfg }

// Kind implements Widget.
func (f *File) Kind() Kind { return SchemeInput }

// PrintInfo implements Scroller.
func (f *File) PrintInfo() *term.PrintInfo { return &f.info }

// Helper returns the multi-cursor engine of the file.
func (f *File) Helper() *cursor.Helper { return f.helper }

// Cursors returns the cursor set.
func (f *File) Cursors() *cursor.Cursors { return f.cursors }

// Name returns the display name.
func (f *File) Name() string { return f.name }

// Path returns the backing path, empty for scratch files.
func (f *File) Path() string { return f.path }

// Unsaved reports whether the buffer differs from the file on disk.
func (f *File) Unsaved() bool { return f.unsaved }

// Touch marks the buffer as modified. Called by the input scheme after
// edits.
func (f *File) Touch() { f.unsaved = true }
