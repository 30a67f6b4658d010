// Package app wires the editor together: the bubbletea program, the window
// layout, the widgets and the modal input dispatch. One update loop owns
// everything; the program's input reader is the only other thread.
package app

import (
	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"

	"github.com/xonecas/quill/internal/cfg"
	"github.com/xonecas/quill/internal/layout"
	"github.com/xonecas/quill/internal/mode"
	"github.com/xonecas/quill/internal/term"
	"github.com/xonecas/quill/internal/text"
	"github.com/xonecas/quill/internal/widget"
)

// entry pairs a widget with its screen area and label.
type entry struct {
	w     widget.Widget
	area  *term.Area
	label *term.Label
	info  *term.PrintInfo
}

// Model is the bubbletea model of the whole editor.
type Model struct {
	c cfg.PrintCfg

	file   *widget.File
	files  []*widget.File
	gutter *widget.LineNumbers
	status *widget.StatusLine
	notify *widget.Notifications
	prompt *widget.Prompt

	mode       mode.Mode
	promptOpen bool
	quitting   bool

	ly      *layout.Layout
	entries []*entry
	screen  *term.Screen

	width, height int
	lastSeq       int
}

// New builds the editor over the given files; a scratch buffer is used when
// none are given.
func New(c cfg.PrintCfg, paths []string) Model {
	m := &Model{c: c, mode: mode.Normal{}}

	notify := widget.NewNotifications()
	for _, p := range paths {
		f, err := widget.Open(p, c)
		if err != nil {
			notify.NotifyError(err)
		}
		m.files = append(m.files, f)
	}
	if len(m.files) == 0 {
		m.files = append(m.files, widget.Scratch(c))
	}
	m.file = m.files[0]
	m.lastSeq = m.file.Text().Seq()

	m.gutter = widget.NewLineNumbers(m.file, widget.Hybrid)
	m.status = widget.NewStatusLine(m.file)
	m.notify = notify
	m.prompt = widget.NewPrompt(":")
	return *m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.handleResize(msg)
	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// handleResize rebuilds or re-solves the layout for a new screen size.
func (m *Model) handleResize(msg tea.WindowSizeMsg) {
	m.width, m.height = msg.Width, msg.Height
	if m.ly == nil {
		m.buildLayout()
	} else if err := m.ly.Resize(msg.Width, msg.Height); err != nil {
		// Fall back to a fresh layout rather than keep a broken solver.
		log.Warn().Err(err).Msg("resize rejected, rebuilding layout")
		m.buildLayout()
	}
	if m.screen == nil {
		m.screen = term.NewScreen(msg.Width, msg.Height)
	} else {
		m.screen.Resize(msg.Width, msg.Height)
	}
	m.syncAreas()
}

// buildLayout creates the rectangle tree: the file area bisected by the
// status line, the notifications row and the line-number gutter.
func (m *Model) buildLayout() {
	ly, err := layout.New(m.width, m.height, layout.FrameNone)
	if err != nil {
		log.Fatal().Err(err).Msg("could not create layout")
	}
	m.ly = ly
	m.entries = nil

	fileIdx := ly.Root()
	m.push(m.file, fileIdx, true)

	add := func(w widget.Widget, target int) int {
		p, _ := w.(widget.Pusher)
		idx, err := ly.Bisect(target, p.PushSpecs(), false)
		if err != nil {
			log.Warn().Err(err).Msg("widget placement rejected")
			return -1
		}
		m.push(w, idx, false)
		return idx
	}
	notifyIdx := add(m.notify, fileIdx)
	add(m.status, fileIdx)
	// The prompt takes over the notifications row while it is open.
	if notifyIdx >= 0 {
		m.push(m.prompt, notifyIdx, true)
	}
	add(m.gutter, fileIdx)
}

func (m *Model) push(w widget.Widget, index int, active bool) {
	area := term.NewArea(index, term.Coords{})
	area.SetChanger(changer{m})
	label := term.NewLabel(area)
	label.Active = active
	info := &term.PrintInfo{}
	if sc, ok := w.(widget.Scroller); ok {
		info = sc.PrintInfo()
	}
	m.entries = append(m.entries, &entry{w: w, area: area, label: label, info: info})
}

// syncAreas pushes solved rectangles into the areas.
func (m *Model) syncAreas() {
	for _, e := range m.entries {
		if c, ok := m.ly.Coords(e.area.Index); ok {
			e.area.SetCoords(c)
		}
	}
}

// changer routes constraint changes from areas back into the layout.
type changer struct {
	m *Model
}

// ChangeConstraint implements term.ConstraintChanger.
func (ch changer) ChangeConstraint(index int, v any) error {
	def, ok := v.(layout.Constraint)
	if !ok {
		return text.Errorf("unsupported constraint %T", v)
	}
	if err := ch.m.ly.ChangeConstraint(index, def); err != nil {
		return err
	}
	ch.m.syncAreas()
	return nil
}

// handleKey dispatches one key event.
func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.Keystroke()

	if m.promptOpen {
		res, line := m.prompt.HandleKey(msg)
		switch res {
		case widget.PromptSubmitted:
			m.promptOpen = false
			m.runCommand(line)
		case widget.PromptCancelled:
			m.promptOpen = false
		}
		if m.quitting {
			return m, tea.Quit
		}
		return m, nil
	}

	switch key {
	case "ctrl+c":
		return m, tea.Quit
	case "ctrl+s":
		if err := m.file.Save(); err != nil {
			m.notify.NotifyError(err)
		} else {
			m.notify.Notify(text.FromString("written " + m.file.Name()))
		}
		return m, nil
	case ":":
		if m.mode.Name() == "normal" {
			m.promptOpen = true
			return m, nil
		}
	}

	ev := mode.Event{Key: key, Text: msg.Text}
	m.mode = m.mode.SendKey(ev, m.file.Helper())
	if seq := m.file.Text().Seq(); seq != m.lastSeq {
		m.lastSeq = seq
		m.file.Touch()
	}
	return m, nil
}

// runCommand executes the minimal built-in command surface of the prompt.
func (m *Model) runCommand(line string) {
	switch line {
	case "":
	case "w":
		if err := m.file.Save(); err != nil {
			m.notify.NotifyError(err)
		} else {
			m.notify.Notify(text.FromString("written " + m.file.Name()))
		}
	case "q":
		m.quitting = true
	default:
		m.notify.NotifyError(text.Errorf("caller %q not found", line))
	}
}

// View implements tea.Model.
func (m Model) View() tea.View {
	v := tea.NewView(m.renderContent())
	v.AltScreen = true
	return v
}

// renderContent updates every widget, prints each label into the screen
// and serializes the frame.
func (m Model) renderContent() string {
	if m.width == 0 || m.screen == nil {
		return ""
	}
	m.screen.Clear()
	for _, e := range m.entries {
		e.w.Update(e.area)
	}
	m.syncAreas()
	for _, e := range m.entries {
		if e.w == m.prompt && !m.promptOpen {
			continue
		}
		if e.w == m.notify && m.promptOpen {
			continue
		}
		e.label.Print(m.screen, e.w.Text(), e.info, e.w.PrintCfg())
	}
	return m.screen.Frame()
}
