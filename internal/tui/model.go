// Package tui implements the interactive todo list.
package tui

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/twiced-technology-gmbh/todocurses/internal/clierr"
	"github.com/twiced-technology-gmbh/todocurses/internal/config"
	"github.com/twiced-technology-gmbh/todocurses/internal/listview"
	"github.com/twiced-technology-gmbh/todocurses/internal/todo"
	"github.com/twiced-technology-gmbh/todocurses/internal/todolist"
)

// state is the dispatcher's input mode.
type state int

const (
	stateRunning state = iota
	stateEditingNewTask
	stateTerminating
)

const inputCharLimit = 1024

// Model is the top-level bubbletea model.
type Model struct {
	list  *todolist.List
	nav   *listview.Navigator
	keys  keyMap
	input textinput.Model
	help  help.Model
	state state

	pageSize  int
	bell      bool
	bellOut   io.Writer
	helpStyle string

	width     int
	height    int
	scrollOff int

	// message is the one-line diagnostic under the header; alert flashes
	// the status bar until the next key.
	message  string
	alert    bool
	showHelp bool

	// err is fatal: once set the program is quitting.
	err error
	log *slog.Logger
}

// Option configures a Model.
type Option func(*Model)

// WithLogger sets the logger for user actions.
func WithLogger(log *slog.Logger) Option {
	return func(m *Model) {
		if log != nil {
			m.log = log
		}
	}
}

// WithBellWriter sets where the terminal bell is written.
func WithBellWriter(w io.Writer) Option {
	return func(m *Model) { m.bellOut = w }
}

// WithHelpStyle sets the glamour style used for the help screen.
func WithHelpStyle(style string) Option {
	return func(m *Model) { m.helpStyle = style }
}

// New creates a Model over list using the key bindings and behaviour in cfg.
func New(list *todolist.List, cfg *config.Config, opts ...Option) *Model {
	input := textinput.New()
	input.Prompt = "new task> "
	input.Placeholder = "(A) call mom +family @phone"
	input.CharLimit = inputCharLimit

	m := &Model{
		list:      list,
		nav:       listview.NewNavigator(listview.Project(list.Tasks())),
		keys:      newKeyMap(cfg),
		input:     input,
		help:      help.New(),
		pageSize:  cfg.PageSizeOrDefault(),
		bell:      cfg.Bell,
		bellOut:   os.Stderr,
		helpStyle: "dark",
		log:       slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Err returns the fatal error that ended the program, if any.
func (m *Model) Err() error {
	return m.err
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = max(msg.Width-len(m.input.Prompt)-1, 0)
		m.ensureVisible()
		return m, nil
	case ReloadMsg:
		m.reload()
		return m, nil
	}

	if m.state == stateEditingNewTask {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC && m.state != stateTerminating {
		return m.quit()
	}

	switch m.state {
	case stateRunning:
		return m.handleListKey(msg)
	case stateEditingNewTask:
		return m.handleEditKey(msg)
	}
	return m, nil
}

func (m *Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.message = ""
	m.alert = false

	if m.showHelp {
		m.showHelp = false
		if key.Matches(msg, m.keys.Help) {
			return m, nil
		}
	}

	ok := true
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Down):
		ok = m.nav.MoveDown()
	case key.Matches(msg, m.keys.Up):
		ok = m.nav.MoveUp()
	case key.Matches(msg, m.keys.PageDown):
		ok = m.nav.PageDown(m.pageSize)
	case key.Matches(msg, m.keys.PageUp):
		ok = m.nav.PageUp(m.pageSize)
	case key.Matches(msg, m.keys.Home):
		m.nav.JumpToFirst()
	case key.Matches(msg, m.keys.End):
		m.nav.JumpToLast()
	case key.Matches(msg, m.keys.PriorityUp):
		return m.mutateSelected("raise priority", (*todo.Task).IncreasePriority)
	case key.Matches(msg, m.keys.PriorityDown):
		return m.mutateSelected("lower priority", (*todo.Task).DecreasePriority)
	case key.Matches(msg, m.keys.Toggle):
		today := m.list.Today()
		return m.mutateSelected("toggle", func(t *todo.Task) bool {
			t.ToggleCompletion(today)
			return true
		})
	case key.Matches(msg, m.keys.Add):
		return m.startAdd()
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	default:
		m.message = unknownKeyMessage(msg)
	}

	m.ensureVisible()
	if !ok {
		return m, m.alertUser()
	}
	return m, nil
}

// mutateSelected applies fn to the selected task and commits the change.
// fn reports whether it changed anything; an unchanged task is not saved.
func (m *Model) mutateSelected(action string, fn func(*todo.Task) bool) (tea.Model, tea.Cmd) {
	t := m.nav.Selected()
	if t == nil {
		return m, m.alertUser()
	}
	if !fn(t) {
		return m, nil
	}

	identity := t.String()
	if err := m.list.Commit(); err != nil {
		return m.fail(err)
	}
	m.log.Info("task updated", "action", action, "task", identity)
	m.refresh(identity)
	return m, nil
}

func (m *Model) startAdd() (tea.Model, tea.Cmd) {
	m.state = stateEditingNewTask
	m.input.Reset()
	return m, m.input.Focus()
}

func (m *Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.endEdit()
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		text := m.input.Value()
		m.endEdit()
		return m.addTask(text)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) endEdit() {
	m.state = stateRunning
	m.input.Blur()
	m.input.Reset()
}

func (m *Model) addTask(text string) (tea.Model, tea.Cmd) {
	t, err := m.list.Append(text)
	if err != nil {
		if clierr.HasCode(err, clierr.InvalidInput) {
			m.message = "nothing to add"
			return m, nil
		}
		return m.fail(err)
	}
	m.refresh(t.String())
	return m, nil
}

// quit archives completed tasks once and ends the program.
func (m *Model) quit() (tea.Model, tea.Cmd) {
	m.state = stateTerminating
	n, err := m.list.ArchiveCompleted()
	if err != nil {
		m.err = err
		m.log.Error("archiving on quit failed", "error", err)
		return m, tea.Quit
	}
	m.log.Info("quit", "archived", n)
	return m, tea.Quit
}

// fail records a fatal error and quits without archiving.
func (m *Model) fail(err error) (tea.Model, tea.Cmd) {
	m.state = stateTerminating
	m.err = err
	m.log.Error("fatal error", "error", err)
	return m, tea.Quit
}

// reload re-reads the file after an external change. A failed read keeps
// the current list on screen.
func (m *Model) reload() {
	if m.state == stateTerminating {
		return
	}
	identity := ""
	if t := m.nav.Selected(); t != nil {
		identity = t.String()
	}
	if err := m.list.Reload(); err != nil {
		m.message = "reload failed: " + err.Error()
		m.log.Warn("reload failed", "error", err)
		return
	}
	m.refresh(identity)
}

// refresh re-projects the list and puts the cursor back on identity.
func (m *Model) refresh(identity string) {
	m.nav.Reanchor(listview.Project(m.list.Tasks()), identity)
	m.ensureVisible()
}

func (m *Model) alertUser() tea.Cmd {
	m.alert = true
	if !m.bell || m.bellOut == nil {
		return nil
	}
	w := m.bellOut
	return func() tea.Msg {
		_, _ = io.WriteString(w, "\a")
		return nil
	}
}

// unknownKeyMessage describes a key with no binding, e.g. [unknown key `z'=122].
func unknownKeyMessage(msg tea.KeyMsg) string {
	code := int(msg.Type)
	if msg.Type == tea.KeyRunes && len(msg.Runes) == 1 {
		code = int(msg.Runes[0])
	}
	return fmt.Sprintf("[unknown key `%s'=%d]", msg.String(), code)
}

// listHeight is the number of row lines that fit between the header and
// the status and footer lines.
func (m *Model) listHeight() int {
	const chrome = 4 // header, diagnostic, status, footer
	return max(m.height-chrome, 1)
}

// ensureVisible scrolls so the selected row, and the divider right above
// it, are on screen.
func (m *Model) ensureVisible() {
	idx := m.nav.Index()
	if idx < 0 {
		m.scrollOff = 0
		return
	}
	top := idx
	if idx > 0 {
		if _, ok := m.nav.Rows()[idx-1].(listview.DividerRow); ok {
			top = idx - 1
		}
	}

	vis := m.listHeight()
	switch {
	case top < m.scrollOff:
		m.scrollOff = top
	case idx >= m.scrollOff+vis:
		m.scrollOff = idx - vis + 1
	}
	m.scrollOff = max(min(m.scrollOff, len(m.nav.Rows())-1), 0)
}

// --- Messages ---

// ReloadMsg is sent by the file watcher to trigger a reload from disk.
type ReloadMsg struct{}
