package tui

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/twiced-technology-gmbh/todocurses/internal/config"
	"github.com/twiced-technology-gmbh/todocurses/internal/listview"
	"github.com/twiced-technology-gmbh/todocurses/internal/todolist"
)

func fixedClock() time.Time {
	return time.Date(2026, time.October, 18, 9, 30, 0, 0, time.UTC)
}

func setupModel(t *testing.T, content string) (*Model, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "todo.txt")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write todo file: %v", err)
	}
	list, err := todolist.Load(path, todolist.WithClock(fixedClock))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	m := New(list, config.NewDefault(), WithHelpStyle("notty"))
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return m, path
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m *Model, msg tea.Msg) tea.Cmd {
	t.Helper()
	_, cmd := m.Update(msg)
	return cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func selected(m *Model) string {
	if t := m.nav.Selected(); t != nil {
		return t.String()
	}
	return ""
}

func TestInitialProjectionAndSelection(t *testing.T) {
	m, _ := setupModel(t, "buy milk\n(A) write report")

	var got []string
	for _, r := range m.nav.Rows() {
		switch r := r.(type) {
		case listview.DividerRow:
			got = append(got, r.Label)
		case listview.TaskRow:
			got = append(got, r.Task.String())
		}
	}
	want := "A|(A) write report|N/A|buy milk"
	if strings.Join(got, "|") != want {
		t.Fatalf("rows = %q, want %q", strings.Join(got, "|"), want)
	}
	if selected(m) != "(A) write report" {
		t.Fatalf("selected = %q", selected(m))
	}
}

func TestToggleAndQuitArchives(t *testing.T) {
	m, path := setupModel(t, "(A) write report\nbuy milk")

	send(t, m, runeKey("j"))
	if selected(m) != "buy milk" {
		t.Fatalf("selected = %q after j", selected(m))
	}

	send(t, m, runeKey("x"))
	if got := readFile(t, path); got != "(A) write report\nx 2026-10-18 buy milk" {
		t.Fatalf("file after toggle = %q", got)
	}
	if selected(m) != "x 2026-10-18 buy milk" {
		t.Fatalf("selection did not follow the toggled task: %q", selected(m))
	}

	if cmd := send(t, m, runeKey("q")); !isQuit(cmd) {
		t.Fatal("q should quit")
	}
	if m.state != stateTerminating {
		t.Fatalf("state = %v, want terminating", m.state)
	}
	if got := readFile(t, path); got != "(A) write report" {
		t.Fatalf("active file after quit = %q", got)
	}
	donePath := filepath.Join(filepath.Dir(path), "done.txt")
	if got := readFile(t, donePath); got != "\nx 2026-10-18 buy milk" {
		t.Fatalf("done file = %q", got)
	}

	// Keys after quitting are ignored, so archival happens once.
	if cmd := send(t, m, runeKey("q")); cmd != nil {
		t.Fatal("expected no command after terminating")
	}
	if got := readFile(t, donePath); got != "\nx 2026-10-18 buy milk" {
		t.Fatalf("done file changed after second quit: %q", got)
	}
	if m.Err() != nil {
		t.Fatalf("unexpected error: %v", m.Err())
	}
}

func TestMoveRefusedAtTopAlerts(t *testing.T) {
	m, _ := setupModel(t, "(A) write report\nbuy milk")

	var bell bytes.Buffer
	m.bell = true
	m.bellOut = &bell

	cmd := send(t, m, runeKey("k"))
	if !m.alert {
		t.Fatal("expected alert when moving up from the first task")
	}
	if selected(m) != "(A) write report" {
		t.Fatalf("cursor moved: %q", selected(m))
	}
	if cmd == nil {
		t.Fatal("expected a bell command")
	}
	cmd()
	if bell.String() != "\a" {
		t.Fatalf("bell output = %q", bell.String())
	}

	send(t, m, runeKey("j"))
	if m.alert {
		t.Fatal("alert should clear on the next key")
	}
}

func TestUnknownKeyDiagnostic(t *testing.T) {
	m, _ := setupModel(t, "buy milk")

	send(t, m, runeKey("z"))
	if m.message != "[unknown key `z'=122]" {
		t.Fatalf("message = %q", m.message)
	}
	if !strings.Contains(m.View(), "unknown key") {
		t.Fatal("diagnostic not rendered")
	}

	send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if !strings.HasPrefix(m.message, "[unknown key `tab'=") {
		t.Fatalf("message = %q", m.message)
	}
}

func TestPriorityChangeReanchors(t *testing.T) {
	m, path := setupModel(t, "(A) write report\nbuy milk")

	send(t, m, runeKey("j"))
	send(t, m, runeKey("K"))
	if got := readFile(t, path); got != "(A) write report\n(Z) buy milk" {
		t.Fatalf("file = %q", got)
	}
	if selected(m) != "(Z) buy milk" {
		t.Fatalf("selected = %q", selected(m))
	}

	send(t, m, runeKey("J"))
	if selected(m) != "buy milk" {
		t.Fatalf("selected after lowering = %q", selected(m))
	}
}

func TestPriorityAtCapIsSilentNoOp(t *testing.T) {
	m, path := setupModel(t, "(A) write report")

	send(t, m, runeKey("K"))
	if m.alert {
		t.Fatal("raising A should not alert")
	}
	if got := readFile(t, path); got != "(A) write report" {
		t.Fatalf("file changed: %q", got)
	}
}

func TestAddTask(t *testing.T) {
	m, path := setupModel(t, "(A) write report")

	send(t, m, runeKey("n"))
	if m.state != stateEditingNewTask {
		t.Fatalf("state = %v, want editing", m.state)
	}
	send(t, m, runeKey("call mom"))
	send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.state != stateRunning {
		t.Fatalf("state = %v after enter", m.state)
	}
	if got := readFile(t, path); got != "(A) write report\n2026-10-18 call mom" {
		t.Fatalf("file = %q", got)
	}
	if selected(m) != "2026-10-18 call mom" {
		t.Fatalf("selected = %q", selected(m))
	}
}

func TestAddKeysAreTextWhileEditing(t *testing.T) {
	m, path := setupModel(t, "buy milk")

	send(t, m, runeKey("n"))
	// q and x are list bindings but must be typed into the field here.
	send(t, m, runeKey("q"))
	send(t, m, runeKey("x"))
	if m.state != stateEditingNewTask {
		t.Fatal("list keys must not leave add mode")
	}
	if m.input.Value() != "qx" {
		t.Fatalf("input = %q", m.input.Value())
	}

	send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.state != stateRunning {
		t.Fatalf("state = %v after esc", m.state)
	}
	if got := readFile(t, path); got != "buy milk" {
		t.Fatalf("cancelled add wrote the file: %q", got)
	}
}

func TestAddEmptyTextIsDiscarded(t *testing.T) {
	m, path := setupModel(t, "buy milk")

	send(t, m, runeKey("n"))
	send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.state != stateRunning || m.message == "" {
		t.Fatalf("state = %v, message = %q", m.state, m.message)
	}
	if got := readFile(t, path); got != "buy milk" {
		t.Fatalf("file = %q", got)
	}
}

func TestEmptyListAlertsOnActions(t *testing.T) {
	m, _ := setupModel(t, "")

	send(t, m, runeKey("j"))
	if !m.alert {
		t.Fatal("expected alert on move in empty list")
	}
	send(t, m, runeKey("x"))
	if !m.alert {
		t.Fatal("expected alert on toggle with no selection")
	}
	if !strings.Contains(m.View(), "No tasks") {
		t.Fatal("empty hint not rendered")
	}
}

func TestNavigationKeys(t *testing.T) {
	m, _ := setupModel(t, "(A) a1\n(A) a2\n(B) b1\nplain")

	send(t, m, runeKey("l"))
	if selected(m) != "plain" {
		t.Fatalf("end selected %q", selected(m))
	}
	send(t, m, runeKey("h"))
	if selected(m) != "(A) a1" {
		t.Fatalf("home selected %q", selected(m))
	}
	send(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if selected(m) != "plain" {
		t.Fatalf("page down selected %q", selected(m))
	}
	send(t, m, tea.KeyMsg{Type: tea.KeyPgUp})
	if selected(m) != "(A) a1" {
		t.Fatalf("page up selected %q", selected(m))
	}
	send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if selected(m) != "(A) a2" {
		t.Fatalf("down arrow selected %q", selected(m))
	}
}

func TestIOErrorIsFatal(t *testing.T) {
	m, path := setupModel(t, "buy milk")

	if err := os.RemoveAll(filepath.Dir(path)); err != nil {
		t.Fatalf("remove dir: %v", err)
	}

	cmd := send(t, m, runeKey("x"))
	if !isQuit(cmd) {
		t.Fatal("an IO failure should quit")
	}
	if m.Err() == nil {
		t.Fatal("expected the fatal error to be recorded")
	}
	if m.state != stateTerminating {
		t.Fatalf("state = %v", m.state)
	}
}

func TestReloadPicksUpExternalEdits(t *testing.T) {
	m, path := setupModel(t, "buy milk")

	if err := os.WriteFile(path, []byte("buy milk\n(A) urgent"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	send(t, m, ReloadMsg{})

	if s := listview.Summarize(m.nav.Rows()); s.Tasks != 2 {
		t.Fatalf("tasks after reload = %d", s.Tasks)
	}
	if selected(m) != "buy milk" {
		t.Fatalf("selection should stay on buy milk, got %q", selected(m))
	}
}

func TestHelpScreen(t *testing.T) {
	m, _ := setupModel(t, "buy milk")

	send(t, m, runeKey("?"))
	if !m.showHelp {
		t.Fatal("? should open help")
	}
	if view := m.View(); !strings.Contains(view, "toggle done") {
		t.Fatalf("help view missing bindings:\n%s", view)
	}

	send(t, m, runeKey("?"))
	if m.showHelp {
		t.Fatal("? should close help")
	}
}

func TestCustomKeyBindings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todo.txt")
	if err := os.WriteFile(path, []byte("buy milk"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	list, err := todolist.Load(path, todolist.WithClock(fixedClock))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg := config.NewDefault()
	cfg.Keys = map[string][]string{config.ActionToggle: {"d"}}

	m := New(list, cfg)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	send(t, m, runeKey("x"))
	if m.message == "" {
		t.Fatal("x should be unbound after remapping toggle")
	}
	send(t, m, runeKey("d"))
	if got := readFile(t, path); got != "x 2026-10-18 buy milk" {
		t.Fatalf("file = %q", got)
	}
}
