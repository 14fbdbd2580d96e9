package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/twiced-technology-gmbh/todocurses/internal/listview"
	"github.com/twiced-technology-gmbh/todocurses/internal/todo"
)

// --- Styles ---

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62"))

	dividerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236"))

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("226"))

	doneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Strikethrough(true)

	messageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

	alertStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	priorityStyles = map[byte]lipgloss.Style{
		'A': lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		'B': lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
		'C': lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
	}
)

// --- View rendering ---

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	if m.showHelp {
		return m.viewHelp()
	}

	lines := make([]string, 0, m.listHeight()+4) //nolint:mnd // chrome lines
	lines = append(lines, m.renderHeader(), m.renderDiagnostic())
	lines = append(lines, m.renderRows()...)
	lines = append(lines, m.renderStatus(), m.renderFooter())
	return strings.Join(lines, "\n")
}

func (m *Model) renderHeader() string {
	s := listview.Summarize(m.nav.Rows())
	title := fmt.Sprintf(" todocurses  %s  %d tasks, %d done ",
		filepath.Base(m.list.Path()), s.Tasks, s.Completed)
	return headerStyle.Width(m.width).Render(truncate(title, m.width))
}

func (m *Model) renderDiagnostic() string {
	switch {
	case m.err != nil:
		return errorStyle.Render(truncate("Error: "+m.err.Error(), m.width))
	case m.message != "":
		return messageStyle.Render(truncate(m.message, m.width))
	}
	return ""
}

// renderRows returns exactly listHeight lines so the footer stays put.
func (m *Model) renderRows() []string {
	height := m.listHeight()
	out := make([]string, 0, height)

	rows := m.nav.Rows()
	if len(rows) == 0 {
		hint := "No tasks. Press " + m.keys.Add.Help().Key + " to add one."
		out = append(out, dimStyle.Render(truncate(hint, m.width)))
	}

	for i := m.scrollOff; i < len(rows) && len(out) < height; i++ {
		switch r := rows[i].(type) {
		case listview.DividerRow:
			out = append(out, m.renderDivider(r))
		case listview.TaskRow:
			out = append(out, m.renderTask(r.Task, i == m.nav.Index()))
		}
	}

	for len(out) < height {
		out = append(out, "")
	}
	return out
}

func (m *Model) renderDivider(r listview.DividerRow) string {
	label := " " + r.Label + " "
	return dividerStyle.Width(m.width).Render(truncate(label, m.width))
}

func (m *Model) renderTask(t *todo.Task, selected bool) string {
	prefix := "  "
	if selected {
		prefix = "> "
	}
	line := truncate(prefix+t.String(), m.width)

	switch {
	case selected:
		return selectedStyle.Render(line)
	case t.Completed:
		return doneStyle.Render(line)
	}
	if st, ok := priorityStyles[t.Priority]; ok {
		return st.Render(line)
	}
	return line
}

func (m *Model) renderStatus() string {
	if m.state == stateEditingNewTask {
		return m.input.View()
	}
	if m.alert {
		return alertStyle.Render("!")
	}
	return ""
}

func (m *Model) renderFooter() string {
	if m.state == stateEditingNewTask {
		return m.help.View(editKeys{m.keys})
	}
	return m.help.View(m.keys)
}

// viewHelp renders the key reference as markdown.
func (m *Model) viewHelp() string {
	md := helpMarkdown(m.keys)
	out, err := glamour.Render(md, m.helpStyle)
	if err != nil {
		return md
	}
	return strings.TrimSpace(out) + "\n\n" + dimStyle.Render("  press any key to return")
}

func helpMarkdown(k keyMap) string {
	var b strings.Builder
	b.WriteString("# todocurses\n\n")
	b.WriteString("Tasks are grouped by priority, highest first. ")
	b.WriteString("Completed tasks move to the done file when you quit.\n\n")
	b.WriteString("| key | action |\n|---|---|\n")
	for _, group := range k.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			fmt.Fprintf(&b, "| `%s` | %s |\n", h.Key, h.Desc)
		}
	}
	fmt.Fprintf(&b, "\nWhile adding a task, `%s` saves it and `%s` cancels.\n",
		k.Submit.Help().Key, k.Cancel.Help().Key)
	return b.String()
}

// truncate cuts s to width cells, marking the cut with an ellipsis.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "…")
}
