package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/twiced-technology-gmbh/todocurses/internal/date"
	"github.com/twiced-technology-gmbh/todocurses/internal/listview"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("244"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	dividerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Strikethrough(true)

	// Priority colors matching the TUI palette. Letters past C are plain.
	priorityStyles = map[string]lipgloss.Style{
		"A": lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		"B": lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
		"C": lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
	}
)

// DisableColor strips all styling from table output.
func DisableColor() {
	headerStyle = lipgloss.NewStyle()
	dimStyle = lipgloss.NewStyle()
	dividerStyle = lipgloss.NewStyle()
	doneStyle = lipgloss.NewStyle()
	priorityStyles = map[string]lipgloss.Style{}
}

// RowsTable renders projected rows as a table, with each priority group
// under its own heading.
func RowsTable(w io.Writer, rows []listview.Row) {
	s := listview.Summarize(rows)
	if s.Tasks == 0 {
		fmt.Fprintln(os.Stderr, "No tasks found.")
		return
	}

	const doneW, createdW = 12, 12
	header := fmt.Sprintf("  %-*s %-*s %s", doneW, "DONE", createdW, "CREATED", "TASK")
	fmt.Fprintln(w, headerStyle.Render(header))

	for _, r := range rows {
		switch r := r.(type) {
		case listview.DividerRow:
			fmt.Fprintln(w, dividerStyle.Render(dividerLabel(r.Label)))
		case listview.TaskRow:
			t := r.Task
			body := t.Body
			if t.Completed {
				body = doneStyle.Render(body)
			}
			row := fmt.Sprintf("  %s %s %s",
				padRight(dateOrDash(t.CompletedOn), doneW),
				padRight(dateOrDash(t.CreatedOn), createdW),
				body)
			fmt.Fprintln(w, strings.TrimRight(row, " "))
		}
	}
}

// SummaryTable prints the counts as a small dashboard.
func SummaryTable(w io.Writer, file string, s listview.Summary) {
	fmt.Fprintln(w, lipgloss.NewStyle().Bold(true).Render(file))
	fmt.Fprintf(w, "  %-10s %d\n", "Tasks:", s.Tasks)
	fmt.Fprintf(w, "  %-10s %d\n", "Open:", s.Open())
	fmt.Fprintf(w, "  %-10s %d\n", "Done:", s.Completed)
	fmt.Fprintf(w, "  %-10s %d\n", "Groups:", s.Groups)
}

// Messagef prints a simple formatted message line.
func Messagef(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format+"\n", args...)
}

func dividerLabel(label string) string {
	if label == listview.NoPriorityLabel {
		return "── " + label
	}
	return "── " + styledValue(label, priorityStyles)
}

func dateOrDash(d *date.Date) string {
	if d == nil {
		return dimStyle.Render("--")
	}
	return d.String()
}

// padRight pads s with spaces to the given visible width, accounting for ANSI
// escape codes that are invisible but consume bytes.
func padRight(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}

// styledValue renders s using a matching style from the map, or returns s unchanged.
func styledValue(s string, styles map[string]lipgloss.Style) string {
	if st, ok := styles[s]; ok {
		return st.Render(s)
	}
	return s
}
