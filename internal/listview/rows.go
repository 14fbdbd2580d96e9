// Package listview turns a sorted task list into display rows and tracks the
// cursor over them.
package listview

import "github.com/twiced-technology-gmbh/todocurses/internal/todo"

// NoPriorityLabel labels the divider above tasks without a priority.
const NoPriorityLabel = "N/A"

// Row is one line of the list view: either a TaskRow or a DividerRow.
type Row interface {
	row()
}

// TaskRow shows a task. It is the only selectable row kind.
type TaskRow struct {
	Task *todo.Task
}

// DividerRow is a non-selectable header above a run of equal-priority tasks.
type DividerRow struct {
	Label string
}

func (TaskRow) row()    {}
func (DividerRow) row() {}

// Project builds the rows for tasks, which must already be sorted. Each
// maximal run of tasks sharing a priority gets one divider.
func Project(tasks []*todo.Task) []Row {
	rows := make([]Row, 0, len(tasks))
	for i, t := range tasks {
		if i == 0 || tasks[i-1].Priority != t.Priority {
			rows = append(rows, DividerRow{Label: groupLabel(t)})
		}
		rows = append(rows, TaskRow{Task: t})
	}
	return rows
}

func groupLabel(t *todo.Task) string {
	if !t.HasPriority() {
		return NoPriorityLabel
	}
	return t.PriorityString()
}

// Summary holds counts over a projected list.
type Summary struct {
	Tasks     int `json:"tasks"`
	Completed int `json:"completed"`
	Groups    int `json:"groups"`
}

// Summarize counts tasks, completed tasks and priority groups in rows.
func Summarize(rows []Row) Summary {
	var s Summary
	for _, r := range rows {
		switch r := r.(type) {
		case TaskRow:
			s.Tasks++
			if r.Task.Completed {
				s.Completed++
			}
		case DividerRow:
			s.Groups++
		}
	}
	return s
}

// Open returns the number of tasks not yet completed.
func (s Summary) Open() int {
	return s.Tasks - s.Completed
}
