package output

import (
	"fmt"
	"io"
	"os"

	"github.com/twiced-technology-gmbh/todocurses/internal/listview"
)

// RowsCompact prints the tasks as plain todo.txt lines in display order.
func RowsCompact(w io.Writer, rows []listview.Row) {
	s := listview.Summarize(rows)
	if s.Tasks == 0 {
		fmt.Fprintln(os.Stderr, "No tasks found.")
		return
	}

	for _, r := range rows {
		if tr, ok := r.(listview.TaskRow); ok {
			fmt.Fprintln(w, tr.Task.String())
		}
	}
}

// SummaryCompact prints the counts on one line.
func SummaryCompact(w io.Writer, file string, s listview.Summary) {
	fmt.Fprintf(w, "%s: %d tasks, %d open, %d done\n", file, s.Tasks, s.Open(), s.Completed)
}
