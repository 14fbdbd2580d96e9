package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/twiced-technology-gmbh/todocurses/internal/date"
	"github.com/twiced-technology-gmbh/todocurses/internal/listview"
	"github.com/twiced-technology-gmbh/todocurses/internal/todo"
)

// JSON writes data as indented JSON to the given writer.
func JSON(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// ErrorResponse is the JSON envelope for structured error output.
type ErrorResponse struct {
	Error   string         `json:"error"`
	Code    string         `json:"code"`
	Details map[string]any `json:"details,omitempty"`
}

// JSONError writes a structured error to the given writer as JSON.
func JSONError(w io.Writer, code, msg string, details map[string]any) {
	resp := ErrorResponse{Error: msg, Code: code, Details: details}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(resp) // best-effort; if writer fails, nothing we can do
}

// ListResponse is the JSON form of a projected todo list.
type ListResponse struct {
	File    string           `json:"file"`
	Summary listview.Summary `json:"summary"`
	Groups  []GroupJSON      `json:"groups"`
}

// GroupJSON is one priority group.
type GroupJSON struct {
	Priority string     `json:"priority"`
	Tasks    []TaskJSON `json:"tasks"`
}

// TaskJSON is one task with its parsed fields.
type TaskJSON struct {
	Line        string     `json:"line"`
	Priority    string     `json:"priority,omitempty"`
	Completed   bool       `json:"completed"`
	CompletedOn *date.Date `json:"completed_on,omitempty"`
	CreatedOn   *date.Date `json:"created_on,omitempty"`
	Body        string     `json:"body"`
}

// NewTaskJSON converts a task to its JSON form.
func NewTaskJSON(t *todo.Task) TaskJSON {
	return TaskJSON{
		Line:        t.String(),
		Priority:    t.PriorityString(),
		Completed:   t.Completed,
		CompletedOn: t.CompletedOn,
		CreatedOn:   t.CreatedOn,
		Body:        t.Body,
	}
}

// NewListResponse groups rows the same way the list view shows them.
func NewListResponse(file string, rows []listview.Row) ListResponse {
	resp := ListResponse{
		File:    file,
		Summary: listview.Summarize(rows),
		Groups:  []GroupJSON{},
	}
	for _, r := range rows {
		switch r := r.(type) {
		case listview.DividerRow:
			resp.Groups = append(resp.Groups, GroupJSON{Priority: r.Label, Tasks: []TaskJSON{}})
		case listview.TaskRow:
			if len(resp.Groups) == 0 {
				continue
			}
			g := &resp.Groups[len(resp.Groups)-1]
			g.Tasks = append(g.Tasks, NewTaskJSON(r.Task))
		}
	}
	return resp
}
