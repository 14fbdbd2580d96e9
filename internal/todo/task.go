// Package todo handles todo.txt task lines.
package todo

import (
	"regexp"
	"strings"

	"github.com/twiced-technology-gmbh/todocurses/internal/date"
)

const (
	// HighestPriority is the most urgent priority letter.
	HighestPriority byte = 'A'
	// LowestPriority is the least urgent priority letter.
	LowestPriority byte = 'Z'

	completedMarker = "x"
)

// priTagRe matches the pri:X tag that keeps a completed task's priority.
var priTagRe = regexp.MustCompile(`(^|\s)pri:([A-Z])(\s|$)`)

// Task is one todo.txt line.
type Task struct {
	// Priority is 'A'..'Z', or 0 when the task has none.
	Priority    byte
	Completed   bool
	CompletedOn *date.Date
	CreatedOn   *date.Date
	Body        string
}

// New builds a task from user input. Input without an explicit creation
// date is stamped with today.
func New(raw string, today date.Date) *Task {
	t := Parse(strings.TrimSpace(raw))
	if t.CreatedOn == nil && !t.Completed {
		t.CreatedOn = &today
	}
	return t
}

// Parse reads a single todo.txt line. It never fails: anything that is not
// a recognised prefix is kept verbatim in Body.
func Parse(line string) *Task {
	rest := strings.TrimRight(line, "\r\n")
	t := &Task{}

	if strings.HasPrefix(rest, completedMarker+" ") {
		t.Completed = true
		rest = rest[len(completedMarker)+1:]
		if d, r, ok := leadingDate(rest); ok {
			t.CompletedOn = &d
			rest = r
			if d, r, ok := leadingDate(rest); ok {
				t.CreatedOn = &d
				rest = r
			}
		}
		t.Body = rest
		return t
	}

	if p, r, ok := leadingPriority(rest); ok {
		t.Priority = p
		rest = r
	}
	if d, r, ok := leadingDate(rest); ok {
		t.CreatedOn = &d
		rest = r
	}
	t.Body = rest
	return t
}

// leadingDate splits a YYYY-MM-DD token off the front of s.
func leadingDate(s string) (date.Date, string, bool) {
	const n = len("2006-01-02")
	if len(s) < n || (len(s) > n && s[n] != ' ') {
		return date.Date{}, s, false
	}
	d, err := date.Parse(s[:n])
	if err != nil {
		return date.Date{}, s, false
	}
	if len(s) == n {
		return d, "", true
	}
	return d, s[n+1:], true
}

// leadingPriority splits a "(X) " token off the front of s.
func leadingPriority(s string) (byte, string, bool) {
	if len(s) < 3 || s[0] != '(' || s[2] != ')' || !isPriority(s[1]) {
		return 0, s, false
	}
	if len(s) == 3 {
		return s[1], "", true
	}
	if s[3] != ' ' {
		return 0, s, false
	}
	return s[1], s[4:], true
}

func isPriority(c byte) bool {
	return c >= HighestPriority && c <= LowestPriority
}

// String renders the task as a todo.txt line.
func (t *Task) String() string {
	parts := make([]string, 0, 5) //nolint:mnd // marker, dates, priority, body
	if t.Completed {
		parts = append(parts, completedMarker)
		if t.CompletedOn != nil {
			parts = append(parts, t.CompletedOn.String())
		}
	}
	if t.Priority != 0 {
		parts = append(parts, "("+string(t.Priority)+")")
	}
	if t.CreatedOn != nil {
		parts = append(parts, t.CreatedOn.String())
	}
	if t.Body != "" {
		parts = append(parts, t.Body)
	}
	return strings.Join(parts, " ")
}

// HasPriority reports whether the task carries a priority letter.
func (t *Task) HasPriority() bool {
	return t.Priority != 0
}

// PriorityString returns the priority letter, or "" when there is none.
func (t *Task) PriorityString() string {
	if t.Priority == 0 {
		return ""
	}
	return string(t.Priority)
}

// ToggleCompletion flips the completion state. Completing a prioritized task
// moves its priority into a pri:X tag; reopening restores it. A reopened
// task whose body starts with "x " is stamped with today as its creation
// date so the line does not read as completed again.
func (t *Task) ToggleCompletion(today date.Date) {
	if t.Completed {
		t.Completed = false
		t.CompletedOn = nil
		if p, body, ok := popPriTag(t.Body); ok {
			t.Priority = p
			t.Body = body
		}
		if t.readsAsCompleted() {
			t.CreatedOn = &today
		}
		return
	}

	t.Completed = true
	t.CompletedOn = &today
	if t.Priority != 0 {
		tag := "pri:" + string(t.Priority)
		if t.Body == "" {
			t.Body = tag
		} else {
			t.Body += " " + tag
		}
		t.Priority = 0
	}
}

// IncreasePriority raises the priority one letter towards A. A task without
// a priority becomes Z. Returns false when nothing changed (already at A, or
// the task is completed).
func (t *Task) IncreasePriority() bool {
	switch {
	case t.Completed, t.Priority == HighestPriority:
		return false
	case t.Priority == 0:
		t.Priority = LowestPriority
	default:
		t.Priority--
	}
	return true
}

// DecreasePriority lowers the priority one letter towards Z; Z drops the
// priority entirely. Returns false when nothing changed. Z stays Z when
// dropping it would turn the line into a completed one.
func (t *Task) DecreasePriority() bool {
	switch {
	case t.Completed, t.Priority == 0:
		return false
	case t.Priority == LowestPriority:
		t.Priority = 0
		if t.readsAsCompleted() {
			t.Priority = LowestPriority
			return false
		}
	default:
		t.Priority++
	}
	return true
}

// readsAsCompleted reports whether an open task would serialize to a line
// starting with the completion marker.
func (t *Task) readsAsCompleted() bool {
	return !t.Completed && t.Priority == 0 && t.CreatedOn == nil &&
		strings.HasPrefix(t.Body, completedMarker+" ")
}

// popPriTag removes the first pri:X tag from body.
func popPriTag(body string) (byte, string, bool) {
	loc := priTagRe.FindStringSubmatchIndex(body)
	if loc == nil {
		return 0, body, false
	}
	p := body[loc[4]]
	before := strings.TrimRight(body[:loc[0]], " ")
	after := strings.TrimLeft(body[loc[1]:], " ")
	switch {
	case before == "":
		return p, after, true
	case after == "":
		return p, before, true
	default:
		return p, before + " " + after, true
	}
}
