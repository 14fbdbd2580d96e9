package listview

import (
	"testing"

	"github.com/twiced-technology-gmbh/todocurses/internal/todo"
)

func parseAll(lines ...string) []*todo.Task {
	tasks := make([]*todo.Task, len(lines))
	for i, l := range lines {
		tasks[i] = todo.Parse(l)
	}
	return tasks
}

func describe(rows []Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		switch r := r.(type) {
		case TaskRow:
			out[i] = r.Task.String()
		case DividerRow:
			out[i] = "--" + r.Label
		}
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestProjectGroupsByPriority(t *testing.T) {
	rows := Project(parseAll(
		"(A) alpha",
		"(A) alpha two",
		"(C) charlie",
		"plain",
		"x 2026-10-18 done",
	))
	got := describe(rows)
	want := []string{
		"--A", "(A) alpha", "(A) alpha two",
		"--C", "(C) charlie",
		"--N/A", "plain", "x 2026-10-18 done",
	}
	if !equal(got, want) {
		t.Fatalf("rows:\n got %q\nwant %q", got, want)
	}
}

func TestProjectEmpty(t *testing.T) {
	if rows := Project(nil); len(rows) != 0 {
		t.Fatalf("expected no rows, got %d", len(rows))
	}
	n := NewNavigator(nil)
	if n.Index() != -1 || n.Selected() != nil {
		t.Fatal("expected no selection on an empty list")
	}
	if n.MoveDown() || n.MoveUp() || n.PageDown(5) {
		t.Fatal("moves on an empty list must be refused")
	}
}

func TestProjectEndToEndRows(t *testing.T) {
	tasks := parseAll("buy milk", "(A) write report")
	todo.SortDescending(tasks)
	got := describe(Project(tasks))
	want := []string{"--A", "(A) write report", "--N/A", "buy milk"}
	if !equal(got, want) {
		t.Fatalf("rows = %q, want %q", got, want)
	}
}

func TestNavigatorSkipsDividers(t *testing.T) {
	rows := Project(parseAll("(A) alpha", "(B) bravo", "plain"))
	n := NewNavigator(rows)

	if n.Index() != 1 || n.Selected().String() != "(A) alpha" {
		t.Fatalf("initial cursor at %d", n.Index())
	}
	if !n.MoveDown() || n.Selected().String() != "(B) bravo" || n.Index() != 3 {
		t.Fatalf("after MoveDown cursor at %d", n.Index())
	}
	if !n.MoveDown() || n.Selected().String() != "plain" || n.Index() != 5 {
		t.Fatalf("after second MoveDown cursor at %d", n.Index())
	}
	if !n.MoveUp() || n.Index() != 3 {
		t.Fatalf("after MoveUp cursor at %d", n.Index())
	}
}

func TestNavigatorRefusesAtBoundaries(t *testing.T) {
	rows := Project(parseAll("(A) alpha", "plain"))
	n := NewNavigator(rows)

	if n.MoveUp() {
		t.Fatal("MoveUp at the top must be refused")
	}
	if n.Index() != 1 {
		t.Fatalf("cursor moved on refusal: %d", n.Index())
	}

	n.JumpToLast()
	last := n.Index()
	if n.MoveDown() {
		t.Fatal("MoveDown at the bottom must be refused")
	}
	if n.Index() != last {
		t.Fatalf("cursor moved on refusal: %d", n.Index())
	}
}

func TestNavigatorJumps(t *testing.T) {
	rows := Project(parseAll("(A) a1", "(A) a2", "(B) b1", "plain"))
	n := NewNavigator(rows)

	n.JumpToLast()
	if n.Selected().String() != "plain" {
		t.Fatalf("JumpToLast selected %q", n.Selected().String())
	}
	n.JumpToFirst()
	if n.Selected().String() != "(A) a1" {
		t.Fatalf("JumpToFirst selected %q", n.Selected().String())
	}
}

func TestNavigatorPaging(t *testing.T) {
	rows := Project(parseAll("(A) a1", "(A) a2", "(A) a3", "(B) b1", "(B) b2"))
	n := NewNavigator(rows)

	if !n.PageDown(3) || n.Selected().String() != "(B) b1" {
		t.Fatalf("PageDown(3) selected %q", n.Selected().String())
	}
	// A partial page still succeeds.
	if !n.PageDown(10) || n.Selected().String() != "(B) b2" {
		t.Fatalf("PageDown(10) selected %q", n.Selected().String())
	}
	if n.PageDown(3) {
		t.Fatal("PageDown at the bottom must be refused")
	}
	if !n.PageUp(2) || n.Selected().String() != "(A) a3" {
		t.Fatalf("PageUp(2) selected %q", n.Selected().String())
	}
}

func TestReanchorFollowsTask(t *testing.T) {
	tasks := parseAll("(A) alpha", "(B) bravo", "plain")
	n := NewNavigator(Project(tasks))
	n.JumpToLast()

	// Reprioritize "plain" so it moves to the top group.
	selected := n.Selected()
	selected.Priority = 'A'
	identity := selected.String()

	reloaded := parseAll("(A) alpha", "(B) bravo", "(A) plain")
	todo.SortDescending(reloaded)
	n.Reanchor(Project(reloaded), identity)

	if got := n.Selected(); got == nil || got.String() != "(A) plain" {
		t.Fatalf("reanchored on %v", got)
	}
	if n.Index() != 2 {
		t.Fatalf("reanchored index = %d, want 2", n.Index())
	}
}

func TestReanchorKeepsSelectionWhenAnotherTaskMoves(t *testing.T) {
	tasks := parseAll("(A) alpha", "(B) bravo", "(C) charlie", "plain")
	n := NewNavigator(Project(tasks))
	n.JumpToLast()

	identity := n.Selected().String()
	before := n.Index()
	if identity != "plain" || before != 7 {
		t.Fatalf("start: selected %q at %d", identity, before)
	}

	// Raising bravo merges its group into A, removing a divider above the
	// selection.
	tasks[1].IncreasePriority()
	lines := make([]string, len(tasks))
	for i, task := range tasks {
		lines[i] = task.String()
	}
	reloaded := parseAll(lines...)
	todo.SortDescending(reloaded)
	n.Reanchor(Project(reloaded), identity)

	if got := n.Selected(); got == nil || got.String() != identity {
		t.Fatalf("selection moved to %v", got)
	}
	if n.Index() == before || n.Index() != 6 {
		t.Fatalf("index = %d, want 6", n.Index())
	}
}

func TestReanchorFallsBackToFirstTask(t *testing.T) {
	n := NewNavigator(Project(parseAll("(A) alpha", "plain")))
	n.Reanchor(Project(parseAll("(B) bravo", "other")), "gone")
	if n.Index() != 1 || n.Selected().String() != "(B) bravo" {
		t.Fatalf("fallback selected index %d", n.Index())
	}

	n.Reanchor(nil, "gone")
	if n.Index() != -1 || n.Selected() != nil {
		t.Fatal("expected no selection after reanchoring on no rows")
	}
}

func TestSummarize(t *testing.T) {
	rows := Project(parseAll("(A) alpha", "plain", "x 2026-10-18 done"))
	s := Summarize(rows)
	if s.Tasks != 3 || s.Completed != 1 || s.Groups != 2 || s.Open() != 2 {
		t.Fatalf("summary = %+v", s)
	}
}
