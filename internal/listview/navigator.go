package listview

import "github.com/twiced-technology-gmbh/todocurses/internal/todo"

// Navigator is a cursor over rows that only ever rests on a TaskRow.
// An index of -1 means nothing is selected.
type Navigator struct {
	rows []Row
	cur  int
}

// NewNavigator places the cursor on the first selectable row.
func NewNavigator(rows []Row) *Navigator {
	n := &Navigator{}
	n.Reanchor(rows, "")
	return n
}

// Rows returns the rows the navigator walks.
func (n *Navigator) Rows() []Row { return n.rows }

// Index returns the cursor position, or -1 when nothing is selected.
func (n *Navigator) Index() int { return n.cur }

// Selected returns the task under the cursor, or nil.
func (n *Navigator) Selected() *todo.Task {
	if n.cur < 0 || n.cur >= len(n.rows) {
		return nil
	}
	if r, ok := n.rows[n.cur].(TaskRow); ok {
		return r.Task
	}
	return nil
}

// MoveDown moves to the next task row. It returns false and leaves the
// cursor alone when there is none.
func (n *Navigator) MoveDown() bool {
	return n.step(1)
}

// MoveUp moves to the previous task row. It returns false and leaves the
// cursor alone when there is none.
func (n *Navigator) MoveUp() bool {
	return n.step(-1)
}

func (n *Navigator) step(dir int) bool {
	if n.cur < 0 {
		return false
	}
	for i := n.cur + dir; i >= 0 && i < len(n.rows); i += dir {
		if _, ok := n.rows[i].(TaskRow); ok {
			n.cur = i
			return true
		}
	}
	return false
}

// JumpToFirst moves up until it can't.
func (n *Navigator) JumpToFirst() {
	for n.MoveUp() {
	}
}

// JumpToLast moves down until it can't.
func (n *Navigator) JumpToLast() {
	for n.MoveDown() {
	}
}

// PageDown moves down up to size task rows. It fails only when not even
// one step was possible.
func (n *Navigator) PageDown(size int) bool {
	return n.page(size, n.MoveDown)
}

// PageUp moves up up to size task rows. It fails only when not even one
// step was possible.
func (n *Navigator) PageUp(size int) bool {
	return n.page(size, n.MoveUp)
}

func (n *Navigator) page(size int, move func() bool) bool {
	if !move() {
		return false
	}
	for i := 1; i < size && move(); i++ {
	}
	return true
}

// Reanchor swaps in freshly projected rows and puts the cursor on the first
// task whose line equals identity. Without a match it falls back to the
// first task row, or to no selection when there are no tasks.
func (n *Navigator) Reanchor(rows []Row, identity string) {
	n.rows = rows
	n.cur = -1

	first := -1
	for i, r := range rows {
		tr, ok := r.(TaskRow)
		if !ok {
			continue
		}
		if first < 0 {
			first = i
		}
		if identity != "" && tr.Task.String() == identity {
			n.cur = i
			return
		}
	}
	n.cur = first
}
