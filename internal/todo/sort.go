package todo

import "sort"

// rank orders priorities so that A ranks highest and "no priority" lowest.
func rank(p byte) int {
	if p == 0 {
		return 0
	}
	return int(LowestPriority-p) + 1
}

// Compare orders tasks by priority, then open tasks above completed ones.
// It returns a positive number when a ranks above b, negative when below
// and zero when they are equivalent.
func Compare(a, b *Task) int {
	if ra, rb := rank(a.Priority), rank(b.Priority); ra != rb {
		return ra - rb
	}
	switch {
	case a.Completed == b.Completed:
		return 0
	case b.Completed:
		return 1
	default:
		return -1
	}
}

// SortDescending sorts tasks highest-ranked first. Equivalent tasks keep
// their relative order.
func SortDescending(tasks []*Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return Compare(tasks[i], tasks[j]) > 0
	})
}
