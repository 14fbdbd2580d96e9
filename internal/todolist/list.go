// Package todolist keeps an in-memory todo.txt list synchronized with the
// active file on disk and archives completed tasks into the done file.
package todolist

import (
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/twiced-technology-gmbh/todocurses/internal/clierr"
	"github.com/twiced-technology-gmbh/todocurses/internal/date"
	"github.com/twiced-technology-gmbh/todocurses/internal/filelock"
	"github.com/twiced-technology-gmbh/todocurses/internal/todo"
)

// DefaultArchiveFile is the done file name, a sibling of the active file.
const DefaultArchiveFile = "done.txt"

// List is the task collection backed by the active todo file. Its contents
// are always what was last read from disk, sorted highest priority first.
type List struct {
	path        string
	archivePath string
	tasks       []*todo.Task
	now         func() time.Time
	log         *slog.Logger
}

// Option configures a List.
type Option func(*List)

// WithArchiveFile sets the done file name, resolved next to the active file.
func WithArchiveFile(name string) Option {
	return func(l *List) {
		if name != "" {
			l.archivePath = filepath.Join(filepath.Dir(l.path), name)
		}
	}
}

// WithClock overrides the clock used for creation and completion dates.
func WithClock(now func() time.Time) Option {
	return func(l *List) { l.now = now }
}

// WithLogger sets the logger for save and archive events.
func WithLogger(log *slog.Logger) Option {
	return func(l *List) {
		if log != nil {
			l.log = log
		}
	}
}

// Load reads the active file at path. An empty file is an empty list; a
// file that cannot be read is an IOError.
func Load(path string, opts ...Option) (*List, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, clierr.IO("resolving", path, err)
	}

	l := &List{
		path:        abs,
		archivePath: filepath.Join(filepath.Dir(abs), DefaultArchiveFile),
		now:         time.Now,
		log:         slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(l)
	}

	if err := l.Reload(); err != nil {
		return nil, err
	}
	return l, nil
}

// Path returns the absolute path of the active file.
func (l *List) Path() string { return l.path }

// ArchivePath returns the absolute path of the done file.
func (l *List) ArchivePath() string { return l.archivePath }

// Tasks returns the current tasks in display order. Callers may mutate the
// tasks in place and then call Commit.
func (l *List) Tasks() []*todo.Task { return l.tasks }

// Today returns the list clock's current date.
func (l *List) Today() date.Date { return date.Of(l.now()) }

// Reload re-reads the active file and sorts it for display.
func (l *List) Reload() error {
	tasks, err := readTasks(l.path)
	if err != nil {
		return err
	}
	todo.SortDescending(tasks)
	l.tasks = tasks
	return nil
}

// Save overwrites the active file with every task in the current order.
// The write goes through a temporary file and a rename, so readers see
// either the old or the new contents.
func (l *List) Save() error {
	err := l.locked(func() error {
		return writeAtomic(l.path, serialize(l.tasks))
	})
	if err != nil {
		return err
	}
	l.log.Info("saved todo file", "path", l.path, "tasks", len(l.tasks))
	return nil
}

// Commit saves and then reloads, making the file on disk the authoritative
// state again. Every mutation goes through here.
func (l *List) Commit() error {
	if err := l.Save(); err != nil {
		return err
	}
	return l.Reload()
}

// lineBreaks folds embedded line breaks so one Append is one line on disk.
var lineBreaks = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

// Append parses raw into a new task, adds it and commits.
func (l *List) Append(raw string) (*todo.Task, error) {
	raw = lineBreaks.Replace(raw)
	if strings.TrimSpace(raw) == "" {
		return nil, clierr.New(clierr.InvalidInput, "task text is empty")
	}

	t := todo.New(raw, l.Today())
	l.tasks = append(l.tasks, t)
	if err := l.Commit(); err != nil {
		return nil, err
	}
	l.log.Info("added task", "task", t.String())
	return t, nil
}

// ArchiveCompleted moves completed tasks from the active file to the end of
// the done file, preceded by a blank line. It returns how many tasks moved.
// With nothing completed neither file is touched.
//
// The two files are not updated atomically together. The done file is
// appended first, so a crash in between duplicates tasks rather than
// losing them.
func (l *List) ArchiveCompleted() (int, error) {
	var done, remaining []*todo.Task
	for _, t := range l.tasks {
		if t.Completed {
			done = append(done, t)
		} else {
			remaining = append(remaining, t)
		}
	}
	if len(done) == 0 {
		return 0, nil
	}

	err := l.locked(func() error {
		if err := appendFile(l.archivePath, append([]byte("\n"), serialize(done)...)); err != nil {
			return err
		}
		return writeAtomic(l.path, serialize(remaining))
	})
	if err != nil {
		return 0, err
	}
	l.log.Info("archived completed tasks",
		"path", l.path, "archive", l.archivePath, "archived", len(done), "remaining", len(remaining))

	if err := l.Reload(); err != nil {
		return len(done), err
	}
	return len(done), nil
}

func (l *List) locked(fn func() error) error {
	unlock, err := filelock.Lock(filelock.PathFor(l.path))
	if err != nil {
		return clierr.IO("locking", l.path, err)
	}
	defer unlock() //nolint:errcheck // best-effort unlock

	return fn()
}

func serialize(tasks []*todo.Task) []byte {
	lines := make([]string, len(tasks))
	for i, t := range tasks {
		lines[i] = t.String()
	}
	return []byte(strings.Join(lines, "\n"))
}
