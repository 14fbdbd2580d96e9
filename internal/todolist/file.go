package todolist

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/twiced-technology-gmbh/todocurses/internal/clierr"
	"github.com/twiced-technology-gmbh/todocurses/internal/todo"
)

const fileMode = 0o600

// readTasks parses every non-blank line of the file at path.
func readTasks(path string) ([]*todo.Task, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path given by the user
	if err != nil {
		return nil, clierr.IO("reading", path, err)
	}

	var tasks []*todo.Task
	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		tasks = append(tasks, todo.Parse(line))
	}
	return tasks, nil
}

// writeAtomic replaces path with data via a temporary sibling and a rename.
// The original file mode is kept.
func writeAtomic(path string, data []byte) (err error) {
	mode := os.FileMode(fileMode)
	if info, statErr := os.Stat(path); statErr == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return clierr.IO("creating temporary file for", path, err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return clierr.IO("writing", tmp.Name(), err)
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return clierr.IO("syncing", tmp.Name(), err)
	}
	if err = tmp.Close(); err != nil {
		return clierr.IO("closing", tmp.Name(), err)
	}
	if err = os.Chmod(tmp.Name(), mode); err != nil {
		return clierr.IO("setting mode on", tmp.Name(), err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return clierr.IO("replacing", path, err)
	}
	return nil
}

// appendFile appends data to path, creating it if needed.
func appendFile(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, fileMode) //nolint:gosec // done file next to the todo file
	if err != nil {
		return clierr.IO("opening", path, err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return clierr.IO("appending to", path, err)
	}
	if err := f.Close(); err != nil {
		return clierr.IO("closing", path, err)
	}
	return nil
}
