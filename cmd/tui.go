package cmd

import (
	"context"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/twiced-technology-gmbh/todocurses/internal/clierr"
	"github.com/twiced-technology-gmbh/todocurses/internal/tui"
	"github.com/twiced-technology-gmbh/todocurses/internal/watcher"
)

func runTUI(_ *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) { //nolint:gosec // fd fits in int
		return clierr.New(clierr.NotATerminal,
			"todocurses needs an interactive terminal (use 'todocurses list FILE' for plain output)")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, closeLog, err := openLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog() //nolint:errcheck // best-effort close of the activity log

	list, err := loadList(args[0], cfg, log)
	if err != nil {
		return err
	}

	opts := []tui.Option{tui.WithLogger(log)}
	if noColor() {
		opts = append(opts, tui.WithHelpStyle("notty"))
	}
	model := tui.New(list, cfg, opts...)
	p := tea.NewProgram(model, tea.WithAltScreen())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Watch {
		go startTUIWatcher(ctx, list.Path(), p, log)
	}

	final, err := p.Run()
	if err != nil {
		return clierr.Wrap(clierr.InternalError, err, "running terminal UI")
	}
	// The terminal is restored by now, so a fatal error can be reported.
	if m, ok := final.(*tui.Model); ok && m.Err() != nil {
		return m.Err()
	}
	return nil
}

func startTUIWatcher(ctx context.Context, path string, p *tea.Program, log *slog.Logger) {
	w, err := watcher.New(path, func() {
		p.Send(tui.ReloadMsg{})
	})
	if err != nil {
		log.Warn("file watcher unavailable", "path", path, "error", err)
		return // non-fatal: TUI works without live refresh
	}
	defer w.Close()
	w.Run(ctx, func(err error) {
		log.Warn("file watcher error", "error", err)
	})
}
