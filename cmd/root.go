// Package cmd implements the todocurses CLI commands.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/twiced-technology-gmbh/todocurses/internal/clierr"
	"github.com/twiced-technology-gmbh/todocurses/internal/config"
	"github.com/twiced-technology-gmbh/todocurses/internal/logging"
	"github.com/twiced-technology-gmbh/todocurses/internal/output"
	"github.com/twiced-technology-gmbh/todocurses/internal/todolist"
)

// version is set at build time via ldflags.
var version = "dev"

// Global flags.
var (
	flagJSON        bool
	flagCompact     bool
	flagConfig      string
	flagArchiveFile string
	flagLogFile     string
	flagWatch       bool
	flagNoColor     bool
)

var rootCmd = &cobra.Command{
	Use:   "todocurses FILE",
	Short: "Terminal UI for todo.txt files",
	Long: `todocurses shows a todo.txt file grouped by priority and lets you move
through it, complete and reprioritize tasks, and add new ones. Completed tasks
are moved to the done file next to FILE when you quit.`,
	Version:       version,
	Args:          exactArgs(1),
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runTUI,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if noColor() {
			output.DisableColor()
			lipgloss.SetColorProfile(termenv.Ascii)
		}
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVar(&flagJSON, "json", false, "output as JSON")
	pf.BoolVar(&flagCompact, "compact", false, "print plain todo.txt lines")
	pf.StringVar(&flagConfig, "config", "", "config file (default ~/.config/todocurses/config.yml)")
	pf.StringVar(&flagArchiveFile, "archive-file", "", "done file name, next to FILE (default done.txt)")
	pf.StringVar(&flagLogFile, "log-file", "", "append a JSON activity log to this file")
	pf.BoolVar(&flagWatch, "watch", false, "reload when FILE changes on disk")
	pf.BoolVar(&flagNoColor, "no-color", false, "disable color output")
	rootCmd.SetGlobalNormalizationFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		switch name {
		case "done-file":
			name = "archive-file"
		case "log":
			name = "log-file"
		case "oneline":
			name = "compact"
		}
		return pflag.NormalizedName(name)
	})

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return clierr.Wrap(clierr.UsageError, err, "invalid arguments")
	})
}

// Execute runs the root command and exits with the mapped status.
func Execute() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command tree with args and returns the exit code.
// Usage errors print the command's usage to stdout.
func run(args []string, stdout, stderr io.Writer) int {
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	c, err := rootCmd.ExecuteC()
	if err == nil {
		return 0
	}

	var cliErr *clierr.Error
	if !errors.As(err, &cliErr) {
		cliErr = clierr.Wrap(clierr.InternalError, err, "unexpected error")
	}

	if outputFormat() == output.FormatJSON {
		output.JSONError(stdout, cliErr.Code, cliErr.Error(), cliErr.Details)
		return cliErr.ExitCode()
	}

	fmt.Fprintln(stderr, "Error:", err)
	if cliErr.Code == clierr.UsageError && c != nil {
		fmt.Fprint(stdout, c.UsageString())
	}
	return cliErr.ExitCode()
}

// exactArgs requires n positional arguments, reporting a usage error otherwise.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return clierr.Newf(clierr.UsageError, "%s expects %d argument(s), got %d",
				cmd.CommandPath(), n, len(args)).
				WithDetails(map[string]any{"args": args})
		}
		return nil
	}
}

// minArgs requires at least n positional arguments.
func minArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < n {
			return clierr.Newf(clierr.UsageError, "%s expects at least %d arguments, got %d",
				cmd.CommandPath(), n, len(args))
		}
		return nil
	}
}

func noColor() bool {
	return flagNoColor || strings.TrimSpace(os.Getenv("NO_COLOR")) != ""
}

// configPath returns --config or the default location.
func configPath() (string, error) {
	if flagConfig != "" {
		return flagConfig, nil
	}
	path, err := config.DefaultPath()
	if err != nil {
		return "", clierr.Wrap(clierr.IOError, err, "locating config file")
	}
	return path, nil
}

// loadConfigFile reads the config file as written, without flag overrides.
func loadConfigFile() (*config.Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(path)
	if err != nil {
		if errors.Is(err, config.ErrInvalid) {
			return nil, clierr.Wrap(clierr.InvalidConfig, err, "loading %s", path).
				WithDetails(map[string]any{"path": path})
		}
		return nil, clierr.IO("reading config", path, err)
	}
	return cfg, nil
}

// loadConfig reads the config file and applies the command-line overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := loadConfigFile()
	if err != nil {
		return nil, err
	}

	if flagArchiveFile != "" {
		cfg.ArchiveFile = flagArchiveFile
	}
	if flagLogFile != "" {
		cfg.LogFile = flagLogFile
	}
	if flagWatch {
		cfg.Watch = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, clierr.Wrap(clierr.InvalidConfig, err, "invalid settings")
	}
	return cfg, nil
}

// openLogger opens the activity log configured in cfg.
func openLogger(cfg *config.Config) (*slog.Logger, func() error, error) {
	log, closeLog, err := logging.Open(cfg.LogFile)
	if err != nil {
		return nil, nil, clierr.IO("opening log", cfg.LogFile, err)
	}
	return log, closeLog, nil
}

// loadList opens the todo file with the configured done file and logger.
func loadList(path string, cfg *config.Config, log *slog.Logger) (*todolist.List, error) {
	return todolist.Load(path,
		todolist.WithArchiveFile(cfg.ArchiveFile),
		todolist.WithLogger(log),
	)
}

// outputFormat returns the detected output format from flags/env.
func outputFormat() output.Format {
	return output.Detect(flagJSON, flagCompact)
}

// withList loads config, logger and the todo list, runs fn, and closes the
// log afterwards.
func withList(path string, fn func(*todolist.List, *config.Config) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, closeLog, err := openLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog() //nolint:errcheck // best-effort close of the activity log

	list, err := loadList(path, cfg, log)
	if err != nil {
		return err
	}
	return fn(list, cfg)
}
