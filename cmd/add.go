package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/todocurses/internal/config"
	"github.com/twiced-technology-gmbh/todocurses/internal/output"
	"github.com/twiced-technology-gmbh/todocurses/internal/todolist"
)

var addCmd = &cobra.Command{
	Use:   "add FILE TEXT...",
	Short: "Append a task",
	Long: `Appends one task to FILE. The words of TEXT are joined with spaces and
parsed as a todo.txt line; today's date is added when no creation date is given.`,
	Args: minArgs(2), //nolint:mnd // file and at least one word
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	text := strings.Join(args[1:], " ")

	return withList(args[0], func(list *todolist.List, _ *config.Config) error {
		t, err := list.Append(text)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		switch outputFormat() {
		case output.FormatJSON:
			return output.JSON(w, output.NewTaskJSON(t))
		case output.FormatCompact:
			output.Messagef(w, "%s", t.String())
		default:
			output.Messagef(w, "Added: %s", t.String())
		}
		return nil
	})
}
