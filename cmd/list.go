package cmd

import (
	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/todocurses/internal/config"
	"github.com/twiced-technology-gmbh/todocurses/internal/listview"
	"github.com/twiced-technology-gmbh/todocurses/internal/output"
	"github.com/twiced-technology-gmbh/todocurses/internal/todolist"
)

var listCmd = &cobra.Command{
	Use:     "list FILE",
	Aliases: []string{"ls"},
	Short:   "Print tasks grouped by priority",
	Long:    `Prints the tasks of FILE in the same order and grouping the TUI uses.`,
	Args:    exactArgs(1),
	RunE:    runList,
}

func init() {
	listCmd.Flags().Bool("summary", false, "print only task counts")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	summaryOnly, _ := cmd.Flags().GetBool("summary")

	return withList(args[0], func(list *todolist.List, _ *config.Config) error {
		rows := listview.Project(list.Tasks())
		w := cmd.OutOrStdout()

		switch outputFormat() {
		case output.FormatJSON:
			if summaryOnly {
				return output.JSON(w, listview.Summarize(rows))
			}
			return output.JSON(w, output.NewListResponse(list.Path(), rows))
		case output.FormatCompact:
			if summaryOnly {
				output.SummaryCompact(w, list.Path(), listview.Summarize(rows))
				return nil
			}
			output.RowsCompact(w, rows)
		default:
			if summaryOnly {
				output.SummaryTable(w, list.Path(), listview.Summarize(rows))
				return nil
			}
			output.RowsTable(w, rows)
		}
		return nil
	})
}
