package cmd

import (
	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/todocurses/internal/config"
	"github.com/twiced-technology-gmbh/todocurses/internal/output"
	"github.com/twiced-technology-gmbh/todocurses/internal/todolist"
)

var archiveCmd = &cobra.Command{
	Use:   "archive FILE",
	Short: "Move completed tasks to the done file",
	Long: `Moves every completed task of FILE to the end of the done file, the same
way quitting the TUI does. Nothing is written when no task is completed.`,
	Args: exactArgs(1),
	RunE: runArchive,
}

func init() {
	rootCmd.AddCommand(archiveCmd)
}

type archiveResult struct {
	Archived    int    `json:"archived"`
	File        string `json:"file"`
	ArchiveFile string `json:"archive_file"`
}

func runArchive(cmd *cobra.Command, args []string) error {
	return withList(args[0], func(list *todolist.List, _ *config.Config) error {
		n, err := list.ArchiveCompleted()
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		if outputFormat() == output.FormatJSON {
			return output.JSON(w, archiveResult{Archived: n, File: list.Path(), ArchiveFile: list.ArchivePath()})
		}
		if n == 0 {
			output.Messagef(w, "No completed tasks to archive")
			return nil
		}
		output.Messagef(w, "Archived %d task(s) to %s", n, list.ArchivePath())
		return nil
	})
}
