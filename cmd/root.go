package cmd

import (
	"github.com/spf13/cobra"

	"timekeeper/internal/cli"
)

var rootCmd = &cobra.Command{
	Use:   "timekeeper",
	Short: "Timekeeper - tasks, projects, goals, notes, events and reminders",
	Long: `Timekeeper is a personal productivity tool backed by a local
SQLite database. It manages tasks, projects, goals, notes, calendar
events and reminders, and can export, import, back up and restore
its data.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(
		cli.TaskCmd(),
		cli.ProjectCmd(),
		cli.GoalCmd(),
		cli.NoteCmd(),
		cli.EventCmd(),
		cli.ReminderCmd(),
		cli.DataCmd(),
	)
}

func Execute() error {
	return rootCmd.Execute()
}
