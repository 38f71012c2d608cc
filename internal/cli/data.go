package cli

import (
	"github.com/spf13/cobra"

	"timekeeper/internal/dataservice"
)

// DataCmd returns the data subcommand tree: exports, imports, backups.
func DataCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "data",
		Short: "Export, import, back up and restore the database",
	}
	cmd.AddCommand(dataExportCmd(), dataExportAllCmd(), dataImportCmd(),
		dataBackupCmd(), dataRestoreCmd())
	return cmd
}

func dataExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <table>",
		Short: "Export one table to a timestamped CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := formatterFromFlags(cmd)
			app, err := NewApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			path, err := app.Data.ExportTableCSV(cmd.Context(), args[0])
			if err != nil {
				return reportError(f, err)
			}
			return f.Successf(map[string]any{"path": path}, "exported %s to %s", args[0], path)
		},
	}
	addOutputFlags(cmd)
	return cmd
}

func dataExportAllCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export-all",
		Short: "Export every table to one JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			f := formatterFromFlags(cmd)
			app, err := NewApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			path, err := app.Data.ExportAllJSON(cmd.Context())
			if err != nil {
				return reportError(f, err)
			}
			return f.Successf(map[string]any{"path": path}, "exported database to %s", path)
		},
	}
	addOutputFlags(cmd)
	return cmd
}

func dataImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <table> <file>",
		Short: "Import rows from a CSV file into one table",
		Long: `Import rows from a CSV file into one table.

With --strategy append (the default) existing rows are kept. With
--strategy replace existing rows are deleted first, in the same
transaction as the inserts. Rows that violate a constraint are skipped
rather than aborting the import.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := formatterFromFlags(cmd)
			app, err := NewApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			strategy, _ := cmd.Flags().GetString("strategy")
			imported, err := app.Data.ImportTableCSV(cmd.Context(), args[0], args[1],
				dataservice.ImportStrategy(strategy))
			if err != nil {
				return reportError(f, err)
			}
			return f.Successf(map[string]any{"imported": imported},
				"imported %d row(s) into %s", imported, args[0])
		},
	}
	cmd.Flags().String("strategy", string(dataservice.StrategyAppend),
		"Import strategy: append or replace")
	addOutputFlags(cmd)
	return cmd
}

func dataBackupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Write a consistent backup of the live database",
		RunE: func(cmd *cobra.Command, args []string) error {
			f := formatterFromFlags(cmd)
			app, err := NewApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			path, err := app.Data.Backup(cmd.Context())
			if err != nil {
				return reportError(f, err)
			}
			return f.Successf(map[string]any{"path": path}, "backup written to %s", path)
		},
	}
	addOutputFlags(cmd)
	return cmd
}

func dataRestoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restore <backup-file>",
		Short: "Overwrite the live database from a backup file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := formatterFromFlags(cmd)
			app, err := NewApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.Data.Restore(cmd.Context(), args[0]); err != nil {
				return reportError(f, err)
			}
			return f.Successf(map[string]any{"restored": args[0]},
				"database restored from %s", args[0])
		},
	}
	addOutputFlags(cmd)
	return cmd
}
