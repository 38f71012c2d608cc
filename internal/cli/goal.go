package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"timekeeper/internal/database"
	"timekeeper/internal/models"
)

// GoalCmd returns the goal subcommand tree.
func GoalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Manage goals",
	}
	cmd.AddCommand(goalAddCmd(), goalListCmd(), goalUpdateCmd(), goalDeleteCmd())
	return cmd
}

func goalAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new goal",
		RunE: func(cmd *cobra.Command, args []string) error {
			f := formatterFromFlags(cmd)
			app, err := NewApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			name, _ := cmd.Flags().GetString("name")
			status, _ := cmd.Flags().GetString("status")
			id, err := app.Repo.Goals.Add(cmd.Context(), database.NewGoal{
				Name:        name,
				Description: optStr(cmd, "description"),
				TargetDate:  optStr(cmd, "target"),
				Status:      status,
			})
			if err != nil {
				return reportError(f, err)
			}

			goal, err := app.Repo.Goals.Get(cmd.Context(), id)
			if err != nil {
				return reportError(f, err)
			}
			return f.Successf(goal, "created goal %d: %s", goal.ID, goal.Name)
		},
	}
	cmd.Flags().String("name", "", "Goal name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().String("description", "", "Goal description")
	cmd.Flags().String("target", "", "Target date (YYYY-MM-DD HH:MM:SS)")
	cmd.Flags().String("status", models.GoalStatusActive, "Initial status")
	addOutputFlags(cmd)
	return cmd
}

func goalListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List goals",
		RunE: func(cmd *cobra.Command, args []string) error {
			f := formatterFromFlags(cmd)
			app, err := NewApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			status, _ := cmd.Flags().GetString("status")
			sortBy, _ := cmd.Flags().GetString("sort")
			sortOrder, _ := cmd.Flags().GetString("order")
			goals, err := app.Repo.Goals.List(cmd.Context(), status, sortBy, sortOrder)
			if err != nil {
				return reportError(f, err)
			}

			if f.JSON || f.Quiet {
				return f.Success(goals)
			}
			if len(goals) == 0 {
				fmt.Println(subtleStyle.Render("no goals"))
				return nil
			}
			for _, g := range goals {
				fmt.Printf("%4d  %-11s %-20s %s\n", g.ID, "["+g.Status+"]", orEmpty(g.TargetDate), g.Name)
			}
			return nil
		},
	}
	cmd.Flags().String("status", "", "Only goals with this status")
	cmd.Flags().String("sort", "", "Sort column (default created_at)")
	cmd.Flags().String("order", "", "Sort order: asc or desc")
	addOutputFlags(cmd)
	return cmd
}

func goalUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update goal fields; unmentioned fields are left untouched",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := formatterFromFlags(cmd)
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			app, err := NewApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			patch := database.GoalPatch{
				Name:        stringField(cmd, "name", ""),
				Description: stringField(cmd, "description", "clear-description"),
				TargetDate:  stringField(cmd, "target", "clear-target"),
				Status:      stringField(cmd, "status", ""),
			}
			outcome, err := app.Repo.Goals.Update(cmd.Context(), id, patch)
			return reportOutcome(f, outcome, err, fmt.Sprintf("updated goal %d", id))
		},
	}
	cmd.Flags().String("name", "", "New name")
	cmd.Flags().String("description", "", "New description")
	cmd.Flags().Bool("clear-description", false, "Clear the description")
	cmd.Flags().String("target", "", "New target date")
	cmd.Flags().Bool("clear-target", false, "Clear the target date")
	cmd.Flags().String("status", "", "New status")
	addOutputFlags(cmd)
	return cmd
}

func goalDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := formatterFromFlags(cmd)
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			app, err := NewApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			outcome, err := app.Repo.Goals.Delete(cmd.Context(), id)
			return reportOutcome(f, outcome, err, fmt.Sprintf("deleted goal %d", id))
		},
	}
	addOutputFlags(cmd)
	return cmd
}
