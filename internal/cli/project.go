package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"timekeeper/internal/database"
)

// ProjectCmd returns the project subcommand tree.
func ProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}
	cmd.AddCommand(projectAddCmd(), projectListCmd(), projectShowCmd(),
		projectUpdateCmd(), projectDeleteCmd())
	return cmd
}

func projectAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new project",
		RunE: func(cmd *cobra.Command, args []string) error {
			f := formatterFromFlags(cmd)
			app, err := NewApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			name, _ := cmd.Flags().GetString("name")
			id, err := app.Repo.Projects.Add(cmd.Context(), database.NewProject{
				Name:        name,
				Description: optStr(cmd, "description"),
			})
			if err != nil {
				return reportError(f, err)
			}

			project, err := app.Repo.Projects.Get(cmd.Context(), id)
			if err != nil {
				return reportError(f, err)
			}
			return f.Successf(project, "created project %d: %s", project.ID, project.Name)
		},
	}
	cmd.Flags().String("name", "", "Project name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().String("description", "", "Project description")
	addOutputFlags(cmd)
	return cmd
}

func projectListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			f := formatterFromFlags(cmd)
			app, err := NewApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			sortBy, _ := cmd.Flags().GetString("sort")
			sortOrder, _ := cmd.Flags().GetString("order")
			projects, err := app.Repo.Projects.List(cmd.Context(), sortBy, sortOrder)
			if err != nil {
				return reportError(f, err)
			}

			if f.JSON || f.Quiet {
				return f.Success(projects)
			}
			if len(projects) == 0 {
				fmt.Println(subtleStyle.Render("no projects"))
				return nil
			}
			for _, p := range projects {
				fmt.Printf("%4d  %s\n", p.ID, p.Name)
			}
			return nil
		},
	}
	cmd.Flags().String("sort", "", "Sort column (default created_at)")
	cmd.Flags().String("order", "", "Sort order: asc or desc")
	addOutputFlags(cmd)
	return cmd
}

func projectShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a project and its tasks",
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

			project, err := app.Repo.Projects.Get(cmd.Context(), id)
			if err != nil {
				return reportError(f, err)
			}
			tasks, err := app.Repo.TasksForProject(cmd.Context(), id)
			if err != nil {
				return reportError(f, err)
			}

			if f.JSON || f.Quiet {
				return f.Success(map[string]any{"project": project, "tasks": tasks})
			}

			fmt.Println(titleStyle.Render(fmt.Sprintf("#%d %s", project.ID, project.Name)))
			fmt.Println(field("Description", orEmpty(project.Description)))
			fmt.Println(subtleStyle.Render("created " + project.CreatedAt + ", updated " + project.UpdatedAt))
			if len(tasks) > 0 {
				fmt.Println(labelStyle.Render("Tasks:"))
				for _, t := range tasks {
					fmt.Printf("%4d  %-12s %s\n", t.ID, "["+t.Status+"]", t.Title)
				}
			}
			return nil
		},
	}
	addOutputFlags(cmd)
	return cmd
}

func projectUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update project fields; unmentioned fields are left untouched",
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

			patch := database.ProjectPatch{
				Name:        stringField(cmd, "name", ""),
				Description: stringField(cmd, "description", "clear-description"),
			}
			outcome, err := app.Repo.Projects.Update(cmd.Context(), id, patch)
			return reportOutcome(f, outcome, err, fmt.Sprintf("updated project %d", id))
		},
	}
	cmd.Flags().String("name", "", "New name")
	cmd.Flags().String("description", "", "New description")
	cmd.Flags().Bool("clear-description", false, "Clear the description")
	addOutputFlags(cmd)
	return cmd
}

func projectDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a project; its tasks and notes are kept and detached",
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

			outcome, err := app.Repo.Projects.Delete(cmd.Context(), id)
			return reportOutcome(f, outcome, err, fmt.Sprintf("deleted project %d", id))
		},
	}
	addOutputFlags(cmd)
	return cmd
}
