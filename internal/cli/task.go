package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"timekeeper/internal/database"
	"timekeeper/internal/models"
)

// TaskCmd returns the task subcommand tree.
func TaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}
	cmd.AddCommand(taskAddCmd(), taskListCmd(), taskShowCmd(),
		taskUpdateCmd(), taskDoneCmd(), taskDeleteCmd())
	return cmd
}

func taskAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new task",
		RunE:  runTaskAdd,
	}
	cmd.Flags().String("title", "", "Task title (required)")
	_ = cmd.MarkFlagRequired("title")
	cmd.Flags().String("description", "", "Task description")
	cmd.Flags().Int("priority", models.PriorityLow, "Priority: 0 low, 1 medium, 2 high")
	cmd.Flags().String("due", "", "Due date (YYYY-MM-DD HH:MM:SS)")
	cmd.Flags().String("status", models.TaskStatusPending, "Initial status")
	cmd.Flags().Int64("project", 0, "Project ID")
	cmd.Flags().Int64("parent", 0, "Parent task ID")
	addOutputFlags(cmd)
	return cmd
}

func runTaskAdd(cmd *cobra.Command, args []string) error {
	f := formatterFromFlags(cmd)
	app, err := NewApp(cmd.Context())
	if err != nil {
		return err
	}
	defer app.Close()

	title, _ := cmd.Flags().GetString("title")
	priority, _ := cmd.Flags().GetInt("priority")
	status, _ := cmd.Flags().GetString("status")

	id, err := app.Repo.Tasks.Add(cmd.Context(), database.NewTask{
		Title:        title,
		Description:  optStr(cmd, "description"),
		Priority:     priority,
		DueDate:      optStr(cmd, "due"),
		Status:       status,
		ProjectID:    optID(cmd, "project"),
		ParentTaskID: optID(cmd, "parent"),
	})
	if err != nil {
		return reportError(f, err)
	}

	task, err := app.Repo.Tasks.Get(cmd.Context(), id)
	if err != nil {
		return reportError(f, err)
	}
	return f.Successf(task, "created task %d: %s", task.ID, task.Title)
}

func taskListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE:  runTaskList,
	}
	cmd.Flags().Int64("project", 0, "Only tasks in this project")
	cmd.Flags().String("status", "", "Only tasks with this status")
	cmd.Flags().String("sort", "", "Sort column (default created_at)")
	cmd.Flags().String("order", "", "Sort order: asc or desc")
	addOutputFlags(cmd)
	return cmd
}

func runTaskList(cmd *cobra.Command, args []string) error {
	f := formatterFromFlags(cmd)
	app, err := NewApp(cmd.Context())
	if err != nil {
		return err
	}
	defer app.Close()

	status, _ := cmd.Flags().GetString("status")
	sortBy, _ := cmd.Flags().GetString("sort")
	sortOrder, _ := cmd.Flags().GetString("order")

	tasks, err := app.Repo.Tasks.List(cmd.Context(),
		database.TaskFilter{ProjectID: optID(cmd, "project"), Status: status},
		sortBy, sortOrder)
	if err != nil {
		return reportError(f, err)
	}

	if f.JSON || f.Quiet {
		return f.Success(tasks)
	}
	if len(tasks) == 0 {
		fmt.Println(subtleStyle.Render("no tasks"))
		return nil
	}
	for _, t := range tasks {
		fmt.Printf("%4d  %-12s %d  %s\n", t.ID, "["+t.Status+"]", t.Priority, t.Title)
	}
	return nil
}

func taskShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one task",
		Args:  cobra.ExactArgs(1),
		RunE:  runTaskShow,
	}
	addOutputFlags(cmd)
	return cmd
}

func runTaskShow(cmd *cobra.Command, args []string) error {
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

	task, err := app.Repo.Tasks.Get(cmd.Context(), id)
	if err != nil {
		return reportError(f, err)
	}

	if f.JSON || f.Quiet {
		return f.Success(task)
	}

	lines := []string{
		titleStyle.Render(fmt.Sprintf("#%d %s", task.ID, task.Title)),
		field("Status", task.Status),
		field("Priority", fmt.Sprintf("%d", task.Priority)),
		field("Due", orEmpty(task.DueDate)),
		field("Project", orEmptyID(task.ProjectID)),
		field("Parent", orEmptyID(task.ParentTaskID)),
		field("Description", orEmpty(task.Description)),
		subtleStyle.Render("created " + task.CreatedAt + ", updated " + task.UpdatedAt),
	}
	fmt.Println(strings.Join(lines, "\n"))
	return nil
}

func taskUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update task fields; unmentioned fields are left untouched",
		Args:  cobra.ExactArgs(1),
		RunE:  runTaskUpdate,
	}
	cmd.Flags().String("title", "", "New title")
	cmd.Flags().String("description", "", "New description")
	cmd.Flags().Bool("clear-description", false, "Clear the description")
	cmd.Flags().Int("priority", 0, "New priority")
	cmd.Flags().String("due", "", "New due date")
	cmd.Flags().Bool("clear-due", false, "Clear the due date")
	cmd.Flags().String("status", "", "New status")
	cmd.Flags().Int64("project", 0, "New project ID")
	cmd.Flags().Bool("clear-project", false, "Detach from project")
	cmd.Flags().Int64("parent", 0, "New parent task ID")
	cmd.Flags().Bool("clear-parent", false, "Detach from parent task")
	addOutputFlags(cmd)
	return cmd
}

func runTaskUpdate(cmd *cobra.Command, args []string) error {
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

	patch := database.TaskPatch{
		Title:        stringField(cmd, "title", ""),
		Description:  stringField(cmd, "description", "clear-description"),
		Priority:     intField(cmd, "priority"),
		DueDate:      stringField(cmd, "due", "clear-due"),
		Status:       stringField(cmd, "status", ""),
		ProjectID:    idField(cmd, "project", "clear-project"),
		ParentTaskID: idField(cmd, "parent", "clear-parent"),
	}

	outcome, err := app.Repo.Tasks.Update(cmd.Context(), id, patch)
	return reportOutcome(f, outcome, err, fmt.Sprintf("updated task %d", id))
}

func taskDoneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a task completed",
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

			outcome, err := app.Repo.Tasks.UpdateStatus(cmd.Context(), id, models.TaskStatusCompleted)
			return reportOutcome(f, outcome, err, fmt.Sprintf("completed task %d", id))
		},
	}
	addOutputFlags(cmd)
	return cmd
}

func taskDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task",
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

			outcome, err := app.Repo.Tasks.Delete(cmd.Context(), id)
			return reportOutcome(f, outcome, err, fmt.Sprintf("deleted task %d", id))
		},
	}
	addOutputFlags(cmd)
	return cmd
}
