package cli

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"timekeeper/internal/database"
	"timekeeper/internal/models"
)

// NoteCmd returns the note subcommand tree.
func NoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "note",
		Short: "Manage notes",
	}
	cmd.AddCommand(noteAddCmd(), noteListCmd(), noteShowCmd(),
		noteUpdateCmd(), noteDeleteCmd())
	return cmd
}

func noteAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new note",
		RunE: func(cmd *cobra.Command, args []string) error {
			f := formatterFromFlags(cmd)
			app, err := NewApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			content, _ := cmd.Flags().GetString("content")
			id, err := app.Repo.Notes.Add(cmd.Context(), database.NewNote{
				Title:     optStr(cmd, "title"),
				Content:   content,
				TaskID:    optID(cmd, "task"),
				ProjectID: optID(cmd, "project"),
			})
			if err != nil {
				return reportError(f, err)
			}

			note, err := app.Repo.Notes.Get(cmd.Context(), id)
			if err != nil {
				return reportError(f, err)
			}
			return f.Successf(note, "created note %d", note.ID)
		},
	}
	cmd.Flags().String("content", "", "Note content in markdown (required)")
	_ = cmd.MarkFlagRequired("content")
	cmd.Flags().String("title", "", "Note title")
	cmd.Flags().Int64("task", 0, "Task ID to attach to")
	cmd.Flags().Int64("project", 0, "Project ID to attach to")
	addOutputFlags(cmd)
	return cmd
}

func noteListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notes",
		RunE: func(cmd *cobra.Command, args []string) error {
			f := formatterFromFlags(cmd)
			app, err := NewApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			var notes []*models.Note
			switch {
			case cmd.Flags().Changed("task"):
				taskID, _ := cmd.Flags().GetInt64("task")
				notes, err = app.Repo.Notes.ForTask(cmd.Context(), taskID)
			case cmd.Flags().Changed("project"):
				projectID, _ := cmd.Flags().GetInt64("project")
				notes, err = app.Repo.Notes.ForProject(cmd.Context(), projectID)
			default:
				sortBy, _ := cmd.Flags().GetString("sort")
				sortOrder, _ := cmd.Flags().GetString("order")
				notes, err = app.Repo.Notes.List(cmd.Context(), sortBy, sortOrder)
			}
			if err != nil {
				return reportError(f, err)
			}

			if f.JSON || f.Quiet {
				return f.Success(notes)
			}
			if len(notes) == 0 {
				fmt.Println(subtleStyle.Render("no notes"))
				return nil
			}
			for _, n := range notes {
				title := orEmpty(n.Title)
				fmt.Printf("%4d  %-25s %s\n", n.ID, title, n.CreatedAt)
			}
			return nil
		},
	}
	cmd.Flags().Int64("task", 0, "Only notes attached to this task")
	cmd.Flags().Int64("project", 0, "Only notes attached to this project")
	cmd.Flags().String("sort", "", "Sort column (default created_at)")
	cmd.Flags().String("order", "", "Sort order: asc or desc")
	addOutputFlags(cmd)
	return cmd
}

func noteShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one note, rendering its content as markdown",
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

			note, err := app.Repo.Notes.Get(cmd.Context(), id)
			if err != nil {
				return reportError(f, err)
			}

			if f.JSON || f.Quiet {
				return f.Success(note)
			}

			header := fmt.Sprintf("#%d", note.ID)
			if note.Title != nil {
				header += " " + *note.Title
			}
			fmt.Println(titleStyle.Render(header))
			fmt.Println(renderMarkdown(note.Content))
			fmt.Println(field("Task", orEmptyID(note.TaskID)))
			fmt.Println(field("Project", orEmptyID(note.ProjectID)))
			fmt.Println(subtleStyle.Render("created " + note.CreatedAt + ", updated " + note.UpdatedAt))
			return nil
		},
	}
	addOutputFlags(cmd)
	return cmd
}

// renderMarkdown pretty-prints note content for the terminal, falling back to
// the raw text when the renderer is unavailable.
func renderMarkdown(content string) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return content
	}
	out, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return out
}

func noteUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update note fields; unmentioned fields are left untouched",
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

			patch := database.NotePatch{
				Title:     stringField(cmd, "title", "clear-title"),
				Content:   stringField(cmd, "content", ""),
				TaskID:    idField(cmd, "task", "clear-task"),
				ProjectID: idField(cmd, "project", "clear-project"),
			}
			outcome, err := app.Repo.Notes.Update(cmd.Context(), id, patch)
			return reportOutcome(f, outcome, err, fmt.Sprintf("updated note %d", id))
		},
	}
	cmd.Flags().String("title", "", "New title")
	cmd.Flags().Bool("clear-title", false, "Clear the title")
	cmd.Flags().String("content", "", "New content")
	cmd.Flags().Int64("task", 0, "New task ID")
	cmd.Flags().Bool("clear-task", false, "Detach from task")
	cmd.Flags().Int64("project", 0, "New project ID")
	cmd.Flags().Bool("clear-project", false, "Detach from project")
	addOutputFlags(cmd)
	return cmd
}

func noteDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a note",
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

			outcome, err := app.Repo.Notes.Delete(cmd.Context(), id)
			return reportOutcome(f, outcome, err, fmt.Sprintf("deleted note %d", id))
		},
	}
	addOutputFlags(cmd)
	return cmd
}
