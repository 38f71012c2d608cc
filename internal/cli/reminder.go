package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"timekeeper/internal/database"
	"timekeeper/internal/models"
)

// ReminderCmd returns the reminder subcommand tree.
func ReminderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reminder",
		Short: "Manage reminders",
	}
	cmd.AddCommand(reminderAddCmd(), reminderListCmd(), reminderCheckCmd(),
		reminderDismissCmd(), reminderDeleteCmd())
	return cmd
}

func reminderAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new reminder",
		RunE: func(cmd *cobra.Command, args []string) error {
			f := formatterFromFlags(cmd)
			app, err := NewApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			at, _ := cmd.Flags().GetString("at")
			status, _ := cmd.Flags().GetString("status")
			id, err := app.Repo.Reminders.Add(cmd.Context(), database.NewReminder{
				ReminderTime: at,
				Message:      optStr(cmd, "message"),
				TaskID:       optID(cmd, "task"),
				EventID:      optID(cmd, "event"),
				Status:       status,
			})
			if err != nil {
				return reportError(f, err)
			}

			rem, err := app.Repo.Reminders.Get(cmd.Context(), id)
			if err != nil {
				return reportError(f, err)
			}
			return f.Successf(rem, "created reminder %d for %s", rem.ID, rem.ReminderTime)
		},
	}
	cmd.Flags().String("at", "", "Reminder time (YYYY-MM-DD HH:MM:SS, required)")
	_ = cmd.MarkFlagRequired("at")
	cmd.Flags().String("message", "", "Reminder message")
	cmd.Flags().Int64("task", 0, "Task ID to attach to")
	cmd.Flags().Int64("event", 0, "Event ID to attach to")
	cmd.Flags().String("status", "", "Initial status (default pending)")
	addOutputFlags(cmd)
	return cmd
}

func reminderListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List reminders",
		RunE: func(cmd *cobra.Command, args []string) error {
			f := formatterFromFlags(cmd)
			app, err := NewApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			var reminders []*models.Reminder
			switch {
			case cmd.Flags().Changed("task"):
				taskID, _ := cmd.Flags().GetInt64("task")
				reminders, err = app.Repo.Reminders.ForTask(cmd.Context(), taskID)
			case cmd.Flags().Changed("event"):
				eventID, _ := cmd.Flags().GetInt64("event")
				reminders, err = app.Repo.Reminders.ForEvent(cmd.Context(), eventID)
			default:
				pending, _ := cmd.Flags().GetBool("pending")
				if pending {
					before, _ := cmd.Flags().GetString("before")
					reminders, err = app.Repo.Reminders.Pending(cmd.Context(), before)
				} else {
					sortBy, _ := cmd.Flags().GetString("sort")
					sortOrder, _ := cmd.Flags().GetString("order")
					reminders, err = app.Repo.Reminders.List(cmd.Context(), sortBy, sortOrder)
				}
			}
			if err != nil {
				return reportError(f, err)
			}

			if f.JSON || f.Quiet {
				return f.Success(reminders)
			}
			if len(reminders) == 0 {
				fmt.Println(subtleStyle.Render("no reminders"))
				return nil
			}
			for _, rem := range reminders {
				fmt.Printf("%4d  %-11s %s  %s\n", rem.ID, "["+rem.Status+"]",
					rem.ReminderTime, orEmpty(rem.Message))
			}
			return nil
		},
	}
	cmd.Flags().Int64("task", 0, "Only reminders attached to this task")
	cmd.Flags().Int64("event", 0, "Only reminders attached to this event")
	cmd.Flags().Bool("pending", false, "Only pending reminders")
	cmd.Flags().String("before", "", "With --pending, only reminders due at or before this time")
	cmd.Flags().String("sort", "", "Sort column (default reminder_time)")
	cmd.Flags().String("order", "", "Sort order: asc or desc")
	addOutputFlags(cmd)
	return cmd
}

func reminderCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Trigger every pending reminder that is due",
		RunE: func(cmd *cobra.Command, args []string) error {
			f := formatterFromFlags(cmd)
			app, err := NewApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			now, _ := cmd.Flags().GetString("now")
			if now == "" {
				now = models.Now()
			}

			triggered, err := app.Repo.Reminders.CheckAndTrigger(cmd.Context(), now)
			if err != nil {
				return reportError(f, err)
			}

			if f.JSON || f.Quiet {
				return f.Success(map[string]any{"triggered": triggered})
			}
			if len(triggered) == 0 {
				fmt.Println(subtleStyle.Render("no reminders due"))
				return nil
			}
			return f.Successf(triggered, "triggered %d reminder(s)", len(triggered))
		},
	}
	cmd.Flags().String("now", "", "Override the current time (YYYY-MM-DD HH:MM:SS)")
	addOutputFlags(cmd)
	return cmd
}

func reminderDismissCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dismiss <id>",
		Short: "Mark a reminder dismissed",
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

			outcome, err := app.Repo.Reminders.UpdateStatus(cmd.Context(), id, models.ReminderStatusDismissed)
			return reportOutcome(f, outcome, err, fmt.Sprintf("dismissed reminder %d", id))
		},
	}
	addOutputFlags(cmd)
	return cmd
}

func reminderDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a reminder",
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

			outcome, err := app.Repo.Reminders.Delete(cmd.Context(), id)
			return reportOutcome(f, outcome, err, fmt.Sprintf("deleted reminder %d", id))
		},
	}
	addOutputFlags(cmd)
	return cmd
}
