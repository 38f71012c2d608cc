package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"timekeeper/internal/database"
	"timekeeper/internal/models"
)

// EventCmd returns the event subcommand tree.
func EventCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "event",
		Short: "Manage calendar events",
	}
	cmd.AddCommand(eventAddCmd(), eventListCmd(), eventShowCmd(),
		eventUpdateCmd(), eventDeleteCmd())
	return cmd
}

func eventAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new event",
		RunE: func(cmd *cobra.Command, args []string) error {
			f := formatterFromFlags(cmd)
			app, err := NewApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			title, _ := cmd.Flags().GetString("title")
			start, _ := cmd.Flags().GetString("start")
			end, _ := cmd.Flags().GetString("end")
			allDay, _ := cmd.Flags().GetBool("all-day")
			isAllDay := 0
			if allDay {
				isAllDay = 1
			}

			id, err := app.Repo.Events.Add(cmd.Context(), database.NewEvent{
				Title:          title,
				Description:    optStr(cmd, "description"),
				StartTime:      start,
				EndTime:        end,
				Location:       optStr(cmd, "location"),
				IsAllDay:       isAllDay,
				RecurrenceRule: optStr(cmd, "recurrence"),
			})
			if err != nil {
				return reportError(f, err)
			}

			event, err := app.Repo.Events.Get(cmd.Context(), id)
			if err != nil {
				return reportError(f, err)
			}
			return f.Successf(event, "created event %d: %s", event.ID, event.Title)
		},
	}
	cmd.Flags().String("title", "", "Event title (required)")
	_ = cmd.MarkFlagRequired("title")
	cmd.Flags().String("start", "", "Start time (YYYY-MM-DD HH:MM:SS, required)")
	_ = cmd.MarkFlagRequired("start")
	cmd.Flags().String("end", "", "End time (YYYY-MM-DD HH:MM:SS, required)")
	_ = cmd.MarkFlagRequired("end")
	cmd.Flags().String("description", "", "Event description")
	cmd.Flags().String("location", "", "Event location")
	cmd.Flags().Bool("all-day", false, "Mark the event as all-day")
	cmd.Flags().String("recurrence", "", "Recurrence rule")
	addOutputFlags(cmd)
	return cmd
}

func eventListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List events, optionally only those overlapping a period",
		RunE: func(cmd *cobra.Command, args []string) error {
			f := formatterFromFlags(cmd)
			app, err := NewApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			sortBy, _ := cmd.Flags().GetString("sort")
			sortOrder, _ := cmd.Flags().GetString("order")

			var events []*models.Event
			if cmd.Flags().Changed("from") || cmd.Flags().Changed("to") {
				from, _ := cmd.Flags().GetString("from")
				to, _ := cmd.Flags().GetString("to")
				if from == "" || to == "" {
					f.Error("VALIDATION", "--from and --to must be given together")
					return ErrHandled
				}
				events, err = app.Repo.Events.ListForPeriod(cmd.Context(), from, to, sortBy, sortOrder)
			} else {
				events, err = app.Repo.Events.List(cmd.Context(), sortBy, sortOrder)
			}
			if err != nil {
				return reportError(f, err)
			}

			if f.JSON || f.Quiet {
				return f.Success(events)
			}
			if len(events) == 0 {
				fmt.Println(subtleStyle.Render("no events"))
				return nil
			}
			for _, e := range events {
				marker := " "
				if e.IsAllDay == 1 {
					marker = "*"
				}
				fmt.Printf("%4d %s %s — %s  %s\n", e.ID, marker, e.StartTime, e.EndTime, e.Title)
			}
			return nil
		},
	}
	cmd.Flags().String("from", "", "Period start (YYYY-MM-DD HH:MM:SS)")
	cmd.Flags().String("to", "", "Period end (YYYY-MM-DD HH:MM:SS)")
	cmd.Flags().String("sort", "", "Sort column (default start_time)")
	cmd.Flags().String("order", "", "Sort order: asc or desc")
	addOutputFlags(cmd)
	return cmd
}

func eventShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one event",
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

			event, err := app.Repo.Events.Get(cmd.Context(), id)
			if err != nil {
				return reportError(f, err)
			}

			if f.JSON || f.Quiet {
				return f.Success(event)
			}

			allDay := "no"
			if event.IsAllDay == 1 {
				allDay = "yes"
			}
			lines := []string{
				titleStyle.Render(fmt.Sprintf("#%d %s", event.ID, event.Title)),
				field("Start", event.StartTime),
				field("End", event.EndTime),
				field("All day", allDay),
				field("Location", orEmpty(event.Location)),
				field("Recurrence", orEmpty(event.RecurrenceRule)),
				field("Description", orEmpty(event.Description)),
				subtleStyle.Render("created " + event.CreatedAt + ", updated " + event.UpdatedAt),
			}
			fmt.Println(strings.Join(lines, "\n"))
			return nil
		},
	}
	addOutputFlags(cmd)
	return cmd
}

func eventUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update event fields; unmentioned fields are left untouched",
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

			patch := database.EventPatch{
				Title:          stringField(cmd, "title", ""),
				Description:    stringField(cmd, "description", "clear-description"),
				StartTime:      stringField(cmd, "start", ""),
				EndTime:        stringField(cmd, "end", ""),
				Location:       stringField(cmd, "location", "clear-location"),
				RecurrenceRule: stringField(cmd, "recurrence", "clear-recurrence"),
			}
			if cmd.Flags().Changed("all-day") {
				allDay, _ := cmd.Flags().GetBool("all-day")
				flag := 0
				if allDay {
					flag = 1
				}
				patch.IsAllDay = models.Set(flag)
			}

			outcome, err := app.Repo.Events.Update(cmd.Context(), id, patch)
			return reportOutcome(f, outcome, err, fmt.Sprintf("updated event %d", id))
		},
	}
	cmd.Flags().String("title", "", "New title")
	cmd.Flags().String("description", "", "New description")
	cmd.Flags().Bool("clear-description", false, "Clear the description")
	cmd.Flags().String("start", "", "New start time")
	cmd.Flags().String("end", "", "New end time")
	cmd.Flags().String("location", "", "New location")
	cmd.Flags().Bool("clear-location", false, "Clear the location")
	cmd.Flags().Bool("all-day", false, "Set or unset the all-day flag")
	cmd.Flags().String("recurrence", "", "New recurrence rule")
	cmd.Flags().Bool("clear-recurrence", false, "Clear the recurrence rule")
	addOutputFlags(cmd)
	return cmd
}

func eventDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an event",
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

			outcome, err := app.Repo.Events.Delete(cmd.Context(), id)
			return reportOutcome(f, outcome, err, fmt.Sprintf("deleted event %d", id))
		},
	}
	addOutputFlags(cmd)
	return cmd
}
