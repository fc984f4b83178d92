package main

import (
	"fmt"

	"github.com/mengash94/planora-plan-ora.net-sub000/internal/model"
	"github.com/spf13/cobra"
)

var tasksCmd = &cobra.Command{
	Use:     "tasks",
	Short:   "Manage an event's task list",
	GroupID: "planning",
}

var tasksListCmd = &cobra.Command{
	Use:   "list <event-id>",
	Short: "List tasks",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		page, err := loadPage(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		tasks := page.Tasks.Items()
		if jsonOutput {
			printJSON(tasks)
			return nil
		}
		done, total := page.Tasks.Counts()
		printTaskTable(cmd.OutOrStdout(), tasks, done, total)
		return nil
	},
}

var tasksAddCmd = &cobra.Command{
	Use:   "add <event-id> <title>",
	Short: "Add a task",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		page, err := loadPage(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		t := &model.Task{Title: args[1]}
		t.Description, _ = cmd.Flags().GetString("description")
		t.AssigneeID, _ = cmd.Flags().GetString("assignee")
		t.Priority, _ = cmd.Flags().GetString("priority")
		if due, _ := cmd.Flags().GetString("due"); due != "" {
			if t.DueDate, err = model.ParseTimestamp(due); err != nil {
				return fmt.Errorf("--due: %w", err)
			}
		}
		created, err := page.Tasks.Add(cmd.Context(), t)
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(created)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), formatCreatedTask(created))
		return nil
	},
}

var tasksToggleCmd = &cobra.Command{
	Use:   "toggle <event-id> <task-id>",
	Short: "Flip a task between done and not done",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		page, err := loadPage(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		t, err := page.Tasks.Toggle(cmd.Context(), args[1])
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(t)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", t.Title, t.Status)
		return nil
	},
}

var tasksRmCmd = &cobra.Command{
	Use:   "rm <event-id> <task-id>",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		page, err := loadPage(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return page.Tasks.Remove(cmd.Context(), args[1])
	},
}

func formatCreatedTask(t *model.Task) string {
	return fmt.Sprintf("Created task %s: %s", t.ID, t.Title)
}

func init() {
	tasksAddCmd.Flags().String("description", "", "task details")
	tasksAddCmd.Flags().String("assignee", "", "user ID to assign")
	tasksAddCmd.Flags().String("priority", "", "low, medium, or high")
	tasksAddCmd.Flags().String("due", "", "due date (2006-01-02)")

	tasksCmd.AddCommand(tasksListCmd)
	tasksCmd.AddCommand(tasksAddCmd)
	tasksCmd.AddCommand(tasksToggleCmd)
	tasksCmd.AddCommand(tasksRmCmd)
}
