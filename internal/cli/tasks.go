package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/andy/pomodolist/internal/service"
	"github.com/spf13/cobra"
)

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "Manage the task list",
	Long: `Add, start, stop, complete, remove and reorder tasks. Positions are 1-based
as shown by 'tasks list'. A started task accumulates time only while a
pomodolist process is open and resumes on the next launch.

Only one process can use the database at a time: quit the TUI before running
these commands.`,
}

var tasksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List active and completed tasks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		printTasks(cmd.OutOrStdout())
		return nil
	},
}

var tasksAddCmd = &cobra.Command{
	Use:   "add <text>",
	Short: "Add a task to the end of the active list",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.TrimSpace(strings.Join(args, " "))
		if text == "" {
			return errors.New("task text cannot be empty")
		}
		if err := appInstance.Tasks.AddTask(context.Background(), text); err != nil {
			return fmt.Errorf("failed to add task: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Added %q\n", text)
		return nil
	},
}

var tasksStartCmd = &cobra.Command{
	Use:   "start <position>",
	Short: "Start tracking time on a task",
	Args:  cobra.ExactArgs(1),
	RunE: activeTaskCommand("Started", func(ctx context.Context, i int) error {
		return appInstance.Tasks.StartTask(ctx, i)
	}),
}

var tasksStopCmd = &cobra.Command{
	Use:   "stop <position>",
	Short: "Stop tracking time on a task",
	Args:  cobra.ExactArgs(1),
	RunE: activeTaskCommand("Stopped", func(ctx context.Context, i int) error {
		return appInstance.Tasks.StopTask(ctx, i)
	}),
}

var tasksCompleteCmd = &cobra.Command{
	Use:     "complete <position>",
	Aliases: []string{"done"},
	Short:   "Move a task to the completed list",
	Args:    cobra.ExactArgs(1),
	RunE: activeTaskCommand("Completed", func(ctx context.Context, i int) error {
		return appInstance.Tasks.CompleteTask(ctx, i)
	}),
}

var tasksRemoveCmd = &cobra.Command{
	Use:     "remove <position>",
	Aliases: []string{"rm"},
	Short:   "Remove a task from the active list",
	Args:    cobra.ExactArgs(1),
	RunE: activeTaskCommand("Removed", func(ctx context.Context, i int) error {
		return appInstance.Tasks.RemoveTask(ctx, i)
	}),
}

var tasksRemoveCompletedCmd = &cobra.Command{
	Use:   "remove-completed <position>",
	Short: "Remove a task from the completed list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		completed := appInstance.Tasks.CompletedTasks()
		i, err := parsePosition(args[0], len(completed))
		if err != nil {
			return err
		}
		task := completed[i]
		if err := appInstance.Tasks.RemoveCompletedTask(context.Background(), task.ID); err != nil {
			return fmt.Errorf("failed to remove completed task: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Removed %q\n", task.Text)
		return nil
	},
}

var tasksMoveCmd = &cobra.Command{
	Use:   "move <from> <to>",
	Short: "Move an active task to a new position",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		n := len(appInstance.Tasks.ActiveTasks())
		from, err := parsePosition(args[0], n)
		if err != nil {
			return err
		}
		to, err := parsePosition(args[1], n)
		if err != nil {
			return err
		}
		if err := appInstance.Tasks.Reorder(context.Background(), from, to); err != nil {
			return fmt.Errorf("failed to move task: %w", err)
		}
		printTasks(cmd.OutOrStdout())
		return nil
	},
}

func init() {
	tasksCmd.AddCommand(tasksListCmd)
	tasksCmd.AddCommand(tasksAddCmd)
	tasksCmd.AddCommand(tasksStartCmd)
	tasksCmd.AddCommand(tasksStopCmd)
	tasksCmd.AddCommand(tasksCompleteCmd)
	tasksCmd.AddCommand(tasksRemoveCmd)
	tasksCmd.AddCommand(tasksRemoveCompletedCmd)
	tasksCmd.AddCommand(tasksMoveCmd)
}

// activeTaskCommand builds a RunE that resolves a 1-based active position
func activeTaskCommand(verb string, op func(ctx context.Context, i int) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		active := appInstance.Tasks.ActiveTasks()
		i, err := parsePosition(args[0], len(active))
		if err != nil {
			return err
		}
		if err := op(context.Background(), i); err != nil {
			return fmt.Errorf("%s task: %w", strings.ToLower(verb), err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ %s %q\n", verb, active[i].Text)
		return nil
	}
}

// parsePosition converts a 1-based position into an index below n
func parsePosition(arg string, n int) (int, error) {
	pos, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid position %q", arg)
	}
	if pos < 1 || pos > n {
		return 0, fmt.Errorf("position %d: %w", pos, service.ErrIndexOutOfRange)
	}
	return pos - 1, nil
}

func printTasks(out io.Writer) {
	active := appInstance.Tasks.ActiveTasks()
	completed := appInstance.Tasks.CompletedTasks()

	if len(active) == 0 && len(completed) == 0 {
		fmt.Fprintln(out, "No tasks yet. Add one with: pomodolist tasks add <text>")
		return
	}

	fmt.Fprintln(out, "Active Tasks")
	if len(active) == 0 {
		fmt.Fprintln(out, "  (none)")
	}
	for i, t := range active {
		marker := " "
		if t.IsActive {
			marker = "▶"
		}
		fmt.Fprintf(out, "  %d. %s %-40s %s\n", i+1, marker, t.Text, t.Elapsed())
	}

	if len(completed) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Completed Tasks")
		for i, t := range completed {
			fmt.Fprintf(out, "  %d. ✓ %-40s %s\n", i+1, t.Text, t.Elapsed())
		}
	}
}
