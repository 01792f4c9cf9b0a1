package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset stored data",
	Long: `Reset stored data.

Examples:
  pomodolist reset completed   # Clear the completed list
  pomodolist reset tasks       # Delete all active and completed tasks
  pomodolist reset all         # Delete the database and its key`,
}

var resetCompletedCmd = &cobra.Command{
	Use:   "completed",
	Short: "Clear the completed task list",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirmPrompt("This will delete ALL completed tasks. Continue?") {
			fmt.Println("Cancelled.")
			return nil
		}

		if err := appInstance.Tasks.ClearCompleted(context.Background()); err != nil {
			return fmt.Errorf("failed to clear completed tasks: %w", err)
		}
		fmt.Println("All completed tasks have been deleted.")
		return nil
	},
}

var resetTasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "Delete all active and completed tasks",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirmPrompt("This will delete ALL tasks and their tracked time. Continue?") {
			fmt.Println("Cancelled.")
			return nil
		}

		// Stop restored ticks so nothing rewrites the keys afterwards
		appInstance.Tasks.Close()
		if err := appInstance.TaskRepo.Clear(context.Background()); err != nil {
			return fmt.Errorf("failed to clear tasks: %w", err)
		}
		fmt.Println("All tasks have been deleted.")
		return nil
	},
}

var resetAllCmd = &cobra.Command{
	Use:   "all",
	Short: "Delete the database and its encryption key",
	Long: `Delete the database files. For an encrypted database the key is removed
from the system keyring as well, so the next start asks for a new password.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirmPrompt("This will delete the database and its encryption key. Continue?") {
			fmt.Println("Cancelled.")
			return nil
		}

		if err := appInstance.Wipe(); err != nil {
			return fmt.Errorf("failed to wipe data: %w", err)
		}
		fmt.Println("All data has been deleted.")
		return nil
	},
}

func confirmPrompt(message string) bool {
	fmt.Printf("%s [y/N] ", message)
	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func init() {
	resetCmd.AddCommand(resetCompletedCmd)
	resetCmd.AddCommand(resetTasksCmd)
	resetCmd.AddCommand(resetAllCmd)
}
