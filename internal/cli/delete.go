package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var taskDeleteCmd = &cobra.Command{
	Use:     "delete [task-id]",
	Aliases: []string{"rm"},
	Short:   "Delete a task",
	Long: `Delete a task by its ID.

Examples:
  taskboard tasks delete 12
  taskboard tasks rm 12 -P 3`,
	Args: cobra.ExactArgs(1),
	RunE: runTaskDelete,
}

func runTaskDelete(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()
	ctx := context.Background()

	ctrl, err := openTasks(ctx, a)
	if err != nil {
		return err
	}
	task, err := findTask(ctrl, args[0])
	if err != nil {
		return err
	}

	if err := ctrl.Delete(ctx, task.ID); err != nil {
		return fmt.Errorf("failed to delete task %d: %w", task.ID, err)
	}
	fmt.Printf("🗑️  Deleted: \"%s\"\n", task.Titulo)
	return nil
}
