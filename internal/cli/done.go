package cli

import (
	"context"
	"fmt"

	"github.com/existflow/taskboard/internal/model"
	"github.com/spf13/cobra"
)

var taskDoneCmd = &cobra.Command{
	Use:   "done [task-id]",
	Short: "Mark a task as finished",
	Long: `Mark a task as finished.

Examples:
  taskboard tasks done 12
  taskboard tasks done 12 --undo`,
	Args: cobra.ExactArgs(1),
	RunE: runDone,
}

var doneUndo bool

func init() {
	taskDoneCmd.Flags().BoolVar(&doneUndo, "undo", false, "Mark task as not started")
}

func runDone(cmd *cobra.Command, args []string) error {
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

	status := model.StatusFinished
	if doneUndo {
		status = model.StatusNotStarted
	}
	if err := ctrl.SetStatus(ctx, task.ID, status); err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	if doneUndo {
		fmt.Printf("○ Reopened: \"%s\"\n", task.Titulo)
	} else {
		fmt.Printf("✓ Completed: \"%s\"\n", task.Titulo)
	}
	return nil
}
