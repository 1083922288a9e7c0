package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/existflow/taskboard/internal/model"
	"github.com/existflow/taskboard/internal/resource"
	"github.com/spf13/cobra"
)

var taskCmd = &cobra.Command{
	Use:     "tasks",
	Aliases: []string{"task"},
	Short:   "Manage the tasks of a project",
	Long: `List, add, edit, complete and delete tasks.

Every task command works on the project given with --project, or on the
default project chosen with 'taskboard use <project-id>'.`,
}

var taskListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Long: `List the tasks of a project.

Examples:
  taskboard tasks list
  taskboard tasks list --project 3
  taskboard tasks list --pending`,
	RunE: runTaskList,
}

var (
	taskProject     int64
	taskListPending bool
)

func init() {
	taskCmd.PersistentFlags().Int64VarP(&taskProject, "project", "P", 0, "Project id (defaults to 'taskboard use')")
	taskListCmd.Flags().BoolVar(&taskListPending, "pending", false, "Hide finished tasks")

	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskEditCmd)
	taskCmd.AddCommand(taskDeleteCmd)
	taskCmd.AddCommand(taskDoneCmd)
}

// openTasks resolves the project and loads its tasks
func openTasks(ctx context.Context, a *app) (*resource.TaskController, error) {
	if err := a.requireLogin(ctx); err != nil {
		return nil, err
	}
	projectID, err := a.projectID(ctx, taskProject)
	if err != nil {
		return nil, err
	}
	ctrl := resource.NewTaskController(a.client, printer(), projectID)
	if err := ctrl.Load(ctx); err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return ctrl, nil
}

// findTask looks id up in the loaded list
func findTask(ctrl *resource.TaskController, arg string) (model.Task, error) {
	id, err := parseID(arg)
	if err != nil {
		return model.Task{}, err
	}
	for _, item := range ctrl.Snapshot().Items {
		if item.Task.ID == id {
			return item.Task, nil
		}
	}
	return model.Task{}, fmt.Errorf("task not found: %d", id)
}

func runTaskList(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctrl, err := openTasks(context.Background(), a)
	if err != nil {
		return err
	}

	var tasks []model.Task
	for _, item := range ctrl.Snapshot().Items {
		if taskListPending && item.Task.Status == model.StatusFinished {
			continue
		}
		tasks = append(tasks, item.Task)
	}
	printTasks(ctrl.Header(), tasks)
	return nil
}

func printTasks(header string, tasks []model.Task) {
	pending := 0
	for _, t := range tasks {
		if t.Status != model.StatusFinished {
			pending++
		}
	}

	fmt.Printf("\n📁 %s (%d pending)\n", header, pending)
	fmt.Println(strings.Repeat("─", 78))

	if len(tasks) == 0 {
		fmt.Println("  No tasks. Add one with: taskboard tasks add \"Title\" -D \"Description\"")
	}
	now := time.Now()
	for _, t := range tasks {
		printTask(t, now)
	}
	fmt.Println()
}

func printTask(t model.Task, now time.Time) {
	icon := "[ ]"
	switch t.Status {
	case model.StatusFinished:
		icon = "[x]"
	case model.StatusInProgress:
		icon = "[~]"
	}

	due := model.FormatOptionalDate(t.DataVencimento)
	if t.IsOverdue(now) {
		due = "⚠ " + due
	}

	fmt.Printf("  %s  %-6d  %-36s  %-8s  %-14s  %s\n", icon, t.ID, truncate(t.Titulo, 36),
		t.Prioridade.Label(), t.Status.Label(), due)
}
