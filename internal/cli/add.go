package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/existflow/taskboard/internal/model"
	"github.com/existflow/taskboard/internal/resource"
	"github.com/spf13/cobra"
)

var taskAddCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a task",
	Long: `Add a task to a project.

Examples:
  taskboard tasks add "Deploy" -D "Publicar versão 2"
  taskboard tasks add "Review" -D "Revisar PR" -p Alta --due 2024-05-01 -P 3`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTaskAdd,
}

var taskEditCmd = &cobra.Command{
	Use:   "edit [task-id]",
	Short: "Change a task",
	Long: `Change a task. Only the flags you pass are updated.

Examples:
  taskboard tasks edit 12 --title "Deploy v2"
  taskboard tasks edit 12 --priority High --due ""`,
	Args: cobra.ExactArgs(1),
	RunE: runTaskEdit,
}

var (
	taskTitle       string
	taskDescription string
	taskPriority    string
	taskStatus      string
	taskDue         string
)

func init() {
	for _, c := range []*cobra.Command{taskAddCmd, taskEditCmd} {
		c.Flags().StringVarP(&taskTitle, "title", "t", "", "Task title")
		c.Flags().StringVarP(&taskDescription, "description", "D", "", "Task description")
		c.Flags().StringVarP(&taskPriority, "priority", "p", "", "Priority (Low, Medium, High or 0-2)")
		c.Flags().StringVarP(&taskStatus, "status", "s", "", "Status (NotStarted, InProgress, Finished or 0-2)")
		c.Flags().StringVarP(&taskDue, "due", "d", "", "Due date (YYYY-MM-DD, empty to clear)")
	}
}

// applyTaskFlags copies the flags the user passed onto d
func applyTaskFlags(cmd *cobra.Command, d *resource.TaskDraft) error {
	flags := cmd.Flags()
	if flags.Changed("title") {
		d.Titulo = taskTitle
	}
	if flags.Changed("description") {
		d.Descricao = taskDescription
	}
	if flags.Changed("priority") {
		p, ok := model.ParsePriority(taskPriority)
		if !ok {
			return fmt.Errorf("unknown priority %q", taskPriority)
		}
		d.Prioridade = p
	}
	if flags.Changed("status") {
		s, ok := model.ParseStatus(taskStatus)
		if !ok {
			return fmt.Errorf("unknown status %q", taskStatus)
		}
		d.Status = s
	}
	if flags.Changed("due") {
		d.Due = resource.DueInput{Text: taskDue}
	}
	return nil
}

func runTaskAdd(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()
	ctx := context.Background()
	if err := a.requireLogin(ctx); err != nil {
		return err
	}

	projectID, err := a.projectID(ctx, taskProject)
	if err != nil {
		return err
	}

	d := resource.TaskDraft{Titulo: strings.Join(args, " ")}
	if err := applyTaskFlags(cmd, &d); err != nil {
		return err
	}

	ctrl := resource.NewTaskController(a.client, printer(), projectID)
	return ctrl.Save(ctx, d)
}

func runTaskEdit(cmd *cobra.Command, args []string) error {
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

	ctrl.BeginEdit(task)
	d := resource.TaskDraftFrom(task)
	if err := applyTaskFlags(cmd, &d); err != nil {
		return err
	}
	return ctrl.Save(ctx, d)
}
