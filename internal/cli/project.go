package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/existflow/taskboard/internal/model"
	"github.com/existflow/taskboard/internal/resource"
	"github.com/spf13/cobra"
)

var projectCmd = &cobra.Command{
	Use:     "projects",
	Aliases: []string{"project"},
	Short:   "Manage projects",
	Long:    `Create, list, edit and delete projects on the backend.`,
}

var projectListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List projects",
	RunE:    runProjectList,
}

var projectAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Create a project",
	Long: `Create a project.

Examples:
  taskboard projects add "Website" --description "Novo site"
  taskboard projects add "App" -D "Mobile" --start 2024-01-15 --status "Em Andamento"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runProjectAdd,
}

var projectEditCmd = &cobra.Command{
	Use:   "edit [project-id]",
	Short: "Change a project",
	Long: `Change a project. Only the flags you pass are updated.

Examples:
  taskboard projects edit 3 --name "Website v2"
  taskboard projects edit 3 --status Concluído --end 2024-06-30`,
	Args: cobra.ExactArgs(1),
	RunE: runProjectEdit,
}

var projectDeleteCmd = &cobra.Command{
	Use:     "delete [project-id]",
	Aliases: []string{"rm"},
	Short:   "Delete a project",
	Args:    cobra.ExactArgs(1),
	RunE:    runProjectDelete,
}

var (
	projectName        string
	projectDescription string
	projectStatus      string
	projectStart       string
	projectEnd         string
	projectPage        int
)

func init() {
	for _, c := range []*cobra.Command{projectAddCmd, projectEditCmd} {
		c.Flags().StringVarP(&projectName, "name", "n", "", "Project name")
		c.Flags().StringVarP(&projectDescription, "description", "D", "", "Project description")
		c.Flags().StringVarP(&projectStatus, "status", "s", "", "Status (NotStarted, InProgress, Finished or 0-2)")
		c.Flags().StringVar(&projectStart, "start", "", "Start date (YYYY-MM-DD, empty to clear)")
		c.Flags().StringVar(&projectEnd, "end", "", "End date (YYYY-MM-DD, empty to clear)")
	}
	projectListCmd.Flags().IntVar(&projectPage, "page", 1, "Page to fetch")

	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectAddCmd)
	projectCmd.AddCommand(projectEditCmd)
	projectCmd.AddCommand(projectDeleteCmd)
}

func runProjectList(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()
	ctx := context.Background()
	if err := a.requireLogin(ctx); err != nil {
		return err
	}

	ctrl := resource.NewProjectController(a.client, printer(), resource.Options{Page: projectPage, PageSize: cfg.PageSize})
	items, err := ctrl.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list projects: %w", err)
	}

	if len(items) == 0 {
		fmt.Println("No projects found. Add one with: taskboard projects add \"Name\" -D \"Description\"")
		return nil
	}

	current, _ := a.projectID(ctx, 0)

	fmt.Println()
	fmt.Printf("  %-6s  %-24s  %-14s  %-10s  %s\n", "ID", "Nome", "Status", "Início", "Fim")
	fmt.Println(strings.Repeat("─", 72))
	for _, item := range items {
		p := item.Project
		marker := "  "
		if p.ID == current {
			marker = "❯ "
		}
		fmt.Printf("%s%-6d  %-24s  %-14s  %-10s  %s\n", marker, p.ID, truncate(p.DisplayName(), 24),
			p.Status.Label(), model.FormatOptionalDate(p.DataInicio), model.FormatOptionalDate(p.DataFim))
	}
	fmt.Println(strings.Repeat("─", 72))
	fmt.Printf("  page %d, %d projects\n\n", projectPage, len(items))
	return nil
}

// applyProjectFlags copies the flags the user passed onto d
func applyProjectFlags(cmd *cobra.Command, d *resource.ProjectDraft) error {
	flags := cmd.Flags()
	if flags.Changed("name") {
		d.Nome = projectName
	}
	if flags.Changed("description") {
		d.Descricao = projectDescription
	}
	if flags.Changed("status") {
		s, ok := model.ParseStatus(projectStatus)
		if !ok {
			return fmt.Errorf("unknown status %q", projectStatus)
		}
		d.Status = s
	}
	if flags.Changed("start") {
		d.DataInicio = projectStart
	}
	if flags.Changed("end") {
		d.DataFim = projectEnd
	}
	return nil
}

func runProjectAdd(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()
	ctx := context.Background()
	if err := a.requireLogin(ctx); err != nil {
		return err
	}

	d := resource.ProjectDraft{Nome: strings.Join(args, " ")}
	if err := applyProjectFlags(cmd, &d); err != nil {
		return err
	}

	ctrl := resource.NewProjectController(a.client, printer(), resource.Options{PageSize: cfg.PageSize})
	return ctrl.Save(ctx, d)
}

func runProjectEdit(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()
	ctx := context.Background()
	if err := a.requireLogin(ctx); err != nil {
		return err
	}

	p, err := a.client.GetProject(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load project %d: %w", id, err)
	}

	ctrl := resource.NewProjectController(a.client, printer(), resource.Options{PageSize: cfg.PageSize})
	ctrl.BeginEdit(p)
	d := resource.ProjectDraftFrom(p)
	if err := applyProjectFlags(cmd, &d); err != nil {
		return err
	}
	return ctrl.Save(ctx, d)
}

func runProjectDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()
	ctx := context.Background()
	if err := a.requireLogin(ctx); err != nil {
		return err
	}

	ctrl := resource.NewProjectController(a.client, printer(), resource.Options{PageSize: cfg.PageSize})
	if err := ctrl.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete project %d: %w", id, err)
	}
	return nil
}

// truncate shortens s to max runes with ellipsis
func truncate(s string, max int) string {
	runes := []rune(s)
	if max < 4 || len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
