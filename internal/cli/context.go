package cli

import (
	"context"
	"fmt"

	"github.com/existflow/taskboard/internal/keystore"
	"github.com/spf13/cobra"
)

var useCmd = &cobra.Command{
	Use:   "use [project-id]",
	Short: "Choose the default project for task commands",
	Long: `Set or view the default project.

When a default project is set, task commands work on it unless --project
is given.

Examples:
  taskboard use            # Show the default project
  taskboard use 3          # Use project 3
  taskboard use --clear    # Forget the default project`,
	Args: cobra.MaximumNArgs(1),
	RunE: runUse,
}

var useClear bool

func init() {
	useCmd.Flags().BoolVar(&useClear, "clear", false, "Forget the default project")
}

func runUse(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()
	ctx := context.Background()

	if useClear {
		if err := a.store.Delete(ctx, keystore.KeyProject); err != nil {
			return fmt.Errorf("failed to clear default project: %w", err)
		}
		fmt.Println("📥 Default project cleared")
		return nil
	}

	if len(args) == 0 {
		return showDefaultProject(ctx, a)
	}

	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if err := a.requireLogin(ctx); err != nil {
		return err
	}
	project, err := a.client.GetProject(ctx, id)
	if err != nil {
		return fmt.Errorf("project not found: %d: %w", id, err)
	}

	if err := a.store.Set(ctx, keystore.KeyProject, args[0]); err != nil {
		return fmt.Errorf("failed to save default project: %w", err)
	}
	fmt.Printf("📁 Switched to: %s\n", project.DisplayName())
	return nil
}

func showDefaultProject(ctx context.Context, a *app) error {
	id, err := a.projectID(ctx, 0)
	if err != nil {
		fmt.Println("📥 No default project")
		return nil
	}

	project, err := a.client.GetProject(ctx, id)
	if err != nil {
		fmt.Printf("⚠️  Default project is %d but it could not be loaded: %v\n", id, err)
		return nil
	}
	fmt.Printf("📁 Default project: %s (id %d)\n", project.DisplayName(), id)
	return nil
}
