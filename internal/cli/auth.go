package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/existflow/taskboard/internal/session"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to the backend",
	Long: `Sign in with email and password. The token is kept in the configured
token store and sent with every later request.

Examples:
  taskboard login
  taskboard login --email ana@exemplo.com`,
	RunE: runLogin,
}

var loginEmail string

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Email to sign in with")
}

func runLogin(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	email := loginEmail
	if email == "" {
		reader := bufio.NewReader(os.Stdin)
		fmt.Print("Email: ")
		email, _ = reader.ReadString('\n')
		email = strings.TrimSpace(email)
	}

	fmt.Print("Senha: ")
	passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	fmt.Println("🔄 Logging in...")
	manager := session.NewManager(a.client, a.session, nil)
	if err := manager.Login(context.Background(), email, string(passwordBytes)); err != nil {
		return err
	}

	fmt.Println("✅ Logged in successfully!")
	return nil
}
