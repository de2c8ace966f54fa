package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	registerEmail    string
	registerUsername string
	registerPassword string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account",
	RunE:  runRegister,
}

func init() {
	registerCmd.Flags().StringVar(&registerEmail, "email", "", "account email")
	registerCmd.Flags().StringVar(&registerUsername, "username", "", "display name")
	registerCmd.Flags().StringVar(&registerPassword, "password", "", "account password (prompted and confirmed when omitted)")
	rootCmd.AddCommand(registerCmd)
}

func runRegister(cmd *cobra.Command, args []string) error {
	a, ctx, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	a.manager.Reconcile(ctx)
	if cur := a.manager.Current(); cur.Authenticated() {
		return fmt.Errorf("already logged in as %s; log out before registering a new account", cur.Username)
	}

	email := registerEmail
	if email == "" {
		if email, err = promptLine("Email: "); err != nil {
			return err
		}
	}
	username := registerUsername
	if username == "" {
		if username, err = promptLine("Username: "); err != nil {
			return err
		}
	}

	password := registerPassword
	if password == "" {
		if password, err = promptLine("Password: "); err != nil {
			return err
		}
		confirm, err := promptLine("Confirm password: ")
		if err != nil {
			return err
		}
		// Checked before anything goes on the wire
		if password != confirm {
			return fmt.Errorf("passwords do not match")
		}
	}

	if email == "" || username == "" || password == "" {
		return fmt.Errorf("email, username, and password are required")
	}

	if err := a.client.Register(ctx, email, username, password); err != nil {
		return fmt.Errorf("registration failed: check your details and try again (%v)", err)
	}

	fmt.Println("Registration successful. Sign in with 'blogctl login'.")
	return nil
}
