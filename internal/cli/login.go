package cli

import (
	"errors"
	"fmt"

	"github.com/aranaskd/blogctl/internal/api"
	"github.com/aranaskd/blogctl/pkg/session"
	"github.com/spf13/cobra"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to the blog platform",
	Long: `Sign in with your email and password. On success the session is
persisted, so subsequent commands stay authenticated until you log out.`,
	RunE: runLogin,
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "account password (prompted when omitted)")
	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	a, ctx, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	a.manager.Reconcile(ctx)
	if cur := a.manager.Current(); cur.Authenticated() {
		return fmt.Errorf("already logged in as %s; run 'blogctl logout' first", cur.Username)
	}

	email := loginEmail
	if email == "" {
		if email, err = promptLine("Email: "); err != nil {
			return err
		}
	}
	password := loginPassword
	if password == "" {
		if password, err = promptLine("Password: "); err != nil {
			return err
		}
	}
	if email == "" || password == "" {
		return fmt.Errorf("email and password are required")
	}

	token, err := a.client.Login(ctx, email, password)
	if errors.Is(err, api.ErrBadCredentials) {
		return fmt.Errorf("authentication failed: check your login details and try again")
	}
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	id, err := a.client.Details(ctx, token)
	if err != nil {
		return fmt.Errorf("signed in, but fetching user details failed: %w", err)
	}

	a.manager.SetSession(ctx, session.Session{
		UserID:   id.UserID,
		Username: id.Username,
		IsAdmin:  id.IsAdmin,
		Token:    token,
	})

	fmt.Printf("Logged in as %s\n", id.Username)
	return nil
}
