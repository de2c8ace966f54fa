package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	RunE:  runWhoami,
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

func runWhoami(cmd *cobra.Command, args []string) error {
	a, ctx, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	a.manager.Reconcile(ctx)

	s := a.manager.Current()
	if !s.Authenticated() {
		fmt.Println("Not logged in")
		return nil
	}

	fmt.Printf("Logged in as %s (id %s)\n", s.Username, s.UserID)
	if s.IsAdmin {
		fmt.Println("Role: admin")
	}
	return nil
}
