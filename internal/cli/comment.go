package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var commentText string

var commentCmd = &cobra.Command{
	Use:   "comment",
	Short: "Add, edit, or delete comments",
}

var commentAddCmd = &cobra.Command{
	Use:   "add <post-id>",
	Short: "Comment on a post",
	Args:  cobra.ExactArgs(1),
	RunE:  runCommentAdd,
}

var commentEditCmd = &cobra.Command{
	Use:   "edit <post-id> <comment-id>",
	Short: "Edit one of your comments",
	Args:  cobra.ExactArgs(2),
	RunE:  runCommentEdit,
}

var commentDeleteCmd = &cobra.Command{
	Use:   "delete <post-id> <comment-id>",
	Short: "Delete a comment (yours, or any as admin)",
	Args:  cobra.ExactArgs(2),
	RunE:  runCommentDelete,
}

func init() {
	commentAddCmd.Flags().StringVar(&commentText, "text", "", "comment text")
	commentEditCmd.Flags().StringVar(&commentText, "text", "", "comment text")

	commentCmd.AddCommand(commentAddCmd)
	commentCmd.AddCommand(commentEditCmd)
	commentCmd.AddCommand(commentDeleteCmd)
	rootCmd.AddCommand(commentCmd)
}

func resolveCommentText() (string, error) {
	text := commentText
	if text == "" {
		var err error
		if text, err = promptLine("Comment: "); err != nil {
			return "", err
		}
	}
	if text == "" {
		return "", fmt.Errorf("comment text is required")
	}
	return text, nil
}

func runCommentAdd(cmd *cobra.Command, args []string) error {
	a, ctx, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	a.manager.Reconcile(ctx)
	if !a.manager.Current().Authenticated() {
		return fmt.Errorf("you must be logged in to comment")
	}

	text, err := resolveCommentText()
	if err != nil {
		return err
	}

	if err := a.client.AddComment(ctx, args[0], text); err != nil {
		return fmt.Errorf("failed to add comment: %w", err)
	}

	fmt.Println("Comment added")
	return nil
}

func runCommentEdit(cmd *cobra.Command, args []string) error {
	a, ctx, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	a.manager.Reconcile(ctx)
	if !a.manager.Current().Authenticated() {
		return fmt.Errorf("you must be logged in to edit a comment")
	}

	text, err := resolveCommentText()
	if err != nil {
		return err
	}

	// Ownership is the server's call; the client only checks presence.
	if err := a.client.UpdateComment(ctx, args[0], args[1], text); err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}

	fmt.Println("Comment updated")
	return nil
}

func runCommentDelete(cmd *cobra.Command, args []string) error {
	a, ctx, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	a.manager.Reconcile(ctx)
	if !a.manager.Current().Authenticated() {
		return fmt.Errorf("you must be logged in to delete a comment")
	}

	if err := a.client.DeleteComment(ctx, args[0], args[1]); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	fmt.Println("Comment deleted")
	return nil
}
