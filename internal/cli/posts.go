package cli

import (
	"fmt"
	"strings"

	"github.com/aranaskd/blogctl/internal/api"
	"github.com/spf13/cobra"
)

var (
	postsListCached bool
	postTitle       string
	postContent     string
)

var postsCmd = &cobra.Command{
	Use:   "posts",
	Short: "Browse and manage posts",
}

var postsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all posts",
	RunE:  runPostsList,
}

var postsViewCmd = &cobra.Command{
	Use:   "view <post-id>",
	Short: "Show one post with its comments",
	Args:  cobra.ExactArgs(1),
	RunE:  runPostsView,
}

var postsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Publish a new post",
	RunE:  runPostsCreate,
}

var postsUpdateCmd = &cobra.Command{
	Use:   "update <post-id>",
	Short: "Edit an existing post",
	Args:  cobra.ExactArgs(1),
	RunE:  runPostsUpdate,
}

var postsDeleteCmd = &cobra.Command{
	Use:   "delete <post-id>",
	Short: "Delete a post (admin only)",
	Args:  cobra.ExactArgs(1),
	RunE:  runPostsDelete,
}

func init() {
	postsListCmd.Flags().BoolVar(&postsListCached, "cached", false, "serve from the local cache without contacting the API")
	postsCreateCmd.Flags().StringVar(&postTitle, "title", "", "post title")
	postsCreateCmd.Flags().StringVar(&postContent, "content", "", "post body")
	postsUpdateCmd.Flags().StringVar(&postTitle, "title", "", "post title")
	postsUpdateCmd.Flags().StringVar(&postContent, "content", "", "post body")

	postsCmd.AddCommand(postsListCmd)
	postsCmd.AddCommand(postsViewCmd)
	postsCmd.AddCommand(postsCreateCmd)
	postsCmd.AddCommand(postsUpdateCmd)
	postsCmd.AddCommand(postsDeleteCmd)
	rootCmd.AddCommand(postsCmd)
}

func runPostsList(cmd *cobra.Command, args []string) error {
	a, ctx, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	if postsListCached {
		if a.cache == nil {
			return fmt.Errorf("post cache is disabled")
		}
		posts, err := a.cache.ListPosts()
		if err != nil {
			return err
		}
		printPostList(posts, true)
		return nil
	}

	posts, err := a.client.ListPosts(ctx)
	if err != nil {
		// Degrade to the cached copy when the API is unreachable
		if a.cache != nil {
			if cached, cacheErr := a.cache.ListPosts(); cacheErr == nil && len(cached) > 0 {
				fmt.Println("API unreachable, showing cached posts:")
				printPostList(cached, true)
				return nil
			}
		}
		return fmt.Errorf("failed to fetch posts: %w", err)
	}

	if a.cache != nil {
		if err := a.cache.StorePosts(posts); err != nil {
			a.zl.Warn().Err(err).Msg("Failed to refresh post cache")
		}
	}

	printPostList(posts, false)
	return nil
}

func runPostsView(cmd *cobra.Command, args []string) error {
	a, ctx, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	postID := args[0]

	post, err := a.client.GetPost(ctx, postID)
	if err != nil {
		if a.cache != nil {
			if cached, cacheErr := a.cache.GetPost(postID); cacheErr == nil && cached != nil {
				fmt.Println("API unreachable, showing cached post:")
				printPost(cached)
				return nil
			}
		}
		return fmt.Errorf("failed to fetch post: %w", err)
	}

	if a.cache != nil {
		if err := a.cache.StorePost(*post); err != nil {
			a.zl.Warn().Err(err).Msg("Failed to cache post")
		}
	}

	printPost(post)
	return nil
}

func runPostsCreate(cmd *cobra.Command, args []string) error {
	a, ctx, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	a.manager.Reconcile(ctx)
	if !a.manager.Current().Authenticated() {
		return fmt.Errorf("you must be logged in to publish a post")
	}

	title, content, err := resolvePostInput()
	if err != nil {
		return err
	}

	if err := a.client.CreatePost(ctx, title, content); err != nil {
		return fmt.Errorf("failed to publish post: %w", err)
	}

	fmt.Println("Post published")
	return nil
}

func runPostsUpdate(cmd *cobra.Command, args []string) error {
	a, ctx, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	a.manager.Reconcile(ctx)
	if !a.manager.Current().Authenticated() {
		return fmt.Errorf("you must be logged in to edit a post")
	}

	title, content, err := resolvePostInput()
	if err != nil {
		return err
	}

	if err := a.client.UpdatePost(ctx, args[0], title, content); err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}

	fmt.Println("Post updated")
	return nil
}

func runPostsDelete(cmd *cobra.Command, args []string) error {
	a, ctx, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	a.manager.Reconcile(ctx)
	s := a.manager.Current()
	// IsAdmin is only meaningful once the session is authenticated
	if !s.Authenticated() {
		return fmt.Errorf("you must be logged in to delete a post")
	}
	if !s.IsAdmin {
		return fmt.Errorf("only admins can delete posts")
	}

	postID := args[0]
	if err := a.client.DeletePost(ctx, postID); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	if a.cache != nil {
		if err := a.cache.Delete(postID); err != nil {
			a.zl.Warn().Err(err).Msg("Failed to evict deleted post from cache")
		}
	}

	fmt.Println("Post deleted")
	return nil
}

func resolvePostInput() (title, content string, err error) {
	title = postTitle
	if title == "" {
		if title, err = promptLine("Title: "); err != nil {
			return "", "", err
		}
	}
	content = postContent
	if content == "" {
		if content, err = promptLine("Content: "); err != nil {
			return "", "", err
		}
	}
	if title == "" || content == "" {
		return "", "", fmt.Errorf("title and content are required")
	}
	return title, content, nil
}

func printPostList(posts []api.Post, cached bool) {
	if len(posts) == 0 {
		fmt.Println("No posts")
		return
	}
	for _, post := range posts {
		fmt.Printf("%s  %s\n    %s\n", post.ID, post.Title, summarize(post.Content, 100))
	}
	if cached {
		fmt.Printf("(%d posts, from local cache)\n", len(posts))
	} else {
		fmt.Printf("(%d posts)\n", len(posts))
	}
}

// summarize flattens content to one line and truncates it to limit runes, so
// a multi-byte character at the boundary is never split.
func summarize(content string, limit int) string {
	content = strings.ReplaceAll(content, "\n", " ")
	runes := []rune(content)
	if len(runes) > limit {
		return string(runes[:limit]) + "..."
	}
	return content
}

func printPost(post *api.Post) {
	fmt.Printf("%s\n", post.Title)
	if post.Author.Name != "" {
		fmt.Printf("by %s\n", post.Author.Name)
	}
	fmt.Printf("\n%s\n", post.Content)

	if len(post.Comments) == 0 {
		fmt.Println("\nNo comments yet.")
		return
	}
	fmt.Println("\nComments:")
	for _, c := range post.Comments {
		fmt.Printf("  [%s] %s: %s\n", c.ID, c.Username, c.Comment)
	}
}
