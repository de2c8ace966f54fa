package api

import (
	"context"
	"net/http"
	"net/url"
)

// ListPosts fetches every post. Public endpoint, no credential attached
// beyond whatever the token source holds.
func (c *Client) ListPosts(ctx context.Context) ([]Post, error) {
	var posts []Post
	if err := c.do(ctx, http.MethodGet, "/posts/getAllPost", "", nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// GetPost fetches one post with its author and comments. Public endpoint.
func (c *Client) GetPost(ctx context.Context, postID string) (*Post, error) {
	var post Post
	if err := c.do(ctx, http.MethodGet, "/posts/getPost/"+url.PathEscape(postID), "", nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// CreatePost publishes a new post. Requires an authenticated session.
func (c *Client) CreatePost(ctx context.Context, title, content string) error {
	return c.do(ctx, http.MethodPost, "/posts/addPost", "", postRequest{
		Title:   title,
		Content: content,
	}, nil)
}

// UpdatePost edits an existing post. Requires an authenticated session.
func (c *Client) UpdatePost(ctx context.Context, postID, title, content string) error {
	return c.do(ctx, http.MethodPatch, "/posts/updatePost/"+url.PathEscape(postID), "", postRequest{
		Title:   title,
		Content: content,
	}, nil)
}

// DeletePost removes a post. The server enforces the admin requirement; the
// client gates the command on the session's privilege flag as well.
func (c *Client) DeletePost(ctx context.Context, postID string) error {
	return c.do(ctx, http.MethodDelete, "/posts/deletePost/"+url.PathEscape(postID), "", nil, nil)
}

// AddComment attaches a comment to a post
func (c *Client) AddComment(ctx context.Context, postID, text string) error {
	return c.do(ctx, http.MethodPatch, "/posts/addComment/"+url.PathEscape(postID)+"/comments", "", commentRequest{
		Comment: text,
	}, nil)
}

// UpdateComment edits a comment. Ownership is enforced server-side.
func (c *Client) UpdateComment(ctx context.Context, postID, commentID, text string) error {
	path := "/posts/updateComment/" + url.PathEscape(postID) + "/comments/" + url.PathEscape(commentID)
	return c.do(ctx, http.MethodPatch, path, "", commentRequest{Comment: text}, nil)
}

// DeleteComment removes a comment. Owners may delete their own, admins any.
func (c *Client) DeleteComment(ctx context.Context, postID, commentID string) error {
	path := "/posts/deleteComment/" + url.PathEscape(postID) + "/comments/" + url.PathEscape(commentID)
	return c.do(ctx, http.MethodDelete, path, "", nil, nil)
}
