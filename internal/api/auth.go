package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/aranaskd/blogctl/pkg/session"
)

// Login exchanges credentials for a bearer token. A response without an
// access token maps to ErrBadCredentials regardless of status code.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var resp loginResponse
	err := c.do(ctx, http.MethodPost, "/users/login", "", loginRequest{
		Email:    email,
		Password: password,
	}, &resp)
	if err != nil {
		return "", err
	}
	if resp.Access == "" {
		return "", ErrBadCredentials
	}
	return resp.Access, nil
}

// registeredMessage is the success discriminator the registration endpoint
// returns.
const registeredMessage = "Registered successfully"

// Register creates a new account
func (c *Client) Register(ctx context.Context, email, username, password string) error {
	var resp registerResponse
	err := c.do(ctx, http.MethodPost, "/users/register", "", registerRequest{
		Email:    email,
		Username: username,
		Password: password,
	}, &resp)
	if err != nil {
		return err
	}
	if resp.Message != registeredMessage {
		if resp.Message != "" {
			return fmt.Errorf("%w: %s", ErrRegisterFailed, resp.Message)
		}
		return ErrRegisterFailed
	}
	return nil
}

// Details validates a bearer token against the identity endpoint and returns
// the identity it vouches for. It takes the token explicitly so the session
// manager can verify a persisted credential before any session exists.
// Implements session.Verifier.
func (c *Client) Details(ctx context.Context, token string) (*session.Identity, error) {
	var resp detailsResponse
	if err := c.do(ctx, http.MethodGet, "/users/details", token, nil, &resp); err != nil {
		return nil, err
	}
	if resp.User == nil {
		return nil, ErrNoUser
	}
	return &session.Identity{
		UserID:   resp.User.ID,
		Username: resp.User.Username,
		IsAdmin:  resp.User.IsAdmin,
	}, nil
}
