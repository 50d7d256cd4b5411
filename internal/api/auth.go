package api

import (
	"context"
	"fmt"
	"net/http"
)

// Login exchanges credentials for an identity and bearer token.
// Auth calls never carry a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	body := map[string]string{"email": email, "password": password}
	return c.authenticate(ctx, "/users/login", body)
}

// Register creates an account and returns its identity and bearer token.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	return c.authenticate(ctx, "/users/register", req)
}

func (c *Client) authenticate(ctx context.Context, path string, body interface{}) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, path, body, &resp, false); err != nil {
		return nil, err
	}
	if resp.User == nil || resp.Token == "" {
		return nil, fmt.Errorf("%s: %w: missing user or token", path, ErrMalformedResponse)
	}
	if resp.User.Role == "" {
		resp.User.Role = RoleUser
	}
	return &resp, nil
}
