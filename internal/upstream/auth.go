package upstream

import (
	"context"
	"net/http"
)

// LoginResult is the upstream response to a credential login.
type LoginResult struct {
	TokenPair
	User User `json:"user"`
}

// Login exchanges credentials for a token pair and the user record.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var result LoginResult
	err := c.public(ctx, request{
		method: http.MethodPost,
		path:   "auth/login",
		json: map[string]string{
			"email":    email,
			"password": password,
		},
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Refresh exchanges a refresh token for a new token pair.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	var pair TokenPair
	err := c.public(ctx, request{
		method: http.MethodPost,
		path:   "auth/refresh",
		json:   map[string]string{"refresh_token": refreshToken},
	}, &pair)
	if err != nil {
		return nil, err
	}
	return &pair, nil
}

// Me fetches the current user record.
func (c *Client) Me(ctx context.Context, ts TokenSource) (*User, error) {
	var user User
	if err := c.authed(ctx, ts, request{method: http.MethodGet, path: "auth/me"}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateRole changes the current user's role.
func (c *Client) UpdateRole(ctx context.Context, ts TokenSource, role Role) error {
	return c.authed(ctx, ts, request{
		method: http.MethodPost,
		path:   "auth/update-role",
		json:   map[string]string{"role": string(role)},
	}, nil)
}

// ChangePassword replaces the current user's password.
func (c *Client) ChangePassword(ctx context.Context, ts TokenSource, current, next string) error {
	return c.authed(ctx, ts, request{
		method: http.MethodPost,
		path:   "auth/change-password",
		json: map[string]string{
			"currentPassword": current,
			"newPassword":     next,
		},
	}, nil)
}
