package client

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Credentials is the request body of register and login.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	UserID    uuid.UUID `json:"user_id"`
	Username  string    `json:"username"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Register creates an account and returns its first token. The token is
// also installed on the client.
func (c *Client) Register(ctx context.Context, username, password string) (*AuthResponse, error) {
	return c.authenticate(ctx, "/api/auth/register", username, password)
}

// Authenticate exchanges credentials for a token and installs it on the client.
func (c *Client) Authenticate(ctx context.Context, username, password string) (*AuthResponse, error) {
	return c.authenticate(ctx, "/api/auth/login", username, password)
}

// Every failure of the auth endpoints surfaces as ErrAuthOrNetwork. The
// underlying APIError stays reachable through errors.As, which lets callers
// tell a taken username apart.
func (c *Client) authenticate(ctx context.Context, path, username, password string) (*AuthResponse, error) {
	var out AuthResponse
	err := c.do(ctx, http.MethodPost, path, nil, Credentials{Username: username, Password: password}, &out, false)
	if err != nil {
		var authErr *AuthError
		if errors.As(err, &authErr) {
			return nil, err
		}
		return nil, &AuthError{Cause: err}
	}
	if out.Token == "" {
		return nil, &AuthError{Cause: errors.New("empty token in response")}
	}

	c.SetToken(out.Token)
	return &out, nil
}
