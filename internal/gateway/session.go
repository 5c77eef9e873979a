package gateway

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/rm-hull/medevents-gateway/internal/models"
	"github.com/rm-hull/medevents-gateway/internal/tokens"
)

// revokeTimeout bounds the best-effort revoke so Logout always reaches the
// local clear.
var revokeTimeout = 5 * time.Second

// Login authenticates against the backend and stores the issued token pair.
func (c *Client) Login(ctx context.Context, username, password string) Result[models.TokenData] {
	payload, err := encode(models.LoginRequest{Username: username, Password: password})
	if err != nil {
		return unexpectedFailure[models.TokenData]("", err)
	}

	resp, err := c.send(ctx, request{method: http.MethodPost, path: authenticationsPath, body: payload})
	if err != nil {
		return connectionFailure[models.TokenData](c, err)
	}

	raw, err := readBody(resp)
	if err != nil {
		return unexpectedFailure[models.TokenData]("", err)
	}

	result := NormalizeResponse[models.TokenData](raw, resp.StatusCode)
	if result.Error {
		result.Message = loginMessage(result.Message)
		return result
	}
	if result.Data.AccessToken == "" || result.Data.RefreshToken == "" {
		return categorizedFailure[models.TokenData](resp.StatusCode, "login response did not contain a session token")
	}

	if err := tokens.PutAccessToken(c.store, result.Data.AccessToken); err != nil {
		return unexpectedFailure[models.TokenData]("storing the session", err)
	}
	if err := tokens.PutRefreshToken(c.store, result.Data.RefreshToken); err != nil {
		return unexpectedFailure[models.TokenData]("storing the session", err)
	}

	log.Printf("logged in as %s", username)
	return result
}

func loginMessage(message string) string {
	switch {
	case strings.Contains(message, "username"):
		return "Username is required. Please enter your username."
	case strings.Contains(message, "password"):
		return "Password is required. Please enter your password."
	case strings.Contains(message, "credentials"):
		return "Invalid username or password. Please try again."
	}
	return message
}

// Register creates a new account. It does not log the user in.
func (c *Client) Register(ctx context.Context, input models.RegisterRequest) Result[models.Document] {
	const action = "registration"

	payload, err := encode(input)
	if err != nil {
		return unexpectedFailure[models.Document](action, err)
	}

	resp, err := c.send(ctx, request{method: http.MethodPost, path: "/users", body: payload})
	if err != nil {
		return connectionFailure[models.Document](c, err)
	}

	raw, err := readBody(resp)
	if err != nil {
		return unexpectedFailure[models.Document](action, err)
	}

	result := NormalizeResponse[models.Document](raw, resp.StatusCode)
	if result.Error {
		result.Message = registerMessage(result.Message)
	}
	return result
}

func registerMessage(message string) string {
	switch {
	case strings.Contains(message, "username"):
		return "Username is required or already exists. Please choose a different username."
	case strings.Contains(message, "password"):
		return "Password is required. Please enter a valid password."
	case strings.Contains(message, "fullname"):
		return "Full name is required. Please enter your full name."
	}
	return message
}

// Logout asks the backend to revoke the refresh token, then clears the stored
// pair regardless of whether the backend call succeeded.
func (c *Client) Logout(ctx context.Context) Result[struct{}] {
	refreshToken, err := tokens.RefreshToken(c.store)
	if err != nil {
		log.Printf("failed to read refresh token: %v", err)
	}

	if refreshToken != "" {
		c.revoke(ctx, refreshToken)
	}

	if err := tokens.RemoveTokens(c.store); err != nil {
		log.Printf("logout error: %v", err)
		return failure[struct{}]("Failed to clear the stored session. Please try again.")
	}

	return Success(struct{}{})
}

func (c *Client) revoke(ctx context.Context, refreshToken string) {
	ctx, cancel := context.WithTimeout(ctx, revokeTimeout)
	defer cancel()

	payload, err := encode(models.RefreshRequest{RefreshToken: refreshToken})
	if err != nil {
		log.Printf("logout error: %v", err)
		return
	}

	resp, err := c.send(ctx, request{method: http.MethodDelete, path: authenticationsPath, body: payload})
	if err != nil {
		log.Printf("logout error: %v", err)
		return
	}

	raw, err := readBody(resp)
	if err != nil {
		log.Printf("logout error: %v", err)
		return
	}

	if result := NormalizeResponse[any](raw, resp.StatusCode); result.Error {
		log.Printf("logout error: %s", result.Message)
	}
}

// CurrentUser returns the profile, including role, of the logged-in user.
func (c *Client) CurrentUser(ctx context.Context) Result[models.Document] {
	return invoke[models.Document](ctx, c, call{
		method: http.MethodGet,
		path:   "/users/me",
		action: "fetching the current user",
	})
}
