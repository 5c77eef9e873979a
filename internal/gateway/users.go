package gateway

import (
	"context"
	"net/http"

	"github.com/rm-hull/medevents-gateway/internal/models"
)

func (c *Client) GetAllUsers(ctx context.Context) Result[[]models.Document] {
	result := invoke[[]models.Document](ctx, c, call{
		method: http.MethodGet,
		path:   resourcePath("users"),
		action: "fetching users",
	})
	return mapResult(result, orEmpty)
}

func (c *Client) GetUserByUsername(ctx context.Context, username string) Result[models.Document] {
	result := invoke[models.UserEnvelope](ctx, c, call{
		method: http.MethodGet,
		path:   resourcePath("users", "username", username),
		action: "fetching user by username",
	})
	return mapResult(result, func(e models.UserEnvelope) models.Document {
		return e.User
	})
}

// AddUserByAdmin creates an account on behalf of another user. Unlike
// Register it is authenticated, so the caller's role decides what is allowed.
func (c *Client) AddUserByAdmin(ctx context.Context, payload models.Document) Result[models.Document] {
	return invoke[models.Document](ctx, c, call{
		method: http.MethodPost,
		path:   resourcePath("users"),
		body:   payload,
		action: "adding user",
		enhance: func(status int, message string) string {
			switch {
			case status == http.StatusConflict || containsAny(message, "already exists", "unique"):
				return "A user with this username already exists. Please choose a different username."
			case status == http.StatusBadRequest:
				return "Please check your input: " + message
			case status == http.StatusForbidden:
				return "You don't have permission to create users with this role."
			}
			return message
		},
	})
}
