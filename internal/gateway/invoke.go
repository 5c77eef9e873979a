package gateway

import (
	"context"
	"net/url"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/rm-hull/medevents-gateway/internal/models"
)

// call describes one resource operation routed through AuthenticatedRequest.
type call struct {
	method string
	path   string
	body   any
	action string

	// enhance rewrites the backend message of a failed call into
	// resource-specific wording.
	enhance func(status int, message string) string
}

func invoke[T any](ctx context.Context, c *Client, cl call) Result[T] {
	payload, err := encode(cl.body)
	if err != nil {
		return unexpectedFailure[T](cl.action, err)
	}

	resp, err := c.AuthenticatedRequest(ctx, cl.method, cl.path, payload)
	if err != nil {
		if errors.Is(err, ErrConnection) {
			return connectionFailure[T](c, err)
		}
		return unexpectedFailure[T](cl.action, err)
	}

	raw, err := readBody(resp)
	if err != nil {
		return unexpectedFailure[T](cl.action, err)
	}

	result := NormalizeResponse[T](raw, resp.StatusCode)
	if result.Error && cl.enhance != nil {
		result.Message = cl.enhance(resp.StatusCode, result.Message)
	}
	return result
}

func resourcePath(segments ...string) string {
	escaped := make([]string, len(segments))
	for i, segment := range segments {
		escaped[i] = url.PathEscape(segment)
	}
	return "/" + strings.Join(escaped, "/")
}

func orEmpty(docs []models.Document) []models.Document {
	if docs == nil {
		return []models.Document{}
	}
	return docs
}

func containsAny(message string, substrings ...string) bool {
	for _, s := range substrings {
		if strings.Contains(message, s) {
			return true
		}
	}
	return false
}
