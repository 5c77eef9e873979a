package gateway

import (
	"context"
	"log"
	"net/http"

	"github.com/rm-hull/medevents-gateway/internal/metrics"
	"github.com/rm-hull/medevents-gateway/internal/models"
	"github.com/rm-hull/medevents-gateway/internal/tokens"
)

const noRefreshTokenMessage = "No refresh token available"

// AuthenticatedRequest sends a request with the stored access token. A 401
// triggers exactly one refresh; if it succeeds the request is reissued once
// with the new token, otherwise the original 401 response is returned as-is.
// A non-nil error means no response was received from the backend.
func (c *Client) AuthenticatedRequest(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	r := request{method: method, path: path, body: body, authenticated: true}

	resp, err := c.send(ctx, r)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}

	log.Printf("access token rejected by %s %s, refreshing", method, path)
	refreshed := c.refreshForRetry(ctx)
	if refreshed.Error {
		log.Printf("token refresh failed, returning original response: %s", refreshed.Message)
		return resp, nil
	}

	drainAndClose(resp)
	return c.send(ctx, r)
}

func (c *Client) refreshForRetry(ctx context.Context) Result[models.AccessTokenData] {
	if !c.serializeRefresh {
		return c.RefreshAccessToken(ctx)
	}

	// the shared refresh outlives any single waiter; each waiter stops
	// waiting when its own context is done
	shared := context.WithoutCancel(ctx)
	ch := c.refreshGroup.DoChan("refresh", func() (any, error) {
		return c.RefreshAccessToken(shared), nil
	})

	select {
	case res := <-ch:
		if res.Shared {
			log.Printf("joined in-flight token refresh")
		}
		return res.Val.(Result[models.AccessTokenData])
	case <-ctx.Done():
		return unexpectedFailure[models.AccessTokenData]("refreshing the session", ctx.Err())
	}
}

// RefreshAccessToken exchanges the stored refresh token for a new access
// token. Only the access token is overwritten; nothing is cleared on failure.
func (c *Client) RefreshAccessToken(ctx context.Context) Result[models.AccessTokenData] {
	refreshToken, err := tokens.RefreshToken(c.store)
	if err != nil {
		log.Printf("failed to read refresh token: %v", err)
	}
	if refreshToken == "" {
		metrics.TokenRefreshes.WithLabelValues(metrics.RefreshSkipped).Inc()
		return failure[models.AccessTokenData](noRefreshTokenMessage)
	}

	payload, err := encode(models.RefreshRequest{RefreshToken: refreshToken})
	if err != nil {
		return unexpectedFailure[models.AccessTokenData]("refreshing the session", err)
	}

	resp, err := c.send(ctx, request{method: http.MethodPut, path: authenticationsPath, body: payload})
	if err != nil {
		metrics.TokenRefreshes.WithLabelValues(metrics.RefreshFailed).Inc()
		return connectionFailure[models.AccessTokenData](c, err)
	}

	raw, err := readBody(resp)
	if err != nil {
		metrics.TokenRefreshes.WithLabelValues(metrics.RefreshFailed).Inc()
		return unexpectedFailure[models.AccessTokenData]("refreshing the session", err)
	}

	result := NormalizeResponse[models.AccessTokenData](raw, resp.StatusCode)
	if !result.Error && result.Data.AccessToken == "" {
		result = categorizedFailure[models.AccessTokenData](resp.StatusCode, "refresh response did not contain an access token")
	}
	if result.Error {
		metrics.TokenRefreshes.WithLabelValues(metrics.RefreshFailed).Inc()
		return result
	}

	if err := tokens.PutAccessToken(c.store, result.Data.AccessToken); err != nil {
		metrics.TokenRefreshes.WithLabelValues(metrics.RefreshFailed).Inc()
		return unexpectedFailure[models.AccessTokenData]("storing the refreshed session", err)
	}

	metrics.TokenRefreshes.WithLabelValues(metrics.RefreshSucceeded).Inc()
	log.Printf("access token refreshed")
	return result
}
