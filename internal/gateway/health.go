package gateway

import (
	"context"
	"net/http"
	"time"
)

const healthTimeout = 5 * time.Second

// CheckBackendStatus reports whether GET /health answers with a 2xx status.
// Any other status or a transport failure counts as down.
func (c *Client) CheckBackendStatus(ctx context.Context) bool {
	if c.health == nil {
		return c.probe(ctx)
	}

	// cached for every caller, so one caller's cancellation must not decide it
	probeCtx := context.WithoutCancel(ctx)
	v, err, _ := c.health.Memoize("health", func() (interface{}, error) {
		return c.probe(probeCtx), nil
	})
	if err != nil {
		return false
	}
	up, _ := v.(bool)
	return up
}

func (c *Client) probe(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	resp, err := c.send(ctx, request{method: http.MethodGet, path: "/health"})
	if err != nil {
		return false
	}
	drainAndClose(resp)

	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

// BackendCheck exposes backend reachability as a named health check.
type BackendCheck struct {
	client *Client
}

func (c *Client) Check() BackendCheck {
	return BackendCheck{client: c}
}

func (b BackendCheck) Pass() bool {
	return b.client.CheckBackendStatus(context.Background())
}

func (b BackendCheck) Name() string {
	return "backend"
}
