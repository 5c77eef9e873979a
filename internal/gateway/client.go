package gateway

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	jsoniter "github.com/json-iterator/go"
	"github.com/kofalt/go-memoize"
	"golang.org/x/sync/singleflight"

	"github.com/rm-hull/medevents-gateway/internal/metrics"
	"github.com/rm-hull/medevents-gateway/internal/tokens"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const authenticationsPath = "/authentications"

// ErrConnection marks failures where no HTTP response was received at all.
var ErrConnection = errors.New("cannot connect to server")

type Config struct {
	BaseURL    string
	Store      tokens.Store
	HTTPClient *http.Client

	// SerializeRefresh shares a single in-flight token refresh between
	// concurrent requests that hit a 401. Off by default, in which case each
	// request refreshes independently and the last write to the store wins.
	SerializeRefresh bool

	// HealthCacheTTL memoizes CheckBackendStatus. Zero disables caching.
	HealthCacheTTL time.Duration
}

// Client is the session and request gateway: every backend call goes through it.
type Client struct {
	baseURL          string
	store            tokens.Store
	client           *http.Client
	serializeRefresh bool
	refreshGroup     singleflight.Group
	health           *memoize.Memoizer
}

func NewClient(cfg Config) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("base URL is required")
	}
	if cfg.Store == nil {
		return nil, errors.New("token store is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	c := &Client{
		baseURL:          baseURL,
		store:            cfg.Store,
		client:           httpClient,
		serializeRefresh: cfg.SerializeRefresh,
	}
	if cfg.HealthCacheTTL > 0 {
		c.health = memoize.NewMemoizer(cfg.HealthCacheTTL, 10*cfg.HealthCacheTTL)
	}

	return c, nil
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// ConnectionError is the result returned whenever the backend could not be
// reached.
func ConnectionError[T any](baseURL string) Result[T] {
	return failure[T](fmt.Sprintf("Cannot connect to server. Please check if the backend is running on %s", baseURL))
}

func connectionFailure[T any](c *Client, err error) Result[T] {
	log.Printf("backend unreachable: %v", err)
	return ConnectionError[T](c.baseURL)
}

func unexpectedFailure[T any](action string, err error) Result[T] {
	log.Printf("unexpected gateway error: %v", err)
	message := "An unexpected error occurred. Please try again."
	if action != "" {
		message = fmt.Sprintf("An unexpected error occurred while %s. Please try again.", action)
	}
	return Result[T]{Error: true, Message: message, Type: TypeError}
}

type request struct {
	method        string
	path          string
	body          []byte
	authenticated bool
}

func (c *Client) send(ctx context.Context, r request) (*http.Response, error) {
	url := c.baseURL + r.path
	log.Printf("%s %s", r.method, url)

	var body io.Reader
	if r.body != nil {
		body = bytes.NewReader(r.body)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, url, body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("Accept", "application/json")
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.authenticated {
		accessToken, err := tokens.AccessToken(c.store)
		if err != nil {
			log.Printf("failed to read access token: %v", err)
		}
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	started := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		metrics.ConnectionErrors.Inc()
		return nil, errors.Mark(errors.Wrapf(err, "failed to perform %s %s", r.method, url), ErrConnection)
	}
	metrics.ObserveRequest(r.method, resp.StatusCode, started)

	return resp, nil
}

func encode(body any) ([]byte, error) {
	if body == nil {
		return nil, nil
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal request body")
	}
	return payload, nil
}

func readBody(resp *http.Response) ([]byte, error) {
	defer closeBody(resp)
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read response body")
	}
	return raw, nil
}

func closeBody(resp *http.Response) {
	if err := resp.Body.Close(); err != nil {
		log.Printf("failed to close body: %v", err)
	}
}

func drainAndClose(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	closeBody(resp)
}
