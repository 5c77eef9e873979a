package gateway

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rm-hull/medevents-gateway/internal/tokens"
)

// fakeBackend is an httptest server that counts calls per "METHOD /path".
type fakeBackend struct {
	server *httptest.Server

	mu       sync.Mutex
	calls    map[string]int
	handlers map[string]http.HandlerFunc
}

func newFakeBackend(t *testing.T) *fakeBackend {
	f := &fakeBackend{
		calls:    make(map[string]int),
		handlers: make(map[string]http.HandlerFunc),
	}
	f.server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeBackend) serve(w http.ResponseWriter, r *http.Request) {
	key := r.Method + " " + r.URL.Path

	f.mu.Lock()
	f.calls[key]++
	handler, ok := f.handlers[key]
	f.mu.Unlock()

	if !ok {
		respond(w, http.StatusNotFound, map[string]any{"status": "fail", "message": "route not found"})
		return
	}
	handler(w, r)
}

func (f *fakeBackend) handle(method, path string, handler http.HandlerFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handlers[method+" "+path] = handler
}

func (f *fakeBackend) count(method, path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method+" "+path]
}

func (f *fakeBackend) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func respond(w http.ResponseWriter, status int, body any) {
	payload, err := json.Marshal(body)
	if err != nil {
		panic(err)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(payload)
}

func success(data any) map[string]any {
	return map[string]any{"status": "success", "data": data}
}

func fail(message string) map[string]any {
	return map[string]any{"status": "fail", "message": message}
}

func decodeBody(t *testing.T, r *http.Request) map[string]any {
	raw, err := io.ReadAll(r.Body)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

func newTestClient(t *testing.T, baseURL string) (*Client, *tokens.MemoryStore) {
	store := tokens.NewMemoryStore()
	client, err := NewClient(Config{BaseURL: baseURL, Store: store})
	require.NoError(t, err)
	return client, store
}

func seedTokens(t *testing.T, store tokens.Store, access, refresh string) {
	if access != "" {
		require.NoError(t, tokens.PutAccessToken(store, access))
	}
	if refresh != "" {
		require.NoError(t, tokens.PutRefreshToken(store, refresh))
	}
}

// unreachableURL returns the address of a server that has already been shut down.
func unreachableURL() string {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()
	return url
}
