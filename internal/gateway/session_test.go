package gateway

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rm-hull/medevents-gateway/internal/models"
	"github.com/rm-hull/medevents-gateway/internal/tokens"
)

func TestLogin(t *testing.T) {
	t.Run("Stores both tokens", func(t *testing.T) {
		backend := newFakeBackend(t)
		backend.handle(http.MethodPost, "/authentications", func(w http.ResponseWriter, r *http.Request) {
			body := decodeBody(t, r)
			assert.Equal(t, "dr.who", body["username"])
			assert.Equal(t, "tardis", body["password"])
			respond(w, http.StatusCreated, success(map[string]any{"accessToken": "access-1", "refreshToken": "refresh-1"}))
		})

		client, store := newTestClient(t, backend.server.URL)
		result := client.Login(context.Background(), "dr.who", "tardis")

		require.False(t, result.Error, result.Message)
		assert.Equal(t, models.TokenData{AccessToken: "access-1", RefreshToken: "refresh-1"}, result.Data)

		access, _ := tokens.AccessToken(store)
		refresh, _ := tokens.RefreshToken(store)
		assert.Equal(t, "access-1", access)
		assert.Equal(t, "refresh-1", refresh)
	})

	t.Run("Backend messages are mapped", func(t *testing.T) {
		tests := []struct {
			status   int
			message  string
			expected string
		}{
			{http.StatusBadRequest, `"username" is not allowed to be empty`, "Username is required. Please enter your username."},
			{http.StatusBadRequest, `"password" is not allowed to be empty`, "Password is required. Please enter your password."},
			{http.StatusUnauthorized, "Invalid credentials", "Invalid username or password. Please try again."},
			{http.StatusInternalServerError, "database offline", "database offline"},
		}

		for _, tt := range tests {
			backend := newFakeBackend(t)
			backend.handle(http.MethodPost, "/authentications", func(w http.ResponseWriter, r *http.Request) {
				respond(w, tt.status, fail(tt.message))
			})

			client, store := newTestClient(t, backend.server.URL)
			result := client.Login(context.Background(), "someone", "secret")

			require.True(t, result.Error)
			assert.Equal(t, tt.expected, result.Message)

			access, _ := tokens.AccessToken(store)
			assert.Empty(t, access)
		}
	})

	t.Run("Success without a token pair stores nothing", func(t *testing.T) {
		for _, data := range []map[string]any{
			{"accessToken": "access-1"},
			{"refreshToken": "refresh-1"},
			{},
		} {
			backend := newFakeBackend(t)
			backend.handle(http.MethodPost, "/authentications", func(w http.ResponseWriter, r *http.Request) {
				respond(w, http.StatusCreated, success(data))
			})

			client, store := newTestClient(t, backend.server.URL)
			result := client.Login(context.Background(), "dr.who", "tardis")

			require.True(t, result.Error)
			assert.Equal(t, "login response did not contain a session token", result.Message)
			assert.Equal(t, TypeError, result.Type)
			assertNoTokens(t, store)
		}
	})
}

func TestRegister(t *testing.T) {
	backend := newFakeBackend(t)
	backend.handle(http.MethodPost, "/users", func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		body := decodeBody(t, r)
		if body["username"] == "taken" {
			respond(w, http.StatusBadRequest, fail("Gagal menambahkan user. username sudah digunakan."))
			return
		}
		if body["fullname"] == "" {
			respond(w, http.StatusBadRequest, fail(`"fullname" is not allowed to be empty`))
			return
		}
		respond(w, http.StatusCreated, success(map[string]any{"userId": "user-1"}))
	})

	client, _ := newTestClient(t, backend.server.URL)

	ok := client.Register(context.Background(), models.RegisterRequest{Username: "new", Password: "pw", Fullname: "New User"})
	require.False(t, ok.Error, ok.Message)
	assert.Equal(t, "user-1", ok.Data["userId"])

	taken := client.Register(context.Background(), models.RegisterRequest{Username: "taken", Password: "pw", Fullname: "X"})
	require.True(t, taken.Error)
	assert.Equal(t, "Username is required or already exists. Please choose a different username.", taken.Message)

	noName := client.Register(context.Background(), models.RegisterRequest{Username: "new", Password: "pw"})
	require.True(t, noName.Error)
	assert.Equal(t, "Full name is required. Please enter your full name.", noName.Message)
}

func TestLogout(t *testing.T) {
	t.Run("Revokes and clears", func(t *testing.T) {
		backend := newFakeBackend(t)
		backend.handle(http.MethodDelete, "/authentications", func(w http.ResponseWriter, r *http.Request) {
			body := decodeBody(t, r)
			assert.Equal(t, "refresh-1", body["refreshToken"])
			respond(w, http.StatusOK, map[string]any{"status": "success"})
		})

		client, store := newTestClient(t, backend.server.URL)
		seedTokens(t, store, "access-1", "refresh-1")

		result := client.Logout(context.Background())
		assert.False(t, result.Error)
		assert.Equal(t, 1, backend.count(http.MethodDelete, "/authentications"))
		assertNoTokens(t, store)
	})

	t.Run("Clears when the backend rejects the revoke", func(t *testing.T) {
		backend := newFakeBackend(t)
		backend.handle(http.MethodDelete, "/authentications", func(w http.ResponseWriter, r *http.Request) {
			respond(w, http.StatusInternalServerError, fail("boom"))
		})

		client, store := newTestClient(t, backend.server.URL)
		seedTokens(t, store, "access-1", "refresh-1")

		assert.False(t, client.Logout(context.Background()).Error)
		assertNoTokens(t, store)
	})

	t.Run("Clears when the backend is unreachable", func(t *testing.T) {
		client, store := newTestClient(t, unreachableURL())
		seedTokens(t, store, "access-1", "refresh-1")

		assert.False(t, client.Logout(context.Background()).Error)
		assertNoTokens(t, store)
	})

	t.Run("Clears when the revoke times out", func(t *testing.T) {
		backend := newFakeBackend(t)
		backend.handle(http.MethodDelete, "/authentications", func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
		})

		client, store := newTestClient(t, backend.server.URL)
		seedTokens(t, store, "access-1", "refresh-1")

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		assert.False(t, client.Logout(ctx).Error)
		assertNoTokens(t, store)
	})

	t.Run("Hung revoke is bounded without a caller deadline", func(t *testing.T) {
		orig := revokeTimeout
		revokeTimeout = 50 * time.Millisecond
		t.Cleanup(func() { revokeTimeout = orig })

		backend := newFakeBackend(t)
		backend.handle(http.MethodDelete, "/authentications", func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(3 * time.Second):
			}
		})

		client, store := newTestClient(t, backend.server.URL)
		seedTokens(t, store, "access-1", "refresh-1")

		started := time.Now()
		assert.False(t, client.Logout(context.Background()).Error)
		assert.Less(t, time.Since(started), 2*time.Second)
		assertNoTokens(t, store)
	})

	t.Run("No refresh token skips the backend", func(t *testing.T) {
		backend := newFakeBackend(t)
		client, store := newTestClient(t, backend.server.URL)
		seedTokens(t, store, "access-1", "")

		assert.False(t, client.Logout(context.Background()).Error)
		assert.Equal(t, 0, backend.total())
		assertNoTokens(t, store)
	})
}

func assertNoTokens(t *testing.T, store tokens.Store) {
	access, err := tokens.AccessToken(store)
	require.NoError(t, err)
	refresh, err := tokens.RefreshToken(store)
	require.NoError(t, err)
	assert.Empty(t, access)
	assert.Empty(t, refresh)
}

func TestUnreachableBackend(t *testing.T) {
	baseURL := unreachableURL()
	client, store := newTestClient(t, baseURL)
	seedTokens(t, store, "access-1", "refresh-1")
	ctx := context.Background()

	assertConnectionError := func(t *testing.T, failed bool, message string) {
		assert.True(t, failed)
		assert.True(t, strings.HasPrefix(message, "Cannot connect to server."), message)
		assert.Contains(t, message, baseURL)
	}

	login := client.Login(ctx, "a", "b")
	assertConnectionError(t, login.Error, login.Message)

	register := client.Register(ctx, models.RegisterRequest{Username: "a"})
	assertConnectionError(t, register.Error, register.Message)

	refresh := client.RefreshAccessToken(ctx)
	assertConnectionError(t, refresh.Error, refresh.Message)

	events := client.GetEvents(ctx)
	assertConnectionError(t, events.Error, events.Message)

	hospital := client.DeleteHospital(ctx, "h-1")
	assertConnectionError(t, hospital.Error, hospital.Message)

	checkup := client.UpdateParticipantCheckup(ctx, "evt-1", "user-1", models.Document{"heart_rate": 60})
	assertConnectionError(t, checkup.Error, checkup.Message)

	assert.False(t, client.CheckBackendStatus(ctx))

	// nothing is cleared by failures outside of logout
	access, _ := tokens.AccessToken(store)
	assert.Equal(t, "access-1", access)
}

func TestCheckBackendStatus(t *testing.T) {
	t.Run("Up and down", func(t *testing.T) {
		backend := newFakeBackend(t)
		client, _ := newTestClient(t, backend.server.URL)

		assert.False(t, client.CheckBackendStatus(context.Background()), "404 counts as down")

		backend.handle(http.MethodGet, "/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
		assert.True(t, client.CheckBackendStatus(context.Background()))
		assert.True(t, client.Check().Pass())
		assert.Equal(t, "backend", client.Check().Name())
	})

	t.Run("Memoized", func(t *testing.T) {
		backend := newFakeBackend(t)
		backend.handle(http.MethodGet, "/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})

		client, err := NewClient(Config{BaseURL: backend.server.URL, Store: tokens.NewMemoryStore(), HealthCacheTTL: time.Minute})
		require.NoError(t, err)

		assert.True(t, client.CheckBackendStatus(context.Background()))
		assert.True(t, client.CheckBackendStatus(context.Background()))
		assert.Equal(t, 1, backend.count(http.MethodGet, "/health"))
	})

	t.Run("Cancelled caller does not cache down", func(t *testing.T) {
		backend := newFakeBackend(t)
		backend.handle(http.MethodGet, "/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})

		client, err := NewClient(Config{BaseURL: backend.server.URL, Store: tokens.NewMemoryStore(), HealthCacheTTL: time.Minute})
		require.NoError(t, err)

		cancelled, cancel := context.WithCancel(context.Background())
		cancel()

		assert.True(t, client.CheckBackendStatus(cancelled))
		assert.True(t, client.CheckBackendStatus(context.Background()))
		assert.Equal(t, 1, backend.count(http.MethodGet, "/health"))
	})
}

func TestNewClient(t *testing.T) {
	_, err := NewClient(Config{Store: tokens.NewMemoryStore()})
	assert.Error(t, err)

	_, err = NewClient(Config{BaseURL: "http://localhost:5000"})
	assert.Error(t, err)

	client, err := NewClient(Config{BaseURL: "http://localhost:5000/ ", Store: tokens.NewMemoryStore()})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5000", client.BaseURL())
}
