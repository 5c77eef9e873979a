package tokens

import (
	"sync"

	"github.com/cockroachdb/errors"
)

// Key names a persisted session value.
type Key string

const (
	AccessTokenKey  Key = "accessToken"
	RefreshTokenKey Key = "refreshToken"
)

// Store is durable key/value storage for the session's credential pair.
// Get returns an empty string and no error when the key is absent.
type Store interface {
	Get(key Key) (string, error)
	Set(key Key, value string) error
	Clear(keys ...Key) error
}

func AccessToken(store Store) (string, error) {
	return store.Get(AccessTokenKey)
}

func PutAccessToken(store Store, accessToken string) error {
	return store.Set(AccessTokenKey, accessToken)
}

func RefreshToken(store Store) (string, error) {
	return store.Get(RefreshTokenKey)
}

func PutRefreshToken(store Store, refreshToken string) error {
	return store.Set(RefreshTokenKey, refreshToken)
}

// RemoveTokens deletes both halves of the credential pair.
func RemoveTokens(store Store) error {
	if err := store.Clear(AccessTokenKey, RefreshTokenKey); err != nil {
		return errors.Wrap(err, "failed to remove tokens")
	}
	return nil
}

type MemoryStore struct {
	mu     sync.RWMutex
	values map[Key]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[Key]string)}
}

func (s *MemoryStore) Get(key Key) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[key], nil
}

func (s *MemoryStore) Set(key Key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *MemoryStore) Clear(keys ...Key) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		delete(s.values, key)
	}
	return nil
}
