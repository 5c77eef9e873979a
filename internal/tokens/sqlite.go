package tokens

import (
	"database/sql"
	"strings"

	"github.com/cockroachdb/errors"
)

const (
	selectTokenSQL = `SELECT value FROM session_tokens WHERE key = ?`
	upsertTokenSQL = `INSERT INTO session_tokens (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`
	deleteTokensSQL = `DELETE FROM session_tokens WHERE key IN (%s)`
)

// SQLiteStore persists tokens in the session_tokens table created by the
// embedded migrations.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Get(key Key) (string, error) {
	var value string
	err := s.db.QueryRow(selectTokenSQL, string(key)).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", errors.Wrapf(err, "failed to read %s", key)
	}
	return value, nil
}

func (s *SQLiteStore) Set(key Key, value string) error {
	if _, err := s.db.Exec(upsertTokenSQL, string(key), value); err != nil {
		return errors.Wrapf(err, "failed to write %s", key)
	}
	return nil
}

func (s *SQLiteStore) Clear(keys ...Key) error {
	if len(keys) == 0 {
		return nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(keys)), ",")
	args := make([]any, len(keys))
	for i, key := range keys {
		args[i] = string(key)
	}

	query := strings.Replace(deleteTokensSQL, "%s", placeholders, 1)
	if _, err := s.db.Exec(query, args...); err != nil {
		return errors.Wrap(err, "failed to clear tokens")
	}
	return nil
}
