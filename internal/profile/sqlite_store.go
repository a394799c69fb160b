package profile

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps the profile as a JSON value under a namespace key, in a key/value
// table shared with any other client state.
type SQLiteStore struct {
	db        *sql.DB
	namespace string
}

// NewSQLiteStore opens (creating if needed) the database at dbPath.
func NewSQLiteStore(dbPath, namespace string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("os.MkdirAll(%s) > %w", filepath.Dir(dbPath), err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("sql.Open(%s) > %w", dbPath, err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS client_state (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLiteStore{
		db:        db,
		namespace: namespace,
	}, nil
}

func (store *SQLiteStore) Close() error {
	return store.db.Close()
}

func (store *SQLiteStore) Load() (Profile, error) {
	var value string
	err := store.db.QueryRow(`SELECT value FROM client_state WHERE key = ?`, store.namespace).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return Profile{}, ErrNotFound
	}
	if err != nil {
		return Profile{}, fmt.Errorf("select %s: %w", store.namespace, err)
	}

	var result Profile
	if err := json.Unmarshal([]byte(value), &result); err != nil {
		return Profile{}, fmt.Errorf("%w: json.Unmarshal() > %v", ErrCorrupted, err)
	}
	if result.ID == "" {
		return Profile{}, fmt.Errorf("%w: missing id", ErrCorrupted)
	}
	return result, nil
}

func (store *SQLiteStore) Save(p Profile) error {
	value, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("json.Marshal() > %w", err)
	}
	if _, err := store.db.Exec(`INSERT INTO client_state (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, store.namespace, string(value)); err != nil {
		return fmt.Errorf("upsert %s: %w", store.namespace, err)
	}
	return nil
}

// Delete removes the stored profile. Deleting a missing profile is not an error.
func (store *SQLiteStore) Delete() error {
	if _, err := store.db.Exec(`DELETE FROM client_state WHERE key = ?`, store.namespace); err != nil {
		return fmt.Errorf("delete %s: %w", store.namespace, err)
	}
	return nil
}
