/*
Package sqlite provides a SQLite-backed core.Medium.

Every key is one row of the kv_items table. The database is opened in WAL
mode so several processes can share one file: readers never block and a
single writer commits at a time.

USAGE:

	m, err := sqlite.New("./data/roster.db")
	if err != nil {
	    log.Fatal(err)
	}
	defer m.Close()

Use ":memory:" for a throwaway database.
*/
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/aretw0/introspection"
	_ "github.com/mattn/go-sqlite3"

	"github.com/aretw0/roster/pkg/core"
)

// Medium implements core.Medium on a single SQLite table.
type Medium struct {
	db       *sql.DB
	path     string
	readOnly bool

	mu        sync.RWMutex
	writes    int
	lastWrite *time.Time
}

// Option configures a Medium.
type Option func(*Medium)

// WithReadOnly rejects Set and Delete with core.ErrReadOnly.
func WithReadOnly(readOnly bool) Option {
	return func(m *Medium) { m.readOnly = readOnly }
}

// New opens (or creates) the database at dbPath and migrates the schema.
func New(dbPath string, opts ...Option) (*Medium, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dbPath == ":memory:" {
		// Each connection would get its own empty database.
		db.SetMaxOpenConns(1)
	}

	m := &Medium{db: db, path: dbPath}
	for _, opt := range opts {
		opt(m)
	}

	if err := m.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return m, nil
}

// Close closes the database connection.
func (m *Medium) Close() error {
	return m.db.Close()
}

func (m *Medium) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS kv_items (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);`
	_, err := m.db.Exec(schema)
	return err
}

func (m *Medium) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var value string
	err := m.db.QueryRow(`SELECT value FROM kv_items WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return value, true, nil
}

func (m *Medium) Set(key, value string) error {
	if key == "" {
		return core.ErrInvalidKey
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.readOnly {
		return core.ErrReadOnly
	}

	now := time.Now()
	_, err := m.db.Exec(`
		INSERT INTO kv_items (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, now.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	m.writes++
	m.lastWrite = &now
	return nil
}

func (m *Medium) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.readOnly {
		return core.ErrReadOnly
	}
	if _, err := m.db.Exec(`DELETE FROM kv_items WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (m *Medium) Keys() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rows, err := m.db.Query(`SELECT key FROM kv_items ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	defer rows.Close()

	keys := []string{}
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

// MediumState exposes internal state for observability.
type MediumState struct {
	Path      string     `json:"path"`
	ReadOnly  bool       `json:"read_only"`
	Writes    int        `json:"writes"`
	LastWrite *time.Time `json:"last_write,omitempty"`
}

// State implements introspection.Introspectable.
func (m *Medium) State() any {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return MediumState{Path: m.path, ReadOnly: m.readOnly, Writes: m.writes, LastWrite: m.lastWrite}
}

// ComponentType implements introspection.Component.
func (m *Medium) ComponentType() string {
	return "sqlite-medium"
}

var _ core.Medium = (*Medium)(nil)
var _ core.Closer = (*Medium)(nil)
var _ introspection.Introspectable = (*Medium)(nil)
var _ introspection.Component = (*Medium)(nil)
