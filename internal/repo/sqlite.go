package repo

import (
	"context"
	"fmt"
	"log/slog"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// SQLiteConfig holds the parameters for opening a SQLiteStore.
type SQLiteConfig struct {
	// Path is the database file. It is created if it does not exist; the
	// parent directory must exist.
	Path string

	// Logger receives open/close messages. If nil, a no-op logger is used.
	Logger *slog.Logger
}

// SQLiteStore is a KeyStore backed by a local SQLite file. It is the
// default driver: the planner is local-first and needs no server.
type SQLiteStore struct {
	pool   *sqlitex.Pool
	logger *slog.Logger
	path   string
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS kv_store (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
);`

// OpenSQLite opens (creating if needed) the SQLite file at cfg.Path and
// ensures the kv_store table exists. The caller must call Close.
func OpenSQLite(cfg SQLiteConfig) (*SQLiteStore, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("repo.OpenSQLite: Path is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	// One connection: there is a single writer and every operation is a
	// whole-value read or write.
	pool, err := sqlitex.NewPool(cfg.Path, sqlitex.PoolOptions{
		PoolSize:    1,
		PrepareConn: prepareConnection,
	})
	if err != nil {
		return nil, fmt.Errorf("repo.OpenSQLite: opening %s: %w", cfg.Path, err)
	}

	logger.Debug("sqlite store opened", "path", cfg.Path)
	return &SQLiteStore{pool: pool, logger: logger, path: cfg.Path}, nil
}

// prepareConnection applies pragmas and creates the schema. It runs once
// per connection, on first use.
func prepareConnection(conn *sqlite.Conn) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if err := sqlitex.ExecuteTransient(conn, pragma, nil); err != nil {
			return fmt.Errorf("repo.SQLiteStore: %s: %w", pragma, err)
		}
	}
	if err := sqlitex.ExecuteScript(conn, sqliteSchema, nil); err != nil {
		return fmt.Errorf("repo.SQLiteStore: create schema: %w", err)
	}
	return nil
}

// Get reads the value stored under key.
func (s *SQLiteStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("repo.SQLiteStore.Get: %w", err)
	}
	defer s.pool.Put(conn)

	var (
		value []byte
		found bool
	)
	err = sqlitex.Execute(conn, `SELECT value FROM kv_store WHERE key = ?`, &sqlitex.ExecOptions{
		Args: []any{key},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			value = []byte(stmt.ColumnText(0))
			found = true
			return nil
		},
	})
	if err != nil {
		return nil, false, fmt.Errorf("repo.SQLiteStore.Get: %w", err)
	}
	return value, found, nil
}

// Set upserts the value under key in one statement.
func (s *SQLiteStore) Set(ctx context.Context, key string, value []byte) error {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return fmt.Errorf("repo.SQLiteStore.Set: %w", err)
	}
	defer s.pool.Put(conn)

	const q = `
		INSERT INTO kv_store (key, value, updated_at)
		VALUES (?, ?, strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
		ON CONFLICT (key) DO UPDATE
		SET value = excluded.value, updated_at = excluded.updated_at`

	err = sqlitex.Execute(conn, q, &sqlitex.ExecOptions{Args: []any{key, string(value)}})
	if err != nil {
		return fmt.Errorf("repo.SQLiteStore.Set: %w", err)
	}
	return nil
}

// Delete removes key.
func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return fmt.Errorf("repo.SQLiteStore.Delete: %w", err)
	}
	defer s.pool.Put(conn)

	err = sqlitex.Execute(conn, `DELETE FROM kv_store WHERE key = ?`, &sqlitex.ExecOptions{Args: []any{key}})
	if err != nil {
		return fmt.Errorf("repo.SQLiteStore.Delete: %w", err)
	}
	return nil
}

// Close closes the underlying connection pool.
func (s *SQLiteStore) Close() error {
	if err := s.pool.Close(); err != nil {
		s.logger.Error("sqlite store close error", "path", s.path, "error", err)
		return fmt.Errorf("repo.SQLiteStore.Close: %w", err)
	}
	s.logger.Debug("sqlite store closed", "path", s.path)
	return nil
}
