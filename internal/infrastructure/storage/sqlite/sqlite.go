// Package sqlite stores records and revisions in a local SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/exp/slog"
)

const schema = `
	CREATE TABLE IF NOT EXISTS accounts (
		id            INTEGER PRIMARY KEY,
		login         TEXT     NOT NULL UNIQUE,
		display_name  TEXT     NOT NULL DEFAULT '',
		password_hash TEXT     NOT NULL DEFAULT '',
		created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	INSERT OR IGNORE INTO accounts (id, login, display_name) VALUES (0, 'anonymous', 'Anonymous');

	CREATE TABLE IF NOT EXISTS records (
		id                  INTEGER PRIMARY KEY AUTOINCREMENT,
		entity_type         TEXT     NOT NULL,
		bundle              TEXT     NOT NULL DEFAULT '',
		label               TEXT     NOT NULL,
		owner_id            INTEGER REFERENCES accounts (id) ON DELETE SET NULL,
		current_revision_id INTEGER,
		created_at          DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS record_revisions (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		record_id   INTEGER  NOT NULL REFERENCES records (id) ON DELETE CASCADE,
		author_id   INTEGER REFERENCES accounts (id) ON DELETE SET NULL,
		log_message TEXT     NOT NULL DEFAULT '',
		fields      TEXT     NOT NULL DEFAULT '{}',
		created_at  DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_record_revisions_record ON record_revisions (record_id, id DESC);

	CREATE TABLE IF NOT EXISTS sessions (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		account_id INTEGER  NOT NULL REFERENCES accounts (id) ON DELETE CASCADE,
		token_hash TEXT     NOT NULL UNIQUE,
		expires_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS account_permissions (
		account_id INTEGER NOT NULL REFERENCES accounts (id) ON DELETE CASCADE,
		permission TEXT    NOT NULL,
		PRIMARY KEY (account_id, permission)
	);
`

type Storage struct {
	db  *sql.DB
	log *slog.Logger
}

// New opens the database at path. ":memory:" opens a private in-memory database.
func New(ctx context.Context, path string, log *slog.Logger) (*Storage, error) {
	path = strings.TrimPrefix(path, "sqlite://")

	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// In-memory databases are per connection.
	db.SetMaxOpenConns(1)

	s := &Storage{
		db:  db,
		log: log.With("component", "sqlite_storage"),
	}

	if err := s.initTables(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("init tables: %w", err)
	}
	s.log.Debug("sqlite storage opened", "path", path)

	return s, nil
}

func (s *Storage) initTables(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Storage) Close() error {
	return s.db.Close()
}
