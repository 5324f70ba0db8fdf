// Package storage selects the storage backend from the database URI.
package storage

import (
	"context"
	"fmt"
	"strings"

	"revhistory/internal/domain/access"
	"revhistory/internal/domain/account"
	"revhistory/internal/domain/revision"
	"revhistory/internal/domain/session"
	"revhistory/internal/infrastructure/storage/postgres"
	"revhistory/internal/infrastructure/storage/sqlite"

	"golang.org/x/exp/slog"
)

const sqliteScheme = "sqlite://"

// Storage bundles the repositories of one backend.
type Storage struct {
	Records     revision.Repository
	Accounts    account.Repository
	Sessions    session.Repository
	Permissions access.Repository

	ping  func(ctx context.Context) error
	close func() error
}

// Open connects to PostgreSQL, or to SQLite when the URI starts with sqlite://.
func Open(ctx context.Context, databaseURI string, log *slog.Logger) (*Storage, error) {
	if IsSQLite(databaseURI) {
		db, err := sqlite.New(ctx, databaseURI, log)
		if err != nil {
			return nil, fmt.Errorf("open sqlite storage: %w", err)
		}
		return FromSQLite(db), nil
	}

	db, err := postgres.New(ctx, databaseURI)
	if err != nil {
		return nil, fmt.Errorf("open postgres storage: %w", err)
	}
	pool := db.Pool()
	return &Storage{
		Records:     postgres.NewRecordRepository(pool, log),
		Accounts:    postgres.NewAccountRepository(pool, log),
		Sessions:    postgres.NewSessionRepository(pool, log),
		Permissions: postgres.NewPermissionRepository(pool, log),
		ping:        db.Ping,
		close:       db.Close,
	}, nil
}

// FromSQLite wraps an open SQLite database.
func FromSQLite(db *sqlite.Storage) *Storage {
	return &Storage{
		Records:     db,
		Accounts:    db,
		Sessions:    db.Sessions(),
		Permissions: db,
		ping:        db.Ping,
		close:       db.Close,
	}
}

// IsSQLite reports whether the URI selects the SQLite backend.
func IsSQLite(databaseURI string) bool {
	return strings.HasPrefix(databaseURI, sqliteScheme)
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.ping(ctx)
}

func (s *Storage) Close() error {
	return s.close()
}
