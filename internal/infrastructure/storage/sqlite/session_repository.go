package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"revhistory/internal/domain/session"
)

// Sessions adapts Storage to session.Repository, whose method names clash
// with the account repository.
type Sessions struct {
	s *Storage
}

func (s *Storage) Sessions() *Sessions {
	return &Sessions{s: s}
}

func (r *Sessions) Create(ctx context.Context, accountID int, tokenHash string, expiresAt time.Time) error {
	_, err := r.s.db.ExecContext(ctx,
		`INSERT INTO sessions (account_id, token_hash, expires_at) VALUES (?, ?, ?)`,
		accountID, tokenHash, expiresAt.UTC())
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (r *Sessions) Validate(ctx context.Context, tokenHash string) (int, error) {
	var accountID int
	err := r.s.db.QueryRowContext(ctx,
		`SELECT account_id FROM sessions WHERE token_hash = ? AND expires_at > ?`,
		tokenHash, time.Now().UTC()).Scan(&accountID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, session.ErrInvalidSession
	}
	if err != nil {
		return 0, fmt.Errorf("validate session: %w", err)
	}
	return accountID, nil
}

func (r *Sessions) Delete(ctx context.Context, tokenHash string) error {
	if _, err := r.s.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE token_hash = ?`, tokenHash); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
