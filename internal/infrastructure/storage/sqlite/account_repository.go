package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"revhistory/internal/domain/account"

	"github.com/mattn/go-sqlite3"
)

func (s *Storage) Create(ctx context.Context, login, displayName, passwordHash string) (int, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO accounts (login, display_name, password_hash) VALUES (?, ?, ?)`,
		login, displayName, passwordHash)
	if err != nil {
		var sqlErr sqlite3.Error
		if errors.As(err, &sqlErr) && sqlErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return 0, account.ErrLoginTaken
		}
		return 0, fmt.Errorf("insert account: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("account id: %w", err)
	}
	return int(id), nil
}

func (s *Storage) FindByLogin(ctx context.Context, login string) (account.Account, error) {
	return s.findAccount(ctx, `login = ?`, login)
}

func (s *Storage) FindByID(ctx context.Context, id int) (account.Account, error) {
	return s.findAccount(ctx, `id = ?`, id)
}

func (s *Storage) findAccount(ctx context.Context, where string, arg any) (account.Account, error) {
	var a account.Account
	err := s.db.QueryRowContext(ctx,
		`SELECT id, login, display_name, password_hash, created_at FROM accounts WHERE `+where, arg).
		Scan(&a.ID, &a.Login, &a.DisplayName, &a.PasswordHash, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return a, account.ErrNotFound
	}
	if err != nil {
		return a, fmt.Errorf("find account: %w", err)
	}
	return a, nil
}
