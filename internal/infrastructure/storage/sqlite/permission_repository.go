package sqlite

import (
	"context"
	"fmt"
)

func (s *Storage) Permissions(ctx context.Context, accountID int) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT permission FROM account_permissions WHERE account_id = ? ORDER BY permission`, accountID)
	if err != nil {
		return nil, fmt.Errorf("query permissions: %w", err)
	}
	defer rows.Close()

	var perms []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("scan permission: %w", err)
		}
		perms = append(perms, p)
	}
	return perms, rows.Err()
}

func (s *Storage) Grant(ctx context.Context, accountID int, permissions ...string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	for _, p := range permissions {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO account_permissions (account_id, permission) VALUES (?, ?)`,
			accountID, p); err != nil {
			return fmt.Errorf("grant %q: %w", p, err)
		}
	}
	return tx.Commit()
}
