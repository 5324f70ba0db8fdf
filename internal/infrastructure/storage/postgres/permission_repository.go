package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"
)

type PermissionRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewPermissionRepository(pool *pgxpool.Pool, log *slog.Logger) *PermissionRepository {
	return &PermissionRepository{
		pool: pool,
		log:  log.With("component", "permission_repository"),
	}
}

func (r *PermissionRepository) Permissions(ctx context.Context, accountID int) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT permission FROM account_permissions WHERE account_id = $1 ORDER BY permission`, accountID)
	if err != nil {
		return nil, fmt.Errorf("query permissions: %w", err)
	}

	perms, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("collect permissions: %w", err)
	}
	return perms, nil
}

func (r *PermissionRepository) Grant(ctx context.Context, accountID int, permissions ...string) error {
	batch := &pgx.Batch{}
	for _, p := range permissions {
		batch.Queue(
			`INSERT INTO account_permissions (account_id, permission) VALUES ($1, $2)
			 ON CONFLICT DO NOTHING`, accountID, p)
	}

	if err := r.pool.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("grant permissions: %w", err)
	}
	return nil
}
