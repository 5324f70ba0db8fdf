package postgres

import (
	"context"
	"errors"
	"fmt"

	"revhistory/internal/domain/account"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"
)

const uniqueViolation = "23505"

type AccountRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewAccountRepository(pool *pgxpool.Pool, log *slog.Logger) *AccountRepository {
	return &AccountRepository{
		pool: pool,
		log:  log.With("component", "account_repository"),
	}
}

func (r *AccountRepository) Create(ctx context.Context, login, displayName, passwordHash string) (int, error) {
	var id int
	err := r.pool.QueryRow(ctx,
		`INSERT INTO accounts (login, display_name, password_hash) VALUES ($1, $2, $3) RETURNING id`,
		login, displayName, passwordHash).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return 0, account.ErrLoginTaken
		}
		return 0, fmt.Errorf("insert account: %w", err)
	}
	return id, nil
}

func (r *AccountRepository) FindByLogin(ctx context.Context, login string) (account.Account, error) {
	return r.findOne(ctx,
		`SELECT id, login, display_name, password_hash, created_at FROM accounts WHERE login = $1`, login)
}

func (r *AccountRepository) FindByID(ctx context.Context, id int) (account.Account, error) {
	return r.findOne(ctx,
		`SELECT id, login, display_name, password_hash, created_at FROM accounts WHERE id = $1`, id)
}

func (r *AccountRepository) findOne(ctx context.Context, query string, arg any) (account.Account, error) {
	var a account.Account
	err := r.pool.QueryRow(ctx, query, arg).
		Scan(&a.ID, &a.Login, &a.DisplayName, &a.PasswordHash, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return a, account.ErrNotFound
		}
		r.log.Error("failed to find account", "error", err)
		return a, fmt.Errorf("find account: %w", err)
	}
	return a, nil
}
