package account

import (
	"context"
)

type Repository interface {
	Create(ctx context.Context, login, displayName, passwordHash string) (int, error)
	FindByLogin(ctx context.Context, login string) (Account, error)
	FindByID(ctx context.Context, id int) (Account, error)
}
