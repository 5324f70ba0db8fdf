package session

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, accountID int, tokenHash string, expiresAt time.Time) error
	// Validate returns the account id of an unexpired session.
	Validate(ctx context.Context, tokenHash string) (int, error)
	Delete(ctx context.Context, tokenHash string) error
}
