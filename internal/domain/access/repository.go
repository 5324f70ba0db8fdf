package access

import "context"

type Repository interface {
	// Permissions returns the permission strings granted to the account.
	Permissions(ctx context.Context, accountID int) ([]string, error)
	Grant(ctx context.Context, accountID int, permissions ...string) error
}
