package user

import "context"

type Repository interface {
	// Create inserts the user; ErrLoginTaken on a unique violation.
	Create(ctx context.Context, login, passwordHash string) (int, error)
	FindByLogin(ctx context.Context, login string) (User, error)
}
