package session

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, userID int, tokenHash string, expiresAt time.Time) error

	// Validate returns the user id behind an unexpired session hash.
	Validate(ctx context.Context, tokenHash string) (int, error)
}
