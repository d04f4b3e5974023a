package secret

import "context"

// Repository persists secrets. ConsumeFinal and IncrementView are the only
// mutations after creation and both must be single atomic conditional
// statements: requests from independent processes race on them and storage
// is the only serialization point.
type Repository interface {
	Create(ctx context.Context, s *Secret) error

	// Get returns the secret or ErrNotFound. Read-only.
	Get(ctx context.Context, id string) (*Secret, error)

	// ConsumeFinal deletes the secret only if the next view reaches
	// MaxViews, returning the stored content from the same statement.
	// ErrNotFound when the row is gone or the condition no longer holds.
	ConsumeFinal(ctx context.Context, id string) (string, error)

	// IncrementView bumps ViewCount only while the next view stays below
	// MaxViews, returning the stored content and the remaining view count
	// after the bump. ErrNotFound when the row is gone or the condition
	// no longer holds.
	IncrementView(ctx context.Context, id string) (string, int, error)

	// Delete removes the secret unconditionally (expiry, sweep).
	Delete(ctx context.Context, id string) error

	// DeleteExpired removes every secret whose ExpiresAt has passed and
	// reports how many rows went away. Used by the operator sweep; reveal
	// correctness never depends on it.
	DeleteExpired(ctx context.Context) (int64, error)
}
