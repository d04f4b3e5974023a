package trash

import "context"

type Repository interface {
	Create(ctx context.Context, e *Entry) error
	ListByOwner(ctx context.Context, ownerID int) ([]Entry, error)

	// Delete removes the entry only if it belongs to ownerID;
	// ErrNotFound otherwise.
	Delete(ctx context.Context, ownerID int, id string) error
}
