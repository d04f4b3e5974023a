package share

import "context"

// Repository persists shareable items. Lookups are always scoped by the
// claimed owner id as well as the item id: a caller cannot use an arbitrary
// owner id to probe for items they cannot already name. Grant-list mutations
// must be single conditional statements so that concurrent grant/revoke
// calls on the same item are serialized by storage, not by the process.
type Repository interface {
	Create(ctx context.Context, item *Item) error

	// Get returns the item only if it exists under ownerID with the given
	// kind; ErrNotFound otherwise.
	Get(ctx context.Context, ownerID int, kind Kind, id string) (*Item, error)

	// GetByPublicToken matches only rows where is_public is true. A token
	// that exists but is unpublished yields ErrNotFound, indistinguishable
	// from a token that never existed.
	GetByPublicToken(ctx context.Context, token string) (*Item, error)

	ListByOwner(ctx context.Context, ownerID int, kind Kind) ([]Item, error)
	ListSharedWith(ctx context.Context, userID int, kind Kind) ([]Item, error)

	UpdateContent(ctx context.Context, ownerID int, kind Kind, id, title, content string) error

	// AddGrantee appends userID to shared_with if not already present.
	AddGrantee(ctx context.Context, ownerID int, kind Kind, id string, userID int) error

	// RemoveGrantee removes userID from shared_with.
	RemoveGrantee(ctx context.Context, ownerID int, kind Kind, id string, userID int) error

	// SetPublic updates the publish flag and, when token is non-empty,
	// records the public token. ErrDuplicateToken on a token collision.
	SetPublic(ctx context.Context, ownerID int, kind Kind, id string, isPublic bool, token string) error

	SetHidden(ctx context.Context, ownerID int, kind Kind, id string, hidden bool) error

	Delete(ctx context.Context, ownerID int, kind Kind, id string) error
}
