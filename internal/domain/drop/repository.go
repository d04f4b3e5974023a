package drop

import "context"

// TokenRepository persists drop tokens. MarkUsed must be an atomic
// conditional update: it succeeds for exactly one caller per token no
// matter how many processes race on it.
type TokenRepository interface {
	// Create inserts the token; ErrDuplicateToken on a token collision.
	Create(ctx context.Context, t *Token) error

	// Get returns the token row or ErrNotFound. Read-only.
	Get(ctx context.Context, token string) (*Token, error)

	// MarkUsed flips IsUsed to true only if it is currently false and
	// returns the resolved user id. ErrNotFound when no row matched,
	// which covers both "unknown token" and "lost the race".
	MarkUsed(ctx context.Context, token string) (int, error)
}

// MessageRepository persists delivered drop payloads.
type MessageRepository interface {
	Create(ctx context.Context, m *Message) error
	ListByRecipient(ctx context.Context, recipientID int) ([]Message, error)
}
