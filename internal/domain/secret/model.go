package secret

import "time"

// Secret is a burn-after-reading payload. Content is stored as an encrypted
// field; ViewCount only ever moves forward and the reveal that reaches
// MaxViews removes the row in the same operation that returns the content.
type Secret struct {
	ID        string
	Content   string // encrypted field, ivHex:cipherHex
	CreatedAt time.Time
	ExpiresAt *time.Time
	ViewCount int
	MaxViews  int
}

// RevealResult carries the decrypted content and how many reveals remain.
// ViewsLeft == 0 means the record was destroyed by this reveal.
type RevealResult struct {
	Content   string
	ViewsLeft int
}
