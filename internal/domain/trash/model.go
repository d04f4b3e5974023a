package trash

import "time"

// Entry is a recoverable snapshot of a deleted item. OwnerID is the actor
// who deleted it, which is the resource owner for every path that reaches
// trash: a grantee revoking their own access never creates an entry.
// Content is the decrypted snapshot so a later restore or view does not
// depend on re-deriving keys against a record that no longer exists.
type Entry struct {
	ID         string
	OwnerID    int
	OriginalID string
	Type       string
	Content    string
	CreatedAt  time.Time
}
