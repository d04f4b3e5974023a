package share

import "time"

// Item is a shareable sub-item living in its owner's collection. The owner's
// row is the single source of truth: grantees never get a copy, they read and
// write through this row guarded by the access procedure. Title and Content
// are encrypted fields; the grant metadata around them is plaintext.
type Item struct {
	ID          string
	OwnerID     int
	Kind        Kind
	Title       string // encrypted
	Content     string // encrypted
	SharedWith  []int
	IsPublic    bool
	PublicToken string // empty until the item is first published; survives unpublish
	IsHidden    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasGrantee reports whether userID is on the item's grant list.
func (i *Item) HasGrantee(userID int) bool {
	for _, id := range i.SharedWith {
		if id == userID {
			return true
		}
	}
	return false
}

// Role is the caller's relationship to an item. Public-token access is a
// separate anonymous path and never produces a role.
type Role string

const (
	RoleOwner   Role = "owner"
	RoleGrantee Role = "grantee"
)

// View is an item with Title and Content decrypted, as returned across the
// trust boundary.
type View struct {
	ID          string
	OwnerID     int
	Kind        Kind
	Title       string
	Content     string
	SharedWith  []int
	IsPublic    bool
	PublicToken string
	IsHidden    bool
	Role        Role
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Entry is one element of a bulk collection save. An empty ID means a new
// item; known IDs are updated in place; previously stored IDs absent from
// the submitted set are captured to trash and removed.
type Entry struct {
	ID      string
	Title   string
	Content string
}
