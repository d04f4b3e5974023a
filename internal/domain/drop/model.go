package drop

import "time"

// Token is a single-use invitation that resolves to its issuing user.
// Once IsUsed flips to true the token is gone for good; the flip is an
// atomic test-and-set in storage so exactly one redeemer wins.
type Token struct {
	Token     string
	UserID    int
	IsUsed    bool
	CreatedAt time.Time
}

// Message is a payload delivered through a redeemed token. Content is
// stored as an encrypted field.
type Message struct {
	ID          string
	RecipientID int
	SenderID    int
	Content     string
	CreatedAt   time.Time
}

// Validity is the result of a non-mutating token probe.
type Validity struct {
	Valid  bool
	Reason string // "gone" or "not_found" when invalid
}

const (
	ReasonGone     = "gone"
	ReasonNotFound = "not_found"
)
