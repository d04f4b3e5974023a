package drop

import "errors"

var (
	ErrNotFound     = errors.New("drop token not found")
	ErrGone         = errors.New("drop token already used")
	ErrSelfDelivery = errors.New("cannot send a drop to yourself")
	ErrInvalidInput = errors.New("invalid drop input")

	// ErrDuplicateToken is returned by the repository when the generated
	// token string collides with an existing one.
	ErrDuplicateToken = errors.New("duplicate drop token")
)
