package share

import "errors"

var (
	ErrNotFound         = errors.New("item not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidInput     = errors.New("invalid item input")
	ErrSelfShare        = errors.New("cannot share an item with yourself")
	ErrGranteeNotFound  = errors.New("grantee not found")

	// ErrDuplicateToken is returned by the repository when a generated
	// public token collides with an existing one.
	ErrDuplicateToken = errors.New("duplicate public token")
)
