package secret

import "errors"

var (
	ErrNotFound     = errors.New("secret not found")
	ErrExpired      = errors.New("secret expired")
	ErrInvalidInput = errors.New("invalid secret input")
)
