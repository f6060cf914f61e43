package core

import "errors"

// Common errors.
var (
	ErrReadOnly            = errors.New("medium is in read-only mode")
	ErrInvalidKey          = errors.New("invalid storage key")
	ErrUnknownActivityType = errors.New("unknown activity type")
)
