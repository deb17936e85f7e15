package game

import "errors"

// Sentinel error kinds for this package.
var (
	ErrUnknownVariant = errors.New("unknown game variant")
)
