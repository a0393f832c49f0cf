package util

import "errors"

var (
	ErrListingNotFound     = errors.New("listing not found")
	ErrEmptyMessage        = errors.New("message must not be empty")
	ErrProviderUnavailable = errors.New("language model provider unavailable")
	ErrInvalidSeed         = errors.New("invalid listing seed")
)
