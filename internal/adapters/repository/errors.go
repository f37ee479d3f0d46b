package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrNotFound  = errors.New("event not found")
	ErrConnect   = errors.New("store connection failed")
	ErrCorrupted = errors.New("stored document failed to decode")
)
