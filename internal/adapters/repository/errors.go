package repository

import "errors"

// Sentinel kinds for phonebook store errors.
var (
	ErrNotFound = errors.New("contact not found")
)
