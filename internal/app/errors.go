package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrNotStarted = errors.New("phonebook service not started")
)
