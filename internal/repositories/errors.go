package repositories

import "errors"

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("record not found")
