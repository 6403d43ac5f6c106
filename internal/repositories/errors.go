package repositories

import "errors"

// ErrNotFound is returned when a lookup matches no document.
var ErrNotFound = errors.New("not found")
