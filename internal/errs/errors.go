package errs

import "errors"

var (
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when a uniqueness constraint rejects a write.
	ErrAlreadyExists = errors.New("already exists")
	// ErrInsufficientCapital is returned when a conditional debit matches no row.
	ErrInsufficientCapital = errors.New("insufficient capital")
)
