package interfaces

import "errors"

var (
	// ErrVersionConflict is returned by conditional writes whose expected
	// version no longer matches the stored record.
	ErrVersionConflict = errors.New("version conflict")
	// ErrDuplicate is returned when a unique key is already taken.
	ErrDuplicate = errors.New("duplicate record")
)
