package store

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when no row matches the requested id.
var ErrNotFound = errors.New("store: not found")

// ErrUnsaved is returned when an update is attempted on an entity
// that has never been inserted.
var ErrUnsaved = errors.New("store: entity has no id")

// FaultError wraps an underlying database error so that callers can
// tell an I/O fault apart from "not found" and "nothing to do".
type FaultError struct {
	Op  string
	Err error
}

func (e *FaultError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *FaultError) Unwrap() error {
	return e.Err
}
