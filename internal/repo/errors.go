package repo

import (
	"errors"
	"fmt"
)

var (
	ErrorNotFound  = errors.New("not found")
	ErrPersistence = errors.New("persistence failure")
)

type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("task %s not found", e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrorNotFound
}

// PersistenceError means the in-memory change was applied but the flush to
// the backing store failed.
type PersistenceError struct {
	Cause error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to persist tasks: %v", e.Cause)
}

func (e *PersistenceError) Unwrap() error {
	return e.Cause
}

func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}
