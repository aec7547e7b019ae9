package workout

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrDuplicateID    = errors.New("workout id already present")
	ErrNotFound       = errors.New("workout not found")
	ErrFormHidden     = errors.New("no form is open")
	ErrNoPendingClear = errors.New("no clear request pending")
)

// ValidationError reports which numeric inputs failed the finite/positive
// checks. The form stays open so the user can correct and resubmit.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "invalid input: " + strings.Join(e.Fields, ", ")
}

// UnknownVariantError marks a persisted record whose type discriminator has
// no constructor. The record is dropped, the rest of the blob survives.
type UnknownVariantError struct {
	Kind string
}

func (e *UnknownVariantError) Error() string {
	return fmt.Sprintf("unknown workout type %q", e.Kind)
}

// PersistenceReadError wraps an unreadable blob. Callers degrade to an empty
// collection instead of failing startup.
type PersistenceReadError struct {
	Err error
}

func (e *PersistenceReadError) Error() string {
	return "unreadable workout blob: " + e.Err.Error()
}

func (e *PersistenceReadError) Unwrap() error {
	return e.Err
}
