package service

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound: the referenced request, offer or message does not exist.
	ErrNotFound = errors.New("not found")
	// ErrForbidden: authenticated but not authorized for this entity.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidInput: malformed payload, fix and resubmit.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidCredentials: login failure, deliberately indistinct between
	// unknown email and wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// InvalidStateError rejects an operation that is not legal in the entity's
// current lifecycle state. It carries that state so the caller can reconcile.
type InvalidStateError struct {
	Current string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("operation not valid in state %q", e.Current)
}

func invalidState[S ~string](current S) error {
	return &InvalidStateError{Current: string(current)}
}

// IsInvalidState reports whether err is an InvalidStateError.
func IsInvalidState(err error) bool {
	var ise *InvalidStateError
	return errors.As(err, &ise)
}
