// Package apperr defines the error kinds shared by every domain package.
// Specific errors wrap one of these kinds so callers can branch on either.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrAuth       = errors.New("authentication error")
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrIO         = errors.New("io error")
	ErrProtected  = errors.New("protected resource")
)

type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.kind }

// New returns a sentinel error of the given kind.
func New(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}

type ioError struct {
	op  string
	err error
}

func (e *ioError) Error() string { return fmt.Sprintf("%s: %v", e.op, e.err) }

func (e *ioError) Unwrap() []error { return []error{ErrIO, e.err} }

// IO wraps an underlying filesystem or encoding failure as an ErrIO.
func IO(op string, err error) error {
	if err == nil {
		return nil
	}
	return &ioError{op: op, err: err}
}

// Kind reports which of the shared kinds err belongs to, or nil.
func Kind(err error) error {
	for _, k := range []error{ErrAuth, ErrValidation, ErrNotFound, ErrConflict, ErrProtected, ErrIO} {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}
