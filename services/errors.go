package services

import (
	"errors"
	"fmt"
)

// Kind is the stable machine-readable class of a failure.
type Kind string

const (
	KindInvalidReference      Kind = "invalid_reference"
	KindSelfReference         Kind = "self_reference"
	KindInvalidState          Kind = "invalid_state"
	KindInvalidInput          Kind = "invalid_input"
	KindNotFound              Kind = "not_found"
	KindConfigurationMissing  Kind = "configuration_missing"
	KindInternalInconsistency Kind = "internal_inconsistency"
	KindInternal              Kind = "internal"
)

// Error is a failure surfaced to the external caller.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the Kind of err, or KindInternal if err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// ErrStaleState is returned by a store when the snapshot a transition was
// conditioned on no longer holds. Callers re-read and retry.
var ErrStaleState = errors.New("stale state")

// ErrItemNotFound is returned by stores for missing records.
var ErrItemNotFound = errors.New("item not found")
