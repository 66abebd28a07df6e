// Package apperr classifies failures of backend calls so callers can turn
// them into user notifications without inspecting transport details.
package apperr

import (
	"errors"
	"fmt"
)

// Kind is the failure class of a backend operation.
type Kind string

const (
	// KindNetwork means the request could not complete.
	KindNetwork Kind = "NETWORK_FAILURE"
	// KindValidation means the backend (or local form checks) rejected the payload.
	KindValidation Kind = "VALIDATION_FAILURE"
	// KindNotFound means the edit or delete target does not exist.
	KindNotFound Kind = "NOT_FOUND"
)

// Sentinels for errors.Is matching on kind.
var (
	ErrNetwork    = &Error{Kind: KindNetwork}
	ErrValidation = &Error{Kind: KindValidation}
	ErrNotFound   = &Error{Kind: KindNotFound}
)

// Error is a classified failure. Detail is the human-readable message the
// backend supplied, if any.
type Error struct {
	Kind   Kind
	Op     string
	Status int
	Detail string
	Err    error
}

func (e *Error) Error() string {
	msg := string(e.Kind)
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Status != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.Status)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports kind equality, so errors.Is(err, apperr.ErrNotFound) works for
// any *Error of that kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func Network(op string, err error) error {
	return &Error{Kind: KindNetwork, Op: op, Err: err}
}

func Validation(op, detail string) error {
	return &Error{Kind: KindValidation, Op: op, Detail: detail}
}

func NotFound(op, detail string) error {
	return &Error{Kind: KindNotFound, Op: op, Detail: detail}
}

// DetailOf returns the backend-provided detail carried by err, or "".
func DetailOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Detail
	}
	return ""
}

// KindOf returns the kind of err, or "" when err is not classified.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
