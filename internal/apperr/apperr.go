// Package apperr defines the error taxonomy shared by services and handlers.
// Services return these so handlers can map failures to HTTP status codes
// without string matching.
package apperr

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindForbidden
	KindConflict
	KindValidation
)

type Error struct {
	kind Kind
	msg  string
}

func (e *Error) Error() string {
	return e.msg
}

func (e *Error) Kind() Kind {
	return e.kind
}

func NotFound(msg string) error {
	return &Error{kind: KindNotFound, msg: msg}
}

func Forbidden(msg string) error {
	return &Error{kind: KindForbidden, msg: msg}
}

func Conflict(msg string) error {
	return &Error{kind: KindConflict, msg: msg}
}

func Validation(msg string) error {
	return &Error{kind: KindValidation, msg: msg}
}

func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.kind
	}
	return KindUnknown
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// Status maps an error to its HTTP status code. Unrecognized errors map to 500.
func Status(err error) int {
	switch KindOf(err) {
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	case KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
