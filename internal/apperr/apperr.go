// Package apperr classifies service errors into the kinds the HTTP layer
// knows how to translate.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	KindValidation   Kind = "VALIDATION"
	KindNotFound     Kind = "NOT_FOUND"
	KindUnauthorized Kind = "UNAUTHORIZED"
	KindUpstream     Kind = "UPSTREAM"
	KindDatabase     Kind = "DATABASE"
	KindMail         Kind = "MAIL"
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Details returns the underlying provider error text, if any. It is exposed
// in responses only for upstream failure kinds.
func (e *Error) Details() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func Validation(message string) *Error {
	return New(KindValidation, message)
}

func NotFound(message string) *Error {
	return New(KindNotFound, message)
}

func Unauthorized(message string) *Error {
	return New(KindUnauthorized, message)
}

func Upstream(message string, err error) *Error {
	return Wrap(KindUpstream, message, err)
}

func Database(message string, err error) *Error {
	return Wrap(KindDatabase, message, err)
}

func Mail(message string, err error) *Error {
	return Wrap(KindMail, message, err)
}

// KindOf reports the kind of err, or "" when err is not an *Error.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

func httpStatus(kind Kind) int {
	switch kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindUpstream, KindMail:
		return http.StatusBadGateway
	case KindDatabase:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// HTTPStatus maps an error to the status code the handler boundary responds
// with. Unclassified errors are treated as internal.
func HTTPStatus(err error) int {
	var appErr *Error
	if errors.As(err, &appErr) {
		return httpStatus(appErr.Kind)
	}
	return http.StatusInternalServerError
}
