// Package apperrors holds the error kinds the HTTP layer knows how to render.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindUnauthenticated
	KindUnauthorized
	KindValidation
	KindGateway
	KindSignatureMismatch
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "NotFound"
	case KindUnauthenticated:
		return "Unauthenticated"
	case KindUnauthorized:
		return "Unauthorized"
	case KindValidation:
		return "ValidationError"
	case KindGateway:
		return "GatewayError"
	case KindSignatureMismatch:
		return "SignatureMismatch"
	default:
		return "Internal"
	}
}

// Error is a classified failure. Status and Body are only set for gateway
// errors, where both are passed through to the caller unchanged.
type Error struct {
	Kind    Kind
	Message string
	Status  int
	Body    []byte
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Unauthenticated(message string) *Error {
	return &Error{Kind: KindUnauthenticated, Message: message}
}

func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func SignatureMismatch(message string) *Error {
	return &Error{Kind: KindSignatureMismatch, Message: message}
}

// Gateway wraps a payment provider rejection.
func Gateway(status int, body []byte, err error) *Error {
	return &Error{Kind: KindGateway, Message: "payment gateway error", Status: status, Body: body, Err: err}
}

// Internal wraps an unexpected failure with a message safe to show to clients.
func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// KindOf reports the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

func StatusOf(err error) int {
	var appErr *Error
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError
	}
	switch appErr.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthenticated, KindUnauthorized:
		return http.StatusUnauthorized
	case KindValidation, KindSignatureMismatch:
		return http.StatusBadRequest
	case KindGateway:
		if appErr.Status >= 400 {
			return appErr.Status
		}
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
