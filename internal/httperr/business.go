package httperr

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindValidation        Kind = "validation"
	KindUnauthorized      Kind = "unauthorized"
	KindRevoked           Kind = "revoked"
	KindForbidden         Kind = "forbidden"
	KindNotFound          Kind = "not_found"
	KindConflict          Kind = "conflict"
	KindUnsupported       Kind = "unsupported"
	KindInvalidState      Kind = "invalid_state"
	KindInvalidTransition Kind = "invalid_transition"
	KindInvalidToken      Kind = "invalid_token"
)

type BusinessError struct {
	Kind    Kind
	Code    string
	Message string
}

func (e BusinessError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Code
}

func New(kind Kind, code, message string) error {
	return BusinessError{Kind: kind, Code: code, Message: message}
}

// ErrBusiness builds a validation error identified only by its code.
func ErrBusiness(code string) error {
	return BusinessError{Kind: KindValidation, Code: code}
}

func Validation(code, message string) error { return New(KindValidation, code, message) }

func Unauthorized(code, message string) error { return New(KindUnauthorized, code, message) }

func Revoked(message string) error { return New(KindRevoked, "token_revoked", message) }

func Forbidden(code, message string) error { return New(KindForbidden, code, message) }

func NotFound(code, message string) error { return New(KindNotFound, code, message) }

func Conflict(code, message string) error { return New(KindConflict, code, message) }

func Unsupported(code, message string) error { return New(KindUnsupported, code, message) }

func InvalidState(code, message string) error { return New(KindInvalidState, code, message) }

func InvalidTransition(from, to string) error {
	return New(
		KindInvalidTransition,
		"invalid_transition",
		fmt.Sprintf("cannot move from %s to %s", from, to),
	)
}

func InvalidToken(message string) error { return New(KindInvalidToken, "invalid_token", message) }

func As(err error) (BusinessError, bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be, true
	}
	return be, false
}

func IsBusiness(err error, code string) bool {
	be, ok := As(err)
	return ok && be.Code == code
}

func IsKind(err error, kind Kind) bool {
	be, ok := As(err)
	return ok && be.Kind == kind
}
