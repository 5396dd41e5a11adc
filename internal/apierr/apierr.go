// Package apierr defines the classified-failure taxonomy for calls that
// cross the API boundary. Every failure surfaced by the gateway carries
// exactly one Kind; callers branch recovery on the Kind, never on transport
// details. Match with errors.As or the Is helper.
package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is one member of the failure taxonomy.
type Kind string

const (
	// KindNetwork means no response was received at all.
	KindNetwork Kind = "network"
	// KindValidation is a 400-class rejection of malformed or out-of-range input.
	KindValidation Kind = "validation"
	// KindAuth is a 401-class rejection: credential missing, expired, or
	// invalid. Receiving it forces a logout.
	KindAuth Kind = "auth"
	// KindPermission is a 403-class rejection: authenticated but not entitled.
	KindPermission Kind = "permission"
	// KindNotFound is a 404-class rejection.
	KindNotFound Kind = "not_found"
	// KindConflict is a 409-class rejection, e.g. a duplicate email.
	KindConflict Kind = "conflict"
	// KindServer is a 500-class opaque upstream failure.
	KindServer Kind = "server"
)

// Error is a failure tagged with one taxonomy member.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// New returns a classified error with the given kind and message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap returns a classified error preserving cause for errors.Is/As chains.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Err: cause}
}

// KindOf returns the classification of err, or "" if err carries none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Is reports whether err is classified as kind.
func Is(err error, kind Kind) bool { return KindOf(err) == kind }

// FromStatus maps an HTTP response status to a Kind. Statuses without a
// dedicated class fall through to KindServer.
func FromStatus(code int) Kind {
	switch code {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return KindValidation
	case http.StatusUnauthorized:
		return KindAuth
	case http.StatusForbidden:
		return KindPermission
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusConflict:
		return KindConflict
	default:
		return KindServer
	}
}
