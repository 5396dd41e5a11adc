// Package common defines sentinel errors shared by the server's service and
// repository layers. Callers should match them with errors.Is; the HTTP
// layer maps each to a status code.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound   = errors.New("not found")
	ErrEmailTaken = errors.New("email already in use")

	// Service-level errors.
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("access denied")
	ErrValidation   = errors.New("validation failed")

	// Token errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
