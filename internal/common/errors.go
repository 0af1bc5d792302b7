// Package common defines shared constants and sentinel errors used across
// the collection tracker server and CLI. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Validation errors.
	ErrValidation      = errors.New("validation error")
	ErrInvalidQuantity = errors.New("quantity must be between 1 and 9999")
	ErrWeakPassword    = errors.New("password must be between 6 and 72 characters long")

	// Account errors.
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrDuplicateEmail     = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrUserNotFound       = errors.New("user not found")

	// Collection errors. ErrItemNotFound is also returned when the item
	// belongs to another user.
	ErrItemNotFound = errors.New("collection item not found")

	// Catalog errors.
	ErrCardNotFound       = errors.New("card not found in catalog")
	ErrCatalogUnavailable = errors.New("card catalog unavailable")

	// Session token errors.
	ErrInvalidToken     = errors.New("invalid token")
	ErrTokenExpired     = errors.New("token expired")
	ErrMalformedToken   = errors.New("malformed token")
	ErrInvalidSignature = errors.New("invalid token signature")
)
