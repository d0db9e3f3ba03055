package app

import "errors"

var (
	// ErrFieldsRequired is returned when registration is missing a field.
	ErrFieldsRequired = errors.New("name, surname and email are required")

	// ErrEmailRequired is returned when login is attempted without an email.
	ErrEmailRequired = errors.New("email is required")

	// ErrEmailExists is returned when a registration reuses an existing
	// email, compared case-insensitively.
	ErrEmailExists = errors.New("a user with this email already exists")

	// ErrUserNotFound is returned when login finds no matching email.
	ErrUserNotFound = errors.New("no user found with this email")
)
