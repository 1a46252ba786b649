package users

import "errors"

var (
	// ErrUserNotFound is returned by Get, Update and Delete for unknown ids.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidUser is returned by Create when a name field is missing.
	ErrInvalidUser = errors.New("first name and last name are required")
)
