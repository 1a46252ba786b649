package table

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes table errors.
type ErrorCode string

const (
	// ErrCodeNotFound indicates an edit referenced a row that does not exist.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"

	// ErrCodeInvalidArgument indicates an unknown sort key or direction, or
	// a negative or non-finite value.
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
)

// Error is returned by Store operations. A failed operation never changes
// table state.
type Error struct {
	Code    ErrorCode
	Message string

	// RowID is set when the error concerns a specific row.
	RowID string
}

func (e *Error) Error() string {
	if e.RowID != "" {
		return fmt.Sprintf("%s: %s (row=%s)", e.Code, e.Message, e.RowID)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsNotFound reports whether err is a NOT_FOUND table error.
func IsNotFound(err error) bool {
	var te *Error
	if errors.As(err, &te) {
		return te.Code == ErrCodeNotFound
	}
	return false
}

// IsInvalidArgument reports whether err is an INVALID_ARGUMENT table error.
func IsInvalidArgument(err error) bool {
	var te *Error
	if errors.As(err, &te) {
		return te.Code == ErrCodeInvalidArgument
	}
	return false
}

func errNotFound(id string) *Error {
	return &Error{Code: ErrCodeNotFound, Message: "row not found", RowID: id}
}

func errInvalidArgument(format string, args ...any) *Error {
	return &Error{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf(format, args...)}
}
