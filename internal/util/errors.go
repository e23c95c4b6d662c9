// internal/util/errors.go
package util

import "errors"

// Common application-specific errors.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input provided")
	ErrCardNotFound = errors.New("card not found")
)

// IsError reports whether target appears in err's chain.
func IsError(err, target error) bool {
	return errors.Is(err, target)
}
