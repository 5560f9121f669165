package alloc

import "errors"

var (
	// ErrInvalidSize signals a negative buffer size request.
	ErrInvalidSize = errors.New("alloc: invalid buffer size")
	// ErrBudgetExceeded signals that a Budget policy has no slots left.
	ErrBudgetExceeded = errors.New("alloc: allocation budget exceeded")
)
