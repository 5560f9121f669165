package flexvec

import "errors"

var (
	// ErrIndexOutOfBounds signals an invalid positional index on checked access.
	ErrIndexOutOfBounds = errors.New("flexvec: index out of bounds")
	// ErrUnimplemented marks operations that are deliberately not given
	// semantics (element-wise Swap on fixed-storage containers).
	ErrUnimplemented = errors.New("flexvec: operation intentionally not implemented")
	// ErrCorrupt signals a violated container invariant, found by Check.
	ErrCorrupt = errors.New("flexvec: container invariant violated")
)
