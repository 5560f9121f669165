package flexvec

import "fmt"

// Structural invariant checkers for the three containers.
//
// The checkers are intentionally strict and meant to be called from tests
// after every mutating operation while an implementation is evolving.

// Check validates the structural invariants of a FixedVector: the length
// stays within the fixed capacity, and the capacity never changes (it is
// the length of the one buffer allocated at construction).
func (v *FixedVector[T]) Check() error {
	if v == nil {
		return fmt.Errorf("%w: nil container", ErrCorrupt)
	}
	if v.n < 0 {
		return fmt.Errorf("%w: negative length %d", ErrCorrupt, v.n)
	}
	if v.n > len(v.buf) {
		return fmt.Errorf("%w: length %d exceeds fixed capacity %d", ErrCorrupt, v.n, len(v.buf))
	}
	return nil
}

// Check validates the structural invariants of a SmallVector: the length
// stays within the current capacity, and the container is inline exactly
// when no heap buffer is allocated.
func (v *SmallVector[T]) Check() error {
	if v == nil {
		return fmt.Errorf("%w: nil container", ErrCorrupt)
	}
	if v.n < 0 {
		return fmt.Errorf("%w: negative length %d", ErrCorrupt, v.n)
	}
	if v.n > v.Cap() {
		return fmt.Errorf("%w: length %d exceeds capacity %d", ErrCorrupt, v.n, v.Cap())
	}
	if v.heap == nil && v.n > len(v.inline) {
		return fmt.Errorf("%w: inline state with length %d beyond inline capacity %d",
			ErrCorrupt, v.n, len(v.inline))
	}
	if v.heap != nil && len(v.heap) < v.n {
		return fmt.Errorf("%w: heap buffer smaller than length %d", ErrCorrupt, v.n)
	}
	return nil
}

// Check validates the structural invariants of a CheckedVector: recorded
// size changes must be non-negative and the most recent one must lead to
// a size the underlying array could have had.
func (v *CheckedVector[T]) Check() error {
	if v == nil {
		return fmt.Errorf("%w: nil container", ErrCorrupt)
	}
	if v.lastChange != nil {
		if v.lastChange.from < 0 || v.lastChange.to < 0 {
			return fmt.Errorf("%w: negative size recorded in provenance", ErrCorrupt)
		}
		if v.lastChange.site.IsZero() {
			return fmt.Errorf("%w: size change recorded without a call site", ErrCorrupt)
		}
	}
	return nil
}
