package alloc

/*
BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the License file in the repository root.

*/

import "fmt"

// Policy is the allocation policy for flexvec containers.
//
// Allocate returns a buffer of n slots with len == n. The slots hold the
// zero value of T but are treated as raw memory by the containers: a slot
// becomes live only through Construct and stops being live only through
// Destroy. Deallocate returns a buffer whose slots have all been destroyed
// (or were never constructed).
type Policy[T any] interface {
	Allocate(n int) ([]T, error)
	Deallocate(buf []T)
	Construct(slot *T, v T)
	Destroy(slot *T)
}

// Heap is the default policy: plain Go allocations, reclaimed by the
// garbage collector. Allocate fails only for negative sizes.
type Heap[T any] struct{}

// Allocate returns a zeroed buffer of n slots.
func (Heap[T]) Allocate(n int) ([]T, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, n)
	}
	return make([]T, n), nil
}

// Deallocate is a no-op; the garbage collector reclaims the buffer.
func (Heap[T]) Deallocate(buf []T) {}

// Construct makes a slot live with value v.
func (Heap[T]) Construct(slot *T, v T) {
	*slot = v
}

// Destroy ends a slot's lifetime. The slot is zeroed so that references
// held by T become collectable.
func (Heap[T]) Destroy(slot *T) {
	var zero T
	*slot = zero
}
