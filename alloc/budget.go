package alloc

import "fmt"

// Budget wraps an inner policy and fails Allocate once a slot budget is
// exhausted. Containers propagate the failure unchanged to their callers,
// which makes Budget the tool for exercising allocation-failure paths.
type Budget[T any] struct {
	inner     Policy[T]
	remaining int
}

// NewBudget wraps inner with a budget of slots, defaulting to Heap when
// inner is nil.
func NewBudget[T any](inner Policy[T], slots int) *Budget[T] {
	if inner == nil {
		inner = Heap[T]{}
	}
	return &Budget[T]{inner: inner, remaining: slots}
}

// Remaining returns the number of slots still available.
func (b *Budget[T]) Remaining() int {
	return b.remaining
}

func (b *Budget[T]) Allocate(n int) ([]T, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, n)
	}
	if n > b.remaining {
		return nil, fmt.Errorf("%w: %d slots requested, %d left", ErrBudgetExceeded, n, b.remaining)
	}
	buf, err := b.inner.Allocate(n)
	if err != nil {
		return nil, err
	}
	b.remaining -= n
	return buf, nil
}

func (b *Budget[T]) Deallocate(buf []T) {
	b.inner.Deallocate(buf)
}

func (b *Budget[T]) Construct(slot *T, v T) {
	b.inner.Construct(slot, v)
}

func (b *Budget[T]) Destroy(slot *T) {
	b.inner.Destroy(slot)
}
