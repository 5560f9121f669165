package flexvec

/*
BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the License file in the repository root.

*/

import (
	"fmt"
	"iter"

	"github.com/npillmayer/flexvec/alloc"
)

// FixedVector is a resizable sequence with a capacity fixed at construction.
//
// The backing buffer is allocated exactly once, by the constructor, through
// the allocation policy; no operation ever reallocates. Slots [0, Len())
// hold live elements, slots beyond are raw and never exposed, so element
// types need no meaningful zero value to participate.
//
// Exceeding the fixed capacity is a precondition violation and panics;
// there is no recovery path. Callers must size the capacity adequately.
type FixedVector[T any] struct {
	policy alloc.Policy[T]
	buf    []T // len(buf) == capacity, allocated once
	n      int // live elements in buf[:n]
}

// NewFixed creates an empty FixedVector with the given capacity.
func NewFixed[T any](capacity int, opts ...Option[T]) (*FixedVector[T], error) {
	cfg := makeConfig(opts)
	buf, err := cfg.policy.Allocate(capacity)
	if err != nil {
		return nil, err
	}
	return &FixedVector[T]{policy: cfg.policy, buf: buf}, nil
}

// NewFixedSize creates a FixedVector holding size zero-valued elements.
func NewFixedSize[T any](capacity, size int, opts ...Option[T]) (*FixedVector[T], error) {
	var fill T
	return NewFixedFill(capacity, size, fill, opts...)
}

// NewFixedFill creates a FixedVector holding size copies of fill.
func NewFixedFill[T any](capacity, size int, fill T, opts ...Option[T]) (*FixedVector[T], error) {
	assert(size >= 0 && size <= capacity, "flexvec: initial size exceeds fixed capacity")
	v, err := NewFixed(capacity, opts...)
	if err != nil {
		return nil, err
	}
	for i := 0; i < size; i++ {
		v.policy.Construct(&v.buf[i], fill)
	}
	v.n = size
	return v, nil
}

// FixedOf creates a FixedVector from a literal list of values.
func FixedOf[T any](capacity int, values ...T) (*FixedVector[T], error) {
	assert(len(values) <= capacity, "flexvec: initial values exceed fixed capacity")
	v, err := NewFixed[T](capacity)
	if err != nil {
		return nil, err
	}
	for i, x := range values {
		v.policy.Construct(&v.buf[i], x)
	}
	v.n = len(values)
	return v, nil
}

// NewFixedFromSeq creates a FixedVector from an element sequence. The
// sequence must not yield more than capacity elements.
func NewFixedFromSeq[T any](capacity int, seq iter.Seq[T], opts ...Option[T]) (*FixedVector[T], error) {
	v, err := NewFixed(capacity, opts...)
	if err != nil {
		return nil, err
	}
	for x := range seq {
		v.PushBack(x)
	}
	return v, nil
}

// Clone creates an independent copy. Elements are copy-constructed through
// the policy of the clone (by default the source's policy).
func (v *FixedVector[T]) Clone(opts ...Option[T]) (*FixedVector[T], error) {
	clone, err := NewFixed(len(v.buf), append([]Option[T]{WithAllocator(v.policy)}, opts...)...)
	if err != nil {
		return nil, err
	}
	for i := 0; i < v.n; i++ {
		clone.policy.Construct(&clone.buf[i], v.buf[i])
	}
	clone.n = v.n
	return clone, nil
}

// Take transfers ownership of the elements into a fresh FixedVector of the
// same capacity. A fixed container has no detachable storage, so each
// element is move-constructed individually and its source slot destroyed.
// The source is left empty and remains safe to use or release.
func (v *FixedVector[T]) Take() (*FixedVector[T], error) {
	dst, err := NewFixed(len(v.buf), WithAllocator(v.policy))
	if err != nil {
		return nil, err
	}
	for i := 0; i < v.n; i++ {
		dst.policy.Construct(&dst.buf[i], v.buf[i])
		v.policy.Destroy(&v.buf[i])
	}
	dst.n = v.n
	v.n = 0
	return dst, nil
}

// Len returns the current number of elements.
func (v *FixedVector[T]) Len() int { return v.n }

// Cap returns the fixed capacity. It is constant over the container's life.
func (v *FixedVector[T]) Cap() int { return len(v.buf) }

// MaxLen returns the maximum possible number of elements, which for a
// fixed-capacity container equals Cap.
func (v *FixedVector[T]) MaxLen() int { return len(v.buf) }

// IsEmpty reports whether the container holds no elements.
func (v *FixedVector[T]) IsEmpty() bool { return v.n == 0 }

// Get returns the element at index without a contract-level bounds check.
// Indexing outside [0, Len()) is out of contract.
func (v *FixedVector[T]) Get(index int) T {
	return v.buf[:v.n][index]
}

// At returns the element at index, or ErrIndexOutOfBounds carrying the
// offending index and the current size.
func (v *FixedVector[T]) At(index int) (T, error) {
	if index < 0 || index >= v.n {
		var zero T
		return zero, fmt.Errorf("%w: index %d, size %d", ErrIndexOutOfBounds, index, v.n)
	}
	return v.buf[index], nil
}

// Ref returns a pointer to the element at index for in-place mutation.
// The pointer is invalidated by any subsequent insertion or removal.
func (v *FixedVector[T]) Ref(index int) *T {
	return &v.buf[:v.n][index]
}

// Front returns the first element. The container must not be empty.
func (v *FixedVector[T]) Front() T { return v.buf[:v.n][0] }

// Back returns the last element. The container must not be empty.
func (v *FixedVector[T]) Back() T { return v.buf[:v.n][v.n-1] }

// Data returns the live elements as a slice view, or nil when empty.
// The view is invalidated by any subsequent insertion or removal.
func (v *FixedVector[T]) Data() []T {
	if v.n == 0 {
		return nil
	}
	return v.buf[:v.n]
}

// All iterates over index/element pairs in forward order.
//
// Example:
//
//	for i, x := range v.All() {
//		// do something
//	}
func (v *FixedVector[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < v.n; i++ {
			if !yield(i, v.buf[i]) {
				return
			}
		}
	}
}

// Backward iterates over index/element pairs in reverse order.
func (v *FixedVector[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := v.n - 1; i >= 0; i-- {
			if !yield(i, v.buf[i]) {
				return
			}
		}
	}
}

// PushBack appends an element. Exceeding the fixed capacity panics.
func (v *FixedVector[T]) PushBack(x T) {
	assert(v.n < len(v.buf), "flexvec: fixed capacity exceeded")
	v.policy.Construct(&v.buf[v.n], x)
	v.n++
}

// PopBack removes the last element. The container must not be empty.
func (v *FixedVector[T]) PopBack() {
	assert(v.n > 0, "flexvec: pop from empty container")
	v.n--
	v.policy.Destroy(&v.buf[v.n])
}

// Clear destroys all elements. The capacity is unchanged.
func (v *FixedVector[T]) Clear() {
	for i := 0; i < v.n; i++ {
		v.policy.Destroy(&v.buf[i])
	}
	v.n = 0
}

// Resize changes the length to size. Shrinking destroys the trailing
// elements; growing appends zero-valued elements. Capacity never changes,
// and size must not exceed it.
func (v *FixedVector[T]) Resize(size int) {
	var fill T
	v.ResizeFill(size, fill)
}

// ResizeFill is Resize with an explicit fill value for appended elements.
func (v *FixedVector[T]) ResizeFill(size int, fill T) {
	assert(size >= 0 && size <= len(v.buf), "flexvec: resize exceeds fixed capacity")
	for i := size; i < v.n; i++ {
		v.policy.Destroy(&v.buf[i])
	}
	for i := v.n; i < size; i++ {
		v.policy.Construct(&v.buf[i], fill)
	}
	v.n = size
}

// Insert inserts values immediately before index and returns the index of
// the first inserted element. The resulting length must not exceed the
// fixed capacity.
//
// Space is made by move-constructing the elements of [index, Len()) into
// their shifted slots back-to-front, so that overlapping ranges cannot
// corrupt each other.
func (v *FixedVector[T]) Insert(index int, values ...T) int {
	assert(index >= 0 && index <= v.n, "flexvec: insert position out of range")
	k := len(values)
	if k == 0 {
		return index
	}
	assert(v.n+k <= len(v.buf), "flexvec: insert exceeds fixed capacity")
	v.shiftRight(index, k)
	for j, x := range values {
		v.policy.Construct(&v.buf[index+j], x)
	}
	v.n += k
	return index
}

// InsertRepeat inserts count copies of value immediately before index and
// returns the index of the first inserted element.
func (v *FixedVector[T]) InsertRepeat(index, count int, value T) int {
	assert(index >= 0 && index <= v.n, "flexvec: insert position out of range")
	assert(count >= 0, "flexvec: negative repeat count")
	if count == 0 {
		return index
	}
	assert(v.n+count <= len(v.buf), "flexvec: insert exceeds fixed capacity")
	v.shiftRight(index, count)
	for j := 0; j < count; j++ {
		v.policy.Construct(&v.buf[index+j], value)
	}
	v.n += count
	return index
}

// InsertSeq inserts the elements yielded by seq immediately before index
// and returns the index of the first inserted element.
func (v *FixedVector[T]) InsertSeq(index int, seq iter.Seq[T]) int {
	var values []T
	for x := range seq {
		values = append(values, x)
	}
	return v.Insert(index, values...)
}

// shiftRight opens k raw slots at index by move-constructing each element
// of [index, n) into its destination, last element first.
func (v *FixedVector[T]) shiftRight(index, k int) {
	for j := v.n - 1; j >= index; j-- {
		v.policy.Construct(&v.buf[j+k], v.buf[j])
		v.policy.Destroy(&v.buf[j])
	}
}

// Erase removes the element at index and returns the index of the element
// that followed it.
func (v *FixedVector[T]) Erase(index int) int {
	assert(index >= 0 && index < v.n, "flexvec: erase position out of range")
	return v.EraseRange(index, index+1)
}

// EraseRange removes the elements in [first, last) and returns the index
// of the element that followed the removed range.
//
// Elements after the range are shifted left by move-assignment; the
// now-redundant trailing slots are then destroyed.
func (v *FixedVector[T]) EraseRange(first, last int) int {
	assert(first >= 0 && first <= last && last <= v.n, "flexvec: erase range out of range")
	k := last - first
	if k == 0 {
		return first
	}
	copy(v.buf[first:], v.buf[last:v.n])
	for i := v.n - k; i < v.n; i++ {
		v.policy.Destroy(&v.buf[i])
	}
	v.n -= k
	return first
}

// Swap is intentionally not implemented for fixed-capacity containers:
// exchanging the full element blocks by value is wasteful; move the
// containers instead. Calling Swap panics with ErrUnimplemented.
func (v *FixedVector[T]) Swap(other *FixedVector[T]) {
	panic(ErrUnimplemented)
}

// Release destroys all elements and returns the backing buffer to the
// allocation policy. The container must not be used afterwards.
func (v *FixedVector[T]) Release() {
	v.Clear()
	if v.buf != nil {
		v.policy.Deallocate(v.buf)
		v.buf = nil
	}
}

func (v *FixedVector[T]) String() string {
	return formatElements(v.buf[:v.n])
}
