package flexvec

/*
BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the License file in the repository root.

*/

import (
	"fmt"
	"iter"
	"math"

	"github.com/npillmayer/flexvec/alloc"
)

// SmallVector is a resizable sequence with hybrid storage: an inline buffer
// for the first N elements, and a heap buffer once N is exceeded.
//
// The inline buffer is allocated once, at construction, and retained for
// the container's whole life; the heap buffer is a second policy
// allocation sized to the current capacity. Exactly one of the two is
// active at any time, discriminated by the heap buffer being non-nil.
//
// Storage state machine:
//
//	Inline → Heap    on the first operation needing capacity > N
//	Heap   → Heap    on further growth, or on an exact-fit shrink
//	Heap   → Inline  only via ShrinkToFit, when Len() <= N
//
// Capacity doubles on overflow, then is raised further if a requested
// minimum demands it. Any operation that changes storage invalidates
// slices previously obtained from Data().
//
// Operations that may allocate return an error; allocation failure from
// the policy propagates unchanged and leaves the container unmodified.
type SmallVector[T any] struct {
	policy alloc.Policy[T]
	inline []T // allocated once at construction; len == inline capacity N
	heap   []T // nil ⇔ inline buffer active; len == heap capacity
	n      int
}

// NewSmall creates an empty SmallVector with inline capacity inlineCap.
func NewSmall[T any](inlineCap int, opts ...Option[T]) (*SmallVector[T], error) {
	cfg := makeConfig(opts)
	inline, err := cfg.policy.Allocate(inlineCap)
	if err != nil {
		return nil, err
	}
	return &SmallVector[T]{policy: cfg.policy, inline: inline}, nil
}

// NewSmallSize creates a SmallVector holding size zero-valued elements,
// spilling to the heap if size exceeds the inline capacity.
func NewSmallSize[T any](inlineCap, size int, opts ...Option[T]) (*SmallVector[T], error) {
	var fill T
	return NewSmallFill(inlineCap, size, fill, opts...)
}

// NewSmallFill creates a SmallVector holding size copies of fill.
func NewSmallFill[T any](inlineCap, size int, fill T, opts ...Option[T]) (*SmallVector[T], error) {
	assert(size >= 0, "flexvec: negative initial size")
	v, err := NewSmall(inlineCap, opts...)
	if err != nil {
		return nil, err
	}
	if err := v.Reserve(size); err != nil {
		v.Release()
		return nil, err
	}
	slots := v.slots()
	for i := 0; i < size; i++ {
		v.policy.Construct(&slots[i], fill)
	}
	v.n = size
	return v, nil
}

// SmallOf creates a SmallVector from a literal list of values.
func SmallOf[T any](inlineCap int, values ...T) (*SmallVector[T], error) {
	v, err := NewSmall[T](inlineCap)
	if err != nil {
		return nil, err
	}
	if _, err := v.Insert(0, values...); err != nil {
		v.Release()
		return nil, err
	}
	return v, nil
}

// NewSmallFromSeq creates a SmallVector from an element sequence.
func NewSmallFromSeq[T any](inlineCap int, seq iter.Seq[T], opts ...Option[T]) (*SmallVector[T], error) {
	v, err := NewSmall(inlineCap, opts...)
	if err != nil {
		return nil, err
	}
	for x := range seq {
		if err := v.PushBack(x); err != nil {
			v.Release()
			return nil, err
		}
	}
	return v, nil
}

// Clone creates an independent copy with the same inline capacity.
// Elements are copy-constructed; storage state is re-derived, not copied.
func (v *SmallVector[T]) Clone(opts ...Option[T]) (*SmallVector[T], error) {
	clone, err := NewSmall(len(v.inline), append([]Option[T]{WithAllocator(v.policy)}, opts...)...)
	if err != nil {
		return nil, err
	}
	if err := clone.Reserve(v.n); err != nil {
		clone.Release()
		return nil, err
	}
	src, dst := v.slots(), clone.slots()
	for i := 0; i < v.n; i++ {
		clone.policy.Construct(&dst[i], src[i])
	}
	clone.n = v.n
	return clone, nil
}

// Take transfers ownership of the elements into a fresh SmallVector with
// the same inline capacity. If the source is on the heap, the heap buffer
// itself is transferred (no element moves) and the source is reset to the
// empty inline state. If the source is inline, elements are
// move-constructed one by one; there is no way to steal inline storage.
// Either way the source ends up empty and safe to use or release.
func (v *SmallVector[T]) Take() (*SmallVector[T], error) {
	dst, err := NewSmall(len(v.inline), WithAllocator(v.policy))
	if err != nil {
		return nil, err
	}
	if v.heap != nil {
		dst.heap = v.heap
		dst.n = v.n
		v.heap = nil
		v.n = 0
		return dst, nil
	}
	for i := 0; i < v.n; i++ {
		dst.policy.Construct(&dst.inline[i], v.inline[i])
		v.policy.Destroy(&v.inline[i])
	}
	dst.n = v.n
	v.n = 0
	return dst, nil
}

// slots returns the active storage buffer.
func (v *SmallVector[T]) slots() []T {
	if v.heap != nil {
		return v.heap
	}
	return v.inline
}

// Len returns the current number of elements.
func (v *SmallVector[T]) Len() int { return v.n }

// Cap returns the current capacity: the heap buffer size when on the
// heap, the inline capacity otherwise.
func (v *SmallVector[T]) Cap() int { return len(v.slots()) }

// MaxLen returns the maximum number of elements the index type can
// address. The allocation policy will usually give out long before that.
func (v *SmallVector[T]) MaxLen() int { return math.MaxInt }

// IsEmpty reports whether the container holds no elements.
func (v *SmallVector[T]) IsEmpty() bool { return v.n == 0 }

// IsInline reports whether elements currently live in the inline buffer.
func (v *SmallVector[T]) IsInline() bool { return v.heap == nil }

// Get returns the element at index without a contract-level bounds check.
// Indexing outside [0, Len()) is out of contract.
func (v *SmallVector[T]) Get(index int) T {
	return v.slots()[:v.n][index]
}

// At returns the element at index, or ErrIndexOutOfBounds carrying the
// offending index and the current size.
func (v *SmallVector[T]) At(index int) (T, error) {
	if index < 0 || index >= v.n {
		var zero T
		return zero, fmt.Errorf("%w: index %d, size %d", ErrIndexOutOfBounds, index, v.n)
	}
	return v.slots()[index], nil
}

// Ref returns a pointer to the element at index for in-place mutation.
// The pointer is invalidated by any operation that relocates storage.
func (v *SmallVector[T]) Ref(index int) *T {
	return &v.slots()[:v.n][index]
}

// Front returns the first element. The container must not be empty.
func (v *SmallVector[T]) Front() T { return v.slots()[:v.n][0] }

// Back returns the last element. The container must not be empty.
func (v *SmallVector[T]) Back() T { return v.slots()[:v.n][v.n-1] }

// Data returns the live elements as a slice view, or nil when empty.
// The view is invalidated by any operation that relocates storage.
func (v *SmallVector[T]) Data() []T {
	if v.n == 0 {
		return nil
	}
	return v.slots()[:v.n]
}

// All iterates over index/element pairs in forward order.
func (v *SmallVector[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		slots := v.slots()
		for i := 0; i < v.n; i++ {
			if !yield(i, slots[i]) {
				return
			}
		}
	}
}

// Backward iterates over index/element pairs in reverse order.
func (v *SmallVector[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		slots := v.slots()
		for i := v.n - 1; i >= 0; i-- {
			if !yield(i, slots[i]) {
				return
			}
		}
	}
}

// Reserve grows the capacity to at least min. It is a no-op when min does
// not exceed the current capacity; otherwise a heap buffer of exactly min
// slots is allocated, all live elements are moved into it, and the prior
// heap buffer (if any) is released.
func (v *SmallVector[E]) Reserve(min int) error {
	if min <= v.Cap() {
		return nil
	}
	buf, err := v.policy.Allocate(min)
	if err != nil {
		return err
	}
	v.relocate(buf)
	T().Debugf("small vector: reserved heap capacity %d (len %d)", min, v.n)
	return nil
}

// relocate moves all live elements into buf, releases the prior heap
// buffer if one existed, and makes buf the active heap buffer.
func (v *SmallVector[T]) relocate(buf []T) {
	src := v.slots()
	for i := 0; i < v.n; i++ {
		v.policy.Construct(&buf[i], src[i])
		v.policy.Destroy(&src[i])
	}
	if v.heap != nil {
		v.policy.Deallocate(v.heap)
	}
	v.heap = buf
}

// ensure guarantees capacity for extra more elements, doubling the current
// capacity on overflow and raising further until the requirement is met.
func (v *SmallVector[T]) ensure(extra int) error {
	required := v.n + extra
	if required <= v.Cap() {
		return nil
	}
	newCap := v.Cap() * 2
	if newCap < 1 {
		newCap = 1
	}
	for newCap < required {
		newCap *= 2
	}
	return v.Reserve(newCap)
}

// ShrinkToFit asks to drop unused capacity. If everything fits into the
// inline buffer the elements move back there and the heap buffer is
// released; otherwise a heap buffer of exactly Len() slots replaces the
// current one. A container whose size equals its capacity is untouched.
func (v *SmallVector[E]) ShrinkToFit() error {
	switch {
	case v.n == v.Cap():
		return nil
	case v.heap == nil:
		// Inline and not full: the inline buffer must be kept around
		// anyway, so there is nothing to release.
		return nil
	case v.n <= len(v.inline):
		for i := 0; i < v.n; i++ {
			v.policy.Construct(&v.inline[i], v.heap[i])
			v.policy.Destroy(&v.heap[i])
		}
		v.policy.Deallocate(v.heap)
		v.heap = nil
		T().Debugf("small vector: shrunk back to inline storage (len %d)", v.n)
		return nil
	default:
		buf, err := v.policy.Allocate(v.n)
		if err != nil {
			return err
		}
		v.relocate(buf)
		T().Debugf("small vector: shrunk heap capacity to %d", v.n)
		return nil
	}
}

// PushBack appends an element, growing the capacity if necessary.
func (v *SmallVector[T]) PushBack(x T) error {
	if err := v.ensure(1); err != nil {
		return err
	}
	v.policy.Construct(&v.slots()[v.n], x)
	v.n++
	return nil
}

// PopBack removes the last element. The container must not be empty.
func (v *SmallVector[T]) PopBack() {
	assert(v.n > 0, "flexvec: pop from empty container")
	v.n--
	v.policy.Destroy(&v.slots()[v.n])
}

// Clear destroys all elements. The capacity and storage state are
// unchanged; use ShrinkToFit to drop a heap buffer.
func (v *SmallVector[T]) Clear() {
	slots := v.slots()
	for i := 0; i < v.n; i++ {
		v.policy.Destroy(&slots[i])
	}
	v.n = 0
}

// Resize changes the length to size. Shrinking destroys the trailing
// elements and never reduces capacity; growing reserves capacity first and
// appends zero-valued elements.
func (v *SmallVector[T]) Resize(size int) error {
	var fill T
	return v.ResizeFill(size, fill)
}

// ResizeFill is Resize with an explicit fill value for appended elements.
func (v *SmallVector[T]) ResizeFill(size int, fill T) error {
	assert(size >= 0, "flexvec: negative resize")
	if size < v.n {
		slots := v.slots()
		for i := size; i < v.n; i++ {
			v.policy.Destroy(&slots[i])
		}
	} else if size > v.n {
		if err := v.Reserve(size); err != nil {
			return err
		}
		slots := v.slots()
		for i := v.n; i < size; i++ {
			v.policy.Construct(&slots[i], fill)
		}
	}
	v.n = size
	return nil
}

// Insert inserts values immediately before index and returns the index of
// the first inserted element.
//
// The insertion point is an offset from the start, so it stays valid
// across the reallocation that a capacity overflow triggers. Space is then
// made by move-constructing the elements of [index, Len()) into their
// shifted slots back-to-front.
func (v *SmallVector[T]) Insert(index int, values ...T) (int, error) {
	assert(index >= 0 && index <= v.n, "flexvec: insert position out of range")
	k := len(values)
	if k == 0 {
		return index, nil
	}
	if err := v.ensure(k); err != nil {
		return 0, err
	}
	v.shiftRight(index, k)
	slots := v.slots()
	for j, x := range values {
		v.policy.Construct(&slots[index+j], x)
	}
	v.n += k
	return index, nil
}

// InsertRepeat inserts count copies of value immediately before index and
// returns the index of the first inserted element.
func (v *SmallVector[T]) InsertRepeat(index, count int, value T) (int, error) {
	assert(index >= 0 && index <= v.n, "flexvec: insert position out of range")
	assert(count >= 0, "flexvec: negative repeat count")
	if count == 0 {
		return index, nil
	}
	if err := v.ensure(count); err != nil {
		return 0, err
	}
	v.shiftRight(index, count)
	slots := v.slots()
	for j := 0; j < count; j++ {
		v.policy.Construct(&slots[index+j], value)
	}
	v.n += count
	return index, nil
}

// InsertSeq inserts the elements yielded by seq immediately before index
// and returns the index of the first inserted element.
func (v *SmallVector[T]) InsertSeq(index int, seq iter.Seq[T]) (int, error) {
	var values []T
	for x := range seq {
		values = append(values, x)
	}
	return v.Insert(index, values...)
}

// shiftRight opens k raw slots at index by move-constructing each element
// of [index, n) into its destination, last element first.
func (v *SmallVector[T]) shiftRight(index, k int) {
	slots := v.slots()
	for j := v.n - 1; j >= index; j-- {
		v.policy.Construct(&slots[j+k], slots[j])
		v.policy.Destroy(&slots[j])
	}
}

// Erase removes the element at index and returns the index of the element
// that followed it.
func (v *SmallVector[T]) Erase(index int) int {
	assert(index >= 0 && index < v.n, "flexvec: erase position out of range")
	return v.EraseRange(index, index+1)
}

// EraseRange removes the elements in [first, last) and returns the index
// of the element that followed the removed range. Capacity is unchanged.
func (v *SmallVector[T]) EraseRange(first, last int) int {
	assert(first >= 0 && first <= last && last <= v.n, "flexvec: erase range out of range")
	k := last - first
	if k == 0 {
		return first
	}
	slots := v.slots()
	copy(slots[first:], slots[last:v.n])
	for i := v.n - k; i < v.n; i++ {
		v.policy.Destroy(&slots[i])
	}
	v.n -= k
	return first
}

// Swap is intentionally not implemented: the inline buffers would have to
// be exchanged element by element, which is wasteful; move the containers
// instead. Calling Swap panics with ErrUnimplemented.
func (v *SmallVector[T]) Swap(other *SmallVector[T]) {
	panic(ErrUnimplemented)
}

// Release destroys all elements and returns both buffers to the
// allocation policy. The container must not be used afterwards.
func (v *SmallVector[T]) Release() {
	v.Clear()
	if v.heap != nil {
		v.policy.Deallocate(v.heap)
		v.heap = nil
	}
	if v.inline != nil {
		v.policy.Deallocate(v.inline)
		v.inline = nil
	}
}

func (v *SmallVector[T]) String() string {
	return formatElements(v.slots()[:v.n])
}
