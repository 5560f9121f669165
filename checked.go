package flexvec

/*
BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the License file in the repository root.

*/

import (
	"fmt"
	"io"
	"iter"
	"math"
	"os"
	"slices"
	"strings"

	"github.com/npillmayer/flexvec/alloc"
)

// Overridable process-termination hook and diagnostic sink for the fatal
// out-of-bounds path. Tests replace these to intercept the diagnostic.
var (
	checkedExit       func(code int) = os.Exit
	checkedDiagWriter io.Writer      = os.Stderr
)

// sizeChange records the most recent size-changing operation.
type sizeChange struct {
	from, to int
	site     Site
}

// CheckedVector wraps the conventional growable array — a plain Go slice
// with append semantics, delegated rather than reimplemented — and
// augments every access and every size-changing operation with provenance
// tracking.
//
// Recorded provenance: the call site of the most recent construction or
// initialization, and the call site plus before/after sizes of the most
// recent size-changing operation. Size changes applied through the raw
// Data() slice (e.g. slices.Delete) are not tracked; this gap is part of
// the contract.
//
// An access with index < 0 or index >= Len() emits a diagnostic carrying
// the offending index, the current size, and all recorded provenance, then
// terminates the process. This path is deliberately fatal and
// non-recoverable; use At for a catchable bounds check.
type CheckedVector[T any] struct {
	policy     alloc.Policy[T]
	elems      []T
	init       Site
	lastChange *sizeChange
}

// NewChecked creates an empty CheckedVector. The construction call site is
// recorded for diagnostics.
func NewChecked[T any](opts ...Option[T]) *CheckedVector[T] {
	cfg := makeConfig(opts)
	return &CheckedVector[T]{policy: cfg.policy, init: callerSite(1)}
}

// NewCheckedSize creates a CheckedVector holding size zero-valued elements.
func NewCheckedSize[T any](size int, opts ...Option[T]) *CheckedVector[T] {
	var fill T
	v := newCheckedFill(size, fill, opts)
	v.init = callerSite(1)
	return v
}

// NewCheckedFill creates a CheckedVector holding size copies of fill.
func NewCheckedFill[T any](size int, fill T, opts ...Option[T]) *CheckedVector[T] {
	v := newCheckedFill(size, fill, opts)
	v.init = callerSite(1)
	return v
}

func newCheckedFill[T any](size int, fill T, opts []Option[T]) *CheckedVector[T] {
	assert(size >= 0, "flexvec: negative initial size")
	cfg := makeConfig(opts)
	v := &CheckedVector[T]{policy: cfg.policy, elems: make([]T, size)}
	for i := 0; i < size; i++ {
		v.policy.Construct(&v.elems[i], fill)
	}
	return v
}

// CheckedOf creates a CheckedVector from a literal list of values.
func CheckedOf[T any](values ...T) *CheckedVector[T] {
	v := &CheckedVector[T]{policy: alloc.Heap[T]{}, init: callerSite(1)}
	v.elems = make([]T, len(values))
	for i, x := range values {
		v.policy.Construct(&v.elems[i], x)
	}
	return v
}

// NewCheckedFromSeq creates a CheckedVector from an element sequence.
func NewCheckedFromSeq[T any](seq iter.Seq[T], opts ...Option[T]) *CheckedVector[T] {
	cfg := makeConfig(opts)
	v := &CheckedVector[T]{policy: cfg.policy, init: callerSite(1)}
	for x := range seq {
		var zero T
		v.elems = append(v.elems, zero)
		v.policy.Construct(&v.elems[len(v.elems)-1], x)
	}
	return v
}

// Clone creates an independent copy. The clone's construction site is the
// call site of Clone itself.
func (v *CheckedVector[T]) Clone() *CheckedVector[T] {
	clone := &CheckedVector[T]{
		policy: v.policy,
		elems:  make([]T, len(v.elems)),
		init:   callerSite(1),
	}
	for i := range v.elems {
		clone.policy.Construct(&clone.elems[i], v.elems[i])
	}
	return clone
}

// Take transfers ownership of the underlying array into a fresh
// CheckedVector and leaves the source empty. The destination records the
// call site of Take as its construction site; the source's provenance is
// untouched apart from the emptying itself.
func (v *CheckedVector[T]) Take() *CheckedVector[T] {
	dst := &CheckedVector[T]{policy: v.policy, elems: v.elems, init: callerSite(1)}
	v.elems = nil
	return dst
}

// Len returns the current number of elements.
func (v *CheckedVector[T]) Len() int { return len(v.elems) }

// Cap returns the current capacity of the underlying array.
func (v *CheckedVector[T]) Cap() int { return cap(v.elems) }

// MaxLen returns the maximum number of elements the index type can address.
func (v *CheckedVector[T]) MaxLen() int { return math.MaxInt }

// IsEmpty reports whether the container holds no elements.
func (v *CheckedVector[T]) IsEmpty() bool { return len(v.elems) == 0 }

// boundsCheck validates index against the current size. On violation it
// emits the full diagnostic — offending index and size, the access site,
// the last construction site, and the last size change — and terminates
// the process.
func (v *CheckedVector[E]) boundsCheck(index int, site Site) {
	if index >= 0 && index < len(v.elems) {
		return
	}
	var report strings.Builder
	fmt.Fprintf(&report, "%s: index out of bounds; %d for a vector of size %d\n",
		site, index, len(v.elems))
	fmt.Fprintf(&report, "help: the vector was most recently constructed at %s\n", v.init)
	if v.lastChange != nil {
		fmt.Fprintf(&report, "help: the most recent size change was from %d to %d at %s\n",
			v.lastChange.from, v.lastChange.to, v.lastChange.site)
		fmt.Fprintf(&report, "(size changes applied through the raw data slice are not tracked)\n")
	} else {
		fmt.Fprintf(&report, "note: no size changes recorded since the most recent construction/initialization\n")
	}
	T().Errorf("checked vector: %s", report.String())
	fmt.Fprint(checkedDiagWriter, report.String())
	checkedExit(1)
}

func (v *CheckedVector[T]) recordChange(from, to int, site Site) {
	v.lastChange = &sizeChange{from: from, to: to, site: site}
}

// Get returns the element at index. An out-of-bounds index triggers the
// fatal diagnostic path.
func (v *CheckedVector[T]) Get(index int) T {
	v.boundsCheck(index, callerSite(1))
	return v.elems[index]
}

// At returns the element at index, or ErrIndexOutOfBounds carrying the
// offending index and the current size. Unlike Get, this is the
// catchable, non-fatal bounds check.
func (v *CheckedVector[T]) At(index int) (T, error) {
	if index < 0 || index >= len(v.elems) {
		var zero T
		return zero, fmt.Errorf("%w: index %d, size %d", ErrIndexOutOfBounds, index, len(v.elems))
	}
	return v.elems[index], nil
}

// Ref returns a pointer to the element at index for in-place mutation. An
// out-of-bounds index triggers the fatal diagnostic path.
func (v *CheckedVector[T]) Ref(index int) *T {
	v.boundsCheck(index, callerSite(1))
	return &v.elems[index]
}

// Front returns the first element; on an empty container the fatal
// diagnostic path reports index 0 against size 0.
func (v *CheckedVector[T]) Front() T {
	v.boundsCheck(0, callerSite(1))
	return v.elems[0]
}

// Back returns the last element; on an empty container the fatal
// diagnostic path reports index -1 against size 0.
func (v *CheckedVector[T]) Back() T {
	v.boundsCheck(len(v.elems)-1, callerSite(1))
	return v.elems[len(v.elems)-1]
}

// Data returns the live elements as a slice view, or nil when empty.
// Mutating the view's length through free functions bypasses provenance
// tracking.
func (v *CheckedVector[T]) Data() []T {
	if len(v.elems) == 0 {
		return nil
	}
	return v.elems
}

// All iterates over index/element pairs in forward order.
func (v *CheckedVector[T]) All() iter.Seq2[int, T] {
	return slices.All(v.elems)
}

// Backward iterates over index/element pairs in reverse order.
func (v *CheckedVector[T]) Backward() iter.Seq2[int, T] {
	return slices.Backward(v.elems)
}

// Reserve grows the capacity of the underlying array to at least min.
// Capacity changes are not size changes and record no provenance.
func (v *CheckedVector[T]) Reserve(min int) {
	if min > cap(v.elems) {
		v.elems = slices.Grow(v.elems, min-len(v.elems))
	}
}

// PushBack appends an element, growing the underlying array as needed.
func (v *CheckedVector[T]) PushBack(x T) {
	site := callerSite(1)
	old := len(v.elems)
	var zero T
	v.elems = append(v.elems, zero)
	v.policy.Construct(&v.elems[old], x)
	v.recordChange(old, len(v.elems), site)
}

// PopBack removes the last element. The container must not be empty.
func (v *CheckedVector[T]) PopBack() {
	site := callerSite(1)
	assert(len(v.elems) > 0, "flexvec: pop from empty container")
	old := len(v.elems)
	v.policy.Destroy(&v.elems[old-1])
	v.elems = v.elems[:old-1]
	v.recordChange(old, len(v.elems), site)
}

// Insert inserts values immediately before index and returns the index of
// the first inserted element.
func (v *CheckedVector[T]) Insert(index int, values ...T) int {
	site := callerSite(1)
	assert(index >= 0 && index <= len(v.elems), "flexvec: insert position out of range")
	old := len(v.elems)
	k := len(values)
	if k == 0 {
		return index
	}
	v.elems = slices.Grow(v.elems, k)[:old+k]
	copy(v.elems[index+k:], v.elems[index:old])
	for j, x := range values {
		v.policy.Construct(&v.elems[index+j], x)
	}
	v.recordChange(old, len(v.elems), site)
	return index
}

// InsertRepeat inserts count copies of value immediately before index and
// returns the index of the first inserted element.
func (v *CheckedVector[T]) InsertRepeat(index, count int, value T) int {
	site := callerSite(1)
	assert(index >= 0 && index <= len(v.elems), "flexvec: insert position out of range")
	assert(count >= 0, "flexvec: negative repeat count")
	old := len(v.elems)
	if count == 0 {
		return index
	}
	v.elems = slices.Grow(v.elems, count)[:old+count]
	copy(v.elems[index+count:], v.elems[index:old])
	for j := 0; j < count; j++ {
		v.policy.Construct(&v.elems[index+j], value)
	}
	v.recordChange(old, len(v.elems), site)
	return index
}

// Erase removes the element at index and returns the index of the element
// that followed it.
func (v *CheckedVector[T]) Erase(index int) int {
	site := callerSite(1)
	assert(index >= 0 && index < len(v.elems), "flexvec: erase position out of range")
	pos := v.eraseRange(index, index+1, site)
	return pos
}

// EraseRange removes the elements in [first, last) and returns the index
// of the element that followed the removed range.
func (v *CheckedVector[T]) EraseRange(first, last int) int {
	site := callerSite(1)
	assert(first >= 0 && first <= last && last <= len(v.elems), "flexvec: erase range out of range")
	if first == last {
		return first
	}
	return v.eraseRange(first, last, site)
}

func (v *CheckedVector[T]) eraseRange(first, last int, site Site) int {
	old := len(v.elems)
	k := last - first
	copy(v.elems[first:], v.elems[last:])
	for i := old - k; i < old; i++ {
		v.policy.Destroy(&v.elems[i])
	}
	v.elems = v.elems[:old-k]
	v.recordChange(old, len(v.elems), site)
	return first
}

// Resize changes the length to size; appended elements are zero-valued.
func (v *CheckedVector[T]) Resize(size int) {
	var fill T
	v.resizeFill(size, fill, callerSite(1))
}

// ResizeFill is Resize with an explicit fill value for appended elements.
func (v *CheckedVector[T]) ResizeFill(size int, fill T) {
	v.resizeFill(size, fill, callerSite(1))
}

func (v *CheckedVector[T]) resizeFill(size int, fill T, site Site) {
	assert(size >= 0, "flexvec: negative resize")
	old := len(v.elems)
	if size < old {
		for i := size; i < old; i++ {
			v.policy.Destroy(&v.elems[i])
		}
		v.elems = v.elems[:size]
	} else if size > old {
		v.elems = slices.Grow(v.elems, size-old)[:size]
		for i := old; i < size; i++ {
			v.policy.Construct(&v.elems[i], fill)
		}
	}
	v.recordChange(old, len(v.elems), site)
}

// Assign replaces the contents with the given values. Assignment counts as
// an initialization: the construction site is updated as well.
func (v *CheckedVector[T]) Assign(values ...T) {
	site := callerSite(1)
	v.assign(values, site)
}

// AssignRepeat replaces the contents with count copies of value.
func (v *CheckedVector[T]) AssignRepeat(count int, value T) {
	site := callerSite(1)
	assert(count >= 0, "flexvec: negative repeat count")
	values := make([]T, count)
	for i := range values {
		values[i] = value
	}
	v.assign(values, site)
}

func (v *CheckedVector[T]) assign(values []T, site Site) {
	old := len(v.elems)
	for i := range v.elems {
		v.policy.Destroy(&v.elems[i])
	}
	v.elems = v.elems[:0]
	v.elems = slices.Grow(v.elems, len(values))[:len(values)]
	for i, x := range values {
		v.policy.Construct(&v.elems[i], x)
	}
	v.init = site
	v.recordChange(old, len(v.elems), site)
}

// Clear destroys all elements.
func (v *CheckedVector[T]) Clear() {
	site := callerSite(1)
	old := len(v.elems)
	for i := range v.elems {
		v.policy.Destroy(&v.elems[i])
	}
	v.elems = v.elems[:0]
	v.recordChange(old, len(v.elems), site)
}

// Swap exchanges the contents of two CheckedVectors and records the size
// change on both sides.
func (v *CheckedVector[T]) Swap(other *CheckedVector[T]) {
	site := callerSite(1)
	vOld, oOld := len(v.elems), len(other.elems)
	v.elems, other.elems = other.elems, v.elems
	v.recordChange(vOld, len(v.elems), site)
	other.recordChange(oOld, len(other.elems), site)
}

// LastConstructedAt returns the recorded construction site.
func (v *CheckedVector[T]) LastConstructedAt() Site {
	return v.init
}

// LastSizeChange returns the before/after sizes and site of the most
// recent size-changing operation, or ok == false if none was recorded.
func (v *CheckedVector[T]) LastSizeChange() (from, to int, site Site, ok bool) {
	if v.lastChange == nil {
		return 0, 0, Site{}, false
	}
	return v.lastChange.from, v.lastChange.to, v.lastChange.site, true
}

func (v *CheckedVector[T]) String() string {
	return formatElements(v.elems)
}
