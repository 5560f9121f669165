package alloc

import "fmt"

// Pool wraps an inner policy and retains deallocated buffers on a freelist
// for reuse. Allocate is satisfied from the freelist when a retained buffer
// of sufficient capacity exists, choosing the best-fitting (smallest
// adequate) one. At most poolSize buffers are retained; surplus buffers go
// back to the inner policy.
//
// Retained buffers are zeroed before reuse, so callers see raw slots just
// as they would from a fresh allocation.
type Pool[T any] struct {
	inner    Policy[T]
	poolSize int
	freelist [][]T
	Hits     int // allocations served from the freelist
	Misses   int // allocations passed through to the inner policy
}

// NewPool wraps inner with a freelist of at most poolSize buffers,
// defaulting to Heap when inner is nil.
func NewPool[T any](inner Policy[T], poolSize int) *Pool[T] {
	if inner == nil {
		inner = Heap[T]{}
	}
	if poolSize < 0 {
		poolSize = 0
	}
	return &Pool[T]{inner: inner, poolSize: poolSize}
}

// Retained returns the number of buffers currently on the freelist.
func (p *Pool[T]) Retained() int {
	return len(p.freelist)
}

func (p *Pool[T]) Allocate(n int) ([]T, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, n)
	}
	if buf := p.selectBuffer(n); buf != nil {
		p.Hits++
		return buf[:n], nil
	}
	buf, err := p.inner.Allocate(n)
	if err != nil {
		return nil, err
	}
	p.Misses++
	return buf, nil
}

// selectBuffer removes and returns the best-fitting retained buffer with
// capacity >= n, or nil if none qualifies.
func (p *Pool[T]) selectBuffer(n int) []T {
	selected := -1
	for i, buf := range p.freelist {
		if cap(buf) >= n && (selected < 0 || cap(buf) < cap(p.freelist[selected])) {
			selected = i
		}
	}
	if selected < 0 {
		return nil
	}
	buf := p.freelist[selected]
	// fast-remove
	last := len(p.freelist) - 1
	p.freelist[selected] = p.freelist[last]
	p.freelist[last] = nil
	p.freelist = p.freelist[:last]
	return buf
}

func (p *Pool[T]) Deallocate(buf []T) {
	if cap(buf) > 0 && len(p.freelist) < p.poolSize {
		buf = buf[:cap(buf)]
		clear(buf)
		p.freelist = append(p.freelist, buf)
		return
	}
	p.inner.Deallocate(buf)
}

// Drain releases all retained buffers to the inner policy.
func (p *Pool[T]) Drain() {
	for _, buf := range p.freelist {
		p.inner.Deallocate(buf)
	}
	p.freelist = nil
}

func (p *Pool[T]) Construct(slot *T, v T) {
	p.inner.Construct(slot, v)
}

func (p *Pool[T]) Destroy(slot *T) {
	p.inner.Destroy(slot)
}
