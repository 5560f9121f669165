package alloc

// Counting wraps an inner policy and tallies every policy call. It is the
// intended tool for auditing element lifecycles: after a container has been
// cleared and released, constructs must equal destroys and allocations must
// equal deallocations, or the container double-destroyed or leaked.
type Counting[T any] struct {
	inner      Policy[T]
	Allocs     int // calls to Allocate that succeeded
	Deallocs   int // calls to Deallocate
	Constructs int
	Destroys   int
	Slots      int // total slots handed out by Allocate
}

// NewCounting wraps inner, defaulting to Heap when inner is nil.
func NewCounting[T any](inner Policy[T]) *Counting[T] {
	if inner == nil {
		inner = Heap[T]{}
	}
	return &Counting[T]{inner: inner}
}

func (c *Counting[T]) Allocate(n int) ([]T, error) {
	buf, err := c.inner.Allocate(n)
	if err != nil {
		return nil, err
	}
	c.Allocs++
	c.Slots += n
	return buf, nil
}

func (c *Counting[T]) Deallocate(buf []T) {
	c.Deallocs++
	c.inner.Deallocate(buf)
}

func (c *Counting[T]) Construct(slot *T, v T) {
	c.Constructs++
	c.inner.Construct(slot, v)
}

func (c *Counting[T]) Destroy(slot *T) {
	c.Destroys++
	c.inner.Destroy(slot)
}

// Live returns the number of currently live elements according to the tally.
func (c *Counting[T]) Live() int {
	return c.Constructs - c.Destroys
}

// Balanced reports whether every construct was matched by a destroy and
// every allocation by a deallocation.
func (c *Counting[T]) Balanced() bool {
	return c.Constructs == c.Destroys && c.Allocs == c.Deallocs
}
