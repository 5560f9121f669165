package flexvec

import "github.com/npillmayer/flexvec/alloc"

// Option configures a container at construction time. Configuration is
// fixed per instance and cannot change afterwards.
type Option[T any] func(*config[T])

type config[T any] struct {
	policy alloc.Policy[T]
}

// WithAllocator sets the allocation policy for a container. The default
// is alloc.Heap.
func WithAllocator[T any](p alloc.Policy[T]) Option[T] {
	return func(cfg *config[T]) {
		if p != nil {
			cfg.policy = p
		}
	}
}

func makeConfig[T any](opts []Option[T]) config[T] {
	cfg := config[T]{policy: alloc.Heap[T]{}}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
