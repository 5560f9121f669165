/*
Package flexvec implements a small family of resizable-sequence containers,
each trading off memory layout and safety differently from a plain Go slice.

Containers

FixedVector has a capacity fixed at construction and performs exactly one
allocation in its whole lifetime. Exceeding the capacity is a precondition
violation, not a recoverable error; callers must size the container
adequately.

SmallVector owns an inline buffer for its first N elements and spills to a
separately allocated heap buffer only when N is exceeded. Capacity grows
geometrically (doubling), which amortizes reallocation cost to O(1) per
append. ShrinkToFit moves elements back into the inline buffer when they
fit again.

CheckedVector wraps the conventional growable array (a plain Go slice with
append semantics) and augments every access and every size-changing
operation with provenance tracking: the call site of the most recent
construction and of the most recent size change are recorded, and an
out-of-bounds access produces a detailed diagnostic before terminating the
process. It trades recoverability for maximally actionable debugging
information and is intended for development builds.

Element lifecycle

All three containers manage element lifetimes explicitly through an
allocation policy (package alloc): slots in [0, Len()) are live, slots
beyond are raw and never exposed. Every live slot is destroyed exactly
once, either by an erasing operation or by the container's Release. This
discipline is observable: run a container against alloc.Counting and the
construct/destroy tallies balance.

None of the containers synchronize internally; sharing an instance across
goroutines without external synchronization is out of contract. Any
operation that relocates storage invalidates slices previously obtained
from Data().

# Status

This is a very early draft.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the conditions of the
3-Clause BSD License are met.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED
TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR
PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR
CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL,
EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT LIMITED TO,
PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE, DATA, OR
PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY THEORY OF
LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT (INCLUDING
NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

*/
package flexvec

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to a global core-tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
