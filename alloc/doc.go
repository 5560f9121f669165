/*
Package alloc defines the allocation policy used by the flexvec containers.

A policy is responsible for obtaining and releasing buffers of element
slots, and for the lifecycle of single elements within such buffers. A
container never reads or writes a slot unless it is live (constructed
through the policy) or about to be constructed. Slots beyond a
container's length hold the zero value of T, but are treated as raw
memory: they are never handed out, compared, or destroyed.

The zero-effort choice is Heap, which backs buffers with plain Go
allocations and leaves reclamation to the garbage collector. The other
policies in this package wrap an inner policy and add bookkeeping:
Counting tallies constructs/destroys for lifecycle auditing, Budget
injects allocation failure once a slot budget is spent, and Pool keeps
returned buffers on a freelist for reuse.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package alloc
