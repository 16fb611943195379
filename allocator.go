package json

import "sync/atomic"

// Allocator is a capability object: two allocators are Equal iff memory
// obtained from one may be released through the other. Every container in
// this package records the allocator it was constructed with.
//
// Go has no explicit deallocation, so Deallocate is a bookkeeping hook
// rather than a free() call — it exists so an Allocator implementation can
// track outstanding allocations. (NullAllocator simulates out-of-memory
// conditions in tests by failing every Allocate call, without touching the
// real heap; its Deallocate is a no-op.)
type Allocator interface {
	// Allocate returns a zeroed byte slice of length n, or an error if the
	// allocator refuses the request.
	Allocate(n int) ([]byte, error)
	// Deallocate releases a slice previously returned by Allocate. Callers
	// pass a slice that starts at the same element as the one Allocate
	// returned, though its length may be shorter; implementations that
	// don't track allocations may treat this as a no-op.
	Deallocate(b []byte)
	// Equal reports whether other is the same capability as this
	// allocator for the purposes of the cross-allocator move policy in
	// spec.md §3.
	Equal(other Allocator) bool
}

// systemAllocator delegates to the Go runtime heap. It never fails.
type systemAllocator struct{}

func (systemAllocator) Allocate(n int) ([]byte, error) { return make([]byte, n), nil }
func (systemAllocator) Deallocate([]byte)              {}
func (systemAllocator) Equal(other Allocator) bool {
	_, ok := other.(systemAllocator)
	return ok
}

// SystemAllocator is the built-in allocator backed by the Go heap.
var SystemAllocator Allocator = systemAllocator{}

// nullAllocator fails every request. Used to exercise OOM handling paths
// without exhausting real memory.
type nullAllocator struct{}

func (nullAllocator) Allocate(n int) ([]byte, error) { return nil, ErrNotEnoughMemory }
func (nullAllocator) Deallocate([]byte)              {}
func (nullAllocator) Equal(other Allocator) bool {
	_, ok := other.(nullAllocator)
	return ok
}

// NullAllocator always fails allocation with ErrNotEnoughMemory.
var NullAllocator Allocator = nullAllocator{}

var defaultAllocator atomic.Pointer[Allocator]

func init() {
	var a Allocator = SystemAllocator
	defaultAllocator.Store(&a)
}

// DefaultAllocator returns the process-wide default allocator. Reads use a
// sequentially consistent atomic load, matching spec.md §5.
func DefaultAllocator() Allocator {
	return *defaultAllocator.Load()
}

// SetDefaultAllocator atomically swaps the process-wide default allocator
// and returns the previous one so callers can restore it.
func SetDefaultAllocator(a Allocator) Allocator {
	if a == nil {
		a = SystemAllocator
	}
	prev := defaultAllocator.Swap(&a)
	return *prev
}
