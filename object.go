package json

import "github.com/edirooss/libjson/internal/diag"

const objectMinBuckets = 8
const objectMaxLoadFactorNum = 3 // load factor target <= 3/4
const objectMaxLoadFactorDen = 4

// Object is an insertion-ordered hash map from String keys to Values
// (spec.md §3, §4.3): a power-of-two bucket array of singly linked chains
// for O(1) lookup, plus a global doubly linked chain threading every entry
// in insertion order so iteration order is insertion order, not hash
// order — the deliberate strengthening documented in spec.md §9.
type Object struct {
	alloc   Allocator
	buckets []*entry // nil when empty; len is always a power of two or 0
	head    *entry
	tail    *entry
	size    int
}

// NewObject constructs an empty Object using alloc, or DefaultAllocator if
// alloc is nil.
func NewObject(alloc Allocator) *Object {
	if alloc == nil {
		alloc = DefaultAllocator()
	}
	return &Object{alloc: alloc}
}

// Allocator returns the allocator this Object was constructed with.
func (o *Object) Allocator() Allocator { return o.alloc }

// Size returns the number of entries.
func (o *Object) Size() int { return o.size }

// Empty reports whether Size() == 0.
func (o *Object) Empty() bool { return o.size == 0 }

// Clear removes all entries, keeping the bucket array allocated.
func (o *Object) Clear() {
	for e := o.head; e != nil; e = e.orderNext {
		if !e.key.isSentinel() {
			e.key.alloc.Deallocate(e.key.data)
		}
		e.value.release()
	}
	for i := range o.buckets {
		o.buckets[i] = nil
	}
	o.head, o.tail = nil, nil
	o.size = 0
}

func (o *Object) bucketIndex(key []byte) int {
	if len(o.buckets) == 0 {
		return -1
	}
	return int(hashBytes(key) & uint64(len(o.buckets)-1))
}

func (o *Object) findEntry(key []byte) *entry {
	idx := o.bucketIndex(key)
	if idx < 0 {
		return nil
	}
	for e := o.buckets[idx]; e != nil; e = e.bucketNext {
		if compareBytes(e.key.Bytes(), key) == 0 {
			return e
		}
	}
	return nil
}

// Contains reports whether key is present.
func (o *Object) Contains(key []byte) bool { return o.findEntry(key) != nil }

// Find returns a pointer to the value for key and true, or (nil, false).
func (o *Object) Find(key []byte) (*Value, bool) {
	e := o.findEntry(key)
	if e == nil {
		return nil, false
	}
	return &e.value, true
}

// ObjectIter is a handle into the global insertion-order chain. The zero
// value is the end sentinel.
type ObjectIter struct{ e *entry }

// Begin returns an iterator at the first inserted entry.
func (o *Object) Begin() ObjectIter { return ObjectIter{o.head} }

// End returns the sentinel "one past the last" iterator.
func (o *Object) End() ObjectIter { return ObjectIter{nil} }

// Valid reports whether the iterator refers to a live entry.
func (it ObjectIter) Valid() bool { return it.e != nil }

// Next advances the iterator along the insertion-order chain.
func (it ObjectIter) Next() ObjectIter {
	if it.e == nil {
		return it
	}
	return ObjectIter{it.e.orderNext}
}

// Key returns the entry's key bytes. Panics if !Valid().
func (it ObjectIter) Key() []byte { return it.e.key.Bytes() }

// Value returns a pointer to the entry's value. Panics if !Valid().
func (it ObjectIter) Value() *Value { return &it.e.value }

// Each calls fn for every entry in insertion order, stopping early if fn
// returns false.
func (o *Object) Each(fn func(key []byte, v *Value) bool) {
	for e := o.head; e != nil; e = e.orderNext {
		if !fn(e.key.Bytes(), &e.value) {
			return
		}
	}
}

func (o *Object) needsRehash() bool {
	return len(o.buckets) == 0 ||
		o.size*objectMaxLoadFactorDen > len(o.buckets)*objectMaxLoadFactorNum
}

// rehash doubles the bucket count (or allocates objectMinBuckets for the
// first growth) and re-links every entry by walking the global chain in
// insertion order, which preserves that order (spec.md §4.3).
func (o *Object) rehash() error {
	newCount := len(o.buckets) * 2
	if newCount == 0 {
		newCount = objectMinBuckets
	}
	if _, err := o.alloc.Allocate(0); err != nil {
		return newError(NotEnoughMemory, 0)
	}
	newBuckets := make([]*entry, newCount)
	for e := o.head; e != nil; e = e.orderNext {
		idx := int(hashBytes(e.key.Bytes()) & uint64(newCount-1))
		e.bucketNext = newBuckets[idx]
		newBuckets[idx] = e
	}
	o.buckets = newBuckets
	diag.L().Debugw("object rehash", "buckets", newCount, "size", o.size)
	return nil
}

func (o *Object) linkTail(e *entry) {
	e.orderPrev = o.tail
	e.orderNext = nil
	if o.tail != nil {
		o.tail.orderNext = e
	} else {
		o.head = e
	}
	o.tail = e
}

func (o *Object) unlink(e *entry) {
	if e.orderPrev != nil {
		e.orderPrev.orderNext = e.orderNext
	} else {
		o.head = e.orderNext
	}
	if e.orderNext != nil {
		e.orderNext.orderPrev = e.orderPrev
	} else {
		o.tail = e.orderPrev
	}

	idx := o.bucketIndex(e.key.Bytes())
	if idx < 0 {
		return
	}
	if o.buckets[idx] == e {
		o.buckets[idx] = e.bucketNext
		return
	}
	for p := o.buckets[idx]; p != nil; p = p.bucketNext {
		if p.bucketNext == e {
			p.bucketNext = e.bucketNext
			return
		}
	}
}

// insert is the shared implementation behind InsertOrReplace and
// InsertIfAbsent: value is already owned by the caller (constructed with
// o.alloc) and is consumed on success.
func (o *Object) insert(key []byte, value Value, replace bool) (ObjectIter, bool, error) {
	if e := o.findEntry(key); e != nil {
		if replace {
			e.value.release()
			e.value = value
		} else {
			value.release()
		}
		return ObjectIter{e}, false, nil
	}

	if o.needsRehash() {
		if err := o.rehash(); err != nil {
			value.release()
			return ObjectIter{}, false, err
		}
	}

	keyCopy, err := NewStringFrom(o.alloc, key)
	if err != nil {
		value.release()
		return ObjectIter{}, false, err
	}

	e := &entry{key: keyCopy, value: value}
	idx := o.bucketIndex(key)
	e.bucketNext = o.buckets[idx]
	o.buckets[idx] = e
	o.linkTail(e)
	o.size++

	return ObjectIter{e}, true, nil
}

// InsertOrReplace inserts (key, value); if key already exists its value is
// replaced in place (its original insertion position is kept). value is
// deep-copied into this Object's allocator. Returns whether a new entry
// was created.
func (o *Object) InsertOrReplace(key []byte, value *Value) (ObjectIter, bool, error) {
	clone, err := value.Clone(o.alloc)
	if err != nil {
		return ObjectIter{}, false, err
	}
	return o.insert(key, *clone, true)
}

// InsertIfAbsent inserts (key, value) only if key is not already present.
// Returns inserted=false and leaves the existing entry untouched otherwise.
func (o *Object) InsertIfAbsent(key []byte, value *Value) (ObjectIter, bool, error) {
	clone, err := value.Clone(o.alloc)
	if err != nil {
		return ObjectIter{}, false, err
	}
	return o.insert(key, *clone, false)
}

// Erase removes key if present, reporting whether it was found. O(1)
// amortized.
func (o *Object) Erase(key []byte) bool {
	e := o.findEntry(key)
	if e == nil {
		return false
	}
	o.unlink(e)
	if !e.key.isSentinel() {
		e.key.alloc.Deallocate(e.key.data)
	}
	e.value.release()
	o.size--
	return true
}

// Clone returns a deep copy of o using alloc, or o's own allocator if nil,
// preserving insertion order.
func (o *Object) Clone(alloc Allocator) (*Object, error) {
	if alloc == nil {
		alloc = o.alloc
	}
	out := NewObject(alloc)
	for e := o.head; e != nil; e = e.orderNext {
		if _, _, err := out.InsertOrReplace(e.key.Bytes(), &e.value); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// CloneOrMove implements the cross-allocator move policy from spec.md §3.
func (o *Object) CloneOrMove(alloc Allocator) (*Object, error) {
	if alloc == nil || alloc.Equal(o.alloc) {
		moved := &Object{alloc: o.alloc, buckets: o.buckets, head: o.head, tail: o.tail, size: o.size}
		o.buckets, o.head, o.tail, o.size = nil, nil, nil, 0
		return moved, nil
	}
	return o.Clone(alloc)
}
