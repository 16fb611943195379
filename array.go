package json

// Array is an ordered, growable sequence of Values (spec.md §3, §4.2).
type Array struct {
	alloc Allocator
	items []Value
}

// NewArray constructs an empty Array using alloc, or DefaultAllocator if
// alloc is nil.
func NewArray(alloc Allocator) *Array {
	if alloc == nil {
		alloc = DefaultAllocator()
	}
	return &Array{alloc: alloc}
}

// Allocator returns the allocator this Array was constructed with.
func (a *Array) Allocator() Allocator { return a.alloc }

// Size returns the number of elements.
func (a *Array) Size() int { return len(a.items) }

// Capacity returns the number of elements reserved.
func (a *Array) Capacity() int { return cap(a.items) }

// Empty reports whether Size() == 0.
func (a *Array) Empty() bool { return len(a.items) == 0 }

// Reserve ensures capacity for at least n elements, never shrinking.
// Growth policy matches String: max(n, capacity*2), exactly n from zero.
func (a *Array) Reserve(n int) error {
	if n <= cap(a.items) {
		return nil
	}
	newCap := growCapacity(cap(a.items), n)
	if _, err := a.alloc.Allocate(0); err != nil {
		// The allocator is consulted so a failing allocator (e.g.
		// NullAllocator) can reject growth without a real heap probe.
		return newError(NotEnoughMemory, 0)
	}
	fresh := make([]Value, len(a.items), newCap)
	copy(fresh, a.items)
	a.items = fresh
	return nil
}

// Clear removes all elements, keeping capacity.
func (a *Array) Clear() {
	for i := range a.items {
		a.items[i].release()
	}
	a.items = a.items[:0]
}

// ShrinkToFit releases unused capacity.
func (a *Array) ShrinkToFit() {
	if len(a.items) == cap(a.items) {
		return
	}
	fresh := make([]Value, len(a.items))
	copy(fresh, a.items)
	a.items = fresh
}

// Resize grows or shrinks the array to n elements, filling new slots with
// copies of proto (or Null if proto is nil).
func (a *Array) Resize(n int, proto *Value) error {
	if n < 0 {
		panic("json: negative Array size")
	}
	if n <= len(a.items) {
		for i := n; i < len(a.items); i++ {
			a.items[i].release()
		}
		a.items = a.items[:n]
		return nil
	}
	if err := a.Reserve(n); err != nil {
		return err
	}
	old := len(a.items)
	a.items = a.items[:n]
	for i := old; i < n; i++ {
		if proto != nil {
			v, err := proto.Clone(a.alloc)
			if err != nil {
				a.items = a.items[:i]
				return err
			}
			a.items[i] = *v
		} else {
			a.items[i] = *NewNull(a.alloc)
		}
	}
	return nil
}

// At returns a pointer to the element at i. Panics if out of range, as
// with a plain Go slice index.
func (a *Array) At(i int) *Value { return &a.items[i] }

// Front returns a pointer to the first element.
func (a *Array) Front() *Value { return &a.items[0] }

// Back returns a pointer to the last element.
func (a *Array) Back() *Value { return &a.items[len(a.items)-1] }

// Values exposes the live element range. Invalidated by any mutation that
// may reallocate (spec.md §4.2).
func (a *Array) Values() []Value { return a.items }

// PushBack appends a copy of v.
func (a *Array) PushBack(v *Value) error {
	clone, err := v.Clone(a.alloc)
	if err != nil {
		return err
	}
	return a.pushOwned(*clone)
}

// PushBackMove appends v, taking ownership per the move policy (deep copy
// if allocators differ).
func (a *Array) PushBackMove(v *Value) error {
	moved, err := v.CloneOrMove(a.alloc)
	if err != nil {
		return err
	}
	return a.pushOwned(*moved)
}

func (a *Array) pushOwned(v Value) error {
	if err := a.Reserve(len(a.items) + 1); err != nil {
		return err
	}
	a.items = append(a.items, v)
	return nil
}

// emplaceBack appends a zero-initialized slot (Null) and returns a pointer
// to it for in-place construction, mirroring json_array_emplace_back.
func (a *Array) emplaceBack() (*Value, error) {
	if err := a.Reserve(len(a.items) + 1); err != nil {
		return nil, err
	}
	a.items = append(a.items, *NewNull(a.alloc))
	return &a.items[len(a.items)-1], nil
}

// PopBack releases and removes the last element.
func (a *Array) PopBack() {
	a.items[len(a.items)-1].release()
	a.items = a.items[:len(a.items)-1]
}

// Insert inserts a copy of v at index pos.
func (a *Array) Insert(pos int, v *Value) error {
	if pos < 0 || pos > len(a.items) {
		panic("json: Array insert position out of range")
	}
	clone, err := v.Clone(a.alloc)
	if err != nil {
		return err
	}
	if err := a.Reserve(len(a.items) + 1); err != nil {
		return err
	}
	a.items = append(a.items, Value{})
	copy(a.items[pos+1:], a.items[pos:len(a.items)-1])
	a.items[pos] = *clone
	return nil
}

// Erase releases and removes the element range [from, to). Invalidates
// pointers at or after from.
func (a *Array) Erase(from, to int) {
	if from < 0 || to > len(a.items) || from > to {
		panic("json: Array erase range out of bounds")
	}
	for i := from; i < to; i++ {
		a.items[i].release()
	}
	n := copy(a.items[from:], a.items[to:])
	a.items = a.items[:from+n]
}

// Clone returns a deep copy of a using alloc, or a's own allocator if nil.
func (a *Array) Clone(alloc Allocator) (*Array, error) {
	if alloc == nil {
		alloc = a.alloc
	}
	out := NewArray(alloc)
	if err := out.Reserve(len(a.items)); err != nil {
		return nil, err
	}
	for i := range a.items {
		if err := out.PushBack(&a.items[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// CloneOrMove implements the cross-allocator move policy from spec.md §3.
func (a *Array) CloneOrMove(alloc Allocator) (*Array, error) {
	if alloc == nil || alloc.Equal(a.alloc) {
		moved := &Array{alloc: a.alloc, items: a.items}
		a.items = nil
		return moved, nil
	}
	return a.Clone(alloc)
}
