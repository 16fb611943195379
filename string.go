package json

// emptyStringData is the shared read-only empty-string sentinel: a single
// null byte, aliased by every String with size 0 so constructing one never
// allocates (spec.md §3).
var emptyStringData = [1]byte{0}

// String is a growable byte buffer (arbitrary bytes, not code units) with
// the invariants from spec.md §3: size <= capacity, and data[size] always
// reads as 0.
//
// data always has length size+1 with data[size] == 0; data[:cap(data)-1]
// is the usable capacity. When size == 0 and nothing has been reserved,
// data aliases the shared emptyStringData sentinel.
type String struct {
	alloc Allocator
	data  []byte // len(data) == size+1, data[size] == 0
}

// NewString constructs an empty String using alloc, or DefaultAllocator if
// alloc is nil.
func NewString(alloc Allocator) *String {
	if alloc == nil {
		alloc = DefaultAllocator()
	}
	return &String{alloc: alloc, data: emptyStringData[:1]}
}

// NewStringFrom constructs a String holding a copy of b.
func NewStringFrom(alloc Allocator, b []byte) (*String, error) {
	s := NewString(alloc)
	if err := s.Append(b); err != nil {
		return nil, err
	}
	return s, nil
}

// Allocator returns the allocator this String was constructed with.
func (s *String) Allocator() Allocator { return s.alloc }

// Size returns the number of live bytes.
func (s *String) Size() int { return len(s.data) - 1 }

// Capacity returns the number of bytes reserved, excluding the terminator.
func (s *String) Capacity() int {
	if s.isSentinel() {
		return 0
	}
	return cap(s.data) - 1
}

func (s *String) isSentinel() bool {
	return &s.data[0] == &emptyStringData[0]
}

// Bytes returns the live byte range [0, Size()). The slice is invalidated
// by any mutating call, per the iterator-invalidation rule in spec.md §4.1.
func (s *String) Bytes() []byte { return s.data[:len(s.data)-1] }

// Empty reports whether Size() == 0.
func (s *String) Empty() bool { return len(s.data) == 1 }

func growCapacity(current, requested int) int {
	if current == 0 {
		return requested
	}
	doubled := current * 2
	if doubled > requested {
		return doubled
	}
	return requested
}

// Reserve ensures capacity for at least n bytes, never shrinking. Growth
// policy: max(n, capacity*2), or exactly n from a zero capacity.
func (s *String) Reserve(n int) error {
	if n <= s.Capacity() {
		return nil
	}
	newCap := growCapacity(s.Capacity(), n)
	buf, err := s.alloc.Allocate(newCap + 1)
	if err != nil {
		return newError(NotEnoughMemory, 0)
	}
	size := s.Size()
	copy(buf, s.data[:size])
	buf[size] = 0
	if !s.isSentinel() {
		s.alloc.Deallocate(s.data)
	}
	s.data = buf[:size+1]
	return nil
}

// Clear sets size to 0, keeping capacity.
func (s *String) Clear() {
	if s.isSentinel() {
		return
	}
	s.data = s.data[:1]
	s.data[0] = 0
}

// ShrinkToFit releases unused capacity; when Size() == 0 it returns to the
// shared empty sentinel.
func (s *String) ShrinkToFit() error {
	size := s.Size()
	if size == 0 {
		if !s.isSentinel() {
			s.alloc.Deallocate(s.data)
		}
		s.data = emptyStringData[:1]
		return nil
	}
	if s.Capacity() == size {
		return nil
	}
	buf, err := s.alloc.Allocate(size + 1)
	if err != nil {
		return newError(NotEnoughMemory, 0)
	}
	copy(buf, s.data)
	if !s.isSentinel() {
		s.alloc.Deallocate(s.data)
	}
	s.data = buf[:size+1]
	return nil
}

// Resize grows or shrinks size to n, filling any newly-exposed bytes with
// fill. Maintains the null terminator.
func (s *String) Resize(n int, fill byte) error {
	if n < 0 {
		panic("json: negative String size")
	}
	if n <= s.Size() {
		s.data = s.data[:n+1]
		s.data[n] = 0
		return nil
	}
	if err := s.Reserve(n); err != nil {
		return err
	}
	old := s.Size()
	s.data = s.data[:n+1]
	for i := old; i < n; i++ {
		s.data[i] = fill
	}
	s.data[n] = 0
	return nil
}

// PushBack appends a single byte.
func (s *String) PushBack(b byte) error { return s.Append([]byte{b}) }

// Append appends b to the end of the string.
func (s *String) Append(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	if err := s.Reserve(s.Size() + len(b)); err != nil {
		return err
	}
	size := s.Size()
	s.data = s.data[:size+len(b)+1]
	copy(s.data[size:], b)
	s.data[size+len(b)] = 0
	return nil
}

// Insert inserts b at byte position pos.
func (s *String) Insert(pos int, b []byte) error {
	size := s.Size()
	if pos < 0 || pos > size {
		panic("json: String insert position out of range")
	}
	if len(b) == 0 {
		return nil
	}
	if err := s.Reserve(size + len(b)); err != nil {
		return err
	}
	s.data = s.data[:size+len(b)+1]
	copy(s.data[pos+len(b):], s.data[pos:size])
	copy(s.data[pos:], b)
	s.data[size+len(b)] = 0
	return nil
}

// Erase removes the byte range [from, to).
func (s *String) Erase(from, to int) {
	size := s.Size()
	if from < 0 || to > size || from > to {
		panic("json: String erase range out of bounds")
	}
	n := copy(s.data[from:], s.data[to:size])
	newSize := from + n
	s.data = s.data[:newSize+1]
	s.data[newSize] = 0
}

// Swap exchanges contents with other. Both must share an equal allocator.
func (s *String) Swap(other *String) {
	if !s.alloc.Equal(other.alloc) {
		panic("json: String.Swap requires equal allocators")
	}
	s.data, other.data = other.data, s.data
}

// Compare returns -1, 0, or 1 comparing byte strings lexicographically by
// unsigned byte value, shorter-prefix-first on ties (spec.md §3).
func (a *String) Compare(b *String) int {
	return compareBytes(a.Bytes(), b.Bytes())
}

func compareBytes(a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

// Clone returns a deep copy of s using alloc, or s's own allocator if nil.
func (s *String) Clone(alloc Allocator) (*String, error) {
	if alloc == nil {
		alloc = s.alloc
	}
	return NewStringFrom(alloc, s.Bytes())
}

// CloneOrMove implements the cross-allocator move policy from spec.md §3:
// if alloc equals s's allocator, s is moved (left empty); otherwise a deep
// copy is made and s is left untouched.
func (s *String) CloneOrMove(alloc Allocator) (*String, error) {
	if alloc == nil || alloc.Equal(s.alloc) {
		moved := &String{alloc: s.alloc, data: s.data}
		s.data = emptyStringData[:1]
		return moved, nil
	}
	return s.Clone(alloc)
}
