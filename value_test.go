package json

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueZeroValueIsNull(t *testing.T) {
	var v Value
	assert.Equal(t, KindNull, v.Kind())
	assert.True(t, v.IsNull())
}

func TestValueNarrowingAccessorsPanicOnMismatch(t *testing.T) {
	v := NewInt(nil, 1)
	assert.Panics(t, func() { v.Bool() })
	assert.Panics(t, func() { v.Str() })
}

func TestValueAssignReleasesPriorPayload(t *testing.T) {
	alloc := newCountingAllocator()
	s, _ := NewStringFrom(alloc, []byte("hello"))
	v := NewValueString(s)
	v.AssignInt(nil, 42)
	assert.Equal(t, KindInt, v.Kind())
	assert.Equal(t, int64(42), v.Int())
	assert.Empty(t, alloc.live)
}

func TestValueEqualScalars(t *testing.T) {
	assert.True(t, NewInt(nil, 1).Equal(NewInt(nil, 1)))
	assert.False(t, NewInt(nil, 1).Equal(NewInt(nil, 2)))
	assert.False(t, NewInt(nil, 1).Equal(NewFloat(nil, 1)))
	assert.True(t, NewBool(nil, true).Equal(NewBool(nil, true)))
	assert.True(t, NewNull(nil).Equal(NewNull(nil)))
}

func TestValueEqualStringsArraysObjects(t *testing.T) {
	s1, _ := NewStringFrom(nil, []byte("abc"))
	s2, _ := NewStringFrom(nil, []byte("abc"))
	assert.True(t, NewValueString(s1).Equal(NewValueString(s2)))

	a1 := NewArray(nil)
	require.NoError(t, a1.PushBack(NewInt(nil, 1)))
	a2 := NewArray(nil)
	require.NoError(t, a2.PushBack(NewInt(nil, 1)))
	assert.True(t, NewValueArray(a1).Equal(NewValueArray(a2)))

	o1 := NewObject(nil)
	_, _, _ = o1.InsertOrReplace([]byte("a"), NewInt(nil, 1))
	_, _, _ = o1.InsertOrReplace([]byte("b"), NewInt(nil, 2))
	o2 := NewObject(nil)
	_, _, _ = o2.InsertOrReplace([]byte("a"), NewInt(nil, 1))
	_, _, _ = o2.InsertOrReplace([]byte("b"), NewInt(nil, 2))
	assert.True(t, NewValueObject(o1).Equal(NewValueObject(o2)))

	o3 := NewObject(nil)
	_, _, _ = o3.InsertOrReplace([]byte("b"), NewInt(nil, 2))
	_, _, _ = o3.InsertOrReplace([]byte("a"), NewInt(nil, 1))
	assert.False(t, NewValueObject(o1).Equal(NewValueObject(o3)), "differing key order must not compare equal")
}

func TestValueCloneIsDeep(t *testing.T) {
	a := NewArray(nil)
	require.NoError(t, a.PushBack(NewInt(nil, 1)))
	v := NewValueArray(a)

	clone, err := v.Clone(nil)
	require.NoError(t, err)
	require.NoError(t, clone.Array().PushBack(NewInt(nil, 2)))

	assert.Equal(t, 1, v.Array().Size())
	assert.Equal(t, 2, clone.Array().Size())
}

func TestValueCloneOrMoveSameAllocatorLeavesSourceNull(t *testing.T) {
	s, _ := NewStringFrom(SystemAllocator, []byte("abc"))
	v := NewValueString(s)
	moved, err := v.CloneOrMove(SystemAllocator)
	require.NoError(t, err)
	assert.Equal(t, "abc", string(moved.Str().Bytes()))
	assert.True(t, v.IsNull())
}

func TestValueCloneOrMoveDifferentAllocatorLeavesSourceUntouched(t *testing.T) {
	s, _ := NewStringFrom(SystemAllocator, []byte("abc"))
	v := NewValueString(s)
	_, err := v.CloneOrMove(newCountingAllocator())
	require.NoError(t, err)
	assert.Equal(t, KindString, v.Kind())
	assert.Equal(t, "abc", string(v.Str().Bytes()))
}

// countingAllocator tracks outstanding Allocate/Deallocate calls so release()
// can be checked for balance, the same property an OOM-injection test relies
// on to be meaningful.
type countingAllocator struct {
	live map[*byte]struct{}
}

func newCountingAllocator() *countingAllocator {
	return &countingAllocator{live: map[*byte]struct{}{}}
}

func (c *countingAllocator) Allocate(n int) ([]byte, error) {
	b := make([]byte, n)
	if n > 0 {
		c.live[&b[0]] = struct{}{}
	}
	return b, nil
}

func (c *countingAllocator) Deallocate(b []byte) {
	if len(b) > 0 {
		delete(c.live, &b[0])
	}
}

func (c *countingAllocator) Equal(other Allocator) bool {
	o, ok := other.(*countingAllocator)
	return ok && o == c
}

func TestValueReleaseBalancesAllocateDeallocate(t *testing.T) {
	alloc := newCountingAllocator()

	obj := NewObject(alloc)
	s, err := NewStringFrom(alloc, []byte("nested"))
	require.NoError(t, err)
	inner := NewValueString(s)
	_, _, err = obj.insert([]byte("k"), *inner, true)
	require.NoError(t, err)

	v := NewValueObject(obj)
	v.release()

	assert.Empty(t, alloc.live)
}
