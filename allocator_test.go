package json

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemAllocatorNeverFails(t *testing.T) {
	b, err := SystemAllocator.Allocate(16)
	require.NoError(t, err)
	assert.Len(t, b, 16)
	SystemAllocator.Deallocate(b)
}

func TestNullAllocatorAlwaysFails(t *testing.T) {
	_, err := NullAllocator.Allocate(1)
	assert.ErrorIs(t, err, ErrNotEnoughMemory)
}

func TestAllocatorEqual(t *testing.T) {
	assert.True(t, SystemAllocator.Equal(SystemAllocator))
	assert.False(t, SystemAllocator.Equal(NullAllocator))
}

func TestSetDefaultAllocator(t *testing.T) {
	prev := SetDefaultAllocator(NullAllocator)
	defer SetDefaultAllocator(prev)

	assert.Equal(t, NullAllocator, DefaultAllocator())

	s := NewString(nil)
	err := s.Append([]byte("x"))
	assert.ErrorIs(t, err, ErrNotEnoughMemory)
}
