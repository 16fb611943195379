package json

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVisitDispatchesOnKind(t *testing.T) {
	vis := Visitor[string]{
		Null:  func() string { return "null" },
		Bool:  func(b bool) string { return "bool" },
		Int:   func(i int64) string { return "int" },
		Float: func(f float64) string { return "float" },
	}

	assert.Equal(t, "null", Visit(NewNull(nil), vis))
	assert.Equal(t, "bool", Visit(NewBool(nil, true), vis))
	assert.Equal(t, "int", Visit(NewInt(nil, 1), vis))
	assert.Equal(t, "float", Visit(NewFloat(nil, 1.5), vis))
}

func TestVisitMissingCallbackReturnsZeroValue(t *testing.T) {
	got := Visit(NewInt(nil, 1), Visitor[string]{})
	assert.Equal(t, "", got)
}

func TestVisitArrayCallback(t *testing.T) {
	a := NewArray(nil)
	require := assert.New(t)
	require.NoError(a.PushBack(NewInt(nil, 1)))

	vis := Visitor[int]{
		Array: func(arr *Array) int { return arr.Size() },
	}
	assert.Equal(t, 1, Visit(NewValueArray(a), vis))
}
