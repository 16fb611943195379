package json

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteValueScalars(t *testing.T) {
	buf := make([]byte, 64)

	n, err := WriteValue(buf, NewNull(nil), nil)
	require.NoError(t, err)
	assert.Equal(t, "null", string(buf[:n]))

	n, err = WriteValue(buf, NewBool(nil, true), nil)
	require.NoError(t, err)
	assert.Equal(t, "true", string(buf[:n]))

	n, err = WriteValue(buf, NewInt(nil, -42), nil)
	require.NoError(t, err)
	assert.Equal(t, "-42", string(buf[:n]))
}

func TestWriteValueFloatForcesDecimalPoint(t *testing.T) {
	buf := make([]byte, 64)
	n, err := WriteValue(buf, NewFloat(nil, 5), nil)
	require.NoError(t, err)
	assert.Equal(t, "5.0", string(buf[:n]))
}

func TestWriteValueFloatRoundTripsThroughReader(t *testing.T) {
	for _, f := range []float64{5, 0.1, -3.5, 1e100, 1e-300} {
		buf := make([]byte, 64)
		n, err := WriteValue(buf, NewFloat(nil, f), nil)
		require.NoError(t, err)

		got, _, err := ReadFloat(buf[:n], nil)
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}
}

func TestWriteValueRejectsNaN(t *testing.T) {
	buf := make([]byte, 64)
	_, err := WriteValue(buf, NewFloat(nil, nan()), nil)
	assert.ErrorIs(t, err, ErrNumberOutOfRange)
}

func nan() float64 {
	var zero float64
	return zero / zero
}

func TestWriteValueStringEscaping(t *testing.T) {
	s, _ := NewStringFrom(nil, []byte("a\"b\\c\nd"))
	buf := make([]byte, 64)
	n, err := WriteValue(buf, NewValueString(s), nil)
	require.NoError(t, err)
	assert.Equal(t, `"a\"b\\c\nd"`, string(buf[:n]))
}

func TestWriteValueNotEnoughMemoryOnUndersizedBuffer(t *testing.T) {
	s, _ := NewStringFrom(nil, []byte("hello world"))
	buf := make([]byte, 3)
	_, err := WriteValue(buf, NewValueString(s), nil)
	assert.ErrorIs(t, err, ErrNotEnoughMemory)
}

func TestWriteValueNeverEmitsPartialUTF8Sequence(t *testing.T) {
	s, _ := NewStringFrom(nil, []byte("\xF0\x9F\x98\x80")) // U+1F600, 4 bytes
	v := NewValueString(s)
	full, err := Marshal(v, nil)
	require.NoError(t, err)

	for size := 0; size < len(full); size++ {
		buf := make([]byte, size)
		n, err := WriteValue(buf, v, nil)
		if err == nil {
			continue
		}
		assert.ErrorIs(t, err, ErrNotEnoughMemory)
		written := string(buf[:n])
		assert.True(t, utf8.ValidString(written),
			"prefix written at buffer size %d split a multi-byte rune: %q", size, written)
	}
}

func TestWriteObjectInsertionOrderWithIndent(t *testing.T) {
	o := NewObject(nil)
	_, _, _ = o.InsertOrReplace([]byte("z"), NewInt(nil, 1))
	_, _, _ = o.InsertOrReplace([]byte("a"), NewInt(nil, 2))
	_, _, _ = o.InsertOrReplace([]byte("m"), NewInt(nil, 3))

	got, err := Marshal(NewValueObject(o), &WriteOptions{IndentSize: 2})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"z\": 1,\n  \"a\": 2,\n  \"m\": 3\n}", string(got))
}

func TestWriteArrayCompact(t *testing.T) {
	a := NewArray(nil)
	require.NoError(t, a.PushBack(NewInt(nil, 1)))
	require.NoError(t, a.PushBack(NewInt(nil, 2)))
	require.NoError(t, a.PushBack(NewInt(nil, 3)))

	got, err := Marshal(NewValueArray(a), nil)
	require.NoError(t, err)
	assert.Equal(t, "[1,2,3]", string(got))
}

func TestMarshalGrowsBufferUntilItFits(t *testing.T) {
	s, _ := NewStringFrom(nil, []byte(strings.Repeat(
		"a string long enough that the initial guess should need to double at least once when starting tiny", 3)))
	got, err := Marshal(NewValueString(s), nil)
	require.NoError(t, err)
	assert.Contains(t, string(got), "long enough")
}
