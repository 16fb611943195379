package json

import (
	"math"
	"strconv"
	"unicode/utf8"
)

// WriteOptions controls output formatting (spec.md §4.5). IndentSize 0
// means compact (no whitespace); >0 pretty-prints with that many spaces
// per nesting level.
type WriteOptions struct {
	IndentSize int
}

// DefaultWriteOptions is compact output.
var DefaultWriteOptions = WriteOptions{IndentSize: 0}

func resolveWriteOptions(opts *WriteOptions) *WriteOptions {
	if opts == nil {
		return &DefaultWriteOptions
	}
	return opts
}

// bufWriter is a bounded cursor over a caller-supplied output buffer. Every
// write is atomic: either the whole token fits and is written, or nothing
// is written and NotEnoughMemory is returned (spec.md §4.5).
type bufWriter struct {
	dst   []byte
	n     int
	depth int
}

func (w *bufWriter) remaining() int { return len(w.dst) - w.n }

func (w *bufWriter) writeBytes(b []byte) error {
	if len(b) > w.remaining() {
		return &Error{Code: NotEnoughMemory, Pos: w.n}
	}
	copy(w.dst[w.n:], b)
	w.n += len(b)
	return nil
}

func (w *bufWriter) writeByte(b byte) error {
	if w.remaining() < 1 {
		return &Error{Code: NotEnoughMemory, Pos: w.n}
	}
	w.dst[w.n] = b
	w.n++
	return nil
}

func (w *bufWriter) writeIndent(opts *WriteOptions, depth int) error {
	if opts.IndentSize == 0 {
		return nil
	}
	if err := w.writeByte('\n'); err != nil {
		return err
	}
	for i := 0; i < depth*opts.IndentSize; i++ {
		if err := w.writeByte(' '); err != nil {
			return err
		}
	}
	return nil
}

func formatInt(i int64) []byte {
	return strconv.AppendInt(nil, i, 10)
}

// formatFloat renders f with the shortest round-tripping decimal
// representation. A result with no '.', 'e', or 'E' (an integral value
// like "5") is forced to "5.0" so re-parsing yields a Float, not an Int —
// required for the round-trip property in spec.md §8.
func formatFloat(f float64) ([]byte, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, &Error{Code: NumberOutOfRange}
	}
	b := strconv.AppendFloat(nil, f, 'g', -1, 64)
	hasMarker := false
	for _, c := range b {
		if c == '.' || c == 'e' || c == 'E' {
			hasMarker = true
			break
		}
	}
	if !hasMarker {
		b = append(b, '.', '0')
	}
	return b, nil
}

func (w *bufWriter) writeString(s *String) error { return w.writeStringBytes(s.Bytes()) }

func (w *bufWriter) writeStringBytes(b []byte) error {
	need := 2
	for _, c := range b {
		switch {
		case c == '"', c == '\\', c == '\b', c == '\t', c == '\n', c == '\f', c == '\r':
			need += 2
		case c < 0x20:
			need += 6
		default:
			need++
		}
	}
	if need > w.remaining() {
		return &Error{Code: NotEnoughMemory, Pos: w.n}
	}
	if err := w.writeByte('"'); err != nil {
		return err
	}
	for i := 0; i < len(b); {
		c := b[i]
		switch {
		case c == '"':
			if err := w.writeBytes([]byte{'\\', '"'}); err != nil {
				return err
			}
			i++
		case c == '\\':
			if err := w.writeBytes([]byte{'\\', '\\'}); err != nil {
				return err
			}
			i++
		case c == '\b':
			if err := w.writeBytes([]byte{'\\', 'b'}); err != nil {
				return err
			}
			i++
		case c == '\t':
			if err := w.writeBytes([]byte{'\\', 't'}); err != nil {
				return err
			}
			i++
		case c == '\n':
			if err := w.writeBytes([]byte{'\\', 'n'}); err != nil {
				return err
			}
			i++
		case c == '\f':
			if err := w.writeBytes([]byte{'\\', 'f'}); err != nil {
				return err
			}
			i++
		case c == '\r':
			if err := w.writeBytes([]byte{'\\', 'r'}); err != nil {
				return err
			}
			i++
		case c < 0x20:
			esc := []byte{'\\', 'u', '0', '0', hexDigit(c >> 4), hexDigit(c & 0xF)}
			if err := w.writeBytes(esc); err != nil {
				return err
			}
			i++
		case c < 0x80:
			if err := w.writeByte(c); err != nil {
				return err
			}
			i++
		default:
			_, n := utf8.DecodeRune(b[i:])
			if n == 0 {
				n = 1
			}
			if err := w.writeBytes(b[i : i+n]); err != nil {
				return err
			}
			i += n
		}
	}
	return w.writeByte('"')
}

func hexDigit(n byte) byte {
	if n < 10 {
		return '0' + n
	}
	return 'a' + (n - 10)
}

func (w *bufWriter) writeArray(a *Array, opts *WriteOptions) error {
	if err := w.writeByte('['); err != nil {
		return err
	}
	if a.Empty() {
		return w.writeByte(']')
	}
	w.depth++
	for i, v := range a.Values() {
		if i > 0 {
			if err := w.writeByte(','); err != nil {
				return err
			}
		}
		if err := w.writeIndent(opts, w.depth); err != nil {
			return err
		}
		if err := w.writeValue(&v, opts); err != nil {
			return err
		}
	}
	w.depth--
	if err := w.writeIndent(opts, w.depth); err != nil {
		return err
	}
	return w.writeByte(']')
}

func (w *bufWriter) writeObject(o *Object, opts *WriteOptions) error {
	if err := w.writeByte('{'); err != nil {
		return err
	}
	if o.Empty() {
		return w.writeByte('}')
	}
	w.depth++
	i := 0
	for it := o.Begin(); it.Valid(); it = it.Next() {
		if i > 0 {
			if err := w.writeByte(','); err != nil {
				return err
			}
		}
		i++
		if err := w.writeIndent(opts, w.depth); err != nil {
			return err
		}
		if err := w.writeStringBytes(it.Key()); err != nil {
			return err
		}
		if err := w.writeByte(':'); err != nil {
			return err
		}
		if opts.IndentSize > 0 {
			if err := w.writeByte(' '); err != nil {
				return err
			}
		}
		v := it.Value()
		if err := w.writeValue(v, opts); err != nil {
			return err
		}
	}
	w.depth--
	if err := w.writeIndent(opts, w.depth); err != nil {
		return err
	}
	return w.writeByte('}')
}

func (w *bufWriter) writeValue(v *Value, opts *WriteOptions) error {
	switch v.kind {
	case KindNull:
		return w.writeBytes([]byte("null"))
	case KindBool:
		if v.b {
			return w.writeBytes([]byte("true"))
		}
		return w.writeBytes([]byte("false"))
	case KindInt:
		return w.writeBytes(formatInt(v.i))
	case KindFloat:
		b, err := formatFloat(v.f)
		if err != nil {
			return &Error{Code: NumberOutOfRange, Pos: w.n}
		}
		return w.writeBytes(b)
	case KindString:
		return w.writeString(v.str)
	case KindArray:
		return w.writeArray(v.arr, opts)
	case KindObject:
		return w.writeObject(v.obj, opts)
	default:
		panic("json: invalid Value kind")
	}
}

// WriteValue renders v into dst and returns the number of bytes written.
// If dst is too small, returns NotEnoughMemory and the partially used
// prefix should be discarded (no partial token is ever emitted, but a
// partial container may be visible, per spec.md §4.5).
func WriteValue(dst []byte, v *Value, opts *WriteOptions) (int, error) {
	w := &bufWriter{dst: dst}
	err := w.writeValue(v, resolveWriteOptions(opts))
	return w.n, err
}

// Marshal renders v into a freshly allocated byte slice, growing its guess
// at the required size and re-running the write when it's too small —
// the two-pass size-probe pattern spec.md §4.5 says implementations
// SHOULD document for callers that don't want to size a buffer by hand.
func Marshal(v *Value, opts *WriteOptions) ([]byte, error) {
	o := resolveWriteOptions(opts)
	size := 256
	for {
		buf := make([]byte, size)
		n, err := WriteValue(buf, v, o)
		if err == nil {
			return buf[:n], nil
		}
		if e, ok := err.(*Error); ok && e.Code == NotEnoughMemory {
			size *= 2
			continue
		}
		return nil, err
	}
}
