package json

import "github.com/edirooss/libjson/internal/diag"

// Kind discriminates the seven JSON value variants (spec.md §3).
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "invalid"
	}
}

// Value is a tagged sum over the seven JSON types. Primitive variants
// (Null, Bool, Int, Float) carry their own allocator reference directly;
// container variants (String, Array, Object) retrieve it from the owned
// payload, exactly as spec.md §3 describes. The zero Value is a valid
// Null using DefaultAllocator.
type Value struct {
	kind  Kind
	alloc Allocator // meaningful only for primitive kinds

	b   bool
	i   int64
	f   float64
	str *String
	arr *Array
	obj *Object
}

func resolveAlloc(alloc Allocator) Allocator {
	if alloc == nil {
		return DefaultAllocator()
	}
	return alloc
}

// NewNull constructs a Null Value.
func NewNull(alloc Allocator) *Value { return &Value{kind: KindNull, alloc: resolveAlloc(alloc)} }

// NewBool constructs a Bool Value.
func NewBool(alloc Allocator, b bool) *Value {
	return &Value{kind: KindBool, alloc: resolveAlloc(alloc), b: b}
}

// NewInt constructs an Int Value.
func NewInt(alloc Allocator, i int64) *Value {
	return &Value{kind: KindInt, alloc: resolveAlloc(alloc), i: i}
}

// NewFloat constructs a Float Value.
func NewFloat(alloc Allocator, f float64) *Value {
	return &Value{kind: KindFloat, alloc: resolveAlloc(alloc), f: f}
}

// NewValueString constructs a String Value, taking ownership of s.
func NewValueString(s *String) *Value { return &Value{kind: KindString, str: s} }

// NewValueArray constructs an Array Value, taking ownership of a.
func NewValueArray(a *Array) *Value { return &Value{kind: KindArray, arr: a} }

// NewValueObject constructs an Object Value, taking ownership of o.
func NewValueObject(o *Object) *Value { return &Value{kind: KindObject, obj: o} }

// Kind reports the value's discriminant.
func (v *Value) Kind() Kind { return v.kind }

// Allocator returns the allocator backing this value.
func (v *Value) Allocator() Allocator {
	switch v.kind {
	case KindString:
		return v.str.Allocator()
	case KindArray:
		return v.arr.Allocator()
	case KindObject:
		return v.obj.Allocator()
	default:
		return resolveAlloc(v.alloc)
	}
}

// IsNull, Bool, Int, Float, String, Array, Object are the narrowing
// accessors. The Bool/Int/Float/String/Array/Object accessors panic if
// Kind() doesn't match, the same contract as a Go type assertion.
func (v *Value) IsNull() bool { return v.kind == KindNull }

func (v *Value) Bool() bool {
	v.mustBe(KindBool)
	return v.b
}

func (v *Value) Int() int64 {
	v.mustBe(KindInt)
	return v.i
}

func (v *Value) Float() float64 {
	v.mustBe(KindFloat)
	return v.f
}

// Str returns the underlying String payload. Named Str rather than String
// to avoid colliding with fmt.Stringer's different contract.
func (v *Value) Str() *String {
	v.mustBe(KindString)
	return v.str
}

func (v *Value) Array() *Array {
	v.mustBe(KindArray)
	return v.arr
}

func (v *Value) Object() *Object {
	v.mustBe(KindObject)
	return v.obj
}

func (v *Value) mustBe(k Kind) {
	if v.kind != k {
		panic("json: Value is " + v.kind.String() + ", not " + k.String())
	}
}

// release drops this value's payload before it is overwritten or
// destroyed, recursively releasing contained values so that deallocate
// calls balance allocate calls (testable via a counting Allocator).
// Go's GC does not require this for correctness, but it preserves the
// destruct-exactly-once contract from spec.md §3 and keeps OOM-injection
// tests meaningful.
func (v *Value) release() {
	switch v.kind {
	case KindString:
		if v.str != nil && !v.str.isSentinel() {
			v.str.alloc.Deallocate(v.str.data)
		}
	case KindArray:
		if v.arr != nil {
			for i := range v.arr.items {
				v.arr.items[i].release()
			}
		}
	case KindObject:
		if v.obj != nil {
			for e := v.obj.head; e != nil; e = e.orderNext {
				if !e.key.isSentinel() {
					e.key.alloc.Deallocate(e.key.data)
				}
				e.value.release()
			}
		}
	}
	*v = Value{}
}

// assign replaces v's payload with src's, releasing whatever v held.
func (v *Value) assign(src Value) {
	v.release()
	*v = src
}

// AssignNull reassigns v to Null, releasing any prior payload.
func (v *Value) AssignNull(alloc Allocator) { v.assign(Value{kind: KindNull, alloc: resolveAlloc(alloc)}) }

// AssignBool reassigns v to Bool(b).
func (v *Value) AssignBool(alloc Allocator, b bool) {
	v.assign(Value{kind: KindBool, alloc: resolveAlloc(alloc), b: b})
}

// AssignInt reassigns v to Int(i).
func (v *Value) AssignInt(alloc Allocator, i int64) {
	v.assign(Value{kind: KindInt, alloc: resolveAlloc(alloc), i: i})
}

// AssignFloat reassigns v to Float(f).
func (v *Value) AssignFloat(alloc Allocator, f float64) {
	v.assign(Value{kind: KindFloat, alloc: resolveAlloc(alloc), f: f})
}

// AssignStringMove reassigns v to own s.
func (v *Value) AssignStringMove(s *String) { v.assign(Value{kind: KindString, str: s}) }

// AssignArrayMove reassigns v to own a.
func (v *Value) AssignArrayMove(a *Array) { v.assign(Value{kind: KindArray, arr: a}) }

// AssignObjectMove reassigns v to own o.
func (v *Value) AssignObjectMove(o *Object) { v.assign(Value{kind: KindObject, obj: o}) }

// Clone returns a deep copy of v using alloc, or v's own allocator if nil.
func (v *Value) Clone(alloc Allocator) (*Value, error) {
	switch v.kind {
	case KindNull, KindBool, KindInt, KindFloat:
		a := alloc
		if a == nil {
			a = v.Allocator()
		}
		cp := *v
		cp.alloc = a
		return &cp, nil
	case KindString:
		s, err := v.str.Clone(alloc)
		if err != nil {
			return nil, err
		}
		return NewValueString(s), nil
	case KindArray:
		arr, err := v.arr.Clone(alloc)
		if err != nil {
			return nil, err
		}
		return NewValueArray(arr), nil
	case KindObject:
		obj, err := v.obj.Clone(alloc)
		if err != nil {
			return nil, err
		}
		return NewValueObject(obj), nil
	default:
		panic("json: invalid Value kind")
	}
}

// CloneOrMove implements the cross-allocator move policy from spec.md §3:
// moving into an equal allocator transfers ownership and leaves v as Null;
// moving into a different allocator deep-copies and leaves v untouched.
func (v *Value) CloneOrMove(alloc Allocator) (*Value, error) {
	src := v.Allocator()
	var out *Value
	switch v.kind {
	case KindNull, KindBool, KindInt, KindFloat:
		c, err := v.Clone(alloc)
		if err != nil {
			return nil, err
		}
		out = c
	case KindString:
		s, err := v.str.CloneOrMove(alloc)
		if err != nil {
			return nil, err
		}
		out = NewValueString(s)
	case KindArray:
		a, err := v.arr.CloneOrMove(alloc)
		if err != nil {
			return nil, err
		}
		out = NewValueArray(a)
	case KindObject:
		o, err := v.obj.CloneOrMove(alloc)
		if err != nil {
			return nil, err
		}
		out = NewValueObject(o)
	default:
		panic("json: invalid Value kind")
	}
	if alloc == nil || alloc.Equal(src) {
		*v = Value{kind: KindNull, alloc: src}
	}
	return out, nil
}

// Equal reports deep structural equality, including object key order
// (spec.md §8 property 3). Floats compare with == (no epsilon), so 0 and
// -0 are equal and NaN is never equal to itself.
func (v *Value) Equal(other *Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindInt:
		return v.i == other.i
	case KindFloat:
		return v.f == other.f
	case KindString:
		return v.str.Compare(other.str) == 0
	case KindArray:
		if v.arr.Size() != other.arr.Size() {
			return false
		}
		for i := 0; i < v.arr.Size(); i++ {
			if !v.arr.At(i).Equal(other.arr.At(i)) {
				return false
			}
		}
		return true
	case KindObject:
		if v.obj.Size() != other.obj.Size() {
			return false
		}
		ea, eb := v.obj.Begin(), other.obj.Begin()
		for ea.Valid() {
			if compareBytes(ea.Key(), eb.Key()) != 0 || !ea.Value().Equal(eb.Value()) {
				return false
			}
			ea, eb = ea.Next(), eb.Next()
		}
		return true
	default:
		return false
	}
}

// GoString renders v's internal fields with go-spew, for use under `%#v`
// in test failure output and ad-hoc debugging. Never call this on a
// success path.
func (v *Value) GoString() string { return diag.Dump(v) }
