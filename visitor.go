package json

// Visitor is a single-dispatch callback table over Value's kind
// (spec.md §4.7). Each field is optional; a nil callback for the value's
// kind is simply skipped and Visit returns the zero Result.
type Visitor[Result any] struct {
	Null   func() Result
	Bool   func(b bool) Result
	Int    func(i int64) Result
	Float  func(f float64) Result
	String func(s *String) Result
	Array  func(a *Array) Result
	Object func(o *Object) Result
}

// Visit dispatches on v.Kind() to the matching callback in vis, returning
// its result. The caller-supplied callback's return value is used as-is —
// typically a fold accumulator or an error signal, per spec.md §4.7.
func Visit[Result any](v *Value, vis Visitor[Result]) Result {
	switch v.kind {
	case KindNull:
		if vis.Null != nil {
			return vis.Null()
		}
	case KindBool:
		if vis.Bool != nil {
			return vis.Bool(v.b)
		}
	case KindInt:
		if vis.Int != nil {
			return vis.Int(v.i)
		}
	case KindFloat:
		if vis.Float != nil {
			return vis.Float(v.f)
		}
	case KindString:
		if vis.String != nil {
			return vis.String(v.str)
		}
	case KindArray:
		if vis.Array != nil {
			return vis.Array(v.arr)
		}
	case KindObject:
		if vis.Object != nil {
			return vis.Object(v.obj)
		}
	}
	var zero Result
	return zero
}
