package json

import "fmt"

// ErrorCode is one of the stable error identifiers from spec.md §6.
type ErrorCode int

const (
	// OK indicates success. Zero value so a zero Error is "no error".
	OK ErrorCode = iota
	NotEnoughMemory
	UnexpectedToken
	InvalidEscape
	InvalidEncoding
	MaxDepth
	NumberOutOfRange
	DuplicateKey
)

func (ec ErrorCode) String() string {
	switch ec {
	case OK:
		return "ok"
	case NotEnoughMemory:
		return "not enough memory"
	case UnexpectedToken:
		return "unexpected token"
	case InvalidEscape:
		return "invalid escape"
	case InvalidEncoding:
		return "invalid encoding"
	case MaxDepth:
		return "max depth exceeded"
	case NumberOutOfRange:
		return "number out of range"
	case DuplicateKey:
		return "duplicate key"
	default:
		return "unknown error"
	}
}

// Error pairs an ErrorCode with the cursor (reader) or output position
// (writer) at which it occurred, per spec.md §7.
type Error struct {
	Code ErrorCode
	// Pos is the byte offset into the input (reader) or output (writer)
	// buffer at which the error was detected.
	Pos int
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at offset %d", e.Code, e.Pos)
}

// Is allows errors.Is(err, json.ErrUnexpectedToken) style comparisons
// against the sentinels below, ignoring Pos.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Sentinel errors usable with errors.Is; Pos is irrelevant for these.
var (
	ErrNotEnoughMemory  = &Error{Code: NotEnoughMemory}
	ErrUnexpectedToken  = &Error{Code: UnexpectedToken}
	ErrInvalidEscape    = &Error{Code: InvalidEscape}
	ErrInvalidEncoding  = &Error{Code: InvalidEncoding}
	ErrMaxDepth         = &Error{Code: MaxDepth}
	ErrNumberOutOfRange = &Error{Code: NumberOutOfRange}
	ErrDuplicateKey     = &Error{Code: DuplicateKey}
)

func newError(code ErrorCode, pos int) *Error {
	return &Error{Code: code, Pos: pos}
}
