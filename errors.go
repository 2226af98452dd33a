package rowmapper

import "fmt"

// Kind identifies one of the fixed error categories reported while mapping a row.
type Kind uint8

const (
	KindMessage         Kind = iota // free-form diagnostic, see Error.Message
	KindTrailingValues              // row has columns no field consumed (strict mode only)
	KindUnknownField                // column name could not be resolved at the cursor
	KindInvalidType                 // driver could not extract the requested primitive
	KindUnsupportedType             // requested shape has no column representation
)

func (k Kind) String() string {
	switch k {
	case KindMessage:
		return "Message"
	case KindTrailingValues:
		return "TrailingValues"
	case KindUnknownField:
		return "UnknownField"
	case KindInvalidType:
		return "InvalidType"
	case KindUnsupportedType:
		return "UnsupportedType"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Error is the only error type produced while mapping a row.
// It is a plain value: copies compare equal with ==, which also makes errors.Is work
// against the package sentinels.
type Error struct {
	Kind    Kind
	Message string // set only for KindMessage
}

var (
	ErrTrailingValues  = Error{Kind: KindTrailingValues}
	ErrUnknownField    = Error{Kind: KindUnknownField}
	ErrInvalidType     = Error{Kind: KindInvalidType}
	ErrUnsupportedType = Error{Kind: KindUnsupportedType}
)

// Messagef returns a KindMessage error with a formatted text.
func Messagef(format string, args ...any) Error {
	return Error{Kind: KindMessage, Message: fmt.Sprintf(format, args...)}
}

func (e Error) Error() string {
	switch e.Kind {
	case KindMessage:
		return e.Message
	case KindTrailingValues:
		return "Unexpected columns"
	case KindUnknownField:
		return "Unknown field"
	case KindInvalidType:
		return "Invalid type"
	case KindUnsupportedType:
		return "Type unsupported"
	}
	return e.Kind.String()
}
