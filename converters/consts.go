package converters

const (
	ErrMsgNullValue    = "Value is NULL."
	ErrMsgOutOfRange   = "Value out of range for the requested type."
	ErrMsgNotBoolValue = "Integer is not a boolean, expected 0 or 1."
)
