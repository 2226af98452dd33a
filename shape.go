package rowmapper

import (
	"fmt"
	"reflect"

	"github.com/aarondl/null/v8"
	boilertypes "github.com/aarondl/sqlboiler/v4/types"
)

// Shape is the kind of value requested for a target, derived from its Go type.
type Shape uint8

const (
	ShapeBool Shape = iota
	ShapeI8
	ShapeI16
	ShapeI32
	ShapeI64
	ShapeU8
	ShapeU16
	ShapeU32
	ShapeU64
	ShapeF32
	ShapeF64
	ShapeChar
	ShapeStr // borrowed string slice
	ShapeString
	ShapeBytes // borrowed byte slice
	ShapeByteBuf
	ShapeOption
	ShapeUnit
	ShapeSeq
	ShapeTuple
	ShapeMap
	ShapeStruct
	ShapeEnum
	ShapeIdentifier
	ShapeAny
)

var shapeNames = [...]string{
	ShapeBool:       "bool",
	ShapeI8:         "i8",
	ShapeI16:        "i16",
	ShapeI32:        "i32",
	ShapeI64:        "i64",
	ShapeU8:         "u8",
	ShapeU16:        "u16",
	ShapeU32:        "u32",
	ShapeU64:        "u64",
	ShapeF32:        "f32",
	ShapeF64:        "f64",
	ShapeChar:       "char",
	ShapeStr:        "str",
	ShapeString:     "string",
	ShapeBytes:      "bytes",
	ShapeByteBuf:    "byte_buf",
	ShapeOption:     "option",
	ShapeUnit:       "unit",
	ShapeSeq:        "seq",
	ShapeTuple:      "tuple",
	ShapeMap:        "map",
	ShapeStruct:     "struct",
	ShapeEnum:       "enum",
	ShapeIdentifier: "identifier",
	ShapeAny:        "any",
}

func (s Shape) String() string {
	if int(s) < len(shapeNames) {
		return shapeNames[s]
	}
	return fmt.Sprintf("Shape(%d)", uint8(s))
}

var (
	byteType        = reflect.TypeOf(byte(0))
	boilerJSONType  = reflect.TypeOf(boilertypes.JSON{})
	nullableWrapper = map[reflect.Type]struct{}{
		reflect.TypeOf(null.Bool{}):    {},
		reflect.TypeOf(null.Byte{}):    {},
		reflect.TypeOf(null.Bytes{}):   {},
		reflect.TypeOf(null.Float32{}): {},
		reflect.TypeOf(null.Float64{}): {},
		reflect.TypeOf(null.Int{}):     {},
		reflect.TypeOf(null.Int8{}):    {},
		reflect.TypeOf(null.Int16{}):   {},
		reflect.TypeOf(null.Int32{}):   {},
		reflect.TypeOf(null.Int64{}):   {},
		reflect.TypeOf(null.JSON{}):    {},
		reflect.TypeOf(null.String{}):  {},
		reflect.TypeOf(null.Time{}):    {},
		reflect.TypeOf(null.Uint{}):    {},
		reflect.TypeOf(null.Uint8{}):   {},
		reflect.TypeOf(null.Uint16{}):  {},
		reflect.TypeOf(null.Uint32{}):  {},
		reflect.TypeOf(null.Uint64{}):  {},
	}
)

// shapeOf maps a Go type to the shape a column must be decoded as.
// Named types follow their kind; pointers, the null package wrappers and sqlboiler's
// types.JSON are optional.
func shapeOf(t reflect.Type) Shape {
	if t == boilerJSONType {
		return ShapeOption
	}
	if _, ok := nullableWrapper[t]; ok {
		return ShapeOption
	}
	switch t.Kind() {
	case reflect.Bool:
		return ShapeBool
	case reflect.Int8:
		return ShapeI8
	case reflect.Int16:
		return ShapeI16
	case reflect.Int32:
		return ShapeI32
	case reflect.Int64, reflect.Int:
		return ShapeI64
	case reflect.Uint8:
		return ShapeU8
	case reflect.Uint16:
		return ShapeU16
	case reflect.Uint32:
		return ShapeU32
	case reflect.Uint64, reflect.Uint, reflect.Uintptr:
		return ShapeU64
	case reflect.Float32:
		return ShapeF32
	case reflect.Float64:
		return ShapeF64
	case reflect.String:
		return ShapeString
	case reflect.Pointer:
		return ShapeOption
	case reflect.Slice:
		if t.Elem() == byteType {
			return ShapeByteBuf
		}
		return ShapeSeq
	case reflect.Array:
		return ShapeTuple
	case reflect.Map:
		return ShapeMap
	case reflect.Struct:
		if t.NumField() == 0 {
			return ShapeUnit
		}
		return ShapeStruct
	}
	return ShapeAny
}

// nullFields returns the value and Valid field indexes of a null package wrapper.
func nullFields(t reflect.Type) (value, valid int, ok bool) {
	if _, ok := nullableWrapper[t]; !ok {
		return 0, 0, false
	}
	vf, ok1 := t.FieldByName(t.Name())
	validField, ok2 := t.FieldByName("Valid")
	if !ok1 || !ok2 {
		return 0, 0, false
	}
	return vf.Index[0], validField.Index[0], true
}
