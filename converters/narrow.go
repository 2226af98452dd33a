// Package converters narrows database/sql driver values (int64, float64, bool, []byte,
// string, time.Time) to the fixed-width Go types a row field can request.
package converters

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/Station-Manager/errors"
)

// CheckBool accepts a bool, or an int64 of 0 or 1 for drivers without a boolean type.
func CheckBool(src any) (bool, error) {
	const op errors.Op = "converters.CheckBool"
	switch v := src.(type) {
	case nil:
		return false, errors.New(op).Msg(ErrMsgNullValue)
	case bool:
		return v, nil
	case int64:
		if v == 0 || v == 1 {
			return v == 1, nil
		}
		return false, errors.New(op).Msg(ErrMsgNotBoolValue)
	}
	return false, errors.New(op).Errorf("Given parameter not a bool, got %T", src)
}

// CheckInt64 accepts any signed integer value, or an integer written as text, which
// drivers with a text wire protocol return as []byte.
func CheckInt64(src any) (int64, error) {
	const op errors.Op = "converters.CheckInt64"
	switch v := src.(type) {
	case nil:
		return 0, errors.New(op).Msg(ErrMsgNullValue)
	case []byte:
		return parseInt(op, string(v))
	case string:
		return parseInt(op, v)
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int8:
		return int64(v), nil
	}
	return 0, errors.New(op).Errorf("Given parameter not an integer, got %T", src)
}

func parseInt(op errors.Op, s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errors.New(op).Err(err)
	}
	return n, nil
}

func checkRange(op errors.Op, src any, lo, hi int64) (int64, error) {
	v, err := CheckInt64(src)
	if err != nil {
		return 0, errors.New(op).Err(err)
	}
	if v < lo || v > hi {
		return 0, errors.New(op).Msg(ErrMsgOutOfRange)
	}
	return v, nil
}

func CheckInt8(src any) (int8, error) {
	v, err := checkRange("converters.CheckInt8", src, math.MinInt8, math.MaxInt8)
	return int8(v), err
}

func CheckInt16(src any) (int16, error) {
	v, err := checkRange("converters.CheckInt16", src, math.MinInt16, math.MaxInt16)
	return int16(v), err
}

func CheckInt32(src any) (int32, error) {
	v, err := checkRange("converters.CheckInt32", src, math.MinInt32, math.MaxInt32)
	return int32(v), err
}

func CheckUint32(src any) (uint32, error) {
	v, err := checkRange("converters.CheckUint32", src, 0, math.MaxUint32)
	return uint32(v), err
}

// CheckFloat64 accepts a float64 or float32 value, or a number written as text.
// Integer values are not floats.
func CheckFloat64(src any) (float64, error) {
	const op errors.Op = "converters.CheckFloat64"
	switch v := src.(type) {
	case nil:
		return 0, errors.New(op).Msg(ErrMsgNullValue)
	case []byte:
		return parseFloat(op, string(v))
	case string:
		return parseFloat(op, v)
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	}
	return 0, errors.New(op).Errorf("Given parameter not a float64, got %T", src)
}

func parseFloat(op errors.Op, s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.New(op).Err(err)
	}
	return f, nil
}

func CheckFloat32(src any) (float32, error) {
	const op errors.Op = "converters.CheckFloat32"
	v, err := CheckFloat64(src)
	if err != nil {
		return 0, errors.New(op).Err(err)
	}
	if !math.IsInf(v, 0) && !math.IsNaN(v) && math.Abs(v) > math.MaxFloat32 {
		return 0, errors.New(op).Msg(ErrMsgOutOfRange)
	}
	return float32(v), nil
}

// CheckString accepts a string or a []byte holding text.
func CheckString(src any) (string, error) {
	const op errors.Op = "converters.CheckString"
	switch v := src.(type) {
	case nil:
		return "", errors.New(op).Msg(ErrMsgNullValue)
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	}
	return "", errors.New(op).Errorf("Given parameter not a string, got %T", src)
}

// CheckBytes accepts a []byte, which is copied, or a string.
func CheckBytes(src any) ([]byte, error) {
	const op errors.Op = "converters.CheckBytes"
	switch v := src.(type) {
	case nil:
		return nil, errors.New(op).Msg(ErrMsgNullValue)
	case []byte:
		return append([]byte{}, v...), nil
	case string:
		return []byte(v), nil
	}
	return nil, errors.New(op).Errorf("Given parameter not a []byte, got %T", src)
}

// Text renders a driver value the way database/sql renders it into sql.RawBytes.
// ok is false for NULL.
func Text(src any) (raw []byte, ok bool) {
	switch v := src.(type) {
	case nil:
		return nil, false
	case []byte:
		return v, true
	case string:
		return []byte(v), true
	case int64:
		return strconv.AppendInt(nil, v, 10), true
	case float64:
		return strconv.AppendFloat(nil, v, 'g', -1, 64), true
	case bool:
		return strconv.AppendBool(nil, v), true
	case time.Time:
		return v.AppendFormat(nil, time.RFC3339Nano), true
	}
	return fmt.Append(nil, src), true
}
