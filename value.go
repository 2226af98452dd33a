package rowmapper

import (
	"fmt"
	"log/slog"
	"reflect"
)

// ValueDeserializer reads a single column of a row. It is created by
// Deserializer.NextValue, bound to one column position, and used once.
type ValueDeserializer struct {
	row   Row
	index int
	log   *slog.Logger
}

// Index returns the column position the value is bound to.
func (d ValueDeserializer) Index() int { return d.index }

// Decode converts the column into *dst. The shape requested from the column is derived
// from dst's element type.
func (d ValueDeserializer) Decode(dst any) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return Messagef("rowmapper: destination must be a non-nil pointer, got %T", dst)
	}
	return d.decode(rv.Elem())
}

// extract reads the column as the driver-native type T. Driver errors are not
// distinguished: every failure is ErrInvalidType.
func extract[T any](d ValueDeserializer) (T, error) {
	var out T
	if err := d.row.Scan(d.index, &out); err != nil {
		return out, ErrInvalidType
	}
	return out, nil
}

func (d ValueDeserializer) decode(v reflect.Value) error {
	return d.decodeShape(shapeOf(v.Type()), v)
}

func (d ValueDeserializer) decodeShape(shape Shape, v reflect.Value) error {
	switch shape {
	case ShapeBool:
		b, err := extract[bool](d)
		if err != nil {
			return err
		}
		v.SetBool(b)
	case ShapeI8:
		n, err := extract[int8](d)
		if err != nil {
			return err
		}
		v.SetInt(int64(n))
	case ShapeI16:
		n, err := extract[int16](d)
		if err != nil {
			return err
		}
		v.SetInt(int64(n))
	case ShapeI32:
		n, err := extract[int32](d)
		if err != nil {
			return err
		}
		v.SetInt(int64(n))
	case ShapeI64:
		n, err := extract[int64](d)
		if err != nil {
			return err
		}
		v.SetInt(n)
	case ShapeU32:
		n, err := extract[uint32](d)
		if err != nil {
			return err
		}
		v.SetUint(uint64(n))
	case ShapeF32:
		f, err := extract[float32](d)
		if err != nil {
			return err
		}
		v.SetFloat(float64(f))
	case ShapeF64:
		f, err := extract[float64](d)
		if err != nil {
			return err
		}
		v.SetFloat(f)
	case ShapeString:
		s, err := extract[string](d)
		if err != nil {
			return err
		}
		v.SetString(s)
	case ShapeByteBuf:
		b, err := extract[[]byte](d)
		if err != nil {
			return err
		}
		v.SetBytes(b)
	case ShapeOption:
		return d.decodeOption(v)
	case ShapeSeq:
		b, err := extract[[]byte](d)
		if err != nil {
			return err
		}
		return visitSeq(v, &byteSeq{data: b})
	case ShapeU8, ShapeU16, ShapeU64, ShapeChar, ShapeStr, ShapeBytes,
		ShapeUnit, ShapeTuple, ShapeStruct, ShapeEnum, ShapeMap, ShapeAny:
		d.log.Debug("rowmapper: unsupported column shape",
			slog.String("shape", shape.String()),
			slog.String("type", v.Type().String()),
			slog.Int("index", d.index))
		return ErrUnsupportedType
	default:
		// Identifiers are only ever requested for keys, which the row adapter produces itself.
		panic(fmt.Sprintf("rowmapper: %s requested for column %d", shape, d.index))
	}
	return nil
}

// decodeOption probes the column for SQL NULL. A NULL column leaves the zero value
// (nil pointer, invalid null wrapper); anything else is decoded as the inner type.
func (d ValueDeserializer) decodeOption(v reflect.Value) error {
	t := v.Type()
	if _, ok := d.row.Raw(d.index); !ok {
		v.Set(reflect.Zero(t))
		return nil
	}
	switch {
	case t == boilerJSONType:
		b, err := extract[[]byte](d)
		if err != nil {
			return err
		}
		v.SetBytes(b)
		return nil
	case t.Kind() == reflect.Pointer:
		p := reflect.New(t.Elem())
		if err := d.decode(p.Elem()); err != nil {
			return err
		}
		v.Set(p)
		return nil
	}
	value, valid, ok := nullFields(t)
	if !ok {
		return ErrUnsupportedType
	}
	tmp := reflect.New(t).Elem()
	if err := d.decode(tmp.Field(value)); err != nil {
		return err
	}
	tmp.Field(valid).SetBool(true)
	v.Set(tmp)
	return nil
}
