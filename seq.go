package rowmapper

import (
	"math"
	"reflect"
)

// byteSeq hands out the bytes of a binary column one element at a time.
// It is finite and cannot be rewound.
type byteSeq struct {
	data []byte
	pos  int
}

func (s *byteSeq) next() (byte, bool) {
	if s.pos >= len(s.data) {
		return 0, false
	}
	b := s.data[s.pos]
	s.pos++
	return b, true
}

func (s *byteSeq) remaining() int { return len(s.data) - s.pos }

// visitSeq fills the slice v with one element per byte of seq.
func visitSeq(v reflect.Value, seq *byteSeq) error {
	out := reflect.MakeSlice(v.Type(), 0, seq.remaining())
	elem := reflect.New(v.Type().Elem()).Elem()
	for {
		b, ok := seq.next()
		if !ok {
			break
		}
		if err := setByte(elem, b); err != nil {
			return err
		}
		out = reflect.Append(out, elem)
	}
	v.Set(out)
	return nil
}

// setByte stores b into a numeric element, the way an integer visitor accepts any
// integer that fits its range.
func setByte(v reflect.Value, b byte) error {
	switch v.Kind() {
	case reflect.Int8:
		if b > math.MaxInt8 {
			return Messagef("invalid value: integer `%d`, expected %s", b, v.Type())
		}
		v.SetInt(int64(b))
	case reflect.Int16, reflect.Int32, reflect.Int64, reflect.Int:
		v.SetInt(int64(b))
	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uint:
		v.SetUint(uint64(b))
	case reflect.Float32, reflect.Float64:
		v.SetFloat(float64(b))
	default:
		return Messagef("invalid type: integer `%d`, expected %s", b, v.Type())
	}
	return nil
}
