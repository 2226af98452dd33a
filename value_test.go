package rowmapper

import (
	"reflect"
	"testing"

	"github.com/aarondl/null/v8"
	boilertypes "github.com/aarondl/sqlboiler/v4/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type NullWrappers struct {
	WantsCandy  null.Bool
	Width       null.Int16
	AmountEaten null.Int32
	Amount      null.Int64
	Speed       null.Float32
	Weight      null.Float64
	Catchphrase null.String
	Stomach     null.Bytes
	Doc         null.JSON
	Extra       boilertypes.JSON
}

func TestFromRow_NullWrappers_Present(t *testing.T) {
	row := newRow(
		col{"wants_candy", true},
		col{"width", int16(20)},
		col{"amount_eaten", int32(1000)},
		col{"amount", int64(7)},
		col{"speed", float32(1.5)},
		col{"weight", 2.25},
		col{"catchphrase", "Woo Woo"},
		col{"stomach", []byte{1, 2}},
		col{"doc", []byte(`{"a":1}`)},
		col{"extra", []byte(`[1]`)},
	)

	got, err := FromRow[NullWrappers](row)
	require.NoError(t, err)

	assert.Equal(t, null.BoolFrom(true), got.WantsCandy)
	assert.Equal(t, null.Int16From(20), got.Width)
	assert.Equal(t, null.Int32From(1000), got.AmountEaten)
	assert.Equal(t, null.Int64From(7), got.Amount)
	assert.Equal(t, null.Float32From(1.5), got.Speed)
	assert.Equal(t, null.Float64From(2.25), got.Weight)
	assert.Equal(t, null.StringFrom("Woo Woo"), got.Catchphrase)
	assert.Equal(t, null.BytesFrom([]byte{1, 2}), got.Stomach)
	assert.Equal(t, null.JSONFrom([]byte(`{"a":1}`)), got.Doc)
	assert.Equal(t, boilertypes.JSON(`[1]`), got.Extra)
}

func TestFromRow_NullWrappers_Absent(t *testing.T) {
	cols := make([]col, 10)
	for i := range cols {
		cols[i] = col{name: "c", val: nil}
	}

	got, err := FromRow[NullWrappers](newRow(cols...))
	require.NoError(t, err)

	assert.False(t, got.WantsCandy.Valid)
	assert.False(t, got.Width.Valid)
	assert.False(t, got.Catchphrase.Valid)
	assert.False(t, got.Doc.Valid)
	assert.Nil(t, got.Extra)
	assert.Equal(t, NullWrappers{}, got)
}

func TestFromRow_NullWrapper_WrongInnerType(t *testing.T) {
	_, err := FromRow[struct{ V null.Int16 }](newRow(col{"v", int32(1)}))
	assert.Equal(t, ErrInvalidType, err)
}

func TestFromRow_NestedOptional(t *testing.T) {
	got, err := FromRow[struct{ V **int64 }](newRow(col{"v", int64(3)}))
	require.NoError(t, err)
	require.NotNil(t, got.V)
	require.NotNil(t, *got.V)
	assert.Equal(t, int64(3), **got.V)
}

func TestFromRow_ByteSequence(t *testing.T) {
	type Rec struct {
		Shorts []int16
		Floats []float64
		Words  []uint32
	}
	raw := []byte{1, 2, 255}
	row := newRow(col{"a", raw}, col{"b", raw}, col{"c", raw})

	got, err := FromRow[Rec](row)
	require.NoError(t, err)
	assert.Equal(t, []int16{1, 2, 255}, got.Shorts)
	assert.Equal(t, []float64{1, 2, 255}, got.Floats)
	assert.Equal(t, []uint32{1, 2, 255}, got.Words)
}

func TestFromRow_ByteSequence_Errors(t *testing.T) {
	tests := []struct {
		name    string
		raw     []byte
		decode  func(Row) error
		wantMsg string
	}{
		{
			name:    "byte out of int8 range",
			raw:     []byte{1, 200},
			decode:  func(r Row) error { _, err := FromRow[struct{ V []int8 }](r); return err },
			wantMsg: "invalid value: integer `200`, expected int8",
		},
		{
			name:    "non-numeric element",
			raw:     []byte{1},
			decode:  func(r Row) error { _, err := FromRow[struct{ V []bool }](r); return err },
			wantMsg: "invalid type: integer `1`, expected bool",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.decode(newRow(col{"v", tt.raw}))
			require.Error(t, err)

			var e Error
			require.ErrorAs(t, err, &e)
			assert.Equal(t, KindMessage, e.Kind)
			assert.Equal(t, tt.wantMsg, e.Message)
		})
	}
}

func TestFromRow_ByteSequence_NotBinary(t *testing.T) {
	_, err := FromRow[struct{ V []int32 }](newRow(col{"v", "text"}))
	assert.Equal(t, ErrInvalidType, err)
}

func TestByteSeq_IsFinite(t *testing.T) {
	s := &byteSeq{data: []byte{7, 8}}
	assert.Equal(t, 2, s.remaining())

	b, ok := s.next()
	assert.True(t, ok)
	assert.Equal(t, byte(7), b)
	b, ok = s.next()
	assert.True(t, ok)
	assert.Equal(t, byte(8), b)

	_, ok = s.next()
	assert.False(t, ok)
	_, ok = s.next()
	assert.False(t, ok)
	assert.Zero(t, s.remaining())
}

func TestShapeOf(t *testing.T) {
	type Named int16
	tests := []struct {
		name string
		typ  reflect.Type
		want Shape
	}{
		{"bool", reflect.TypeOf(false), ShapeBool},
		{"int8", reflect.TypeOf(int8(0)), ShapeI8},
		{"named int16", reflect.TypeOf(Named(0)), ShapeI16},
		{"int32", reflect.TypeOf(int32(0)), ShapeI32},
		{"int", reflect.TypeOf(0), ShapeI64},
		{"uint8", reflect.TypeOf(uint8(0)), ShapeU8},
		{"uint16", reflect.TypeOf(uint16(0)), ShapeU16},
		{"uint32", reflect.TypeOf(uint32(0)), ShapeU32},
		{"uint64", reflect.TypeOf(uint64(0)), ShapeU64},
		{"float32", reflect.TypeOf(float32(0)), ShapeF32},
		{"float64", reflect.TypeOf(float64(0)), ShapeF64},
		{"string", reflect.TypeOf(""), ShapeString},
		{"bytes", reflect.TypeOf([]byte(nil)), ShapeByteBuf},
		{"pointer", reflect.TypeOf((*int16)(nil)), ShapeOption},
		{"null.String", reflect.TypeOf(null.String{}), ShapeOption},
		{"boiler JSON", reflect.TypeOf(boilertypes.JSON{}), ShapeOption},
		{"int slice", reflect.TypeOf([]int32(nil)), ShapeSeq},
		{"array", reflect.TypeOf([4]byte{}), ShapeTuple},
		{"map", reflect.TypeOf(map[string]string{}), ShapeMap},
		{"struct", reflect.TypeOf(struct{ A int }{}), ShapeStruct},
		{"unit", reflect.TypeOf(struct{}{}), ShapeUnit},
		{"interface", reflect.TypeOf((*any)(nil)).Elem(), ShapeAny},
		{"func", reflect.TypeOf(func() {}), ShapeAny},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, shapeOf(tt.typ))
		})
	}
}

func TestShape_String(t *testing.T) {
	assert.Equal(t, "byte_buf", ShapeByteBuf.String())
	assert.Equal(t, "option", ShapeOption.String())
	assert.Equal(t, "Shape(200)", Shape(200).String())
}
