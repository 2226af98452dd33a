package rowmapper

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeserializer_KeysAndValues(t *testing.T) {
	row := newRow(col{"a", int64(1)}, col{"b", "two"})
	de := NewDeserializer(row)
	assert.Equal(t, 2, de.Remaining())

	key, ok, err := de.NextKey()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "a", key)

	// NextKey does not move the cursor; NextValue does.
	key, _, _ = de.NextKey()
	assert.Equal(t, "a", key)

	v := de.NextValue()
	assert.Equal(t, 0, v.Index())
	var a int64
	require.NoError(t, v.Decode(&a))
	assert.Equal(t, int64(1), a)

	key, ok, err = de.NextKey()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "b", key)

	var b string
	require.NoError(t, de.NextValue().Decode(&b))
	assert.Equal(t, "two", b)

	key, ok, err = de.NextKey()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, key)
	assert.Zero(t, de.Remaining())
}

func TestDeserializer_Request(t *testing.T) {
	de := NewDeserializer(newRow())
	assert.NoError(t, de.Request(ShapeStruct))

	for _, s := range []Shape{ShapeBool, ShapeI64, ShapeString, ShapeOption, ShapeSeq, ShapeEnum, ShapeTuple, ShapeUnit, ShapeMap} {
		t.Run(s.String(), func(t *testing.T) {
			assert.Equal(t, ErrUnsupportedType, de.Request(s))
		})
	}
}

func TestValueDeserializer_DecodeNeedsPointer(t *testing.T) {
	de := NewDeserializer(newRow(col{"a", int64(1)}))
	var a int64

	err := de.NextValue().Decode(a)
	require.Error(t, err)
	var e Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, KindMessage, e.Kind)
}

func TestValueDeserializer_IdentifierPanics(t *testing.T) {
	// Identifiers are never requested for column values; reaching one is a bug.
	assert.Panics(t, func() {
		var v struct{}
		de := NewDeserializer(newRow(col{"a", int64(1)}))
		vd := de.NextValue()
		_ = vd.decodeShape(ShapeIdentifier, reflect.ValueOf(&v).Elem())
	})
}
