package rowmapper

import (
	"fmt"
	"reflect"
)

// col is one column of a testRow. A nil val is SQL NULL.
type col struct {
	name string
	val  any
}

// testRow is an in-memory Row whose Scan only succeeds when the destination has
// exactly the Go type of the stored value.
type testRow struct {
	cols     []col
	scans    int
	hideName bool // ColumnName reports every name as unresolvable
}

func newRow(cols ...col) *testRow { return &testRow{cols: cols} }

func (r *testRow) Len() int { return len(r.cols) }

func (r *testRow) ColumnName(i int) (string, bool) {
	if r.hideName || i < 0 || i >= len(r.cols) {
		return "", false
	}
	return r.cols[i].name, true
}

func (r *testRow) Raw(i int) ([]byte, bool) {
	v := r.cols[i].val
	if v == nil {
		return nil, false
	}
	return fmt.Append(nil, v), true
}

func (r *testRow) Scan(i int, dst any) error {
	r.scans++
	src := r.cols[i].val
	dv := reflect.ValueOf(dst).Elem()
	if src == nil {
		return fmt.Errorf("cannot scan NULL into %T", dst)
	}
	sv := reflect.ValueOf(src)
	if sv.Type() != dv.Type() {
		return fmt.Errorf("cannot scan %T into %T", src, dst)
	}
	dv.Set(sv)
	return nil
}

// Buu mirrors a table with one column of every natively supported type.
type Buu struct {
	WantsCandy      bool
	Width           int16
	AmountEaten     int32
	AmountWantToEat int64
	Speed           float32
	Weight          float64
	Catchphrase     string
	StomachContents []byte
}

type NullBuu struct {
	WantsCandy      *bool
	Width           *int16
	AmountEaten     *int32
	AmountWantToEat *int64
	Speed           *float32
	Weight          *float64
	Catchphrase     *string
	StomachContents *[]byte
}

func buuRow() *testRow {
	return newRow(
		col{"wants_candy", true},
		col{"width", int16(20)},
		col{"amount_eaten", int32(1000)},
		col{"amount_want_to_eat", int64(1000000)},
		col{"speed", float32(99.99)},
		col{"weight", 9999.9999},
		col{"catchphrase", "Woo Woo"},
		col{"stomach_contents", []byte{1, 2, 3, 4, 5, 6}},
	)
}

func nullBuuRow() *testRow {
	return newRow(
		col{"wants_candy", nil},
		col{"width", nil},
		col{"amount_eaten", nil},
		col{"amount_want_to_eat", nil},
		col{"speed", nil},
		col{"weight", nil},
		col{"catchphrase", nil},
		col{"stomach_contents", nil},
	)
}

func shapeTestType[T any]() reflect.Type { return reflect.TypeOf((*T)(nil)).Elem() }
