// Package sqlrow adapts database/sql result rows to rowmapper.Row.
//
// A row is scanned once into the driver's own values (int64, float64, bool, []byte,
// string, time.Time or nil). Typed extraction then narrows those values with range
// checks: an int16 field accepts an int64 column value that fits, a float32 field a
// float64 value, and so on. Numbers that a driver returns as text ([]byte or string,
// as text-protocol drivers do for integers and NUMERIC) are parsed before narrowing.
package sqlrow

import (
	"database/sql"

	"github.com/Station-Manager/errors"

	"github.com/Station-Manager/rowmapper/converters"
)

// Row is a single materialized result row. It implements rowmapper.Row.
type Row struct {
	columns []string
	values  []any
}

// New returns a Row over column names and driver values of equal length.
func New(columns []string, values []any) *Row {
	return &Row{columns: columns, values: values}
}

// FromRows scans the current row of rows. It must be called after a successful rows.Next().
func FromRows(rows *sql.Rows) (*Row, error) {
	const op errors.Op = "sqlrow.FromRows"
	cols, err := rows.Columns()
	if err != nil {
		return nil, errors.New(op).Err(err)
	}
	values := make([]any, len(cols))
	dest := make([]any, len(cols))
	for i := range values {
		dest[i] = &values[i]
	}
	if err := rows.Scan(dest...); err != nil {
		return nil, errors.New(op).Err(err)
	}
	return New(cols, values), nil
}

func (r *Row) Len() int { return len(r.columns) }

func (r *Row) ColumnName(i int) (string, bool) {
	if i < 0 || i >= len(r.columns) {
		return "", false
	}
	return r.columns[i], true
}

// Raw renders column i as text the way sql.RawBytes would; ok is false for NULL.
func (r *Row) Raw(i int) ([]byte, bool) {
	if i < 0 || i >= len(r.values) {
		return nil, false
	}
	return converters.Text(r.values[i])
}

func (r *Row) Scan(i int, dst any) error {
	const op errors.Op = "sqlrow.Row.Scan"
	if i < 0 || i >= len(r.values) {
		return errors.New(op).Errorf("Column index %d out of range, row has %d columns", i, len(r.values))
	}
	src := r.values[i]
	var err error
	switch p := dst.(type) {
	case *bool:
		*p, err = converters.CheckBool(src)
	case *int8:
		*p, err = converters.CheckInt8(src)
	case *int16:
		*p, err = converters.CheckInt16(src)
	case *int32:
		*p, err = converters.CheckInt32(src)
	case *int64:
		*p, err = converters.CheckInt64(src)
	case *uint32:
		*p, err = converters.CheckUint32(src)
	case *float32:
		*p, err = converters.CheckFloat32(src)
	case *float64:
		*p, err = converters.CheckFloat64(src)
	case *string:
		*p, err = converters.CheckString(src)
	case *[]byte:
		*p, err = converters.CheckBytes(src)
	default:
		return errors.New(op).Errorf("Unsupported destination %T", dst)
	}
	if err != nil {
		return errors.New(op).Err(err)
	}
	return nil
}
