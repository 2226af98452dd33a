// Package pgxrow adapts pgx result rows to rowmapper.Row.
//
// Values are kept in their wire encoding and decoded on demand through a pgtype.Map.
// A column is only decoded into a Go type that is native to its PostgreSQL type
// (int16 from smallint, string from text or varchar, []byte from bytea, ...); any other
// pairing fails, which rowmapper reports as ErrInvalidType.
package pgxrow

import (
	"fmt"
	"strconv"

	"github.com/Station-Manager/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/Station-Manager/rowmapper/converters/postgres"
)

// Row is a single result row. It implements rowmapper.Row.
type Row struct {
	fields  []pgconn.FieldDescription
	values  [][]byte
	typeMap *pgtype.Map
}

// New returns a Row over the given field descriptions and raw values. values are
// copied, so the caller may reuse its buffers. A nil m uses pgtype.NewMap().
func New(fields []pgconn.FieldDescription, values [][]byte, m *pgtype.Map) *Row {
	vals := make([][]byte, len(values))
	for i, v := range values {
		if v != nil {
			vals[i] = append([]byte{}, v...)
		}
	}
	return wrap(fields, vals, m)
}

func wrap(fields []pgconn.FieldDescription, values [][]byte, m *pgtype.Map) *Row {
	if m == nil {
		m = pgtype.NewMap()
	}
	return &Row{fields: fields, values: values, typeMap: m}
}

// FromRows snapshots the current row of rows. It must be called after a successful rows.Next().
func FromRows(rows pgx.Rows) *Row {
	return New(rows.FieldDescriptions(), rows.RawValues(), typeMapOf(rows))
}

// view is FromRows without the copy; it is only valid until the next rows.Next().
func view(rows pgx.Rows) *Row {
	return wrap(rows.FieldDescriptions(), rows.RawValues(), typeMapOf(rows))
}

func typeMapOf(rows pgx.Rows) *pgtype.Map {
	if c := rows.Conn(); c != nil {
		return c.TypeMap()
	}
	return nil
}

func (r *Row) Len() int { return len(r.fields) }

func (r *Row) ColumnName(i int) (string, bool) {
	if i < 0 || i >= len(r.fields) {
		return "", false
	}
	return r.fields[i].Name, true
}

// Raw returns the wire bytes of column i; ok is false for NULL.
func (r *Row) Raw(i int) ([]byte, bool) {
	if i < 0 || i >= len(r.values) || r.values[i] == nil {
		return nil, false
	}
	return r.values[i], true
}

// Scan decodes column i into dst after checking that the column's type is native to dst.
// NULL is never scanned; callers probe with Raw first.
func (r *Row) Scan(i int, dst any) error {
	const op errors.Op = "pgxrow.Row.Scan"
	if i < 0 || i >= len(r.fields) {
		return errors.New(op).Errorf("Column index %d out of range, row has %d columns", i, len(r.fields))
	}
	fd := r.fields[i]
	if err := postgres.CheckAccepts(dst, fd.DataTypeOID); err != nil {
		return errors.New(op).Err(err)
	}
	raw, ok := r.Raw(i)
	if !ok {
		return errors.New(op).Errorf("Cannot scan NULL column %q into %T", fd.Name, dst)
	}
	if p, isChar := dst.(*int8); isChar {
		b, err := qchar(fd.Format, raw)
		if err != nil {
			return errors.New(op).Errorf("Column %q: %v", fd.Name, err)
		}
		*p = int8(b)
		return nil
	}
	if err := r.typeMap.Scan(fd.DataTypeOID, fd.Format, raw, dst); err != nil {
		return errors.New(op).Err(err)
	}
	return nil
}

// qchar decodes a "char" value. The binary format is the byte itself; the text format
// writes bytes with the high bit set as a \ooo octal escape and NUL as the empty string.
func qchar(format int16, raw []byte) (byte, error) {
	switch {
	case len(raw) == 0:
		return 0, nil
	case len(raw) == 1:
		return raw[0], nil
	case format == pgtype.TextFormatCode && len(raw) == 4 && raw[0] == '\\':
		n, err := strconv.ParseUint(string(raw[1:]), 8, 8)
		if err != nil {
			return 0, err
		}
		return byte(n), nil
	}
	return 0, fmt.Errorf("holds %d bytes, expected 1", len(raw))
}
