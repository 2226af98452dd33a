package rowmapper

// Row is one materialized result row as supplied by a database driver.
//
// Columns are addressed by position. A Row is borrowed for the duration of a single
// traversal and must not be mutated or released while FromRow (or a Decoder) reads it.
// See the pgxrow and sqlrow packages for implementations over pgx and database/sql.
type Row interface {
	// Len returns the number of columns.
	Len() int
	// ColumnName returns the name of column i, or false if i is out of range.
	ColumnName(i int) (string, bool)
	// Raw returns the undecoded value of column i. ok is false when the column is SQL NULL.
	Raw(i int) (raw []byte, ok bool)
	// Scan decodes column i into dst, which is one of *bool, *int8, *int16, *int32, *int64,
	// *uint32, *float32, *float64, *string or *[]byte. It fails when the column's
	// driver-native type does not match dst.
	Scan(i int, dst any) error
}
