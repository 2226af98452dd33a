// Package rowmapper maps relational result rows into Go structs, one field per column.
//
// A Row is supplied by a database driver (see the pgxrow and sqlrow packages). The
// Deserializer walks the row's columns in order and hands each one to a
// ValueDeserializer, which extracts the column as the driver-native type matching the
// destination field and stores it.
//
// # Basic Usage
//
//	type Buu struct {
//	    WantsCandy  bool
//	    Width       int16
//	    Catchphrase string
//	}
//
//	buu, err := rowmapper.FromRow[Buu](row)
//	all, err := rowmapper.FromRows[Buu](rows)
//
// # Mapping Rules
//
// Matching is positional. The first field receives the first column, the second field
// the second column, and so on; column names are read but never compared to field
// names, so the SELECT list must follow the struct's field order.
//
//  1. Fields are visited in declaration order; embedded structs are flattened in place,
//     unless they have no exported fields (time.Time) or embed a type already being flattened
//  2. Unexported fields and fields tagged `row:"-"` or `row:"ignore"` are skipped
//  3. A field without a column is an error unless it is optional, in which case it stays absent
//  4. Columns without a field are ignored, or rejected with WithStrictColumns(true)
//
// # Supported Field Types
//
//   - bool, int8, int16, int32, int64, int, uint32, float32, float64, string
//   - []byte and named byte slices (binary columns)
//   - slices of other numeric types, filled with one element per byte of a binary column
//   - optional values: pointers, the github.com/aarondl/null/v8 wrappers and
//     sqlboiler's types.JSON; SQL NULL leaves them absent
//
// uint8, uint16, uint64, arrays, maps, nested structs and interfaces are rejected with
// ErrUnsupportedType before the driver is consulted.
//
// # Field Converters and Validators
//
// Register converters and validators by field name, globally or for one destination
// type (the type-scoped one wins). Converters run after the column is decoded, then
// validators see the converted value:
//
//	d := rowmapper.New()
//	d.RegisterConverter("Code", rowmapper.MapString(func(s string) string {
//	    return strings.TrimRight(s, " ")
//	}))
//	d.RegisterValidator("Age", func(v any) error {
//	    if v.(int32) < 0 {
//	        return errors.New("negative age")
//	    }
//	    return nil
//	})
//
// A failing converter or validator aborts the row with a Message error naming the field.
//
// # Errors
//
// Every failure is an Error value of one fixed Kind and aborts the row; the destination
// is never partially populated. Driver extraction failures all collapse to ErrInvalidType.
//
//	if errors.Is(err, rowmapper.ErrUnsupportedType) { ... }
//
// # Thread Safety
//
// A Decoder is safe for concurrent use. Rows are read-only during a traversal, so
// independent rows may be decoded in parallel (see FromRowsConcurrent).
package rowmapper
