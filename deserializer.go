package rowmapper

import "log/slog"

var discardLogger = slog.New(slog.DiscardHandler)

// Deserializer presents a Row as an ordered mapping from column name to column value.
//
// The cursor starts at the first column and moves forward once per NextValue call.
// Columns are never matched to fields by name: the n-th value requested is the n-th column.
type Deserializer struct {
	row   Row
	index int
	log   *slog.Logger
}

// NewDeserializer returns a Deserializer positioned at the first column of row.
func NewDeserializer(row Row) *Deserializer {
	return &Deserializer{row: row, log: discardLogger}
}

func newDeserializer(row Row, log *slog.Logger) *Deserializer {
	if log == nil {
		log = discardLogger
	}
	return &Deserializer{row: row, log: log}
}

// Request checks that shape can be produced from a whole row. Only ShapeStruct can;
// every other shape is ErrUnsupportedType.
func (d *Deserializer) Request(shape Shape) error {
	if shape != ShapeStruct {
		d.log.Debug("rowmapper: unsupported row shape", slog.String("shape", shape.String()))
		return ErrUnsupportedType
	}
	return nil
}

// NextKey returns the name of the column under the cursor. ok is false once every
// column has been visited.
func (d *Deserializer) NextKey() (key string, ok bool, err error) {
	if d.index >= d.row.Len() {
		return "", false, nil
	}
	name, found := d.row.ColumnName(d.index)
	if !found {
		return "", false, ErrUnknownField
	}
	return name, true, nil
}

// NextValue binds a ValueDeserializer to the column under the cursor and advances it.
func (d *Deserializer) NextValue() ValueDeserializer {
	i := d.index
	d.index++
	return ValueDeserializer{row: d.row, index: i, log: d.log}
}

// Remaining returns the number of columns not yet consumed.
func (d *Deserializer) Remaining() int {
	if n := d.row.Len() - d.index; n > 0 {
		return n
	}
	return 0
}
