// Package postgres lists which PostgreSQL column types are native to each Go
// destination type a row field can request.
package postgres

import (
	"slices"

	"github.com/Station-Manager/errors"
	"github.com/jackc/pgx/v5/pgtype"
)

var (
	textOIDs  = []uint32{pgtype.TextOID, pgtype.VarcharOID, pgtype.BPCharOID, pgtype.NameOID, pgtype.UnknownOID}
	boolOIDs  = []uint32{pgtype.BoolOID}
	charOIDs  = []uint32{pgtype.QCharOID}
	int2OIDs  = []uint32{pgtype.Int2OID}
	int4OIDs  = []uint32{pgtype.Int4OID}
	int8OIDs  = []uint32{pgtype.Int8OID}
	oidOIDs   = []uint32{pgtype.OIDOID}
	f4OIDs    = []uint32{pgtype.Float4OID}
	f8OIDs    = []uint32{pgtype.Float8OID}
	byteaOIDs = []uint32{pgtype.ByteaOID}
)

// NativeOIDs returns the column type OIDs that decode into dst without conversion.
// dst is a pointer to one of bool, int8, int16, int32, int64, uint32, float32, float64,
// string or []byte; anything else has none.
func NativeOIDs(dst any) []uint32 {
	switch dst.(type) {
	case *bool:
		return boolOIDs
	case *int8:
		return charOIDs
	case *int16:
		return int2OIDs
	case *int32:
		return int4OIDs
	case *int64:
		return int8OIDs
	case *uint32:
		return oidOIDs
	case *float32:
		return f4OIDs
	case *float64:
		return f8OIDs
	case *string:
		return textOIDs
	case *[]byte:
		return byteaOIDs
	}
	return nil
}

// Accepts reports whether a column of type oid can be decoded into dst.
func Accepts(dst any, oid uint32) bool {
	return slices.Contains(NativeOIDs(dst), oid)
}

// CheckAccepts is Accepts reported as an error naming the mismatch.
func CheckAccepts(dst any, oid uint32) error {
	const op errors.Op = "converters.postgres.CheckAccepts"
	if !Accepts(dst, oid) {
		return errors.New(op).Errorf("Column of type oid %d cannot be decoded into %T", oid, dst)
	}
	return nil
}
