package pgxrow

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/Station-Manager/rowmapper"
)

// Querier is implemented by *pgx.Conn, *pgxpool.Pool, pgx.Tx and any wrapper that can
// execute a query returning rows.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Materialize reads every remaining row into memory and closes rows.
func Materialize(rows pgx.Rows) ([]*Row, error) {
	defer rows.Close()
	var out []*Row
	for rows.Next() {
		out = append(out, FromRows(rows))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Collect maps every remaining row into a T and closes rows. The first row that fails
// to map aborts the call; no partial result is returned.
func Collect[T any](rows pgx.Rows) ([]T, error) { return CollectWith[T](nil, rows) }

// CollectWith is Collect using d; a nil d uses rowmapper's default decoder.
func CollectWith[T any](d *rowmapper.Decoder, rows pgx.Rows) ([]T, error) {
	defer rows.Close()
	var out []T
	for rows.Next() {
		v, err := decode[T](d, view(rows))
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Query executes sql and maps all result rows into a slice of T.
//
// Example:
//
//	type Person struct {
//	    Name string
//	    Age  int32
//	}
//
//	people, err := pgxrow.Query[Person](ctx, pool, `SELECT name, age FROM person`)
func Query[T any](ctx context.Context, q Querier, sql string, args ...any) ([]T, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return Collect[T](rows)
}

// QueryOne executes sql and maps the first result row into a T. It returns
// pgx.ErrNoRows when the query yields no rows; further rows are ignored.
func QueryOne[T any](ctx context.Context, q Querier, sql string, args ...any) (out T, err error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return out, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return out, err
		}
		return out, pgx.ErrNoRows
	}
	v, err := decode[T](nil, view(rows))
	if err != nil {
		return out, err
	}
	return v, nil
}

func decode[T any](d *rowmapper.Decoder, row rowmapper.Row) (T, error) {
	if d == nil {
		return rowmapper.FromRow[T](row)
	}
	return rowmapper.Decode[T](d, row)
}
