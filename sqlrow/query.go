package sqlrow

import (
	"context"
	"database/sql"

	"github.com/Station-Manager/rowmapper"
)

// Querier is implemented by *sql.DB, *sql.Tx, *sql.Conn, and any wrapper
// that can execute a query returning rows.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Materialize scans every remaining row into memory and closes rows.
func Materialize(rows *sql.Rows) (out []*Row, err error) {
	// Propagate rows.Close() error if nothing else failed.
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			out, err = nil, cerr
		}
	}()
	for rows.Next() {
		r, err := FromRows(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Query executes the query and maps every result row into a T, positionally.
// The first row that fails to map aborts the call and no partial result is returned.
//
// Example:
//
//	people, err := sqlrow.Query[Person](ctx, db, `SELECT name, age FROM person`)
func Query[T any](ctx context.Context, q Querier, query string, args ...any) ([]T, error) {
	return QueryWith[T](ctx, nil, q, query, args...)
}

// QueryWith is Query using d; a nil d uses rowmapper's default decoder.
func QueryWith[T any](ctx context.Context, d *rowmapper.Decoder, q Querier, query string, args ...any) (out []T, err error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			out, err = nil, cerr
		}
	}()

	for rows.Next() {
		r, err := FromRows(rows)
		if err != nil {
			return nil, err
		}
		v, err := decode[T](d, r)
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

// QueryOne executes the query and maps the first row into a T. It returns
// sql.ErrNoRows when the query yields no rows; further rows are ignored.
func QueryOne[T any](ctx context.Context, q Querier, query string, args ...any) (out T, err error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return out, err
	}
	// Ensure Close error is propagated if no earlier error occurred.
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return out, err
		}
		return out, sql.ErrNoRows
	}
	r, err := FromRows(rows)
	if err != nil {
		return out, err
	}
	return decode[T](nil, r)
}

func decode[T any](d *rowmapper.Decoder, row rowmapper.Row) (T, error) {
	if d == nil {
		return rowmapper.FromRow[T](row)
	}
	return rowmapper.Decode[T](d, row)
}
