package rowmapper

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Generic helpers as top-level functions (methods cannot have type parameters yet)

// FromRow maps a single row into a new T using a shared default Decoder.
func FromRow[T any](row Row) (T, error) { return Decode[T](getDecoder(), row) }

// FromRows maps every row into a T, in order. The first failing row aborts the
// whole call and no partial result is returned.
func FromRows[T any, R Row](rows []R) ([]T, error) { return DecodeAll[T](getDecoder(), rows) }

// Decode maps a single row into a new T with d.
func Decode[T any](d *Decoder, row Row) (T, error) {
	var out T
	if err := d.Decode(&out, row); err != nil {
		return out, err
	}
	return out, nil
}

// DecodeAll maps every row into a T with d, in order.
func DecodeAll[T any, R Row](d *Decoder, rows []R) ([]T, error) {
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		v, err := Decode[T](d, row)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// FromRowsConcurrent maps rows like FromRows but runs up to limit traversals at a
// time (limit <= 0 means no limit). Results keep the order of rows. Any failure, or
// cancellation of ctx, discards every result.
func FromRowsConcurrent[T any, R Row](ctx context.Context, rows []R, limit int) ([]T, error) {
	return DecodeAllConcurrent[T](ctx, getDecoder(), rows, limit)
}

// DecodeAllConcurrent is FromRowsConcurrent with an explicit Decoder.
func DecodeAllConcurrent[T any, R Row](ctx context.Context, d *Decoder, rows []R, limit int) ([]T, error) {
	out := make([]T, len(rows))
	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, row := range rows {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return d.Decode(&out[i], row)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
