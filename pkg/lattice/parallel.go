package lattice

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ForEachColumn calls fn once for every column index in [0,cols), using up to
// workers goroutines (GOMAXPROCS when workers <= 0). fn must only write
// state owned by its column. The first error cancels the remaining columns.
func ForEachColumn(ctx context.Context, cols, workers int, fn func(col int) error) error {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers == 1 {
		for col := 0; col < cols; col++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := fn(col); err != nil {
				return err
			}
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for col := 0; col < cols; col++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return fn(col)
		})
	}
	return g.Wait()
}
