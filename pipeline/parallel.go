package pipeline

import (
	"context"
	"errors"
	"runtime"

	"github.com/shibukawa/stagerange/interval"
	"golang.org/x/sync/errgroup"
)

// LowestParallel runs every batch as an independent run and returns the
// lowest value over all of them. workers <= 0 means runtime.NumCPU().
// Batches without any non-empty range are skipped.
func (p *Pipeline) LowestParallel(ctx context.Context, batches [][]interval.Range, workers int) (int64, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make([]int64, len(batches))
	found := make([]bool, len(batches))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, batch := range batches {
		if len(batch) == 0 {
			continue
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			lowest, err := p.Lowest(batch)
			if errors.Is(err, ErrNoRanges) {
				return nil
			}
			if err != nil {
				return err
			}

			results[i] = lowest
			found[i] = true

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return 0, err
	}

	var (
		lowest int64
		seen   bool
	)

	for i, ok := range found {
		if ok && (!seen || results[i] < lowest) {
			lowest = results[i]
			seen = true
		}
	}

	if !seen {
		return 0, ErrNoRanges
	}

	return lowest, nil
}
