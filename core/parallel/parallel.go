// Package parallel supplies the execution backend for the cross-validation
// engine: map a function over a sequence of items, possibly concurrently,
// with results kept in input order.
package parallel

import (
	"context"
	"runtime"
	"sync"

	"github.com/crossfold/crossfold/pkg/errors"
)

// Parallelize divides the specified total number (items) according to the number
// of CPU cores, and executes the specified function (fn) in parallel for each
// range (start, end).
func Parallelize(items int, fn func(start, end int)) {
	if items == 0 {
		return
	}

	numWorkers := runtime.NumCPU()
	if numWorkers > items {
		numWorkers = items // No need for more workers than items
	}

	// Ceiling division so every item lands in exactly one chunk.
	chunkSize := (items + numWorkers - 1) / numWorkers

	var wg sync.WaitGroup

	for i := 0; i < numWorkers; i++ {
		start := i * chunkSize
		end := start + chunkSize
		if end > items {
			end = items
		}

		if start >= end {
			continue
		}

		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}

	wg.Wait()
}

// ForEachOrdered runs fn(ctx, i) for i in [0, items) on up to workers
// goroutines and fails fast: the first error cancels the derived context,
// pending items are skipped, and that first error is returned. Items already
// running are allowed to finish; their results are discarded by the caller.
//
// workers <= 0 selects runtime.NumCPU(). workers == 1 degenerates to a plain
// sequential loop, which callers use to guarantee deterministic scheduling.
//
// Panics inside fn are recovered and returned as *errors.PanicError so one
// misbehaving item cannot tear down its siblings.
func ForEachOrdered(ctx context.Context, items, workers int, fn func(ctx context.Context, i int) error) error {
	if items == 0 {
		return nil
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > items {
		workers = items
	}

	if workers == 1 {
		for i := 0; i < items; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := errors.SafeExecute("parallel.ForEachOrdered", func() error {
				return fn(ctx, i)
			}); err != nil {
				return err
			}
		}
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	next := make(chan int)

	fail := func(err error) {
		errOnce.Do(func() {
			firstErr = err
			cancel()
		})
	}

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range next {
				err := errors.SafeExecute("parallel.ForEachOrdered", func() error {
					return fn(ctx, i)
				})
				if err != nil {
					fail(err)
					return
				}
			}
		}()
	}

	// Feed items until done or the context is cancelled by a failure.
dispatch:
	for i := 0; i < items; i++ {
		select {
		case next <- i:
		case <-ctx.Done():
			break dispatch
		}
	}
	close(next)
	wg.Wait()

	if firstErr != nil {
		return firstErr
	}
	return ctx.Err()
}

// ParallelizeWithThreshold performs parallelization only when the number of
// items exceeds the threshold. Below threshold the work runs sequentially.
func ParallelizeWithThreshold(items int, threshold int, fn func(start, end int)) {
	if items <= threshold {
		fn(0, items)
		return
	}

	Parallelize(items, fn)
}
