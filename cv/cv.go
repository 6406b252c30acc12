// Package cv is the map-and-combine engine: CrossValidate applies a user
// routine to every fold of a sequence, sequentially or in parallel, and
// Combine structurally merges the per-fold result records into one combined
// record. The routine is a black box; any callable with the Routine
// signature is accepted.
package cv

import (
	"context"
	"runtime"
	"time"

	"github.com/crossfold/crossfold/core/parallel"
	"github.com/crossfold/crossfold/dataset"
	"github.com/crossfold/crossfold/fold"
	"github.com/crossfold/crossfold/pkg/errors"
	"github.com/crossfold/crossfold/pkg/log"
)

// Record is one fold's named-field result. Field values are unconstrained;
// the combiner infers how to merge them. All records of one run must share
// one field-name set.
type Record map[string]any

// Routine is the user-supplied analysis applied to each fold. The fold is
// fully formed and immutable, the passed context carries it for the fold
// accessors, and data is the same container handed to CrossValidate,
// unmodified. The routine must not mutate data and must not retain the
// context after returning.
type Routine func(ctx context.Context, f fold.Fold, data any) (Record, error)

// Option configures a cross-validation run.
type Option func(*options)

type options struct {
	workers int
}

// WithParallel dispatches folds to up to workers independent goroutines.
// workers <= 0 selects runtime.NumCPU(). Results are returned in fold order
// regardless of completion order.
func WithParallel(workers int) Option {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return func(o *options) { o.workers = workers }
}

// CrossValidate invokes routine once per fold and collects one Record per
// fold, in fold order. Execution is sequential unless WithParallel is given.
//
// The engine is fail-fast: the first routine failure (or panic, converted to
// an error) cancels the remaining folds and is returned as a RoutineError
// identifying the triggering fold; partial results are discarded. The
// dataset is shared read-only across invocations and each invocation sees
// only its own fold binding.
func CrossValidate(ctx context.Context, routine Routine, folds fold.Sequence, data any, opts ...Option) ([]Record, error) {
	if routine == nil {
		return nil, errors.WithStack(errors.ErrNilRoutine)
	}
	if len(folds) == 0 {
		return nil, errors.WithStack(errors.ErrNoFolds)
	}

	o := options{workers: 1}
	for _, opt := range opts {
		opt(&o)
	}

	logger := log.GetLoggerWithName("cv.executor")
	logger.Debug("cross-validation started",
		log.FoldCountKey, len(folds),
		log.ConcurrencyKey, o.workers,
	)
	started := time.Now()

	records := make([]Record, len(folds))
	err := parallel.ForEachOrdered(ctx, len(folds), o.workers, func(ctx context.Context, i int) error {
		f := folds[i]
		logger.Debug("dispatching fold",
			log.FoldIndexKey, f.Index(),
			log.TrainSizeKey, f.TrainSize(),
			log.ValidationSizeKey, f.ValidationSize(),
		)

		var rec Record
		err := errors.SafeExecute("cv.routine", func() error {
			var routineErr error
			rec, routineErr = routine(fold.NewContext(ctx, f), f, data)
			return routineErr
		})
		if err != nil {
			return errors.NewRoutineError(f.Index(), err)
		}
		if rec == nil {
			return errors.NewRoutineError(f.Index(), errors.New("routine returned no record"))
		}
		records[i] = rec
		return nil
	})
	if err != nil {
		logger.Error("cross-validation failed", log.ErrAttrKey, err)
		return nil, err
	}

	logger.Debug("cross-validation finished",
		log.FoldCountKey, len(folds),
		log.DurationMsKey, time.Since(started).Milliseconds(),
	)
	return records, nil
}

// Run is the end-to-end convenience: generate folds for data under cfg,
// cross-validate routine over them, and combine the per-fold records with
// automatic merge-strategy inference. Callers needing per-field strategy
// overrides or a fold-identifying column compose the three steps themselves.
func Run(ctx context.Context, data any, cfg fold.Config, routine Routine, opts ...Option) (Record, error) {
	n, err := dataset.Len(data)
	if err != nil {
		return nil, err
	}

	folds, err := fold.Make(n, cfg)
	if err != nil {
		return nil, err
	}

	records, err := CrossValidate(ctx, routine, folds, data, opts...)
	if err != nil {
		return nil, err
	}

	return Combine(records, nil)
}
