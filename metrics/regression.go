// Package metrics provides the regression metrics cross-validation routines
// typically report per fold.
package metrics

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/mat"

	"github.com/crossfold/crossfold/core/parallel"
	"github.com/crossfold/crossfold/pkg/errors"
)

// Below this many observations the reductions run sequentially.
const parallelThreshold = 1000

// parallelSum accumulates term(i) over [0, n), chunked across CPU cores for
// large inputs. Each chunk keeps a local partial sum so the lock is taken
// once per chunk.
func parallelSum(n int, term func(i int) float64) float64 {
	var (
		mu  sync.Mutex
		sum float64
	)
	parallel.ParallelizeWithThreshold(n, parallelThreshold, func(start, end int) {
		var local float64
		for i := start; i < end; i++ {
			local += term(i)
		}
		mu.Lock()
		sum += local
		mu.Unlock()
	})
	return sum
}

// MSE computes the mean squared error between two vectors.
func MSE(yTrue, yPred *mat.VecDense) (float64, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValidationError("yTrue", "empty vector", n)
	}
	if yPred.Len() != n {
		return 0, errors.NewValidationError("yPred", "length must match yTrue", yPred.Len())
	}

	sum := parallelSum(n, func(i int) float64 {
		diff := yTrue.AtVec(i) - yPred.AtVec(i)
		return diff * diff
	})
	return sum / float64(n), nil
}

// RMSE computes the root mean squared error between two vectors.
func RMSE(yTrue, yPred *mat.VecDense) (float64, error) {
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// MAE computes the mean absolute error between two vectors.
func MAE(yTrue, yPred *mat.VecDense) (float64, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValidationError("yTrue", "empty vector", n)
	}
	if yPred.Len() != n {
		return 0, errors.NewValidationError("yPred", "length must match yTrue", yPred.Len())
	}

	sum := parallelSum(n, func(i int) float64 {
		return math.Abs(yTrue.AtVec(i) - yPred.AtVec(i))
	})
	return sum / float64(n), nil
}

// R2 computes the coefficient of determination. A constant yTrue makes the
// score undefined and is rejected.
func R2(yTrue, yPred *mat.VecDense) (float64, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValidationError("yTrue", "empty vector", n)
	}
	if yPred.Len() != n {
		return 0, errors.NewValidationError("yPred", "length must match yTrue", yPred.Len())
	}

	mean := parallelSum(n, yTrue.AtVec) / float64(n)

	ssRes := parallelSum(n, func(i int) float64 {
		res := yTrue.AtVec(i) - yPred.AtVec(i)
		return res * res
	})
	ssTot := parallelSum(n, func(i int) float64 {
		tot := yTrue.AtVec(i) - mean
		return tot * tot
	})
	if ssTot == 0 {
		return 0, errors.NewValidationError("yTrue", "constant target, R2 undefined", mean)
	}
	return 1 - ssRes/ssTot, nil
}

// MSESlice is the slice convenience used by routines holding plain
// []float64 predictions.
func MSESlice(yTrue, yPred []float64) (float64, error) {
	if len(yTrue) == 0 {
		return 0, errors.NewValidationError("yTrue", "empty slice", 0)
	}
	if len(yPred) != len(yTrue) {
		return 0, errors.NewValidationError("yPred", "length must match yTrue", len(yPred))
	}
	return MSE(mat.NewVecDense(len(yTrue), yTrue), mat.NewVecDense(len(yPred), yPred))
}
