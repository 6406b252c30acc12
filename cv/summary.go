package cv

import (
	"gonum.org/v1/gonum/stat"

	"github.com/crossfold/crossfold/pkg/errors"
)

// Summary holds descriptive statistics of one combined numeric field, one
// entry per fold.
type Summary struct {
	Mean float64
	Std  float64
	N    int
}

// Summarize computes mean and sample standard deviation of a combined field
// value produced by the Concat strategy. Anything other than a non-empty
// []float64 is rejected.
func Summarize(field any) (Summary, error) {
	values, ok := field.([]float64)
	if !ok {
		return Summary{}, errors.Newf("cv: Summarize wants []float64, got %T", field)
	}
	if len(values) == 0 {
		return Summary{}, errors.WithStack(errors.ErrNoFolds)
	}

	s := Summary{
		Mean: stat.Mean(values, nil),
		N:    len(values),
	}
	if len(values) > 1 {
		s.Std = stat.StdDev(values, nil)
	}
	return s, nil
}
