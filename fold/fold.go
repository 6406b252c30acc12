// Package fold defines the unit of cross-validation work, an immutable
// training/validation index partition, and the generators that produce
// ordered sequences of them: V-fold, resubstitution, bootstrap, and
// rolling-origin, with stratified and clustered variants.
//
// Positions are 0-based throughout; fold ordinals are 1-based.
package fold

import (
	"github.com/crossfold/crossfold/dataset"
)

// Fold pairs a training index set and a validation index set with the fold's
// 1-based ordinal in its sequence. A Fold is immutable after construction:
// the constructor copies its inputs and accessors return defensive copies.
type Fold struct {
	index      int
	train      []int
	validation []int
}

// New constructs a fold. The given slices are copied.
func New(index int, train, validation []int) Fold {
	t := make([]int, len(train))
	copy(t, train)
	v := make([]int, len(validation))
	copy(v, validation)
	return Fold{index: index, train: t, validation: v}
}

// Index returns the fold's 1-based ordinal.
func (f Fold) Index() int {
	return f.index
}

// Train returns a copy of the training positions.
func (f Fold) Train() []int {
	out := make([]int, len(f.train))
	copy(out, f.train)
	return out
}

// Validation returns a copy of the validation positions.
func (f Fold) Validation() []int {
	out := make([]int, len(f.validation))
	copy(out, f.validation)
	return out
}

// TrainSize returns the number of training positions.
func (f Fold) TrainSize() int {
	return len(f.train)
}

// ValidationSize returns the number of validation positions.
func (f Fold) ValidationSize() int {
	return len(f.validation)
}

// TrainOf resolves the fold's training subset of a container.
func (f Fold) TrainOf(container any) (any, error) {
	return dataset.Resolve(container, f.train)
}

// ValidationOf resolves the fold's validation subset of a container.
func (f Fold) ValidationOf(container any) (any, error) {
	return dataset.Resolve(container, f.validation)
}

// Sequence is an ordered sequence of folds produced by one generator call.
// Fold ordinals form the contiguous range 1..len. Ordering is chronological
// for rolling-origin and arbitrary otherwise.
type Sequence []Fold
