// Package dataset provides the container abstraction the engine partitions:
// plain slices, gonum matrices, and named-column tables. The index resolver
// extracts training/validation subsets by position, uniformly over all of
// them, without the engine knowing anything else about the data.
package dataset

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/crossfold/crossfold/pkg/errors"
)

// Sized is implemented by user containers that can report their observation
// count.
type Sized interface {
	Len() int
}

// Subsetter is implemented by user containers that know how to extract the
// observations at the given positions. It is the escape hatch for container
// kinds the resolver does not handle natively.
type Subsetter interface {
	Sized
	Subset(indices []int) (any, error)
}

// Len returns the number of observations in a container.
//
// Supported kinds: []float64, []int, []string, []any, gonum mat.Matrix
// (rows are observations), *Table, and anything implementing Sized.
func Len(container any) (int, error) {
	switch c := container.(type) {
	case []float64:
		return len(c), nil
	case []int:
		return len(c), nil
	case []string:
		return len(c), nil
	case []any:
		return len(c), nil
	case *Table:
		return c.Len(), nil
	case mat.Matrix:
		r, _ := c.Dims()
		return r, nil
	case Sized:
		return c.Len(), nil
	default:
		return 0, errors.NewUnsupportedContainerError("Len", fmt.Sprintf("%T", container))
	}
}

// Resolve extracts the observations at the given positions from a container.
//
// For sequence containers the elements at the positions are returned as a new
// slice of the same element type, in the order the positions are given. For
// tabular containers (mat.Matrix, *Table) the selected rows are returned with
// all columns preserved. Containers implementing Subsetter are delegated to.
// Any other kind fails with UnsupportedContainerError.
//
// An empty position set yields an empty subset of the matching kind: a
// zero-length slice, the empty matrix, or a zero-row table.
//
// Resolve is read-only; the returned subset never aliases the source.
func Resolve(container any, indices []int) (any, error) {
	n, err := Len(container)
	if err != nil {
		return nil, err
	}
	for _, idx := range indices {
		if idx < 0 || idx >= n {
			return nil, errors.NewIndexRangeError("Resolve", idx, n)
		}
	}

	switch c := container.(type) {
	case []float64:
		out := make([]float64, len(indices))
		for i, idx := range indices {
			out[i] = c[idx]
		}
		return out, nil
	case []int:
		out := make([]int, len(indices))
		for i, idx := range indices {
			out[i] = c[idx]
		}
		return out, nil
	case []string:
		out := make([]string, len(indices))
		for i, idx := range indices {
			out[i] = c[idx]
		}
		return out, nil
	case []any:
		out := make([]any, len(indices))
		for i, idx := range indices {
			out[i] = c[idx]
		}
		return out, nil
	case *Table:
		return c.Select(indices)
	case mat.Matrix:
		return selectRows(c, indices), nil
	case Subsetter:
		return c.Subset(indices)
	default:
		return nil, errors.NewUnsupportedContainerError("Resolve", fmt.Sprintf("%T", container))
	}
}

// selectRows copies the chosen rows of m into a fresh dense matrix, columns
// untouched. No positions selects the empty matrix; gonum cannot represent a
// zero-row dense with columns attached.
func selectRows(m mat.Matrix, indices []int) *mat.Dense {
	if len(indices) == 0 {
		return &mat.Dense{}
	}
	_, cols := m.Dims()
	out := mat.NewDense(len(indices), cols, nil)
	for i, idx := range indices {
		for j := 0; j < cols; j++ {
			out.Set(i, j, m.At(idx, j))
		}
	}
	return out
}
