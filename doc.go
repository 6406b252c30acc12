// Package crossfold provides a generalized cross-validation engine for Go,
// designed to evaluate arbitrary analysis routines honestly out-of-sample.
//
// Crossfold decouples how data is split from what is done with each split and
// from how per-split outputs are combined. Any callable with the routine
// signature can be cross-validated; the engine treats it as a black box.
//
// # Features
//
// - Fold schemes: V-fold, resubstitution, bootstrap, rolling-origin
// - Stratified and clustered fold assignment
// - Sequential or parallel execution with fail-fast cancellation
// - Structural combination of heterogeneous per-fold results
// - Robust error handling with stack traces
//
// # Installation
//
// Install crossfold using go get:
//
//	go get github.com/crossfold/crossfold
//
// # Quick Start
//
// Cross-validate a squared-error routine over 8 folds:
//
//	package main
//
//	import (
//	    "context"
//	    "fmt"
//	    "log"
//
//	    "github.com/crossfold/crossfold/cv"
//	    "github.com/crossfold/crossfold/fold"
//	)
//
//	func main() {
//	    y := make([]float64, 32)
//	    for i := range y {
//	        y[i] = float64(i)
//	    }
//
//	    routine := func(ctx context.Context, f fold.Fold, data any) (cv.Record, error) {
//	        valid, err := f.ValidationOf(data)
//	        if err != nil {
//	            return nil, err
//	        }
//	        v := valid.([]float64)
//	        se := 0.0
//	        for _, x := range v {
//	            se += x * x
//	        }
//	        return cv.Record{"se": se}, nil
//	    }
//
//	    combined, err := cv.Run(context.Background(), y, fold.Config{Scheme: fold.VFold, V: 8}, routine)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println("per-fold se:", combined["se"])
//	}
//
// # Packages
//
// The library is organized into several packages:
//
//   - fold: fold records, fold generators, and the fold context
//   - cv: the cross-validation executor and result combiner
//   - dataset: container abstraction and index resolution
//   - metrics: regression metrics for scoring routines
//   - core/parallel: the parallel execution backend
//   - pkg/errors: structured error types with stack traces
//   - pkg/log: structured logging for cross-validation runs
package crossfold
