package fold

import (
	"context"

	"github.com/crossfold/crossfold/pkg/errors"
)

// The current fold travels in a context.Context value. Each routine
// invocation receives its own derived context, so concurrent invocations
// never observe each other's binding and the binding vanishes with the
// context on every exit path. There is no process-wide current fold.

type contextKey struct{}

// NewContext returns a context carrying f as the current fold.
func NewContext(ctx context.Context, f Fold) context.Context {
	return context.WithValue(ctx, contextKey{}, f)
}

// FromContext returns the fold bound to ctx, if any.
func FromContext(ctx context.Context) (Fold, bool) {
	f, ok := ctx.Value(contextKey{}).(Fold)
	return f, ok
}

// WithFold binds f for the duration of body. The binding is scoped to the
// derived context handed to body; it cannot leak past the call.
func WithFold(ctx context.Context, f Fold, body func(ctx context.Context) error) error {
	return body(NewContext(ctx, f))
}

// Index returns the 1-based ordinal of the bound fold. It fails with
// NoFoldBoundError outside a bound scope.
func Index(ctx context.Context) (int, error) {
	f, ok := FromContext(ctx)
	if !ok {
		return 0, errors.NewNoFoldBoundError("fold.Index")
	}
	return f.Index(), nil
}

// Training resolves the bound fold's training subset of a container. It
// fails with NoFoldBoundError outside a bound scope.
func Training(ctx context.Context, container any) (any, error) {
	f, ok := FromContext(ctx)
	if !ok {
		return nil, errors.NewNoFoldBoundError("fold.Training")
	}
	return f.TrainOf(container)
}

// Validation resolves the bound fold's validation subset of a container. It
// fails with NoFoldBoundError outside a bound scope.
func Validation(ctx context.Context, container any) (any, error) {
	f, ok := FromContext(ctx)
	if !ok {
		return nil, errors.NewNoFoldBoundError("fold.Validation")
	}
	return f.ValidationOf(container)
}
