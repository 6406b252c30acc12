package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDegenerateFoldError(t *testing.T) {
	err := NewDegenerateFoldError("bootstrap", 3, "validation")
	require.Error(t, err)

	var degenerate *DegenerateFoldError
	require.True(t, As(err, &degenerate))
	assert.Equal(t, "bootstrap", degenerate.Scheme)
	assert.Equal(t, 3, degenerate.FoldIndex)
	assert.Equal(t, "validation", degenerate.Side)
	assert.Contains(t, err.Error(), "fold 3")
	assert.Contains(t, err.Error(), "empty validation set")
}

func TestUnsupportedContainerError(t *testing.T) {
	err := NewUnsupportedContainerError("Resolve", "map[string]int")

	var unsupported *UnsupportedContainerError
	require.True(t, As(err, &unsupported))
	assert.Equal(t, "Resolve", unsupported.Op)
	assert.Contains(t, err.Error(), "map[string]int")
}

func TestNoFoldBoundError(t *testing.T) {
	err := NewNoFoldBoundError("Training")

	var unbound *NoFoldBoundError
	require.True(t, As(err, &unbound))
	assert.Equal(t, "Training", unbound.Accessor)
}

func TestInconsistentFieldsError(t *testing.T) {
	err := NewInconsistentFieldsError(2, []string{"rmse"}, []string{"mse"})

	var inconsistent *InconsistentFieldsError
	require.True(t, As(err, &inconsistent))
	assert.Equal(t, 2, inconsistent.FoldIndex)
	assert.Equal(t, []string{"rmse"}, inconsistent.Missing)
	assert.Equal(t, []string{"mse"}, inconsistent.Extra)
}

func TestMergeShapeMismatchError(t *testing.T) {
	err := NewMergeShapeMismatchError("coefs", 4, "stack", "column count 3 != 2")

	var mismatch *MergeShapeMismatchError
	require.True(t, As(err, &mismatch))
	assert.Equal(t, "coefs", mismatch.Field)
	assert.Equal(t, 4, mismatch.FoldIndex)
	assert.Contains(t, err.Error(), `field "coefs"`)
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("v", "must be at least 2", 1)

	var validation *ValidationError
	require.True(t, As(err, &validation))
	assert.Equal(t, "v", validation.ParamName)
	assert.Contains(t, err.Error(), "must be at least 2")
}

func TestRoutineErrorUnwrap(t *testing.T) {
	cause := New("boom")
	err := NewRoutineError(5, cause)

	var routine *RoutineError
	require.True(t, As(err, &routine))
	assert.Equal(t, 5, routine.FoldIndex)
	assert.True(t, Is(err, cause))
}

func TestWarningHandler(t *testing.T) {
	var captured error
	SetWarningHandler(func(w error) { captured = w })
	defer SetWarningHandler(func(w error) {})

	w := NewShortWindowWarning(7, 24)
	Warn(w)

	require.Error(t, captured)
	assert.Contains(t, captured.Error(), "7 trailing observations")
}

func TestZerologWarnFuncTakesPriority(t *testing.T) {
	var viaHandler, viaZerolog error
	SetWarningHandler(func(w error) { viaHandler = w })
	SetZerologWarnFunc(func(w error) { viaZerolog = w })
	defer func() {
		SetZerologWarnFunc(nil)
		SetWarningHandler(func(w error) {})
	}()

	w := NewImbalancedStrataWarning("rare", 2, 10)
	Warn(w)

	assert.Nil(t, viaHandler)
	require.Error(t, viaZerolog)
}

func TestWrapPreservesTypedError(t *testing.T) {
	err := Wrap(NewDegenerateFoldError("bootstrap", 1, "validation"), "generating folds")

	var degenerate *DegenerateFoldError
	assert.True(t, As(err, &degenerate))
	assert.Contains(t, err.Error(), "generating folds")
}
