package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func vec(values ...float64) *mat.VecDense {
	return mat.NewVecDense(len(values), values)
}

func TestMSE(t *testing.T) {
	t.Run("perfect prediction", func(t *testing.T) {
		got, err := MSE(vec(1, 2, 3), vec(1, 2, 3))
		require.NoError(t, err)
		assert.Equal(t, 0.0, got)
	})

	t.Run("known value", func(t *testing.T) {
		got, err := MSE(vec(1, 2, 3), vec(2, 2, 5))
		require.NoError(t, err)
		assert.InDelta(t, 5.0/3.0, got, 1e-12)
	})

	t.Run("length mismatch", func(t *testing.T) {
		_, err := MSE(vec(1, 2), vec(1))
		assert.Error(t, err)
	})
}

func TestMSELargeInput(t *testing.T) {
	// Above the chunking threshold the reduction fans out across CPU cores;
	// a constant residual of 0.5 keeps every partial sum exact regardless of
	// accumulation order.
	n := 4 * parallelThreshold
	yTrue := make([]float64, n)
	yPred := make([]float64, n)
	for i := range yTrue {
		yTrue[i] = 2.0
		yPred[i] = 1.5
	}

	got, err := MSE(mat.NewVecDense(n, yTrue), mat.NewVecDense(n, yPred))
	require.NoError(t, err)
	assert.Equal(t, 0.25, got)

	mae, err := MAE(mat.NewVecDense(n, yTrue), mat.NewVecDense(n, yPred))
	require.NoError(t, err)
	assert.Equal(t, 0.5, mae)
}

func TestRMSE(t *testing.T) {
	got, err := RMSE(vec(0, 0), vec(3, 4))
	require.NoError(t, err)
	assert.InDelta(t, 3.5355339059327378, got, 1e-12)
}

func TestMAE(t *testing.T) {
	got, err := MAE(vec(1, 2, 3), vec(2, 0, 3))
	require.NoError(t, err)
	assert.InDelta(t, 1.0, got, 1e-12)
}

func TestR2(t *testing.T) {
	t.Run("perfect prediction", func(t *testing.T) {
		got, err := R2(vec(1, 2, 3), vec(1, 2, 3))
		require.NoError(t, err)
		assert.Equal(t, 1.0, got)
	})

	t.Run("mean prediction scores zero", func(t *testing.T) {
		got, err := R2(vec(1, 2, 3), vec(2, 2, 2))
		require.NoError(t, err)
		assert.InDelta(t, 0.0, got, 1e-12)
	})

	t.Run("constant target rejected", func(t *testing.T) {
		_, err := R2(vec(2, 2, 2), vec(1, 2, 3))
		assert.Error(t, err)
	})
}

func TestMSESlice(t *testing.T) {
	got, err := MSESlice([]float64{1, 2}, []float64{1, 4})
	require.NoError(t, err)
	assert.InDelta(t, 2.0, got, 1e-12)

	_, err = MSESlice(nil, nil)
	assert.Error(t, err)

	_, err = MSESlice([]float64{1}, []float64{1, 2})
	assert.Error(t, err)
}
