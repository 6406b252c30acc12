package fold

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crossfold/crossfold/pkg/errors"
)

func TestFoldImmutability(t *testing.T) {
	train := []int{0, 1, 2}
	validation := []int{3, 4}
	f := New(1, train, validation)

	// Mutating the inputs after construction changes nothing.
	train[0] = 99
	assert.Equal(t, []int{0, 1, 2}, f.Train())

	// Mutating an accessor's result changes nothing either.
	got := f.Validation()
	got[0] = 99
	assert.Equal(t, []int{3, 4}, f.Validation())

	assert.Equal(t, 1, f.Index())
	assert.Equal(t, 3, f.TrainSize())
	assert.Equal(t, 2, f.ValidationSize())
}

func TestFoldResolvesSubsets(t *testing.T) {
	data := []float64{10, 20, 30, 40, 50}
	f := New(1, []int{0, 1, 2}, []int{3, 4})

	train, err := f.TrainOf(data)
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 20, 30}, train)

	validation, err := f.ValidationOf(data)
	require.NoError(t, err)
	assert.Equal(t, []float64{40, 50}, validation)
}

func TestContextBinding(t *testing.T) {
	data := []float64{1, 2, 3, 4}
	f := New(2, []int{0, 1}, []int{2, 3})

	t.Run("accessors inside scope", func(t *testing.T) {
		err := WithFold(context.Background(), f, func(ctx context.Context) error {
			idx, err := Index(ctx)
			require.NoError(t, err)
			assert.Equal(t, 2, idx)

			train, err := Training(ctx, data)
			require.NoError(t, err)
			assert.Equal(t, []float64{1, 2}, train)

			validation, err := Validation(ctx, data)
			require.NoError(t, err)
			assert.Equal(t, []float64{3, 4}, validation)
			return nil
		})
		require.NoError(t, err)
	})

	t.Run("accessors outside scope fail", func(t *testing.T) {
		ctx := context.Background()

		_, err := Index(ctx)
		var unbound *errors.NoFoldBoundError
		require.True(t, errors.As(err, &unbound))

		_, err = Training(ctx, data)
		assert.Error(t, err)

		_, err = Validation(ctx, data)
		assert.Error(t, err)
	})

	t.Run("binding does not leak past the scope", func(t *testing.T) {
		ctx := context.Background()
		_ = WithFold(ctx, f, func(inner context.Context) error { return nil })

		_, err := Index(ctx)
		assert.Error(t, err)
	})

	t.Run("nested bindings are independent", func(t *testing.T) {
		outer := New(1, []int{0}, []int{1})
		inner := New(2, []int{2}, []int{3})

		err := WithFold(context.Background(), outer, func(octx context.Context) error {
			return WithFold(octx, inner, func(ictx context.Context) error {
				idx, err := Index(ictx)
				require.NoError(t, err)
				assert.Equal(t, 2, idx)

				idx, err = Index(octx)
				require.NoError(t, err)
				assert.Equal(t, 1, idx)
				return nil
			})
		})
		require.NoError(t, err)
	})
}

func TestContextConcurrentBindings(t *testing.T) {
	// Each goroutine must only ever observe its own fold.
	done := make(chan error, 8)
	for i := 1; i <= 8; i++ {
		go func(ordinal int) {
			f := New(ordinal, []int{0}, []int{1})
			done <- WithFold(context.Background(), f, func(ctx context.Context) error {
				for rep := 0; rep < 100; rep++ {
					idx, err := Index(ctx)
					if err != nil {
						return err
					}
					if idx != ordinal {
						return errors.Newf("saw fold %d, want %d", idx, ordinal)
					}
				}
				return nil
			})
		}(i)
	}
	for i := 0; i < 8; i++ {
		require.NoError(t, <-done)
	}
}
