package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeExecute(t *testing.T) {
	t.Run("no panic passes error through", func(t *testing.T) {
		want := New("plain failure")
		err := SafeExecute("op", func() error { return want })
		assert.True(t, Is(err, want))
	})

	t.Run("nil on success", func(t *testing.T) {
		err := SafeExecute("op", func() error { return nil })
		assert.NoError(t, err)
	})

	t.Run("panic becomes PanicError", func(t *testing.T) {
		err := SafeExecute("fold routine", func() error {
			panic("index out of range")
		})
		require.Error(t, err)

		var panicErr *PanicError
		require.True(t, As(err, &panicErr))
		assert.Equal(t, "fold routine", panicErr.Operation)
		assert.Equal(t, "index out of range", panicErr.PanicValue)
		assert.NotEmpty(t, panicErr.StackTrace)
	})
}

func TestRecoverWithExistingError(t *testing.T) {
	fn := func() (err error) {
		defer Recover(&err, "op")
		err = New("already failed")
		panic("then panicked")
	}

	err := fn()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "then panicked")
	assert.Contains(t, err.Error(), "already failed")
}
