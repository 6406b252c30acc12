package cv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crossfold/crossfold/dataset"
	"github.com/crossfold/crossfold/pkg/errors"
)

func oneRowTable(t *testing.T, columns []string, row []float64) *dataset.Table {
	t.Helper()
	tbl, err := dataset.NewTableFromRows(columns, [][]float64{row})
	require.NoError(t, err)
	return tbl
}

func TestCombineScalars(t *testing.T) {
	records := []Record{
		{"mse": 0.5, "n": 10},
		{"mse": 0.7, "n": 10},
		{"mse": 0.6, "n": 12},
	}

	combined, err := Combine(records, nil)
	require.NoError(t, err)

	assert.Equal(t, []float64{0.5, 0.7, 0.6}, combined["mse"])
	assert.Equal(t, []float64{10, 10, 12}, combined["n"])
}

func TestCombineFloatSlices(t *testing.T) {
	records := []Record{
		{"pred": []float64{1, 2}},
		{"pred": []float64{3}},
		{"pred": []float64{4, 5, 6}},
	}

	combined, err := Combine(records, nil)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6}, combined["pred"])
}

func TestCombineStacksTables(t *testing.T) {
	columns := []string{"intercept", "slope"}
	var records []Record
	for i := 1; i <= 4; i++ {
		records = append(records, Record{
			"coefs": oneRowTable(t, columns, []float64{float64(i), float64(i) * 2}),
		})
	}

	combined, err := Combine(records, nil)
	require.NoError(t, err)

	stacked, ok := combined["coefs"].(*dataset.Table)
	require.True(t, ok)
	assert.Equal(t, 4, stacked.Len())
	assert.Equal(t, columns, stacked.Columns())
	// Rows in fold order.
	assert.Equal(t, []float64{1, 2}, stacked.Row(0))
	assert.Equal(t, []float64{4, 8}, stacked.Row(3))
}

func TestCombineFoldColumn(t *testing.T) {
	var records []Record
	for i := 1; i <= 3; i++ {
		records = append(records, Record{
			"scores": oneRowTable(t, []string{"rmse"}, []float64{float64(i) / 10}),
		})
	}

	combined, err := Combine(records, nil, WithFoldColumn("fold"))
	require.NoError(t, err)

	stacked := combined["scores"].(*dataset.Table)
	assert.Equal(t, []string{"rmse", "fold"}, stacked.Columns())

	foldCol, err := stacked.Column("fold")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, foldCol)
}

func TestCombineCollectFallback(t *testing.T) {
	records := []Record{
		{"model": "m1"},
		{"model": "m2"},
	}

	combined, err := Combine(records, nil)
	require.NoError(t, err)
	assert.Equal(t, []any{"m1", "m2"}, combined["model"])
}

func TestCombineOverride(t *testing.T) {
	// Force scalars to be collected instead of concatenated.
	records := []Record{
		{"mse": 0.5},
		{"mse": 0.7},
	}

	combined, err := Combine(records, map[string]MergeStrategy{"mse": Collect})
	require.NoError(t, err)
	assert.Equal(t, []any{0.5, 0.7}, combined["mse"])
}

func TestCombineUnknownOverrideField(t *testing.T) {
	records := []Record{{"mse": 0.5}}

	_, err := Combine(records, map[string]MergeStrategy{"rmse": Concat})
	var validation *errors.ValidationError
	require.True(t, errors.As(err, &validation))
}

func TestCombineSingleRecordIdempotence(t *testing.T) {
	tbl := oneRowTable(t, []string{"a"}, []float64{7})
	records := []Record{{
		"scalar": 1.5,
		"table":  tbl,
		"other":  "opaque",
	}}

	combined, err := Combine(records, nil)
	require.NoError(t, err)

	// Each field equals the original, reshaped per strategy only.
	assert.Equal(t, []float64{1.5}, combined["scalar"])
	stacked := combined["table"].(*dataset.Table)
	assert.Equal(t, 1, stacked.Len())
	assert.Equal(t, []float64{7}, stacked.Row(0))
	assert.Equal(t, []any{"opaque"}, combined["other"])
}

func TestCombineInconsistentFields(t *testing.T) {
	records := []Record{
		{"mse": 0.5, "rmse": 0.7},
		{"mse": 0.6, "mae": 0.2},
	}

	_, err := Combine(records, nil)
	var inconsistent *errors.InconsistentFieldsError
	require.True(t, errors.As(err, &inconsistent))
	assert.Equal(t, 2, inconsistent.FoldIndex)
	assert.Equal(t, []string{"rmse"}, inconsistent.Missing)
	assert.Equal(t, []string{"mae"}, inconsistent.Extra)
}

func TestCombineShapeMismatch(t *testing.T) {
	t.Run("column set drift", func(t *testing.T) {
		records := []Record{
			{"coefs": oneRowTable(t, []string{"a", "b"}, []float64{1, 2})},
			{"coefs": oneRowTable(t, []string{"a", "c"}, []float64{3, 4})},
		}

		_, err := Combine(records, nil)
		var mismatch *errors.MergeShapeMismatchError
		require.True(t, errors.As(err, &mismatch))
		assert.Equal(t, "coefs", mismatch.Field)
		assert.Equal(t, 2, mismatch.FoldIndex)
	})

	t.Run("non-numeric under concat", func(t *testing.T) {
		records := []Record{
			{"mse": 0.5},
			{"mse": "oops"},
		}

		_, err := Combine(records, nil)
		var mismatch *errors.MergeShapeMismatchError
		require.True(t, errors.As(err, &mismatch))
		assert.Equal(t, 2, mismatch.FoldIndex)
	})

	t.Run("non-table under stack", func(t *testing.T) {
		records := []Record{
			{"coefs": oneRowTable(t, []string{"a"}, []float64{1})},
			{"coefs": 3.0},
		}

		_, err := Combine(records, nil)
		var mismatch *errors.MergeShapeMismatchError
		require.True(t, errors.As(err, &mismatch))
	})
}

func TestCombineEmpty(t *testing.T) {
	_, err := Combine(nil, nil)
	assert.True(t, errors.Is(err, errors.ErrNoFolds))
}

func TestSummarize(t *testing.T) {
	t.Run("mean and std", func(t *testing.T) {
		s, err := Summarize([]float64{1, 2, 3, 4})
		require.NoError(t, err)
		assert.InDelta(t, 2.5, s.Mean, 1e-12)
		assert.InDelta(t, 1.2909944487358056, s.Std, 1e-12)
		assert.Equal(t, 4, s.N)
	})

	t.Run("single value has zero std", func(t *testing.T) {
		s, err := Summarize([]float64{5})
		require.NoError(t, err)
		assert.Equal(t, 5.0, s.Mean)
		assert.Equal(t, 0.0, s.Std)
	})

	t.Run("wrong type", func(t *testing.T) {
		_, err := Summarize("not numbers")
		assert.Error(t, err)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := Summarize([]float64{})
		assert.Error(t, err)
	})
}
