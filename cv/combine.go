package cv

import (
	"sort"

	"github.com/crossfold/crossfold/dataset"
	"github.com/crossfold/crossfold/pkg/errors"
	"github.com/crossfold/crossfold/pkg/log"
)

// MergeStrategy is the rule used to aggregate one field's per-fold fragments
// into one combined value. The set is closed: strategy selection inspects
// the first fold's value, never arbitrary reflection.
type MergeStrategy int

const (
	// Auto infers a strategy from the first fold's value: Table
	// fragments stack, numeric scalars and slices concatenate, anything
	// else is collected.
	Auto MergeStrategy = iota

	// StackRows concatenates tabular fragments row-wise, in fold order,
	// all fragments sharing the first fragment's column set.
	StackRows

	// Concat flattens numeric scalars and []float64 fragments into one
	// []float64, in fold order.
	Concat

	// Collect keeps the per-fold values as a []any, one element per
	// fold. The fallback when no structural merge applies.
	Collect
)

// String returns the strategy name used in errors and logs.
func (s MergeStrategy) String() string {
	switch s {
	case Auto:
		return "auto"
	case StackRows:
		return "stack"
	case Concat:
		return "concat"
	case Collect:
		return "collect"
	default:
		return "unknown"
	}
}

// CombineOption configures result combination.
type CombineOption func(*combineOptions)

type combineOptions struct {
	foldColumn string
}

// WithFoldColumn makes StackRows append a column holding each row's source
// fold ordinal before stacking.
func WithFoldColumn(name string) CombineOption {
	return func(o *combineOptions) { o.foldColumn = name }
}

// Combine inverts a sequence of per-fold records into one combined record:
// per field, the per-fold values are gathered in fold order and merged with
// the override strategy if one is given, or an inferred one otherwise.
//
// All records must share a single field-name set; a fragment whose shape is
// incompatible with its field's strategy fails the whole call. No partial
// combination is ever returned.
func Combine(records []Record, overrides map[string]MergeStrategy, opts ...CombineOption) (Record, error) {
	if len(records) == 0 {
		return nil, errors.WithStack(errors.ErrNoFolds)
	}

	o := combineOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	fields := fieldNames(records[0])
	if err := checkHomogeneous(records, fields); err != nil {
		return nil, err
	}
	for field := range overrides {
		if _, ok := records[0][field]; !ok {
			return nil, errors.NewValidationError("overrides",
				"no such result field", field)
		}
	}

	logger := log.GetLoggerWithName("cv.combine")
	combined := make(Record, len(fields))
	for _, field := range fields {
		values := make([]any, len(records))
		for i, rec := range records {
			values[i] = rec[field]
		}

		strategy := overrides[field]
		if strategy == Auto {
			strategy = infer(values[0])
		}
		logger.Debug("merging field",
			"field", field,
			log.StrategyKey, strategy.String(),
		)

		merged, err := apply(field, strategy, values, o)
		if err != nil {
			return nil, err
		}
		combined[field] = merged
	}
	return combined, nil
}

// fieldNames returns a record's field names sorted for deterministic
// iteration.
func fieldNames(rec Record) []string {
	names := make([]string, 0, len(rec))
	for name := range rec {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// checkHomogeneous verifies every record carries exactly the first record's
// field-name set.
func checkHomogeneous(records []Record, fields []string) error {
	for i, rec := range records[1:] {
		var missing, extra []string
		for _, name := range fields {
			if _, ok := rec[name]; !ok {
				missing = append(missing, name)
			}
		}
		for name := range rec {
			if _, ok := records[0][name]; !ok {
				extra = append(extra, name)
			}
		}
		if len(missing) > 0 || len(extra) > 0 {
			sort.Strings(extra)
			return errors.NewInconsistentFieldsError(i+2, missing, extra)
		}
	}
	return nil
}

// infer selects the strategy for a field from its first fold's value.
func infer(first any) MergeStrategy {
	switch first.(type) {
	case *dataset.Table:
		return StackRows
	case []float64:
		return Concat
	default:
		if _, ok := toFloat(first); ok {
			return Concat
		}
		return Collect
	}
}

// apply merges one field's per-fold values under the chosen strategy.
func apply(field string, strategy MergeStrategy, values []any, o combineOptions) (any, error) {
	switch strategy {
	case StackRows:
		return stackRows(field, values, o.foldColumn)
	case Concat:
		return concat(field, values)
	case Collect:
		out := make([]any, len(values))
		copy(out, values)
		return out, nil
	default:
		return nil, errors.NewValidationError("strategy", "unknown merge strategy", int(strategy))
	}
}

// stackRows merges tabular fragments row-wise, optionally tagging each row
// with its source fold ordinal first.
func stackRows(field string, values []any, foldColumn string) (any, error) {
	tables := make([]*dataset.Table, len(values))
	var first *dataset.Table
	for i, v := range values {
		tbl, ok := v.(*dataset.Table)
		if !ok {
			return nil, errors.NewMergeShapeMismatchError(field, i+1,
				StackRows.String(), "fragment is not a Table")
		}
		// Shape check runs on the raw fragments, before any tagging.
		if i == 0 {
			first = tbl
		} else if !first.SameColumns(tbl) {
			return nil, errors.NewMergeShapeMismatchError(field, i+1,
				StackRows.String(), "column set differs from fold 1")
		}

		if foldColumn != "" {
			tag := make([]float64, tbl.Len())
			for r := range tag {
				tag[r] = float64(i + 1)
			}
			tagged, err := tbl.WithColumn(foldColumn, tag)
			if err != nil {
				return nil, errors.NewMergeShapeMismatchError(field, i+1,
					StackRows.String(), err.Error())
			}
			tbl = tagged
		}
		tables[i] = tbl
	}

	stacked, err := dataset.Stack(tables)
	if err != nil {
		return nil, errors.Wrap(err, "stacking fold fragments")
	}
	return stacked, nil
}

// concat flattens numeric scalars and []float64 fragments into one
// []float64, fold order preserved.
func concat(field string, values []any) (any, error) {
	var out []float64
	for i, v := range values {
		switch x := v.(type) {
		case []float64:
			out = append(out, x...)
		default:
			f, ok := toFloat(v)
			if !ok {
				return nil, errors.NewMergeShapeMismatchError(field, i+1,
					Concat.String(), "fragment is not numeric")
			}
			out = append(out, f)
		}
	}
	return out, nil
}

// toFloat widens any supported numeric scalar to float64.
func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	default:
		return 0, false
	}
}
