// Package log defines standard attribute keys for cross-validation operations.
//
// Using these keys consistently across the engine enables filtering a run's
// logs by fold, scheme, or phase. The keys follow a hierarchical naming
// convention (e.g. "fold.index", "data.samples").

package log

// Run and component context.
const (
	// ComponentKey identifies which package is performing the operation.
	// Examples: "cv.executor", "fold.generate", "cv.combine"
	ComponentKey = "component"

	// SchemeKey names the partitioning scheme in use.
	// Examples: "vfold", "bootstrap", "rolling_origin", "resubstitution"
	SchemeKey = "cv.scheme"

	// ConcurrencyKey records the worker count of a run (1 for sequential).
	ConcurrencyKey = "cv.concurrency"

	// PhaseKey indicates the phase of a cross-validation run.
	// Examples: "generate", "execute", "combine"
	PhaseKey = "cv.phase"
)

// Fold context.
const (
	// FoldIndexKey is the 1-based ordinal of the fold being processed.
	FoldIndexKey = "fold.index"

	// FoldCountKey is the total number of folds in the sequence.
	FoldCountKey = "fold.count"

	// TrainSizeKey is the number of training positions in a fold.
	TrainSizeKey = "fold.train_size"

	// ValidationSizeKey is the number of validation positions in a fold.
	ValidationSizeKey = "fold.validation_size"
)

// Data shape.
const (
	// SamplesKey indicates the number of observations in the dataset.
	SamplesKey = "data.samples"

	// FieldsKey lists the result-record field names seen by the combiner.
	FieldsKey = "result.fields"

	// StrategyKey names the merge strategy chosen for a field.
	StrategyKey = "merge.strategy"
)

// Performance.
const (
	// DurationMsKey records elapsed wall time in milliseconds.
	DurationMsKey = "duration_ms"
)
