// Package errors provides error handling and the warning system for the whole
// project. It exposes structured error types for every failure mode of the
// cross-validation engine, each carrying a stack trace via cockroachdb/errors.
package errors

import (
	"fmt"
	"log"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	Global warning handling
//
// ===========================================================================
var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		// Default handler logs to standard error.
		log.Printf("crossfold-warning: %v\n", w)
	}
	// zerolog sink, installed lazily to avoid a circular import.
	zerologWarnFunc func(warning error)
)

// SetWarningHandler sets the library-wide warning handler. It controls how
// non-fatal advisories such as ShortWindowWarning are processed.
//
// Example:
//
//	errors.SetWarningHandler(func(w error) {
//	    // drop warnings
//	})
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// SetZerologWarnFunc installs a zerolog-backed warning sink.
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn emits a warning. When a zerolog sink is installed it is preferred;
// otherwise the plain handler runs.
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	if zerologWarnFunc != nil {
		zerologWarnFunc(w)
		return
	}

	if warningHandler != nil {
		warningHandler(w)
	}
}

// ===========================================================================
//
//	Warning types
//
// ===========================================================================

// ShortWindowWarning is emitted when a rolling-origin configuration leaves
// trailing observations that do not fill a complete validation window. The
// incomplete window is dropped, never emitted short.
type ShortWindowWarning struct {
	Remaining      int
	ValidationSize int
}

func (w *ShortWindowWarning) Error() string {
	return fmt.Sprintf("rolling-origin: %d trailing observations dropped (validation window is %d)",
		w.Remaining, w.ValidationSize)
}

// MarshalZerologObject adds structured warning fields to a zerolog event.
func (w *ShortWindowWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Int("remaining", w.Remaining).
		Int("validation_size", w.ValidationSize).
		Str("type", "ShortWindowWarning")
}

// NewShortWindowWarning creates a new ShortWindowWarning.
func NewShortWindowWarning(remaining, validationSize int) *ShortWindowWarning {
	return &ShortWindowWarning{Remaining: remaining, ValidationSize: validationSize}
}

// ImbalancedStrataWarning is emitted when a stratum is smaller than the fold
// count, so some folds receive no validation unit from that stratum.
type ImbalancedStrataWarning struct {
	Stratum string
	Size    int
	Folds   int
}

func (w *ImbalancedStrataWarning) Error() string {
	return fmt.Sprintf("stratum %q has %d members for %d folds; some folds hold none of it",
		w.Stratum, w.Size, w.Folds)
}

// MarshalZerologObject adds structured warning fields to a zerolog event.
func (w *ImbalancedStrataWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("stratum", w.Stratum).
		Int("size", w.Size).
		Int("folds", w.Folds).
		Str("type", "ImbalancedStrataWarning")
}

// NewImbalancedStrataWarning creates a new ImbalancedStrataWarning.
func NewImbalancedStrataWarning(stratum string, size, folds int) *ImbalancedStrataWarning {
	return &ImbalancedStrataWarning{Stratum: stratum, Size: size, Folds: folds}
}

// ===========================================================================
//
//	Structured error types
//
// ===========================================================================

// UnsupportedContainerError indicates the index resolver was given a
// container whose shape it cannot introspect.
type UnsupportedContainerError struct {
	Op   string
	Kind string
}

func (e *UnsupportedContainerError) Error() string {
	return fmt.Sprintf("crossfold: %s: unsupported container kind %s; want a slice, a gonum matrix, a Table, or a Subsetter", e.Op, e.Kind)
}

// MarshalZerologObject adds structured error fields to a zerolog event.
func (e *UnsupportedContainerError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("kind", e.Kind).
		Str("type", "UnsupportedContainerError")
}

// NewUnsupportedContainerError creates a new UnsupportedContainerError with a
// stack trace attached.
func NewUnsupportedContainerError(op, kind string) error {
	err := &UnsupportedContainerError{Op: op, Kind: kind}
	return errors.WithStack(err)
}

// DegenerateFoldError indicates a generated fold has an empty training or
// validation set where the scheme requires both to be non-empty. Typical for
// a bootstrap repetition that draws the full index set. Regeneration with a
// new seed is the caller's decision, never automatic.
type DegenerateFoldError struct {
	Scheme    string
	FoldIndex int
	Side      string // "training" or "validation"
}

func (e *DegenerateFoldError) Error() string {
	return fmt.Sprintf("crossfold: %s fold %d has an empty %s set", e.Scheme, e.FoldIndex, e.Side)
}

// MarshalZerologObject adds structured error fields to a zerolog event.
func (e *DegenerateFoldError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("scheme", e.Scheme).
		Int("fold_index", e.FoldIndex).
		Str("side", e.Side).
		Str("type", "DegenerateFoldError")
}

// NewDegenerateFoldError creates a new DegenerateFoldError with a stack
// trace attached.
func NewDegenerateFoldError(scheme string, foldIndex int, side string) error {
	err := &DegenerateFoldError{Scheme: scheme, FoldIndex: foldIndex, Side: side}
	return errors.WithStack(err)
}

// NoFoldBoundError indicates a fold-context accessor was called outside any
// bound scope. This is a programming error in the calling routine.
type NoFoldBoundError struct {
	Accessor string
}

func (e *NoFoldBoundError) Error() string {
	return fmt.Sprintf("crossfold: %s called with no fold bound; accessors only work inside a cross-validation routine", e.Accessor)
}

// MarshalZerologObject adds structured error fields to a zerolog event.
func (e *NoFoldBoundError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("accessor", e.Accessor).
		Str("type", "NoFoldBoundError")
}

// NewNoFoldBoundError creates a new NoFoldBoundError with a stack trace
// attached.
func NewNoFoldBoundError(accessor string) error {
	err := &NoFoldBoundError{Accessor: accessor}
	return errors.WithStack(err)
}

// InconsistentFieldsError indicates the per-fold result records handed to the
// combiner do not share one field-name set.
type InconsistentFieldsError struct {
	FoldIndex int
	Missing   []string
	Extra     []string
}

func (e *InconsistentFieldsError) Error() string {
	return fmt.Sprintf("crossfold: result record for fold %d is inconsistent with fold 1: missing %v, extra %v",
		e.FoldIndex, e.Missing, e.Extra)
}

// MarshalZerologObject adds structured error fields to a zerolog event.
func (e *InconsistentFieldsError) MarshalZerologObject(event *zerolog.Event) {
	event.Int("fold_index", e.FoldIndex).
		Strs("missing", e.Missing).
		Strs("extra", e.Extra).
		Str("type", "InconsistentFieldsError")
}

// NewInconsistentFieldsError creates a new InconsistentFieldsError with a
// stack trace attached.
func NewInconsistentFieldsError(foldIndex int, missing, extra []string) error {
	err := &InconsistentFieldsError{FoldIndex: foldIndex, Missing: missing, Extra: extra}
	return errors.WithStack(err)
}

// MergeShapeMismatchError indicates a later fold's result fragment is
// incompatible with the shape the merge strategy inferred from fold 1, for
// example a differing column set when stacking rows.
type MergeShapeMismatchError struct {
	Field     string
	FoldIndex int
	Strategy  string
	Reason    string
}

func (e *MergeShapeMismatchError) Error() string {
	return fmt.Sprintf("crossfold: cannot %s field %q at fold %d: %s", e.Strategy, e.Field, e.FoldIndex, e.Reason)
}

// MarshalZerologObject adds structured error fields to a zerolog event.
func (e *MergeShapeMismatchError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("field", e.Field).
		Int("fold_index", e.FoldIndex).
		Str("strategy", e.Strategy).
		Str("reason", e.Reason).
		Str("type", "MergeShapeMismatchError")
}

// NewMergeShapeMismatchError creates a new MergeShapeMismatchError with a
// stack trace attached.
func NewMergeShapeMismatchError(field string, foldIndex int, strategy, reason string) error {
	err := &MergeShapeMismatchError{Field: field, FoldIndex: foldIndex, Strategy: strategy, Reason: reason}
	return errors.WithStack(err)
}

// ValidationError indicates a fold configuration parameter failed validation.
type ValidationError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("crossfold: validation failed for parameter '%s': %s (got: %v)", e.ParamName, e.Reason, e.Value)
}

// MarshalZerologObject adds structured error fields to a zerolog event.
func (e *ValidationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("param_name", e.ParamName).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "ValidationError")
}

// NewValidationError creates a new ValidationError with a stack trace
// attached.
func NewValidationError(param, reason string, value interface{}) error {
	err := &ValidationError{ParamName: param, Reason: reason, Value: value}
	return errors.WithStack(err)
}

// RoutineError wraps a failure returned (or panicked) by a user routine,
// recording which fold triggered it. The executor propagates it verbatim and
// cancels the remaining folds.
type RoutineError struct {
	FoldIndex int
	Err       error
}

func (e *RoutineError) Error() string {
	return fmt.Sprintf("crossfold: routine failed on fold %d: %v", e.FoldIndex, e.Err)
}

func (e *RoutineError) Unwrap() error {
	return e.Err
}

// MarshalZerologObject adds structured error fields to a zerolog event.
func (e *RoutineError) MarshalZerologObject(event *zerolog.Event) {
	event.Int("fold_index", e.FoldIndex).
		AnErr("cause", e.Err).
		Str("type", "RoutineError")
}

// NewRoutineError creates a new RoutineError with a stack trace attached.
func NewRoutineError(foldIndex int, err error) error {
	routineErr := &RoutineError{FoldIndex: foldIndex, Err: err}
	return errors.WithStack(routineErr)
}

// IndexRangeError indicates an index passed to the resolver lies outside the
// container's bounds.
type IndexRangeError struct {
	Op    string
	Index int
	Size  int
}

func (e *IndexRangeError) Error() string {
	return fmt.Sprintf("crossfold: %s: index %d out of range for container of size %d", e.Op, e.Index, e.Size)
}

// MarshalZerologObject adds structured error fields to a zerolog event.
func (e *IndexRangeError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("index", e.Index).
		Int("size", e.Size).
		Str("type", "IndexRangeError")
}

// NewIndexRangeError creates a new IndexRangeError with a stack trace
// attached.
func NewIndexRangeError(op string, index, size int) error {
	err := &IndexRangeError{Op: op, Index: index, Size: size}
	return errors.WithStack(err)
}

// ===========================================================================
//
//	cockroachdb/errors wrappers
//
// ===========================================================================

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap wraps an existing error with a message.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf wraps an existing error with a format string.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New creates a new error.
func New(message string) error {
	return errors.New(message)
}

// Newf creates a new formatted error.
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack annotates an error with a stack trace.
func WithStack(err error) error {
	return errors.WithStack(err)
}

// ===========================================================================
//
//	Common sentinel errors
//
// ===========================================================================

var (
	// ErrEmptyDataset is returned when fold generation is asked to
	// partition zero observations.
	ErrEmptyDataset = New("empty dataset")

	// ErrNoFolds is returned when an executor or combiner receives an
	// empty fold or record sequence.
	ErrNoFolds = New("no folds")

	// ErrNilRoutine is returned when cross-validation is invoked without
	// a routine.
	ErrNilRoutine = New("nil routine")
)
