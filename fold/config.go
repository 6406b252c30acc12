package fold

import (
	"github.com/crossfold/crossfold/pkg/errors"
)

// Scheme selects a partitioning algorithm.
type Scheme int

const (
	// VFold partitions positions into V nearly-equal validation blocks;
	// each fold trains on the complement of its block.
	VFold Scheme = iota

	// Resubstitution produces a single fold that trains and validates on
	// the full index set, reproducing naive in-sample error.
	Resubstitution

	// Bootstrap draws V training samples of size n with replacement;
	// validation is the out-of-bag remainder.
	Bootstrap

	// RollingOrigin produces time-respecting folds where training always
	// precedes validation and the origin advances each fold.
	RollingOrigin
)

// String returns the scheme name used in errors and logs.
func (s Scheme) String() string {
	switch s {
	case VFold:
		return "vfold"
	case Resubstitution:
		return "resubstitution"
	case Bootstrap:
		return "bootstrap"
	case RollingOrigin:
		return "rolling_origin"
	default:
		return "unknown"
	}
}

// DefaultV is the fold count used when Config.V is left zero.
const DefaultV = 10

// Config parameterizes fold generation. The zero value is a 10-fold V-fold
// configuration with seed 0.
type Config struct {
	// Scheme is the partitioning algorithm.
	Scheme Scheme

	// V is the number of folds (V-fold) or repetitions (bootstrap).
	// Must be at least 2; zero means DefaultV.
	V int

	// Seed makes shuffles and bootstrap draws reproducible.
	Seed int64

	// StratifyIDs, when non-empty, is a length-n grouping vector whose
	// proportions are balanced across folds. Assignment runs
	// independently within each stratum and the per-stratum folds are
	// merged.
	StratifyIDs []string

	// ClusterIDs, when non-empty, is a length-n grouping vector whose
	// members must land in the same fold. Assignment operates on
	// distinct cluster ids instead of individual positions.
	ClusterIDs []string

	// FirstWindow is the initial training size for rolling-origin.
	FirstWindow int

	// ValidationSize is the validation window length for rolling-origin.
	ValidationSize int

	// Step is how far the origin advances per fold. Zero means
	// ValidationSize.
	Step int

	// Sliding keeps the training window at a fixed FirstWindow length
	// instead of expanding from the first observation.
	Sliding bool
}

// folds returns V with its default applied.
func (c Config) folds() int {
	if c.V == 0 {
		return DefaultV
	}
	return c.V
}

// validate checks the configuration against a dataset of size n.
func (c Config) validate(n int) error {
	if n <= 0 {
		return errors.WithStack(errors.ErrEmptyDataset)
	}
	if len(c.StratifyIDs) > 0 && len(c.StratifyIDs) != n {
		return errors.NewValidationError("stratify_ids",
			"length must match dataset size", len(c.StratifyIDs))
	}
	if len(c.ClusterIDs) > 0 && len(c.ClusterIDs) != n {
		return errors.NewValidationError("cluster_ids",
			"length must match dataset size", len(c.ClusterIDs))
	}
	if len(c.StratifyIDs) > 0 && len(c.ClusterIDs) > 0 {
		return errors.NewValidationError("cluster_ids",
			"cannot combine clustering with stratification", nil)
	}

	switch c.Scheme {
	case VFold, Bootstrap:
		if v := c.folds(); v < 2 {
			return errors.NewValidationError("v", "must be at least 2", c.V)
		}
	case Resubstitution:
		// No parameters.
	case RollingOrigin:
		if len(c.ClusterIDs) > 0 {
			// Interaction with temporal ordering is unspecified
			// upstream; rejected until it is.
			return errors.NewValidationError("cluster_ids",
				"clustering is not supported with rolling-origin", nil)
		}
		if len(c.StratifyIDs) > 0 {
			return errors.NewValidationError("stratify_ids",
				"stratification is not supported with rolling-origin", nil)
		}
		if c.FirstWindow < 1 {
			return errors.NewValidationError("first_window",
				"must be at least 1", c.FirstWindow)
		}
		if c.ValidationSize < 1 {
			return errors.NewValidationError("validation_size",
				"must be at least 1", c.ValidationSize)
		}
		if c.Step < 0 {
			return errors.NewValidationError("step",
				"must be non-negative", c.Step)
		}
		if c.FirstWindow+c.ValidationSize > n {
			return errors.NewValidationError("first_window",
				"no room for one full validation window", c.FirstWindow)
		}
	default:
		return errors.NewValidationError("scheme", "unknown scheme", int(c.Scheme))
	}
	return nil
}
