package fold

import (
	"github.com/crossfold/crossfold/pkg/errors"
)

// makeRollingOrigin produces chronological folds for time-ordered data.
// Training covers [start, origin), where start is 0 in expanding mode or
// origin-FirstWindow in sliding mode, and validation covers
// [origin, origin+ValidationSize). The origin advances Step positions per
// fold. A trailing window that cannot be filled completely is dropped, with
// a ShortWindowWarning rather than a short fold.
func makeRollingOrigin(n int, cfg Config) Sequence {
	step := cfg.Step
	if step == 0 {
		step = cfg.ValidationSize
	}

	var folds Sequence
	origin := cfg.FirstWindow
	for origin+cfg.ValidationSize <= n {
		start := 0
		if cfg.Sliding {
			start = origin - cfg.FirstWindow
		}

		train := spanPositions(start, origin)
		validation := spanPositions(origin, origin+cfg.ValidationSize)
		folds = append(folds, New(len(folds)+1, train, validation))

		origin += step
	}

	if remaining := n - origin; remaining > 0 {
		errors.Warn(errors.NewShortWindowWarning(remaining, cfg.ValidationSize))
	}
	return folds
}

// spanPositions returns the positions of the half-open interval [lo, hi).
func spanPositions(lo, hi int) []int {
	out := make([]int, hi-lo)
	for i := range out {
		out[i] = lo + i
	}
	return out
}
