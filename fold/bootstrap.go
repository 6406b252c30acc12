package fold

import (
	"math/rand/v2"
	"sort"

	"github.com/crossfold/crossfold/pkg/errors"
)

// makeBootstrap draws cfg.V training samples of size n with replacement; each
// fold validates on its out-of-bag positions. A repetition that draws every
// unit leaves no validation data and fails with DegenerateFoldError; the
// caller decides whether to retry with another seed.
func makeBootstrap(n int, cfg Config) (Sequence, error) {
	v := cfg.folds()
	r := newRNG(cfg.Seed)

	var strataList []stratum
	if len(cfg.StratifyIDs) > 0 {
		strataList = strata(n, cfg.StratifyIDs)
		for _, s := range strataList {
			if len(s.positions) < v {
				errors.Warn(errors.NewImbalancedStrataWarning(s.id, len(s.positions), v))
			}
		}
	}

	folds := make(Sequence, v)
	for rep := 0; rep < v; rep++ {
		var train, validation []int
		if strataList != nil {
			for _, s := range strataList {
				t, oob := drawWithReplacement(units(len(s.positions), nil), r)
				for _, local := range t {
					train = append(train, s.positions[local])
				}
				for _, local := range oob {
					validation = append(validation, s.positions[local])
				}
			}
		} else {
			train, validation = drawWithReplacement(units(n, cfg.ClusterIDs), r)
		}

		if len(validation) == 0 {
			return nil, errors.NewDegenerateFoldError(Bootstrap.String(), rep+1, "validation")
		}
		sort.Ints(train)
		sort.Ints(validation)
		folds[rep] = New(rep+1, train, validation)
	}
	return folds, nil
}

// drawWithReplacement samples len(unitList) units uniformly with replacement.
// It returns the drawn positions (duplicates included, so resampled units
// carry their multiplicity into training) and the out-of-bag positions.
func drawWithReplacement(unitList [][]int, r *rand.Rand) (train, oob []int) {
	drawn := make([]bool, len(unitList))
	for d := 0; d < len(unitList); d++ {
		pick := r.IntN(len(unitList))
		drawn[pick] = true
		train = append(train, unitList[pick]...)
	}
	for u, hit := range drawn {
		if !hit {
			oob = append(oob, unitList[u]...)
		}
	}
	return train, oob
}
