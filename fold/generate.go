package fold

import (
	"math/rand/v2"
	"sort"

	"github.com/crossfold/crossfold/pkg/errors"
	"github.com/crossfold/crossfold/pkg/log"
)

// Make generates the fold sequence for a dataset of size n under the given
// configuration. The dataset itself is not consulted; size is fixed for the
// duration of generation.
func Make(n int, cfg Config) (Sequence, error) {
	if err := cfg.validate(n); err != nil {
		return nil, err
	}

	log.GetLoggerWithName("fold.generate").Debug("generating folds",
		log.SchemeKey, cfg.Scheme.String(),
		log.SamplesKey, n,
	)

	switch cfg.Scheme {
	case VFold:
		return makeVFold(n, cfg)
	case Resubstitution:
		return makeResubstitution(n), nil
	case Bootstrap:
		return makeBootstrap(n, cfg)
	case RollingOrigin:
		return makeRollingOrigin(n, cfg), nil
	default:
		return nil, errors.NewValidationError("scheme", "unknown scheme", int(cfg.Scheme))
	}
}

// newRNG builds the reproducible generator all randomized schemes share.
func newRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
}

// units returns the assignable units of a dataset: one singleton per
// position, or one unit per distinct cluster id (order of first appearance)
// holding every position sharing that id.
func units(n int, clusterIDs []string) [][]int {
	if len(clusterIDs) == 0 {
		out := make([][]int, n)
		for i := range out {
			out[i] = []int{i}
		}
		return out
	}

	order := make([]string, 0)
	members := make(map[string][]int)
	for i, id := range clusterIDs {
		if _, ok := members[id]; !ok {
			order = append(order, id)
		}
		members[id] = append(members[id], i)
	}

	out := make([][]int, len(order))
	for i, id := range order {
		out[i] = members[id]
	}
	return out
}

// stratum is one group of positions sharing a stratify id.
type stratum struct {
	id        string
	positions []int
}

// strata partitions positions by stratum id, order of first appearance.
// With no stratify ids everything lands in one stratum.
func strata(n int, stratifyIDs []string) []stratum {
	if len(stratifyIDs) == 0 {
		all := make([]int, n)
		for i := range all {
			all[i] = i
		}
		return []stratum{{id: "", positions: all}}
	}

	order := make([]string, 0)
	members := make(map[string][]int)
	for i, id := range stratifyIDs {
		if _, ok := members[id]; !ok {
			order = append(order, id)
		}
		members[id] = append(members[id], i)
	}

	out := make([]stratum, len(order))
	for i, id := range order {
		out[i] = stratum{id: id, positions: members[id]}
	}
	return out
}

// assignBlocks shuffles the given units and deals them into v nearly-equal
// contiguous blocks. Block sizes differ by at most one; the first
// len(units) mod v blocks each take one extra unit. Returns the positions
// assigned to each block.
func assignBlocks(unitList [][]int, v int, r *rand.Rand) [][]int {
	shuffled := make([][]int, len(unitList))
	copy(shuffled, unitList)
	r.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	blocks := make([][]int, v)
	size := len(shuffled) / v
	remainder := len(shuffled) % v

	cursor := 0
	for b := 0; b < v; b++ {
		take := size
		if b < remainder {
			take++
		}
		for _, unit := range shuffled[cursor : cursor+take] {
			blocks[b] = append(blocks[b], unit...)
		}
		cursor += take
	}
	return blocks
}

// makeVFold implements the independent V-fold scheme, honoring clustering
// (assignment over distinct cluster ids) and stratification (independent
// assignment within each stratum, merged).
func makeVFold(n int, cfg Config) (Sequence, error) {
	v := cfg.folds()
	r := newRNG(cfg.Seed)

	validation := make([][]int, v)

	if len(cfg.StratifyIDs) > 0 {
		for _, s := range strata(n, cfg.StratifyIDs) {
			if len(s.positions) < v {
				errors.Warn(errors.NewImbalancedStrataWarning(s.id, len(s.positions), v))
			}
			blocks := assignBlocks(units(len(s.positions), nil), v, r)
			for b, block := range blocks {
				for _, local := range block {
					validation[b] = append(validation[b], s.positions[local])
				}
			}
		}
	} else {
		unitList := units(n, cfg.ClusterIDs)
		if v > len(unitList) {
			return nil, errors.NewValidationError("v",
				"exceeds number of assignable units", cfg.V)
		}
		validation = assignBlocks(unitList, v, r)
	}

	folds := make(Sequence, v)
	for b := 0; b < v; b++ {
		if len(validation[b]) == 0 {
			return nil, errors.NewDegenerateFoldError(VFold.String(), b+1, "validation")
		}
		sort.Ints(validation[b])
		folds[b] = New(b+1, complement(n, validation[b]), validation[b])
	}
	return folds, nil
}

// makeResubstitution produces the single in-sample fold.
func makeResubstitution(n int) Sequence {
	all := make([]int, n)
	for i := range all {
		all[i] = i
	}
	return Sequence{New(1, all, all)}
}

// complement returns the sorted positions of 0..n-1 not present in the
// sorted slice in.
func complement(n int, in []int) []int {
	member := make(map[int]bool, len(in))
	for _, idx := range in {
		member[idx] = true
	}
	out := make([]int, 0, n-len(in))
	for i := 0; i < n; i++ {
		if !member[i] {
			out = append(out, i)
		}
	}
	return out
}
