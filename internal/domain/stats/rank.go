package stats

import (
	"sort"

	"github.com/nytrack/puzzleboard/internal/domain/game"
	"github.com/nytrack/puzzleboard/internal/domain/query"
)

// Ranker orders player aggregates for one variant. Lower key values rank
// better for every supported variant: fewer attempts, fewer hints, a lower
// rating.
type Ranker struct {
	cfg game.Config
}

// NewRanker creates a ranker for the variant.
func NewRanker(cfg game.Config) *Ranker {
	return &Ranker{cfg: cfg}
}

// Rank sorts the aggregates best-first and assigns dense ranks with
// tie-sharing, mutating the Rank field in place and returning the sorted
// slice.
//
// Bounded windows sort on the adjusted mean so absence costs a worst-case
// score; all-time sorts on the raw mean, where a single historic miss should
// not drown years of play. Ties on the primary key fall through the
// variant's tie-break features, and two players share a rank only when
// their full stat tuples are equal.
func (r *Ranker) Rank(list []PlayerStats, queryType query.Type) []PlayerStats {
	sort.SliceStable(list, func(i, j int) bool {
		return r.less(list[i], list[j], queryType)
	})

	for i := range list {
		if i > 0 && tupleEqual(list[i].StatList(), list[i-1].StatList()) {
			list[i].Rank = list[i-1].Rank
		} else {
			list[i].Rank = i + 1
		}
	}
	return list
}

func (r *Ranker) less(a, b PlayerStats, queryType query.Type) bool {
	pa, pb := r.primary(a, queryType), r.primary(b, queryType)
	if pa != pb {
		return pa < pb
	}
	for _, name := range r.cfg.TieBreakers {
		i := r.cfg.FeatureIndex(name)
		if i < 0 {
			continue
		}
		if a.FeatureMeans[i] != b.FeatureMeans[i] {
			return a.FeatureMeans[i] < b.FeatureMeans[i]
		}
	}
	return false
}

func (r *Ranker) primary(s PlayerStats, queryType query.Type) float64 {
	if queryType == query.AllTime {
		return s.RawMean
	}
	return s.AdjMean
}

func tupleEqual(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
