// Package recommend picks the best single gauge for a target tension window.
package recommend

import (
	"math"

	"github.com/jamesainslie/strung/pkg/strung/catalog"
	"github.com/jamesainslie/strung/pkg/strung/tension"
	"github.com/jamesainslie/strung/pkg/strung/types"
)

// Recommend returns the catalog gauge of the given class whose tension at
// the given scale and frequency lands inside the target range, closest to
// the range midpoint. Ties go to the first candidate in ascending catalog
// order, i.e. the thinner string. When no gauge reaches the range at all,
// the gauge closest to the midpoint is returned regardless of membership,
// so the result is always usable; callers that care must re-check range
// membership themselves.
func Recommend(cat *catalog.Catalog, class types.StringClass, scale, freq float64, target types.Range) float64 {
	mid := target.Mid()

	bestIn, bestInErr := 0.0, math.Inf(1)
	bestAny, bestAnyErr := 0.0, math.Inf(1)

	for _, e := range cat.Entries(class) {
		t := tension.FromUnitWeight(e.UnitWeight, scale, freq)
		err := math.Abs(t - mid)
		if err < bestAnyErr {
			bestAny, bestAnyErr = e.Gauge, err
		}
		if target.Contains(t) && err < bestInErr {
			bestIn, bestInErr = e.Gauge, err
		}
	}
	if !math.IsInf(bestInErr, 1) {
		return bestIn
	}
	return bestAny
}

// InRange returns every catalog gauge of the class whose tension falls
// inside the target range, in ascending gauge order. The slice is empty for
// unreachable targets.
func InRange(cat *catalog.Catalog, class types.StringClass, scale, freq float64, target types.Range) []float64 {
	var out []float64
	for _, e := range cat.Entries(class) {
		if target.Contains(tension.FromUnitWeight(e.UnitWeight, scale, freq)) {
			out = append(out, e.Gauge)
		}
	}
	return out
}
