package metrics

import (
	da "github.com/lintang-b-s/routepredict/pkg/datastructure"
)

// Jaccard. |a ∩ b| / |a ∪ b| over the arc sets of a and b, 1 when both are empty
func Jaccard(a, b da.Route) float64 {
	setA := a.IDSet()
	setB := b.IDSet()

	intersection := 0
	for id := range setA {
		if _, ok := setB[id]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 1.0
	}
	return float64(intersection) / float64(union)
}
