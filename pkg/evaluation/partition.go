package evaluation

import (
	da "github.com/lintang-b-s/routepredict/pkg/datastructure"
	"github.com/lintang-b-s/routepredict/pkg/util"
	"golang.org/x/exp/rand"
)

// Fold is the half-open index range [Start, End) of one held-out fold.
type Fold struct {
	Start, End int
}

func (f Fold) Len() int {
	return f.End - f.Start
}

func (f Fold) Contains(i int) bool {
	return i >= f.Start && i < f.End
}

// Partition splits n items into k contiguous, order-preserving folds whose sizes
// differ by at most one. Every index lands in exactly one fold.
func Partition(n, k int) []Fold {
	folds := make([]Fold, k)
	for i := 0; i < k; i++ {
		folds[i] = Fold{Start: i * n / k, End: (i + 1) * n / k}
	}
	return folds
}

// Order returns the corpus order used for partitioning: identity, or a permutation
// seeded by seed when shuffle is set.
func Order(n int, shuffle bool, seed uint64) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	if shuffle {
		rng := rand.New(rand.NewSource(seed))
		rng.Shuffle(n, func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})
	}
	return order
}

// Split cuts route after int(fraction*len(route)) arcs into the observed partial
// route and the expected continuation.
func Split(route da.Route, fraction float64) (da.Route, da.Route) {
	l := util.Min(util.Max(int(fraction*float64(len(route))), 0), len(route))
	return route[:l], route[l:]
}
