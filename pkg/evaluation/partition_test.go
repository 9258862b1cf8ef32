package evaluation

import (
	"slices"
	"testing"

	da "github.com/lintang-b-s/routepredict/pkg/datastructure"
	"github.com/stretchr/testify/assert"
)

func TestPartition(t *testing.T) {
	testCases := []struct {
		name string
		n, k int
		want []Fold
	}{
		{
			name: "uneven folds",
			n:    10,
			k:    3,
			want: []Fold{{0, 3}, {3, 6}, {6, 10}},
		},
		{
			name: "even folds",
			n:    4,
			k:    2,
			want: []Fold{{0, 2}, {2, 4}},
		},
		{
			name: "more folds than routes",
			n:    2,
			k:    4,
			want: []Fold{{0, 0}, {0, 1}, {1, 1}, {1, 2}},
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			folds := Partition(tt.n, tt.k)
			assert.Equal(t, tt.want, folds)

			for i := 0; i < tt.n; i++ {
				owners := 0
				for _, f := range folds {
					if f.Contains(i) {
						owners++
					}
				}
				assert.Equal(t, 1, owners, "index %d", i)
			}
		})
	}
}

func TestOrder(t *testing.T) {
	assert.Equal(t, []int{0, 1, 2, 3, 4}, Order(5, false, 7))

	shuffled := Order(50, true, 7)
	assert.Equal(t, shuffled, Order(50, true, 7))
	sorted := slices.Clone(shuffled)
	slices.Sort(sorted)
	assert.Equal(t, Order(50, false, 0), sorted)
}

func TestSplit(t *testing.T) {
	r := make(da.Route, 8)
	for i := range r {
		r[i] = da.NewUnorientedArc(int64(i))
	}

	partial, expected := Split(r, 0.25)
	assert.Equal(t, r[:2], partial)
	assert.Equal(t, r[2:], expected)

	partial, expected = Split(r[:3], 0.25)
	assert.Empty(t, partial)
	assert.Len(t, expected, 3)

	// fractions outside [0, 1] are clamped to the route
	partial, expected = Split(r, 1.5)
	assert.Len(t, partial, 8)
	assert.Empty(t, expected)
	partial, expected = Split(r, -0.5)
	assert.Empty(t, partial)
	assert.Len(t, expected, 8)
}
