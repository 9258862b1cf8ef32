package spatialindex

import (
	"testing"

	da "github.com/lintang-b-s/routepredict/pkg/datastructure"
	"github.com/lintang-b-s/routepredict/pkg/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSearchWithinRadius(t *testing.T) {
	endpoints := da.RoadEndpoints{
		// east-west road on the equator
		1: {geo.NewCoordinate(0, 0), geo.NewCoordinate(0, 0.01)},
		// parallel road ~555 m north
		2: {geo.NewCoordinate(0.005, 0), geo.NewCoordinate(0.005, 0.01)},
		// far away
		3: {geo.NewCoordinate(1, 1), geo.NewCoordinate(1, 1.01)},
	}
	rt := NewRtree()
	rt.Build(endpoints, 0.05, zap.NewNop())
	require.Equal(t, 3, rt.Len())

	testCases := []struct {
		name   string
		lat    float64
		lon    float64
		radius float64
		limit  int
		want   []int64
	}{
		{name: "closest road only", lat: 0.0005, lon: 0.005, radius: 0.1, want: []int64{1}},
		{name: "both parallel roads, closest first", lat: 0.004, lon: 0.005, radius: 1, want: []int64{2, 1}},
		{name: "limit", lat: 0.004, lon: 0.005, radius: 1, limit: 1, want: []int64{2}},
		{name: "nothing nearby", lat: -1, lon: -1, radius: 1, want: []int64{}},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			got := rt.SearchWithinRadius(tt.lat, tt.lon, tt.radius, tt.limit)
			ids := make([]int64, len(got))
			for i, c := range got {
				ids[i] = c.RoadID
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}
