package preprocessor

import (
	"slices"
	"testing"

	"github.com/lintang-b-s/routepredict/pkg"
	da "github.com/lintang-b-s/routepredict/pkg/datastructure"
	"github.com/lintang-b-s/routepredict/pkg/geo"
	"github.com/lintang-b-s/routepredict/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// roads 1..5 lie on the equator, road i runs from lon i*0.01 to lon (i+1)*0.01
func equatorEndpoints() da.RoadEndpoints {
	endpoints := make(da.RoadEndpoints)
	for i := int64(1); i <= 5; i++ {
		endpoints.Set(i, geo.NewCoordinate(0, float64(i)*0.01), geo.NewCoordinate(0, float64(i+1)*0.01))
	}
	return endpoints
}

func obs(lons ...float64) []geo.Coordinate {
	coords := make([]geo.Coordinate, len(lons))
	for i, lon := range lons {
		coords[i] = geo.NewCoordinate(0, lon)
	}
	return coords
}

func TestToDirectedArcs(t *testing.T) {
	endpoints := equatorEndpoints()

	testCases := []struct {
		name    string
		roadIDs []int64
		coords  []geo.Coordinate
		want    []da.ArcID
	}{
		{
			name:    "progression along the road is forward",
			roadIDs: []int64{1, 1, 2, 2},
			coords:  obs(0.011, 0.019, 0.021, 0.029),
			want:    []da.ArcID{da.NewArcID(1, pkg.FORWARD), da.NewArcID(2, pkg.FORWARD)},
		},
		{
			name:    "progression against the road is backward",
			roadIDs: []int64{2, 2, 1, 1},
			coords:  obs(0.029, 0.021, 0.019, 0.011),
			want:    []da.ArcID{da.NewArcID(2, pkg.BACKWARD), da.NewArcID(1, pkg.BACKWARD)},
		},
		{
			name:    "single observation uses the next run for the exit",
			roadIDs: []int64{1, 2, 2},
			coords:  obs(0.015, 0.022, 0.028),
			want:    []da.ArcID{da.NewArcID(1, pkg.FORWARD), da.NewArcID(2, pkg.FORWARD)},
		},
		{
			name:    "single observation on the last run uses the previous run for the entry",
			roadIDs: []int64{3, 3, 2},
			coords:  obs(0.038, 0.031, 0.025),
			want:    []da.ArcID{da.NewArcID(3, pkg.BACKWARD), da.NewArcID(2, pkg.BACKWARD)},
		},
		{
			name:    "no evidence defaults to forward",
			roadIDs: []int64{4},
			coords:  obs(0.045),
			want:    []da.ArcID{da.NewArcID(4, pkg.FORWARD)},
		},
		{
			name:    "road without endpoints is unoriented",
			roadIDs: []int64{1, 1, 42},
			coords:  obs(0.011, 0.019, 0.5),
			want:    []da.ArcID{da.NewArcID(1, pkg.FORWARD), da.NewArcID(42, pkg.UNORIENTED)},
		},
		{
			name:    "empty trace",
			roadIDs: []int64{},
			coords:  []geo.Coordinate{},
			want:    []da.ArcID{},
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			route, err := ToDirectedArcs(da.NewRawRoute(tt.roadIDs, tt.coords), endpoints)
			require.NoError(t, err)
			assert.Equal(t, tt.want, route.IDs())
		})
	}
}

func TestToDirectedArcsCoordinates(t *testing.T) {
	endpoints := equatorEndpoints()
	route, err := ToDirectedArcs(da.NewRawRoute([]int64{2, 2}, obs(0.029, 0.021)), endpoints)
	require.NoError(t, err)
	require.Len(t, route, 1)

	assert.Equal(t, endpoints[2][1], route[0].GetEntry())
	assert.Equal(t, endpoints[2][0], route[0].GetExit())
}

func TestToDirectedArcsLengthMismatch(t *testing.T) {
	_, err := ToDirectedArcs(da.NewRawRoute([]int64{1, 2}, obs(0.011)), equatorEndpoints())
	require.Error(t, err)
	assert.ErrorIs(t, err, util.ErrBadParamInput)
}

func TestRemoveDuplicates(t *testing.T) {
	a := da.NewArc(1, pkg.FORWARD, geo.NewCoordinate(0, 0.01), geo.NewCoordinate(0, 0.02))
	b := da.NewArc(2, pkg.FORWARD, geo.NewCoordinate(0, 0.02), geo.NewCoordinate(0, 0.03))
	aBack := da.NewArc(1, pkg.BACKWARD, geo.NewCoordinate(0, 0.02), geo.NewCoordinate(0, 0.01))

	testCases := []struct {
		name string
		in   da.Route
		want da.Route
	}{
		{
			name: "keeps first occurrence",
			in:   da.Route{a, b, a, b},
			want: da.Route{a, b},
		},
		{
			name: "opposite directions are different arcs",
			in:   da.Route{a, aBack, a},
			want: da.Route{a, aBack},
		},
		{
			name: "no duplicates",
			in:   da.Route{b, a},
			want: da.Route{b, a},
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			got := da.Route(slices.Collect(RemoveDuplicates(slices.Values(tt.in))))
			assert.Equal(t, tt.want, got)
			assert.False(t, got.HasDuplicates())

			again := da.Route(slices.Collect(RemoveDuplicates(slices.Values(got))))
			assert.Equal(t, got, again)
		})
	}
}

func TestRemoveDuplicatesStopsEarly(t *testing.T) {
	a := da.NewUnorientedArc(1)
	b := da.NewUnorientedArc(2)
	c := da.NewUnorientedArc(3)

	got := make([]da.Arc, 0)
	for arc := range RemoveDuplicates(slices.Values([]da.Arc{a, a, b, c})) {
		got = append(got, arc)
		if len(got) == 2 {
			break
		}
	}
	assert.Equal(t, []da.Arc{a, b}, got)
}

func TestPreprocess(t *testing.T) {
	endpoints := equatorEndpoints()
	// road 1 forward, road 2 forward, road 1 forward again
	raw := da.NewRawRoute([]int64{1, 1, 2, 2, 1, 1}, obs(0.011, 0.019, 0.021, 0.029, 0.012, 0.018))

	route, err := Preprocess(raw, endpoints)
	require.NoError(t, err)
	assert.Equal(t, []da.ArcID{da.NewArcID(1, pkg.FORWARD), da.NewArcID(2, pkg.FORWARD)}, route.IDs())
	assert.False(t, route.HasDuplicates())

	empty, err := Preprocess(da.NewRawRoute(nil, nil), endpoints)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}
