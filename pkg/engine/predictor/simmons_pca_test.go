package predictor

import (
	"testing"

	"github.com/lintang-b-s/routepredict/pkg"
	da "github.com/lintang-b-s/routepredict/pkg/datastructure"
	"github.com/lintang-b-s/routepredict/pkg/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pcaCorpus() []da.Route {
	return []da.Route{
		route(1, 2, 3, 4),
		route(5, 6, 7, 8),
		route(1, 2, 9),
	}
}

func trainedPCA(t *testing.T, opts ...PCAOption) *SimmonsPCA {
	t.Helper()
	m := NewSimmonsPCA(opts...)
	require.NoError(t, m.LearnRoutes(pcaCorpus(), nil))
	return m
}

func TestSimmonsPCAPredictRoute(t *testing.T) {
	testCases := []struct {
		name        string
		opts        []PCAOption
		partial     da.Route
		want        da.Route
		wantDropped int
	}{
		{
			name:    "continuation of the nearest route",
			partial: route(5, 6),
			want:    route(7, 8),
		},
		{
			name:    "nearest route shares the longer prefix",
			partial: route(1, 2, 3),
			want:    route(4),
		},
		{
			name:    "neighbor continuations are merged in distance order",
			opts:    []PCAOption{WithNeighbors(2)},
			partial: route(1, 2, 3),
			want:    route(4, 9),
		},
		{
			name:        "unknown arcs are dropped",
			partial:     route(5, 6, 99),
			want:        route(7, 8),
			wantDropped: 1,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			m := trainedPCA(t, tt.opts...)

			pred, err := m.PredictRoute(tt.partial)
			require.NoError(t, err)
			assert.Equal(t, tt.want.IDs(), pred.Route.IDs())
			assert.Equal(t, pkg.OUTCOME_COMPLETE, pred.Outcome)
			assert.Equal(t, tt.wantDropped, pred.DroppedArcs)
			assert.Greater(t, pred.Confidence, 0.0)
			assert.LessOrEqual(t, pred.Confidence, 1.0)
			assert.False(t, pred.Route.HasDuplicates())
		})
	}
}

func TestSimmonsPCACyclicContinuation(t *testing.T) {
	testCases := []struct {
		name      string
		corpus    []da.Route
		partial   da.Route
		want      da.Route
		wantCycle int64
	}{
		{
			name:      "neighbor revisits a partial arc",
			corpus:    []da.Route{route(1, 2, 3, 4)},
			partial:   route(3, 1),
			want:      route(2),
			wantCycle: 3,
		},
		{
			name:      "neighbor repeats its own arc",
			corpus:    []da.Route{route(1, 2, 3, 2, 5)},
			partial:   route(1),
			want:      route(2, 3),
			wantCycle: 2,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			m := NewSimmonsPCA()
			require.NoError(t, m.LearnRoutes(tt.corpus, nil))

			pred, err := m.PredictRoute(tt.partial)
			require.NoError(t, err)
			assert.True(t, pred.IsCyclic())
			assert.Equal(t, tt.want.IDs(), pred.Route.IDs())
			assert.Equal(t, tt.wantCycle, pred.CycleArc.GetRoadID())

			var cycleErr *CyclicRouteError
			require.ErrorAs(t, pred.Err(), &cycleErr)
			assert.Equal(t, tt.want.IDs(), cycleErr.Route.IDs())
		})
	}
}

func TestSimmonsPCANeighborsClippedToCorpus(t *testing.T) {
	m := trainedPCA(t, WithNeighbors(10))

	pred, err := m.PredictRoute(route(1, 2, 3))
	require.NoError(t, err)
	assert.Equal(t, pkg.OUTCOME_COMPLETE, pred.Outcome)
	assert.Equal(t, route(4, 9, 5, 6, 7, 8).IDs(), pred.Route.IDs())
}

func TestSimmonsPCATrainingRouteHasFullConfidence(t *testing.T) {
	m := trainedPCA(t)

	for _, r := range pcaCorpus() {
		pred, err := m.PredictRoute(r)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, pred.Confidence, 1e-9)
		assert.Empty(t, pred.Route)
	}
}

func TestSimmonsPCAConfidenceDecreasesWithDistance(t *testing.T) {
	m := trainedPCA(t)

	near, err := m.PredictRoute(route(5, 6, 7))
	require.NoError(t, err)
	far, err := m.PredictRoute(route(5))
	require.NoError(t, err)
	assert.Greater(t, near.Confidence, far.Confidence)
}

func TestSimmonsPCAComponents(t *testing.T) {
	testCases := []struct {
		name   string
		corpus []da.Route
		opts   []PCAOption
		want   int
	}{
		{
			name:   "three routes span two dimensions",
			corpus: pcaCorpus(),
			want:   2,
		},
		{
			name:   "clipped to the requested components",
			corpus: pcaCorpus(),
			opts:   []PCAOption{WithComponents(1)},
			want:   1,
		},
		{
			name:   "single route has no variance",
			corpus: []da.Route{route(1, 2, 3)},
			want:   0,
		},
		{
			name:   "identical routes have no variance",
			corpus: []da.Route{route(1, 2, 3), route(1, 2, 3)},
			want:   0,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			m := NewSimmonsPCA(tt.opts...)
			require.NoError(t, m.LearnRoutes(tt.corpus, nil))
			assert.Equal(t, tt.want, m.Components())
		})
	}
}

func TestSimmonsPCASingleRoute(t *testing.T) {
	m := NewSimmonsPCA()
	require.NoError(t, m.LearnRoutes([]da.Route{route(1, 2, 3, 4)}, nil))

	pred, err := m.PredictRoute(route(1, 2))
	require.NoError(t, err)
	assert.Equal(t, route(3, 4).IDs(), pred.Route.IDs())
	assert.Equal(t, 1.0, pred.Confidence)
}

func TestSimmonsPCAErrors(t *testing.T) {
	m := NewSimmonsPCA()

	_, err := m.PredictRoute(route(1))
	assert.ErrorIs(t, err, ErrModelNotTrained)
	_, _, err = m.Project(route(1))
	assert.ErrorIs(t, err, ErrModelNotTrained)

	assert.ErrorIs(t, m.LearnRoutes(nil, nil), ErrEmptyCorpus)
	assert.ErrorIs(t, m.LearnRoutes([]da.Route{route()}, nil), ErrEmptyCorpus)
	assert.False(t, m.IsTrained())

	m = trainedPCA(t)
	_, err = m.PredictRoute(route())
	assert.ErrorIs(t, err, ErrEmptyPartialRoute)
}

func TestSimmonsPCAVocabulary(t *testing.T) {
	m := trainedPCA(t)

	assert.Equal(t, route(1, 2, 3, 4, 5, 6, 7, 8, 9).IDs(), m.Vocabulary())
	assert.Equal(t, []float64{0, 0, 0, 0, 1, 1, 1, 1, 0}, m.TrainingVector(1))

	z, dropped, err := m.Project(route(5, 6, 7, 8, 42))
	require.NoError(t, err)
	assert.Equal(t, 1, dropped)
	assert.Len(t, z, m.Components())
}

func TestSimmonsPCALengthWeighting(t *testing.T) {
	endpoints := da.RoadEndpoints{
		1: {geo.NewCoordinate(0, 0), geo.NewCoordinate(0, 0.5)},
	}
	m := NewSimmonsPCA(WithArcWeighting(pkg.LENGTH))
	require.NoError(t, m.LearnRoutes([]da.Route{route(1, 2), {arc(2), da.NewUnorientedArc(3)}}, endpoints))

	v := m.TrainingVector(0)
	require.Len(t, v, 3)
	// road 1 from the endpoint lookup, road 2 from its own arc coordinates
	assert.InDelta(t, geo.Distance(geo.NewCoordinate(0, 0), geo.NewCoordinate(0, 0.5)), v[0], 1e-9)
	assert.InDelta(t, arc(2).Length(), v[1], 1e-9)
	assert.Zero(t, v[2])
	assert.Equal(t, []float64{0, arc(2).Length(), pkg.DEFAULT_ARC_WEIGHT}, m.TrainingVector(1))
}

func TestConfidence(t *testing.T) {
	assert.Equal(t, 1.0, Confidence(0))
	assert.Equal(t, 0.5, Confidence(1))
	assert.Zero(t, Confidence(-1))
}
