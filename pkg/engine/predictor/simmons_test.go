package predictor

import (
	"errors"
	"testing"

	"github.com/lintang-b-s/routepredict/pkg"
	da "github.com/lintang-b-s/routepredict/pkg/datastructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimmonsPredictRoute(t *testing.T) {
	testCases := []struct {
		name        string
		corpus      []da.Route
		opts        []SimmonsOption
		partial     da.Route
		want        da.Route
		wantOutcome pkg.Outcome
	}{
		{
			name:        "most frequent transition wins, ties go to the first observed",
			corpus:      []da.Route{route(1, 2, 3), route(1, 2, 4), route(1, 5)},
			partial:     route(1),
			want:        route(2, 3),
			wantOutcome: pkg.OUTCOME_COMPLETE,
		},
		{
			name:        "single training route is reproduced",
			corpus:      []da.Route{route(1, 2, 3, 4)},
			partial:     route(1),
			want:        route(2, 3, 4),
			wantOutcome: pkg.OUTCOME_COMPLETE,
		},
		{
			name:        "continues from the last arc of the partial route",
			corpus:      []da.Route{route(1, 2, 3, 4), route(6, 3, 7)},
			partial:     route(6, 2),
			want:        route(3, 4),
			wantOutcome: pkg.OUTCOME_COMPLETE,
		},
		{
			name:        "unknown last arc predicts nothing",
			corpus:      []da.Route{route(1, 2, 3)},
			partial:     route(1, 9),
			want:        route(),
			wantOutcome: pkg.OUTCOME_COMPLETE,
		},
		{
			name:        "revisiting an arc stops the prediction",
			corpus:      []da.Route{route(1, 2, 3), route(3, 1)},
			partial:     route(1),
			want:        route(2, 3),
			wantOutcome: pkg.OUTCOME_CYCLIC,
		},
		{
			name:        "maximum prediction length",
			corpus:      []da.Route{route(1, 2, 3, 4)},
			opts:        []SimmonsOption{WithMaxPredictionLength(2)},
			partial:     route(1),
			want:        route(2, 3),
			wantOutcome: pkg.OUTCOME_TRUNCATED,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSimmons(tt.opts...)
			s.LearnRoutes(tt.corpus)

			pred, err := s.PredictRoute(tt.partial)
			require.NoError(t, err)
			assert.Equal(t, tt.want.IDs(), pred.Route.IDs())
			assert.Equal(t, tt.wantOutcome, pred.Outcome)
			assert.Zero(t, pred.Confidence)
			assert.False(t, pred.Route.HasDuplicates())
			for _, a := range pred.Route {
				assert.False(t, tt.partial.Contains(a.ID()))
			}
		})
	}
}

func TestSimmonsCyclicError(t *testing.T) {
	s := NewSimmons()
	s.LearnRoutes([]da.Route{route(1, 2, 3), route(3, 1)})

	pred, err := s.PredictRoute(route(1))
	require.NoError(t, err)
	require.True(t, pred.IsCyclic())
	assert.Equal(t, arc(1).ID(), pred.CycleArc.ID())

	var cyclicErr *CyclicRouteError
	require.True(t, errors.As(pred.Err(), &cyclicErr))
	assert.Equal(t, route(2, 3).IDs(), cyclicErr.Route.IDs())
	assert.Equal(t, arc(1).ID(), cyclicErr.Arc.ID())
}

func TestSimmonsEmptyPartialRoute(t *testing.T) {
	s := NewSimmons()
	s.LearnRoute(route(1, 2))

	_, err := s.PredictRoute(route())
	assert.ErrorIs(t, err, ErrEmptyPartialRoute)
}

func TestSimmonsPredictionIsBounded(t *testing.T) {
	s := NewSimmons()
	s.LearnRoutes([]da.Route{route(1, 2, 3, 4, 5), route(5, 6, 2), route(6, 1)})

	for _, start := range []int64{1, 2, 3, 4, 5, 6} {
		pred, err := s.PredictRoute(route(start))
		require.NoError(t, err)
		assert.LessOrEqual(t, len(pred.Route), s.KnownArcs())
		assert.False(t, pred.Route.HasDuplicates())
	}
}

func TestSimmonsTransitions(t *testing.T) {
	s := NewSimmons()
	s.LearnRoutes([]da.Route{route(1, 2, 3), route(1, 2, 4), route(1, 5)})

	assert.Equal(t, 5, s.KnownArcs())
	assert.Equal(t, []Transition{{Next: arc(2), Count: 2}, {Next: arc(5), Count: 1}}, s.Transitions(arc(1).ID()))
	assert.Equal(t, []Transition{{Next: arc(3), Count: 1}, {Next: arc(4), Count: 1}}, s.Transitions(arc(2).ID()))
	assert.Nil(t, s.Transitions(arc(3).ID()))
}
